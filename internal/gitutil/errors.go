package gitutil

import (
	"fmt"
	"strings"

	"github.com/samzong/gitpilot/internal/gitcmd"
)

// BackendError reports a failed version-control operation.
type BackendError struct {
	Op      string
	Message string
	Err     error
}

func (e *BackendError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// WrapGitError builds a BackendError that prefers git stderr output when present.
func WrapGitError(action string, result gitcmd.Result, err error) error {
	return &BackendError{
		Op:      action,
		Message: strings.TrimSpace(string(result.Stderr)),
		Err:     err,
	}
}
