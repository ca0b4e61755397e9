package gitutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ValidateBranchName validates a git branch name for common illegal patterns.
func ValidateBranchName(name string) error {
	if name == "" {
		return errors.New("branch name cannot be empty")
	}
	if strings.HasPrefix(name, "-") {
		return fmt.Errorf("branch name cannot start with '-': %s", name)
	}
	if strings.Contains(name, "..") {
		return fmt.Errorf("branch name cannot contain '..': %s", name)
	}
	for _, ch := range []string{" ", "~", "^", ":", "?", "*", "[", "\\"} {
		if strings.Contains(name, ch) {
			return fmt.Errorf("branch name contains invalid character %q: %s", ch, name)
		}
	}
	if strings.HasSuffix(name, ".lock") || strings.HasSuffix(name, "/") || strings.HasSuffix(name, ".") {
		return fmt.Errorf("branch name has an invalid suffix: %s", name)
	}
	return nil
}

// ValidateTagName applies the branch rules to tag names; git shares them for refs.
func ValidateTagName(name string) error {
	if err := ValidateBranchName(name); err != nil {
		return fmt.Errorf("invalid tag: %w", err)
	}
	return nil
}

var isoLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ValidateISODate checks that date is an ISO 8601 timestamp git can parse.
// The caller keeps passing the original string; parsing only gates bad input.
func ValidateISODate(date string) error {
	date = strings.TrimSpace(date)
	if date == "" {
		return errors.New("date cannot be empty")
	}
	for _, layout := range isoLayouts {
		if _, err := time.Parse(layout, date); err == nil {
			return nil
		}
	}
	return fmt.Errorf("date %q is not in ISO 8601 format (e.g. 2021-01-01T00:00:00Z)", date)
}

// ParseStashIndex converts a stash index argument into a non-negative integer.
func ParseStashIndex(arg string) (int, error) {
	if arg == "" {
		return 0, nil
	}
	idx, err := strconv.Atoi(arg)
	if err != nil || idx < 0 {
		return 0, fmt.Errorf("invalid stash index %q: must be a non-negative integer", arg)
	}
	return idx, nil
}
