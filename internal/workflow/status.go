package workflow

import (
	"context"
	"fmt"

	"github.com/samzong/gitpilot/internal/git"
)

// StatusGateway reads one status snapshot per orchestration attempt.
type StatusGateway struct {
	backend StatusReader
}

func NewStatusGateway(backend StatusReader) *StatusGateway {
	return &StatusGateway{backend: backend}
}

func (g *StatusGateway) GetStatus(ctx context.Context) (git.Status, error) {
	st, err := g.backend.Status(ctx)
	if err != nil {
		return git.Status{}, fmt.Errorf("failed to read repository status: %w", err)
	}
	return st, nil
}
