// Package board wraps the task store with logging and renders the kanban
// board markdown shared by the MCP tools and the CLI.
package board

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/taskops/taskboard/internal/core/task"
)

// Service is the single entry point for task operations. Both the MCP
// dispatcher and the CLI commands go through it.
type Service struct {
	store task.Store
	log   zerolog.Logger
}

// NewService creates a Service around the given store.
func NewService(store task.Store, log zerolog.Logger) *Service {
	return &Service{
		store: store,
		log:   log.With().Str("component", "board-service").Logger(),
	}
}

// Refresh re-reads the snapshot from disk so writes made by other
// processes become visible.
func (s *Service) Refresh(ctx context.Context) error {
	if err := s.store.Load(ctx); err != nil {
		return fmt.Errorf("reload tasks: %w", err)
	}
	return nil
}

// Add creates a task. Sentinel and persistence errors pass through
// unwrapped so callers can branch on them.
func (s *Service) Add(ctx context.Context, title, description string, status task.Status) (task.Task, error) {
	t, err := s.store.Create(ctx, title, description, status)
	if err != nil {
		return t, err
	}

	s.log.Info().Ctx(ctx).Int64("id", t.ID).Str("status", string(t.Status)).Msg("task created")
	return t, nil
}

// List returns tasks matching the filter in creation order.
func (s *Service) List(ctx context.Context, filter task.ListFilter) ([]task.Task, error) {
	tasks, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Move changes a task's status, returning the updated task and the
// status it held before.
func (s *Service) Move(ctx context.Context, id int64, status task.Status) (task.Task, task.Status, error) {
	t, prev, err := s.store.SetStatus(ctx, id, status)
	if err != nil {
		return t, prev, err
	}

	s.log.Info().Ctx(ctx).Int64("id", id).Str("from", string(prev)).Str("to", string(status)).Msg("task moved")
	return t, prev, nil
}

// Remove deletes a task and returns it.
func (s *Service) Remove(ctx context.Context, id int64) (task.Task, error) {
	t, err := s.store.Delete(ctx, id)
	if err != nil {
		return t, err
	}

	s.log.Info().Ctx(ctx).Int64("id", id).Msg("task deleted")
	return t, nil
}
