package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/taskvault/taskvault/internal/models"
)

func (s *taskServiceImpl) CreateStatus(ctx context.Context, params CreateStatusParams) ([]models.Status, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}

	user := s.sessionUser(ctx)
	if user == nil {
		return nil, nil
	}

	statusUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate status uuid")
		return nil, err
	}

	status := models.Status{
		ID:     statusUUID.String(),
		Name:   strings.TrimSpace(params.Title),
		Color:  params.Color,
		UserID: user.ID,
	}

	user.Statuses = append(user.Statuses, status)
	s.persistUser(*user)

	s.logger.Info().
		Str("status_id", status.ID).
		Str("name", status.Name).
		Str("user_id", user.ID).
		Msg("created status")
	return user.Statuses, nil
}

func (s *taskServiceImpl) DeleteStatus(ctx context.Context, params DeleteStatusParams) (*DeleteStatusResult, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}

	user := s.sessionUser(ctx)
	if user == nil {
		return nil, nil
	}

	updatedStatuses := make([]models.Status, 0, len(params.Statuses))
	for _, st := range params.Statuses {
		if st.ID != params.StatusID {
			updatedStatuses = append(updatedStatuses, st)
		}
	}

	// Cascade by name, not id: tasks store the status display name, so
	// every task matching the name goes with the status, including
	// tasks of a duplicate-named status.
	updatedTasks := make([]models.Task, 0, len(params.Tasks))
	for _, t := range params.Tasks {
		if t.Status != params.StatusName {
			updatedTasks = append(updatedTasks, t)
		}
	}

	user.Statuses = updatedStatuses
	user.Tasks = updatedTasks
	s.persistUser(*user)

	s.logger.Info().
		Str("status_id", params.StatusID).
		Str("name", params.StatusName).
		Int("deleted_tasks", len(params.Tasks)-len(updatedTasks)).
		Str("user_id", user.ID).
		Msg("deleted status")
	return &DeleteStatusResult{
		Statuses: updatedStatuses,
		Tasks:    updatedTasks,
	}, nil
}

func (s *taskServiceImpl) ListStatuses(ctx context.Context) ([]models.Status, error) {
	user := s.sessionUser(ctx)
	if user == nil {
		return nil, nil
	}
	return user.Statuses, nil
}
