package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskvault/taskvault/internal/models"
	"github.com/taskvault/taskvault/internal/storage"
)

type taskServiceImpl struct {
	logger        zerolog.Logger
	store         storage.Store
	auth          AuthService
	mutationDelay time.Duration
	pageSize      int
}

func NewTaskService(
	logger zerolog.Logger,
	store storage.Store,
	auth AuthService,
	mutationDelay time.Duration,
	pageSize int,
) TaskService {
	return &taskServiceImpl{
		logger:        logger,
		store:         store,
		auth:          auth,
		mutationDelay: mutationDelay,
		pageSize:      pageSize,
	}
}

// delay reproduces the dashboard's cosmetic loading pause. With a zero
// configured delay it is a no-op.
func (s *taskServiceImpl) delay(ctx context.Context) error {
	if s.mutationDelay <= 0 {
		return nil
	}

	timer := time.NewTimer(s.mutationDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// sessionUser loads the session user for a repository operation. A nil
// result means no open session, which every mutation treats as a
// silent no-op; the outer surface redirects logged-out users before
// these calls are reachable.
func (s *taskServiceImpl) sessionUser(ctx context.Context) *models.User {
	user, err := s.auth.CurrentUser(ctx)
	if err != nil || user == nil {
		s.logger.Debug().Msg("no open session")
		return nil
	}
	return user
}

// persistUser replaces the entry matching user.ID in the users
// collection and writes the collection back in a single write. The
// session slot only holds the user id, so it needs no update.
func (s *taskServiceImpl) persistUser(user models.User) {
	users, err := storage.GetJSON[[]models.User](s.store, storage.UsersKey)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to load users collection")
		return
	}

	for i := range users {
		if users[i].ID == user.ID {
			users[i] = user
			break
		}
	}

	err = storage.SetJSON(s.store, storage.UsersKey, users)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to persist users collection")
		return
	}
	s.logger.Debug().
		Str("user_id", user.ID).
		Msg("persisted user record")
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) ([]models.Task, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}

	user := s.sessionUser(ctx)
	if user == nil {
		return nil, nil
	}

	taskUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate task uuid")
		return nil, err
	}

	now := time.Now()
	task := models.Task{
		ID:          taskUUID.String(),
		Title:       strings.TrimSpace(params.Title),
		Description: strings.TrimSpace(params.Description),
		Status:      params.Status,
		UserID:      user.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	user.Tasks = append(user.Tasks, task)
	s.persistUser(*user)

	s.logger.Info().
		Str("task_id", task.ID).
		Str("user_id", user.ID).
		Msg("created task")
	return user.Tasks, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, taskID string, params UpdateTaskParams, current []models.Task) ([]models.Task, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}

	user := s.sessionUser(ctx)
	if user == nil {
		return nil, nil
	}

	updated := make([]models.Task, len(current))
	copy(updated, current)
	for i := range updated {
		if updated[i].ID != taskID {
			continue
		}
		updated[i].Title = strings.TrimSpace(params.Title)
		updated[i].Description = strings.TrimSpace(params.Description)
		updated[i].Status = params.Status
		updated[i].UpdatedAt = time.Now()
		break
	}

	user.Tasks = updated
	s.persistUser(*user)

	s.logger.Info().
		Str("task_id", taskID).
		Str("user_id", user.ID).
		Msg("updated task")
	return updated, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, taskID string, current []models.Task) ([]models.Task, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}

	user := s.sessionUser(ctx)
	if user == nil {
		return nil, nil
	}

	updated := make([]models.Task, 0, len(current))
	for _, t := range current {
		if t.ID != taskID {
			updated = append(updated, t)
		}
	}

	user.Tasks = updated
	s.persistUser(*user)

	s.logger.Info().
		Str("task_id", taskID).
		Str("user_id", user.ID).
		Msg("deleted task")
	return updated, nil
}

func (s *taskServiceImpl) ToggleTaskFavorite(ctx context.Context, taskID string, current []models.Task) ([]models.Task, error) {
	// No delay: favorite toggling is synchronous.
	user := s.sessionUser(ctx)
	if user == nil {
		return nil, nil
	}

	updated := make([]models.Task, len(current))
	copy(updated, current)
	for i := range updated {
		if updated[i].ID != taskID {
			continue
		}
		updated[i].IsFavorite = !updated[i].IsFavorite
		updated[i].UpdatedAt = time.Now()
		break
	}

	user.Tasks = updated
	s.persistUser(*user)

	s.logger.Info().
		Str("task_id", taskID).
		Str("user_id", user.ID).
		Msg("toggled task favorite")
	return updated, nil
}

func (s *taskServiceImpl) ChangeTaskStatus(ctx context.Context, taskID, newStatus string, current []models.Task) ([]models.Task, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}

	user := s.sessionUser(ctx)
	if user == nil {
		return nil, nil
	}

	updated := make([]models.Task, len(current))
	copy(updated, current)
	for i := range updated {
		if updated[i].ID != taskID {
			continue
		}
		updated[i].Status = newStatus
		updated[i].UpdatedAt = time.Now()
		break
	}

	user.Tasks = updated
	s.persistUser(*user)

	s.logger.Info().
		Str("task_id", taskID).
		Str("status", newStatus).
		Str("user_id", user.ID).
		Msg("changed task status")
	return updated, nil
}

func (s *taskServiceImpl) ListTasks(ctx context.Context, params ListTasksParams) (*TaskPage, error) {
	user := s.sessionUser(ctx)
	if user == nil {
		return nil, nil
	}

	query := strings.ToLower(strings.TrimSpace(params.Query))
	filtered := make([]models.Task, 0, len(user.Tasks))
	for _, t := range user.Tasks {
		if params.Status != "" && t.Status != params.Status {
			continue
		}
		if params.FavoritesOnly && !t.IsFavorite {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(t.Title), query) &&
			!strings.Contains(strings.ToLower(t.Description), query) {
			continue
		}
		filtered = append(filtered, t)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	perPage := params.PerPage
	if perPage <= 0 {
		perPage = s.pageSize
	}
	page := params.Page
	if page <= 0 {
		page = 1
	}

	start := (page - 1) * perPage
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + perPage
	if end > len(filtered) {
		end = len(filtered)
	}

	return &TaskPage{
		Items:   filtered[start:end],
		Total:   len(filtered),
		Page:    page,
		PerPage: perPage,
	}, nil
}

func (s *taskServiceImpl) CountTasksByStatus(ctx context.Context) (map[string]int, error) {
	user := s.sessionUser(ctx)
	if user == nil {
		return nil, nil
	}

	counts := make(map[string]int, len(user.Statuses))
	for _, t := range user.Tasks {
		counts[t.Status]++
	}
	return counts, nil
}
