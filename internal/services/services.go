package services

import (
	"context"
	"errors"

	"github.com/taskvault/taskvault/internal/models"
)

// ErrInvalidCredentials is returned by Login for an unknown email or a
// wrong password. The two cases are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("Email or password is incorrect")

// ValidationError reports a sign-up rule a single field violated.
// Callers surface Message as-is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

type AuthService interface {
	// Register validates the sign-up input and, on success, appends the
	// new user to the users collection and opens a session for it.
	//
	// Rules are checked in order: name required, email required, email
	// format, password length, name uniqueness, email uniqueness. The
	// first failure is returned as a *ValidationError.
	Register(ctx context.Context, params RegisterParams) (*models.User, error)

	// Login matches a stored user by trimmed, case-insensitive email
	// and exact password, then opens a session for it.
	//
	// It returns ErrInvalidCredentials when no stored user matches.
	Login(ctx context.Context, params LoginParams) (*models.User, error)

	// Logout writes the explicit null session sentinel. It is
	// idempotent and never removes the session key.
	Logout(ctx context.Context) error

	// CurrentUser resolves the session pointer against the users
	// collection. It returns nil without error when nobody is logged
	// in or the pointer no longer resolves.
	CurrentUser(ctx context.Context) (*models.User, error)

	// IsAuthenticated reports whether the session slot resolves to a
	// registered user.
	IsAuthenticated(ctx context.Context) bool
}

// TaskService owns the per-user task and status collections. Every
// mutation loads the session user, transforms the owned collection and
// writes the user back to the users collection in a single write.
//
// Mutations require an open session; without one they return a nil
// collection and no error. Callers own that precondition.
type TaskService interface {
	// CreateTask appends a new task and returns the full updated
	// collection. Title and description are trimmed; an empty
	// description is dropped entirely.
	CreateTask(ctx context.Context, params CreateTaskParams) ([]models.Task, error)

	// UpdateTask replaces title, description and status of the matching
	// task in the caller-supplied list and bumps its updatedAt. An
	// unknown id returns the list unchanged.
	UpdateTask(ctx context.Context, taskID string, params UpdateTaskParams, current []models.Task) ([]models.Task, error)

	// DeleteTask removes the matching task and returns the remainder.
	DeleteTask(ctx context.Context, taskID string, current []models.Task) ([]models.Task, error)

	// ToggleTaskFavorite flips the favorite flag of the matching task
	// and bumps its updatedAt. It never delays.
	ToggleTaskFavorite(ctx context.Context, taskID string, current []models.Task) ([]models.Task, error)

	// ChangeTaskStatus points the matching task at newStatus and bumps
	// its updatedAt. The status name is not validated against the
	// status collection.
	ChangeTaskStatus(ctx context.Context, taskID, newStatus string, current []models.Task) ([]models.Task, error)

	// ListTasks returns one page of the session user's tasks, newest
	// first, after search, status and favorites filtering.
	ListTasks(ctx context.Context, params ListTasksParams) (*TaskPage, error)

	// CountTasksByStatus aggregates task counts keyed by status name.
	// Statuses sharing a name pool into one bucket.
	CountTasksByStatus(ctx context.Context) (map[string]int, error)

	// CreateStatus appends a new status and returns the full updated
	// collection. The title is trimmed; the color is stored verbatim.
	CreateStatus(ctx context.Context, params CreateStatusParams) ([]models.Status, error)

	// DeleteStatus removes the status with the given id and cascades:
	// every task whose status equals statusName (exact, case-sensitive
	// match) is deleted with it. Two statuses sharing a name therefore
	// lose their tasks together.
	DeleteStatus(ctx context.Context, params DeleteStatusParams) (*DeleteStatusResult, error)

	// ListStatuses returns the session user's status collection.
	ListStatuses(ctx context.Context) ([]models.Status, error)
}

type RegisterParams struct {
	Name     string
	Email    string
	Password string
	Avatar   string
}

type LoginParams struct {
	Email    string
	Password string
}

type CreateTaskParams struct {
	Title       string
	Description string
	Status      string
}

type UpdateTaskParams struct {
	Title       string
	Description string
	Status      string
}

type ListTasksParams struct {
	Query         string
	Status        string
	FavoritesOnly bool
	Page          int
	PerPage       int
}

type TaskPage struct {
	Items   []models.Task
	Total   int
	Page    int
	PerPage int
}

type CreateStatusParams struct {
	Title string
	Color string
}

type DeleteStatusParams struct {
	StatusID   string
	StatusName string
	Statuses   []models.Status
	Tasks      []models.Task
}

type DeleteStatusResult struct {
	Statuses []models.Status
	Tasks    []models.Task
}
