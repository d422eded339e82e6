package services_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/taskvault/taskvault/internal/services"
	"github.com/taskvault/taskvault/internal/storage"
)

const testAvatarMaxBytes = 2 * 1024 * 1024

type testEnv struct {
	store storage.Store
	auth  services.AuthService
	tasks services.TaskService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := storage.NewFileStore(zerolog.Nop(), t.TempDir())
	require.NoError(t, err)

	auth := services.NewAuthService(zerolog.Nop(), store, testAvatarMaxBytes)
	tasks := services.NewTaskService(zerolog.Nop(), store, auth, 0, 7)
	return &testEnv{store: store, auth: auth, tasks: tasks}
}

func (e *testEnv) registerAlice(t *testing.T) {
	t.Helper()

	_, err := e.auth.Register(t.Context(), services.RegisterParams{
		Name:     "Alice",
		Email:    "alice@x.com",
		Password: "password1",
	})
	require.NoError(t, err)
}
