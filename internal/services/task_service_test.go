package services_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskvault/taskvault/internal/services"
)

func TestCreateTask(t *testing.T) {
	t.Run("TrimsAndDefaults", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerAlice(t)

		tasks, err := env.tasks.CreateTask(t.Context(), services.CreateTaskParams{
			Title:       "  Ship it  ",
			Description: "   ",
			Status:      "Urgent",
		})
		require.NoError(t, err)
		require.Len(t, tasks, 1)

		task := tasks[0]
		assert.Equal(t, "Ship it", task.Title)
		assert.Empty(t, task.Description)
		assert.Equal(t, "Urgent", task.Status)
		assert.False(t, task.IsFavorite)
		assert.NotEmpty(t, task.ID)
		assert.False(t, task.CreatedAt.IsZero())
		assert.Equal(t, task.CreatedAt, task.UpdatedAt)

		current, err := env.auth.CurrentUser(t.Context())
		require.NoError(t, err)
		assert.Equal(t, current.ID, task.UserID)
		assert.Len(t, current.Tasks, 1)
	})

	t.Run("WithoutSessionIsNoOp", func(t *testing.T) {
		env := newTestEnv(t)

		tasks, err := env.tasks.CreateTask(t.Context(), services.CreateTaskParams{Title: "orphan"})
		require.NoError(t, err)
		assert.Nil(t, tasks)
	})
}

func TestUpdateTask(t *testing.T) {
	t.Run("ReplacesFieldsAndBumpsUpdatedAt", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerAlice(t)

		tasks, err := env.tasks.CreateTask(t.Context(), services.CreateTaskParams{
			Title:  "Ship it",
			Status: "Urgent",
		})
		require.NoError(t, err)
		created := tasks[0]

		time.Sleep(2 * time.Millisecond)
		updated, err := env.tasks.UpdateTask(t.Context(), created.ID, services.UpdateTaskParams{
			Title:       "  Ship it twice  ",
			Description: " soon ",
			Status:      "Later",
		}, tasks)
		require.NoError(t, err)
		require.Len(t, updated, 1)
		assert.Equal(t, "Ship it twice", updated[0].Title)
		assert.Equal(t, "soon", updated[0].Description)
		assert.Equal(t, "Later", updated[0].Status)
		assert.True(t, updated[0].UpdatedAt.After(created.UpdatedAt))
		assert.Equal(t, created.CreatedAt, updated[0].CreatedAt)
	})

	t.Run("UnknownIDLeavesListUnchanged", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerAlice(t)

		tasks, err := env.tasks.CreateTask(t.Context(), services.CreateTaskParams{
			Title:  "Ship it",
			Status: "Urgent",
		})
		require.NoError(t, err)

		updated, err := env.tasks.UpdateTask(t.Context(), "no-such-id", services.UpdateTaskParams{
			Title: "ignored",
		}, tasks)
		require.NoError(t, err)
		assert.Equal(t, tasks, updated)
	})
}

func TestDeleteTask(t *testing.T) {
	env := newTestEnv(t)
	env.registerAlice(t)

	tasks, err := env.tasks.CreateTask(t.Context(), services.CreateTaskParams{Title: "one"})
	require.NoError(t, err)
	tasks, err = env.tasks.CreateTask(t.Context(), services.CreateTaskParams{Title: "two"})
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	remaining, err := env.tasks.DeleteTask(t.Context(), tasks[0].ID, tasks)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "two", remaining[0].Title)

	current, err := env.auth.CurrentUser(t.Context())
	require.NoError(t, err)
	assert.Len(t, current.Tasks, 1)
}

func TestToggleTaskFavorite(t *testing.T) {
	t.Run("DoubleToggleIsIdentity", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerAlice(t)

		tasks, err := env.tasks.CreateTask(t.Context(), services.CreateTaskParams{Title: "Ship it"})
		require.NoError(t, err)
		original := tasks[0]

		time.Sleep(2 * time.Millisecond)
		once, err := env.tasks.ToggleTaskFavorite(t.Context(), original.ID, tasks)
		require.NoError(t, err)
		assert.True(t, once[0].IsFavorite)
		assert.True(t, once[0].UpdatedAt.After(original.UpdatedAt))

		time.Sleep(2 * time.Millisecond)
		twice, err := env.tasks.ToggleTaskFavorite(t.Context(), original.ID, once)
		require.NoError(t, err)
		assert.Equal(t, original.IsFavorite, twice[0].IsFavorite)
		assert.True(t, twice[0].UpdatedAt.After(once[0].UpdatedAt))
	})

	t.Run("TouchesOnlyTheMatchingTask", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerAlice(t)

		tasks, err := env.tasks.CreateTask(t.Context(), services.CreateTaskParams{Title: "one"})
		require.NoError(t, err)
		tasks, err = env.tasks.CreateTask(t.Context(), services.CreateTaskParams{Title: "two"})
		require.NoError(t, err)

		toggled, err := env.tasks.ToggleTaskFavorite(t.Context(), tasks[0].ID, tasks)
		require.NoError(t, err)
		assert.True(t, toggled[0].IsFavorite)
		assert.Equal(t, tasks[1], toggled[1])
	})
}

func TestChangeTaskStatus(t *testing.T) {
	env := newTestEnv(t)
	env.registerAlice(t)

	tasks, err := env.tasks.CreateTask(t.Context(), services.CreateTaskParams{
		Title:  "Ship it",
		Status: "Urgent",
	})
	require.NoError(t, err)

	// The new name is not validated against the status collection.
	moved, err := env.tasks.ChangeTaskStatus(t.Context(), tasks[0].ID, "Someday", tasks)
	require.NoError(t, err)
	assert.Equal(t, "Someday", moved[0].Status)
}

func TestStatuses(t *testing.T) {
	t.Run("CreateTrimsTitle", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerAlice(t)

		statuses, err := env.tasks.CreateStatus(t.Context(), services.CreateStatusParams{
			Title: "  Urgent  ",
			Color: "hsla(0,100%,50%,1)",
		})
		require.NoError(t, err)
		require.Len(t, statuses, 1)
		assert.Equal(t, "Urgent", statuses[0].Name)
		assert.Equal(t, "hsla(0,100%,50%,1)", statuses[0].Color)
	})

	t.Run("DeleteCascadesByName", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerAlice(t)

		statuses, err := env.tasks.CreateStatus(t.Context(), services.CreateStatusParams{
			Title: "Urgent",
			Color: "hsla(0,100%,50%,1)",
		})
		require.NoError(t, err)
		statuses, err = env.tasks.CreateStatus(t.Context(), services.CreateStatusParams{
			Title: "Later",
			Color: "hsla(212, 100%, 50%, 1)",
		})
		require.NoError(t, err)
		require.Len(t, statuses, 2)
		urgent := statuses[0]

		tasks, err := env.tasks.CreateTask(t.Context(), services.CreateTaskParams{
			Title:  "Ship it",
			Status: "Urgent",
		})
		require.NoError(t, err)
		tasks, err = env.tasks.CreateTask(t.Context(), services.CreateTaskParams{
			Title:  "Procrastinate",
			Status: "Later",
		})
		require.NoError(t, err)
		require.Len(t, tasks, 2)

		result, err := env.tasks.DeleteStatus(t.Context(), services.DeleteStatusParams{
			StatusID:   urgent.ID,
			StatusName: "Urgent",
			Statuses:   statuses,
			Tasks:      tasks,
		})
		require.NoError(t, err)
		require.Len(t, result.Statuses, 1)
		assert.Equal(t, "Later", result.Statuses[0].Name)
		require.Len(t, result.Tasks, 1)
		assert.Equal(t, "Procrastinate", result.Tasks[0].Title)

		current, err := env.auth.CurrentUser(t.Context())
		require.NoError(t, err)
		assert.Len(t, current.Statuses, 1)
		assert.Len(t, current.Tasks, 1)
	})

	t.Run("CascadeMatchIsCaseSensitive", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerAlice(t)

		statuses, err := env.tasks.CreateStatus(t.Context(), services.CreateStatusParams{
			Title: "Urgent",
			Color: "hsla(0,100%,50%,1)",
		})
		require.NoError(t, err)

		tasks, err := env.tasks.CreateTask(t.Context(), services.CreateTaskParams{
			Title:  "lowercase ref",
			Status: "urgent",
		})
		require.NoError(t, err)

		result, err := env.tasks.DeleteStatus(t.Context(), services.DeleteStatusParams{
			StatusID:   statuses[0].ID,
			StatusName: "Urgent",
			Statuses:   statuses,
			Tasks:      tasks,
		})
		require.NoError(t, err)
		assert.Len(t, result.Tasks, 1, "case-mismatched task must survive")
	})

	t.Run("DuplicateNamesPoolCounts", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerAlice(t)

		for i := 0; i < 2; i++ {
			_, err := env.tasks.CreateStatus(t.Context(), services.CreateStatusParams{
				Title: "Urgent",
				Color: "hsla(0,100%,50%,1)",
			})
			require.NoError(t, err)
		}
		_, err := env.tasks.CreateTask(t.Context(), services.CreateTaskParams{
			Title:  "a",
			Status: "Urgent",
		})
		require.NoError(t, err)
		_, err = env.tasks.CreateTask(t.Context(), services.CreateTaskParams{
			Title:  "b",
			Status: "Urgent",
		})
		require.NoError(t, err)

		counts, err := env.tasks.CountTasksByStatus(t.Context())
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"Urgent": 2}, counts)
	})
}

func TestListTasks(t *testing.T) {
	seed := func(t *testing.T, env *testEnv) {
		t.Helper()
		for i := 1; i <= 9; i++ {
			status := "Open"
			if i%3 == 0 {
				status = "Done"
			}
			_, err := env.tasks.CreateTask(t.Context(), services.CreateTaskParams{
				Title:       fmt.Sprintf("task %d", i),
				Description: fmt.Sprintf("note about item %d", i),
				Status:      status,
			})
			require.NoError(t, err)
			time.Sleep(time.Millisecond)
		}
	}

	t.Run("PaginatesNewestFirst", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerAlice(t)
		seed(t, env)

		page, err := env.tasks.ListTasks(t.Context(), services.ListTasksParams{})
		require.NoError(t, err)
		assert.Equal(t, 9, page.Total)
		assert.Equal(t, 1, page.Page)
		require.Len(t, page.Items, 7)
		assert.Equal(t, "task 9", page.Items[0].Title)
		assert.Equal(t, "task 3", page.Items[6].Title)

		page, err = env.tasks.ListTasks(t.Context(), services.ListTasksParams{Page: 2})
		require.NoError(t, err)
		require.Len(t, page.Items, 2)
		assert.Equal(t, "task 2", page.Items[0].Title)

		page, err = env.tasks.ListTasks(t.Context(), services.ListTasksParams{Page: 5})
		require.NoError(t, err)
		assert.Empty(t, page.Items)
	})

	t.Run("FiltersByQueryAndStatus", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerAlice(t)
		seed(t, env)

		page, err := env.tasks.ListTasks(t.Context(), services.ListTasksParams{Query: "TASK 4"})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "task 4", page.Items[0].Title)

		// Query matches descriptions too.
		page, err = env.tasks.ListTasks(t.Context(), services.ListTasksParams{Query: "item 5"})
		require.NoError(t, err)
		assert.Equal(t, 1, page.Total)

		page, err = env.tasks.ListTasks(t.Context(), services.ListTasksParams{Status: "Done"})
		require.NoError(t, err)
		assert.Equal(t, 3, page.Total)
	})

	t.Run("FiltersFavorites", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerAlice(t)

		tasks, err := env.tasks.CreateTask(t.Context(), services.CreateTaskParams{Title: "plain"})
		require.NoError(t, err)
		tasks, err = env.tasks.CreateTask(t.Context(), services.CreateTaskParams{Title: "starred"})
		require.NoError(t, err)
		_, err = env.tasks.ToggleTaskFavorite(t.Context(), tasks[1].ID, tasks)
		require.NoError(t, err)

		page, err := env.tasks.ListTasks(t.Context(), services.ListTasksParams{FavoritesOnly: true})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "starred", page.Items[0].Title)
	})
}

func TestMutationsWithoutSession(t *testing.T) {
	env := newTestEnv(t)

	tasks, err := env.tasks.ToggleTaskFavorite(t.Context(), "id", nil)
	require.NoError(t, err)
	assert.Nil(t, tasks)

	statuses, err := env.tasks.CreateStatus(t.Context(), services.CreateStatusParams{Title: "x"})
	require.NoError(t, err)
	assert.Nil(t, statuses)

	result, err := env.tasks.DeleteStatus(t.Context(), services.DeleteStatusParams{StatusID: "id"})
	require.NoError(t, err)
	assert.Nil(t, result)

	page, err := env.tasks.ListTasks(t.Context(), services.ListTasksParams{})
	require.NoError(t, err)
	assert.Nil(t, page)
}
