package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskvault/taskvault/internal/models"
	"github.com/taskvault/taskvault/internal/services"
)

var (
	taskTitle       string
	taskDescription string
	taskStatus      string

	taskListQuery     string
	taskListStatus    string
	taskListFavorites bool
	taskListPage      int
	taskListPerPage   int
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a task",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := requireSession(cmd); err != nil {
			return err
		}
		if strings.TrimSpace(taskTitle) == "" {
			return fmt.Errorf("title must not be empty")
		}

		tasks, err := newTaskService().CreateTask(cmd.Context(), services.CreateTaskParams{
			Title:       taskTitle,
			Description: taskDescription,
			Status:      taskStatus,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created task (%d total)\n", len(tasks))
		return nil
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := requireSession(cmd); err != nil {
			return err
		}

		page, err := newTaskService().ListTasks(cmd.Context(), services.ListTasksParams{
			Query:         taskListQuery,
			Status:        taskListStatus,
			FavoritesOnly: taskListFavorites,
			Page:          taskListPage,
			PerPage:       taskListPerPage,
		})
		if err != nil {
			return err
		}
		if page == nil || page.Total == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No tasks found")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tFAV\tUPDATED")
		for _, t := range page.Items {
			fav := ""
			if t.IsFavorite {
				fav = "*"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				t.ID, t.Title, t.Status, fav, t.UpdatedAt.Format(time.DateTime))
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Page %d (%d of %d tasks)\n",
			page.Page, len(page.Items), page.Total)
		return nil
	},
}

var taskEditCmd = &cobra.Command{
	Use:   "edit <task-id>",
	Short: "Edit a task's title, description and status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(cmd); err != nil {
			return err
		}
		if strings.TrimSpace(taskTitle) == "" {
			return fmt.Errorf("title must not be empty")
		}

		current, err := currentTasks(cmd)
		if err != nil {
			return err
		}
		_, err = newTaskService().UpdateTask(cmd.Context(), args[0], services.UpdateTaskParams{
			Title:       taskTitle,
			Description: taskDescription,
			Status:      taskStatus,
		}, current)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Updated task")
		return nil
	},
}

var taskRmCmd = &cobra.Command{
	Use:   "rm <task-id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(cmd); err != nil {
			return err
		}

		current, err := currentTasks(cmd)
		if err != nil {
			return err
		}
		tasks, err := newTaskService().DeleteTask(cmd.Context(), args[0], current)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Deleted task (%d remaining)\n", len(tasks))
		return nil
	},
}

var taskFavCmd = &cobra.Command{
	Use:   "fav <task-id>",
	Short: "Toggle a task's favorite flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(cmd); err != nil {
			return err
		}

		current, err := currentTasks(cmd)
		if err != nil {
			return err
		}
		tasks, err := newTaskService().ToggleTaskFavorite(cmd.Context(), args[0], current)
		if err != nil {
			return err
		}

		for _, t := range tasks {
			if t.ID == args[0] {
				if t.IsFavorite {
					fmt.Fprintln(cmd.OutOrStdout(), "Marked as favorite")
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "Removed from favorites")
				}
				return nil
			}
		}
		return fmt.Errorf("no task with id %s", args[0])
	},
}

var taskMoveCmd = &cobra.Command{
	Use:   "move <task-id> <status-name>",
	Short: "Move a task to another status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(cmd); err != nil {
			return err
		}

		current, err := currentTasks(cmd)
		if err != nil {
			return err
		}
		_, err = newTaskService().ChangeTaskStatus(cmd.Context(), args[0], args[1], current)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Moved task to %q\n", args[1])
		return nil
	},
}

// currentTasks fetches the session user's live task collection; the
// repository mutations operate on a caller-supplied list.
func currentTasks(cmd *cobra.Command) ([]models.Task, error) {
	user, err := newAuthService().CurrentUser(cmd.Context())
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("not logged in; run `taskvault login` first")
	}
	return user.Tasks, nil
}

func init() {
	for _, c := range []*cobra.Command{taskAddCmd, taskEditCmd} {
		c.Flags().StringVar(&taskTitle, "title", "", "task title")
		c.Flags().StringVar(&taskDescription, "description", "", "task description")
		c.Flags().StringVar(&taskStatus, "status", "", "status name")
		_ = c.MarkFlagRequired("title")
	}

	taskListCmd.Flags().StringVar(&taskListQuery, "query", "", "search in title and description")
	taskListCmd.Flags().StringVar(&taskListStatus, "status", "", "filter by status name")
	taskListCmd.Flags().BoolVar(&taskListFavorites, "favorites", false, "only favorite tasks")
	taskListCmd.Flags().IntVar(&taskListPage, "page", 1, "page number")
	taskListCmd.Flags().IntVar(&taskListPerPage, "per-page", 0, "page size (0 = default)")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskEditCmd)
	taskCmd.AddCommand(taskRmCmd)
	taskCmd.AddCommand(taskFavCmd)
	taskCmd.AddCommand(taskMoveCmd)
}
