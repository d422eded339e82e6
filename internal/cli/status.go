package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/taskvault/taskvault/internal/models"
	"github.com/taskvault/taskvault/internal/services"
)

var (
	statusTitle string
	statusColor string
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Manage user-defined statuses",
}

var statusAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a status",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := requireSession(cmd); err != nil {
			return err
		}

		color := statusColor
		if color == "" {
			color = models.StatusPalette[0]
		}
		statuses, err := newTaskService().CreateStatus(cmd.Context(), services.CreateStatusParams{
			Title: statusTitle,
			Color: color,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created status (%d total)\n", len(statuses))
		return nil
	},
}

var statusListCmd = &cobra.Command{
	Use:   "list",
	Short: "List statuses with task counts",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := requireSession(cmd); err != nil {
			return err
		}

		svc := newTaskService()
		statuses, err := svc.ListStatuses(cmd.Context())
		if err != nil {
			return err
		}
		if len(statuses) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No statuses defined")
			return nil
		}
		counts, err := svc.CountTasksByStatus(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCOLOR\tTASKS")
		for _, st := range statuses {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", st.ID, st.Name, st.Color, counts[st.Name])
		}
		return w.Flush()
	},
}

var statusRmCmd = &cobra.Command{
	Use:   "rm <status-id>",
	Short: "Delete a status and every task in it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(cmd); err != nil {
			return err
		}

		user, err := newAuthService().CurrentUser(cmd.Context())
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("not logged in; run `taskvault login` first")
		}

		var name string
		found := false
		for _, st := range user.Statuses {
			if st.ID == args[0] {
				name = st.Name
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("no status with id %s", args[0])
		}

		result, err := newTaskService().DeleteStatus(cmd.Context(), services.DeleteStatusParams{
			StatusID:   args[0],
			StatusName: name,
			Statuses:   user.Statuses,
			Tasks:      user.Tasks,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Deleted status %q and %d task(s)\n",
			name, len(user.Tasks)-len(result.Tasks))
		return nil
	},
}

func init() {
	statusAddCmd.Flags().StringVar(&statusTitle, "title", "", "status name")
	statusAddCmd.Flags().StringVar(&statusColor, "color", "", "status color (hsla string)")
	_ = statusAddCmd.MarkFlagRequired("title")

	statusCmd.AddCommand(statusAddCmd)
	statusCmd.AddCommand(statusListCmd)
	statusCmd.AddCommand(statusRmCmd)
}
