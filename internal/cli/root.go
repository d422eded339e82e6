package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskvault/taskvault/internal/app"
	"github.com/taskvault/taskvault/internal/config"
	"github.com/taskvault/taskvault/internal/services"
)

var rootCmd = &cobra.Command{
	Use:   "taskvault",
	Short: "Personal task vault with user-defined statuses",
	Long: `taskvault keeps per-user tasks grouped into user-defined statuses,
persisted as JSON documents in a local data directory.

Sign up once, then manage tasks and statuses from the task and status
subcommands. All state stays on this machine.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(statusCmd)
}

func newAuthService() services.AuthService {
	return services.NewAuthService(
		app.Logger(),
		app.Storage(),
		config.Global().Users.AvatarMaxBytes,
	)
}

func newTaskService() services.TaskService {
	cfg := config.Global().Tasks
	return services.NewTaskService(
		app.Logger(),
		app.Storage(),
		newAuthService(),
		cfg.MutationDelay,
		cfg.PageSize,
	)
}

// requireSession resolves the session user or fails the command; the
// repository itself treats a missing session as a silent no-op, so the
// CLI owns the precondition.
func requireSession(cmd *cobra.Command) error {
	if !newAuthService().IsAuthenticated(cmd.Context()) {
		return fmt.Errorf("not logged in; run `taskvault login` first")
	}
	return nil
}
