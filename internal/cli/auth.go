package cli

import (
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/taskvault/taskvault/internal/services"
)

var (
	signupName     string
	signupEmail    string
	signupPassword string
	signupAvatar   string

	loginEmail    string
	loginPassword string
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Register a new user and log in",
	RunE: func(cmd *cobra.Command, _ []string) error {
		avatar, err := encodeAvatar(signupAvatar)
		if err != nil {
			return err
		}

		user, err := newAuthService().Register(cmd.Context(), services.RegisterParams{
			Name:     signupName,
			Email:    signupEmail,
			Password: signupPassword,
			Avatar:   avatar,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Signed up as %s <%s>\n", user.Name, user.Email)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with email and password",
	RunE: func(cmd *cobra.Command, _ []string) error {
		user, err := newAuthService().Login(cmd.Context(), services.LoginParams{
			Email:    loginEmail,
			Password: loginPassword,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s <%s>\n", user.Name, user.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := newAuthService().Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE: func(cmd *cobra.Command, _ []string) error {
		user, err := newAuthService().CurrentUser(cmd.Context())
		if err != nil {
			return err
		}
		if user == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", user.Name, user.Email)
		fmt.Fprintf(cmd.OutOrStdout(), "Tasks: %d  Statuses: %d\n", len(user.Tasks), len(user.Statuses))
		return nil
	},
}

// encodeAvatar turns an image file into the data URI the user record
// stores, mirroring the browser upload flow.
func encodeAvatar(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read avatar image: %w", err)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data)), nil
}

func init() {
	signupCmd.Flags().StringVar(&signupName, "name", "", "display name")
	signupCmd.Flags().StringVar(&signupEmail, "email", "", "email address")
	signupCmd.Flags().StringVar(&signupPassword, "password", "", "password (min 8 characters)")
	signupCmd.Flags().StringVar(&signupAvatar, "avatar", "", "path to an avatar image")

	loginCmd.Flags().StringVar(&loginEmail, "email", "", "email address")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
}
