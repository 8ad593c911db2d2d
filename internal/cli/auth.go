package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"itemize/internal/client"
)

func newSignupCmd(app *App) *cobra.Command {
	var req client.SignupRequest
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// Probe availability first so the error is specific.
			if taken, err := app.Client.CheckIdentifierExists(ctx, req.Username); err == nil && taken {
				return errors.New("Username already exists!")
			}
			if taken, err := app.Client.CheckIdentifierExists(ctx, req.Email); err == nil && taken {
				return errors.New("Email already exists!")
			}

			result, err := app.Client.Signup(ctx, req)
			if err != nil {
				return err
			}
			if err := saveSession(app.Client.Session()); err != nil {
				return err
			}
			cmd.Printf("Welcome, %s!\n", result.User.Username)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Username, "username", "", "unique username")
	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.Password, "password", "", "password (min 8 characters)")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newLoginCmd(app *App) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <username|email>",
		Short: "Log in and store the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.Client.Login(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}
			if err := saveSession(session); err != nil {
				return err
			}
			cmd.Printf("Logged in as %s\n", session.Username)
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Client.Logout()
			if err := clearSession(); err != nil {
				return err
			}
			cmd.Println("Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.requireSession()
			if err != nil {
				return err
			}
			cmd.Println(s.Username)
			return nil
		},
	}
}
