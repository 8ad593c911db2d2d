package cli

import (
	"os"

	"github.com/spf13/cobra"

	"itemize/internal/client"
)

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "itemize",
		Short:        "Curate and share collections of web links",
		SilenceUsage: true,
	}

	defaultServer := os.Getenv("ITEMIZE_SERVER")
	if defaultServer == "" {
		defaultServer = "http://localhost:8080"
	}
	cmd.PersistentFlags().StringVar(&app.ServerURL, "server", defaultServer, "API server base URL")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		app.Client = client.New(app.ServerURL, nil)
		s, err := loadSession()
		if err != nil {
			return err
		}
		if s != nil {
			app.Client.SetSession(s)
		}
		return nil
	}

	cmd.AddCommand(
		newSignupCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newListCmd(app),
		newCreateCmd(app),
		newViewCmd(app),
		newSettingsCmd(app),
		newAddCmd(app),
		newRemoveCmd(app),
		newEditCmd(app),
	)

	return cmd
}
