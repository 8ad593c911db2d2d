package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"itemize/internal/client"
)

// resolveOwner picks the explicit --owner flag if given, falling back
// to the logged-in user.
func (a *App) resolveOwner(owner string) (string, error) {
	if owner != "" {
		return owner, nil
	}
	s, err := a.requireSession()
	if err != nil {
		return "", err
	}
	return s.Username, nil
}

func newListCmd(app *App) *cobra.Command {
	var owner, query string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a user's itemizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ownerName, err := app.resolveOwner(owner)
			if err != nil {
				return err
			}
			sync := client.NewSynchronizer(app.Client, ownerName, "")
			items, err := sync.FetchList(cmd.Context(), query)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				cmd.Println("No itemizes found")
				return nil
			}
			for i := range items {
				renderItemize(cmd.OutOrStdout(), &items[i])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "list another user's itemizes")
	cmd.Flags().StringVar(&query, "query", "", "filter by name")
	return cmd
}

func newCreateCmd(app *App) *cobra.Command {
	var description string
	var public bool
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new itemize",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.requireSession()
			if err != nil {
				return err
			}
			var desc *string
			if cmd.Flags().Changed("description") {
				desc = &description
			}
			it, err := app.Client.CreateItemize(cmd.Context(), s.Username, args[0], desc, public)
			if err != nil {
				return err
			}
			cmd.Printf("Created %s [%s]\n", it.Name, it.Slug)
			return nil
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "optional description")
	cmd.Flags().BoolVar(&public, "public", false, "make the itemize publicly visible")
	return cmd
}

func newViewCmd(app *App) *cobra.Command {
	var owner, query string
	cmd := &cobra.Command{
		Use:   "view <slug>",
		Short: "Show an itemize and its links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ownerName, err := app.resolveOwner(owner)
			if err != nil {
				return err
			}
			sync := client.NewSynchronizer(app.Client, ownerName, args[0])
			it, err := sync.Fetch(cmd.Context(), query)
			if err != nil {
				return err
			}
			renderItemize(cmd.OutOrStdout(), it)
			return nil
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "view another user's itemize")
	cmd.Flags().StringVar(&query, "query", "", "filter links")
	return cmd
}

func newSettingsCmd(app *App) *cobra.Command {
	var (
		name             string
		description      string
		clearDescription bool
		public           bool
	)
	cmd := &cobra.Command{
		Use:   "settings <slug>",
		Short: "Change an itemize's name, description, or visibility",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.requireSession()
			if err != nil {
				return err
			}
			sync := client.NewSynchronizer(app.Client, s.Username, args[0])
			current, err := sync.Fetch(cmd.Context(), "")
			if err != nil {
				return err
			}

			// The form starts from fresh server state; only flags the
			// user actually passed can make fields dirty.
			form := client.ItemizeFormFrom(current)
			tracker := client.NewTracker(form)
			if cmd.Flags().Changed("name") {
				form.Name = name
			}
			if clearDescription {
				form.Description = nil
			} else if cmd.Flags().Changed("description") {
				form.Description = &description
			}
			if cmd.Flags().Changed("public") {
				form.Public = public
			}

			patch, err := client.BuildItemizePatch(form, tracker.Dirty(form))
			if err != nil {
				return err
			}
			if patch.Empty() {
				cmd.Println("Nothing to change")
				return nil
			}

			oldSlug := sync.Slug()
			updated, err := sync.UpdateSettings(cmd.Context(), patch)
			if err != nil {
				var refreshErr *client.RefreshError
				if !errors.As(err, &refreshErr) {
					return err
				}
				cmd.PrintErrln(err.Error())
			}
			if updated.Slug != oldSlug {
				cmd.Printf("Renamed, new address is [%s]\n", updated.Slug)
			} else {
				cmd.Println("Settings updated")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new display name")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().BoolVar(&clearDescription, "clear-description", false, "remove the description")
	cmd.Flags().BoolVar(&public, "public", false, "set visibility")
	return cmd
}
