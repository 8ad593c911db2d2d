package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"itemize/internal/client"
)

func newAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <slug> <url>",
		Short: "Add a link to an itemize",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.requireSession()
			if err != nil {
				return err
			}
			sync := client.NewSynchronizer(app.Client, s.Username, args[0])
			link, err := sync.AddLink(cmd.Context(), args[1])
			if err != nil {
				var refreshErr *client.RefreshError
				if !errors.As(err, &refreshErr) {
					return err
				}
				cmd.PrintErrln(err.Error())
			}
			cmd.Printf("Added link #%d\n", link.ID)
			if it := sync.Current(); it != nil {
				renderItemize(cmd.OutOrStdout(), it)
			}
			return nil
		},
	}
	return cmd
}

func newRemoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <slug> <link-id>",
		Aliases: []string{"remove"},
		Short:   "Remove a link from an itemize",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.requireSession()
			if err != nil {
				return err
			}
			linkID, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid link id %q", args[1])
			}
			sync := client.NewSynchronizer(app.Client, s.Username, args[0])
			if err := sync.DeleteLink(cmd.Context(), linkID); err != nil {
				var refreshErr *client.RefreshError
				if !errors.As(err, &refreshErr) {
					return err
				}
				cmd.PrintErrln(err.Error())
			}
			cmd.Printf("Removed link #%d\n", linkID)
			return nil
		},
	}
	return cmd
}

func newEditCmd(app *App) *cobra.Command {
	var (
		title, description, siteName, price, currency, imageURL                               string
		clearTitle, clearDescription, clearSiteName, clearPrice, clearCurrency, clearImageURL bool
	)
	cmd := &cobra.Command{
		Use:   "edit <slug> <link-id>",
		Short: "Edit a link's displayed metadata",
		Long: `Edit a link's displayed metadata.

Set flags override the scraped values; --clear-* flags remove an
override so the scraped value shows again. Fields you do not mention
are left exactly as they are.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.requireSession()
			if err != nil {
				return err
			}
			linkID, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid link id %q", args[1])
			}

			sync := client.NewSynchronizer(app.Client, s.Username, args[0])
			it, err := sync.Fetch(cmd.Context(), "")
			if err != nil {
				return err
			}
			var link *client.Link
			for i := range it.Links {
				if it.Links[i].ID == linkID {
					link = &it.Links[i]
					break
				}
			}
			if link == nil {
				return fmt.Errorf("link #%d not found in %s", linkID, it.Slug)
			}

			form := client.LinkFormFrom(link)
			tracker := client.NewTracker(form)
			apply := func(dst **string, flag string, value string, clear bool) {
				if clear {
					*dst = nil
				} else if cmd.Flags().Changed(flag) {
					v := value
					*dst = &v
				}
			}
			apply(&form.Title, "title", title, clearTitle)
			apply(&form.Description, "description", description, clearDescription)
			apply(&form.SiteName, "site-name", siteName, clearSiteName)
			apply(&form.Price, "price", price, clearPrice)
			apply(&form.Currency, "currency", currency, clearCurrency)
			apply(&form.ImageURL, "image-url", imageURL, clearImageURL)

			patch, err := client.BuildLinkPatch(form, tracker.Dirty(form))
			if err != nil {
				return err
			}
			if patch.Empty() {
				cmd.Println("Nothing to change")
				return nil
			}

			if _, err := sync.UpdateLink(cmd.Context(), linkID, patch); err != nil {
				var refreshErr *client.RefreshError
				if !errors.As(err, &refreshErr) {
					return err
				}
				cmd.PrintErrln(err.Error())
			}
			if current := sync.Current(); current != nil {
				for i := range current.Links {
					if current.Links[i].ID == linkID {
						renderLink(cmd.OutOrStdout(), &current.Links[i])
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "override the title")
	cmd.Flags().StringVar(&description, "description", "", "override the description")
	cmd.Flags().StringVar(&siteName, "site-name", "", "override the site name")
	cmd.Flags().StringVar(&price, "price", "", "override the price (decimal)")
	cmd.Flags().StringVar(&currency, "currency", "", "override the currency code")
	cmd.Flags().StringVar(&imageURL, "image-url", "", "override the image URL")
	cmd.Flags().BoolVar(&clearTitle, "clear-title", false, "drop the title override")
	cmd.Flags().BoolVar(&clearDescription, "clear-description", false, "drop the description override")
	cmd.Flags().BoolVar(&clearSiteName, "clear-site-name", false, "drop the site name override")
	cmd.Flags().BoolVar(&clearPrice, "clear-price", false, "drop the price override")
	cmd.Flags().BoolVar(&clearCurrency, "clear-currency", false, "drop the currency override")
	cmd.Flags().BoolVar(&clearImageURL, "clear-image-url", false, "drop the image URL override")
	return cmd
}
