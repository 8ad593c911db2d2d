package cli

import (
	"fmt"
	"io"

	"itemize/internal/client"
)

func renderItemize(w io.Writer, it *client.Itemize) {
	visibility := "private"
	if it.Public {
		visibility = "public"
	}
	fmt.Fprintf(w, "%s [%s] (%s)\n", it.Name, it.Slug, visibility)
	if it.Description != nil && *it.Description != "" {
		fmt.Fprintf(w, "  %s\n", *it.Description)
	}
	for i := range it.Links {
		renderLink(w, &it.Links[i])
	}
	if len(it.Links) == 0 {
		fmt.Fprintln(w, "  (no links)")
	}
}

func renderLink(w io.Writer, l *client.Link) {
	r := client.ResolveLink(l)
	title := r.Title
	if title == "" {
		title = r.URL
	}
	fmt.Fprintf(w, "  #%-4d %s\n", l.ID, title)
	if r.SiteName != "" {
		fmt.Fprintf(w, "        %s\n", r.SiteName)
	}
	if price := client.FormatPrice(r.Price, r.Currency); price != "" {
		fmt.Fprintf(w, "        %s\n", price)
	}
	if r.Description != "" {
		fmt.Fprintf(w, "        %s\n", r.Description)
	}
	fmt.Fprintf(w, "        %s\n", r.URL)
}
