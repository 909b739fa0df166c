package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/landingpages/internal/landing"
	"github.com/spf13/cobra"
)

var matchFull bool

var matchCmd = &cobra.Command{
	Use:   "match <path>",
	Short: "Show which template serves a path and how it resolves",
	Args:  cobra.ExactArgs(1),
	RunE:  runMatch,
}

func init() {
	matchCmd.Flags().BoolVar(&matchFull, "full", false, "print the fully resolved page as JSON")
}

func runMatch(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	page, err := a.landing.Resolve(cmd.Context(), args[0])
	if err != nil {
		var ambiguous *landing.AmbiguousMatchError
		if errors.As(err, &ambiguous) {
			return fmt.Errorf("ambiguous: templates %d and %d both match %s", ambiguous.TemplateIDs[0], ambiguous.TemplateIDs[1], ambiguous.Path)
		}
		return err
	}

	out := cmd.OutOrStdout()
	if matchFull {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(page)
	}

	fmt.Fprintf(out, "path:     %s\n", page.Path)
	fmt.Fprintf(out, "template: %d %s (%s)\n", page.Template.ID, page.Template.Slug, page.Template.URLPattern)
	for name, value := range page.Params {
		fmt.Fprintf(out, "param:    %s=%s\n", name, value)
	}
	fmt.Fprintf(out, "title:    %s\n", page.Text.Title)
	fmt.Fprintf(out, "sections: %d\n", len(page.Sections))
	for _, w := range page.Warnings {
		fmt.Fprintf(out, "warning:  %s %s %s\n", w.Kind, w.Field, w.Token)
	}
	return nil
}
