package main

import (
	"fmt"
	"io"
	"os"

	"github.com/landingpages/internal/export"
	"github.com/landingpages/internal/landing"
	"github.com/spf13/cobra"
)

var (
	urlsXLSX     string
	urlsAbsolute bool
)

var urlsCmd = &cobra.Command{
	Use:   "urls",
	Short: "List every landing URL the active templates generate",
	RunE:  runURLs,
}

func init() {
	urlsCmd.Flags().StringVar(&urlsXLSX, "xlsx", "", "write the list to an Excel workbook instead of stdout")
	urlsCmd.Flags().BoolVar(&urlsAbsolute, "absolute", false, "prefix urls with SITE_BASE_URL")
}

func runURLs(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	entries, err := a.landing.EnumerateURLs(cmd.Context())
	if err != nil {
		return err
	}

	base := ""
	if urlsAbsolute || urlsXLSX != "" {
		base = a.cfg.SiteBaseURL
	}

	if urlsXLSX != "" {
		data, err := export.URLWorkbook(base, entries)
		if err != nil {
			return err
		}
		if err := os.WriteFile(urlsXLSX, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", urlsXLSX, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d urls to %s\n", len(entries), urlsXLSX)
		return nil
	}

	return printURLGroups(cmd.OutOrStdout(), base, entries)
}

func printURLGroups(w io.Writer, base string, entries []landing.URLEntry) error {
	for _, group := range landing.GroupByTemplateType(entries) {
		name := group.TemplateType
		if name == "" {
			name = "(untyped)"
		}
		if _, err := fmt.Fprintf(w, "# %s (%d)\n", name, len(group.Entries)); err != nil {
			return err
		}
		for _, entry := range group.Entries {
			if _, err := fmt.Fprintf(w, "%s\t%s\n", base+entry.URL, entry.Title); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "total: %d\n", len(entries))
	return err
}
