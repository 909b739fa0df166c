package main

import (
	"fmt"

	"github.com/landingpages/internal/db"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load care types, communities, templates and sections from a YAML file",
	Long: `Upserts every record in the file by slug (sections by owner and key)
inside one transaction, then invalidates the shared snapshot so running
servers pick up the change.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "seed YAML file")
	_ = seedCmd.MarkFlagRequired("file")
}

func runSeed(cmd *cobra.Command, args []string) error {
	seed, err := db.ReadSeedFile(seedFile)
	if err != nil {
		return err
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	stats, err := db.ApplySeed(a.db, seed)
	if err != nil {
		return fmt.Errorf("apply seed: %w", err)
	}
	if err := a.landing.Invalidate(cmd.Context(), "seed"); err != nil {
		a.log.Warn("seed applied but cache invalidation failed", zap.Error(err))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d care types, %d communities, %d templates, %d sections\n",
		stats.CareTypes, stats.Communities, stats.Templates, stats.Sections)
	return nil
}
