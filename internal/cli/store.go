package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkordes/park-tracker/internal/domain"
)

func newExportCmd(a *app) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a copy of the store to another file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.docs.Export(cmd.Context(), path); err != nil {
				return err
			}
			a.printf("Exported data to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "destination file (required)")
	_ = cmd.MarkFlagRequired("path")
	return cmd
}

func newImportParksCmd(a *app) *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "import-parks",
		Short: "Merge a park listing (JSON or YAML file, or http(s) URL) into the store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if source == "" {
				source = a.cfg.ImportSource
			}
			return a.importParks(cmd, source)
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "listing path or URL; defaults to IMPORT_SOURCE")
	return cmd
}

// importParks runs one import. An unreadable source is reported, not returned.
func (a *app) importParks(cmd *cobra.Command, source string) error {
	res, err := a.imports.Import(cmd.Context(), source)
	if errors.Is(err, domain.ErrSourceUnavailable) {
		a.printf("Failed to read source: %v\n", err)
		return nil
	}
	if err != nil {
		return err
	}
	a.printf("Imported parks: added=%d, skipped=%d\n", res.Added, res.Skipped)
	return nil
}

func newClearCmd(a *app) *cobra.Command {
	var visits, parks, all, yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete visits, parks or everything",
		Long:  "Delete visits, parks or everything. Clearing parks also clears visits.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("%w: refusing to clear without --yes", domain.ErrValidation)
			}
			ctx := cmd.Context()
			switch {
			case visits:
				if err := a.visits.Clear(ctx); err != nil {
					return err
				}
				a.printf("Cleared all visits\n")
			case parks:
				if err := a.parks.Clear(ctx); err != nil {
					return err
				}
				a.printf("Cleared all parks and visits\n")
			case all:
				if err := a.docs.ClearAll(ctx); err != nil {
					return err
				}
				a.printf("Cleared the store\n")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&visits, "visits", false, "delete every visit")
	cmd.Flags().BoolVar(&parks, "parks", false, "delete every park and visit")
	cmd.Flags().BoolVar(&all, "all", false, "reset the whole store")
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the deletion")
	cmd.MarkFlagsMutuallyExclusive("visits", "parks", "all")
	cmd.MarkFlagsOneRequired("visits", "parks", "all")
	return cmd
}
