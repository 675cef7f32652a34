package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mcdcsynth/internal/catalog"
	"mcdcsynth/internal/loader"
)

func newValidateCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate-catalog <catalog-doc>",
		Short: "Parse a Catalog document and report duplicate symbols or bad ranges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidateCatalog(args[0])
		},
	}
	return cmd
}

func runValidateCatalog(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading catalog %s: %w", path, err)
	}
	doc, err := loader.ParseCatalogDoc(string(src))
	if err != nil {
		return fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	cat, err := doc.ToCatalog()
	if err != nil {
		color.Red("catalog %s: %s", path, err)
		return err
	}

	color.Green("catalog %s: %d constant(s), %d variable(s)", path, len(cat.Constants()), len(cat.Variables()))
	for sym, v := range cat.Variables() {
		if v.Kind == catalog.KindBool {
			continue
		}
		if v.Min > v.Max {
			color.Yellow("  %s: min %.4g exceeds max %.4g", sym, v.Min, v.Max)
		}
	}
	return nil
}
