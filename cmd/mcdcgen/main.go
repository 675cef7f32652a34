package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mcdcsynth/internal/config"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		color.Red("mcdcgen: %s", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "mcdcgen",
		Short: "Synthesize unique-cause MCDC test cases from Module/Catalog documents",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a mcdcgen.yaml config document")

	root.AddCommand(newSynthesizeCmd(&configPath))
	root.AddCommand(newValidateCatalogCmd())
	return root
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
