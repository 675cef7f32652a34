package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mcdcsynth/internal/diagnostics"
	"mcdcsynth/internal/emit"
	"mcdcsynth/internal/loader"
	"mcdcsynth/internal/module"
	"mcdcsynth/internal/pipeline"
)

func newSynthesizeCmd(configPath *string) *cobra.Command {
	var catalogPath, outputPath, logFormat string

	cmd := &cobra.Command{
		Use:   "synthesize [module-doc...]",
		Short: "Run MCDC synthesis over one or more Module documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSynthesize(*configPath, catalogPath, outputPath, logFormat, args)
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "path to the Catalog document (required)")
	cmd.Flags().StringVar(&outputPath, "out", "", "CSV output path (overrides config; stdout if neither is set)")
	cmd.Flags().StringVar(&logFormat, "log-format", "", `diagnostic sink: "text" or "json" (overrides config, default "text")`)
	_ = cmd.MarkFlagRequired("catalog")

	return cmd
}

func runSynthesize(configPath, catalogPath, outputPath, logFormat string, moduleDocPaths []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}
	if outputPath == "" {
		outputPath = cfg.OutputPath
	}

	catSrc, err := os.ReadFile(catalogPath)
	if err != nil {
		return fmt.Errorf("reading catalog %s: %w", catalogPath, err)
	}
	catDoc, err := loader.ParseCatalogDoc(string(catSrc))
	if err != nil {
		return fmt.Errorf("parsing catalog %s: %w", catalogPath, err)
	}
	cat, err := catDoc.ToCatalog()
	if err != nil {
		return fmt.Errorf("building catalog: %w", err)
	}

	var modules []*module.Module
	for _, path := range moduleDocPaths {
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading module document %s: %w", path, err)
		}
		doc, err := loader.ParseModuleDoc(string(src))
		if err != nil {
			return fmt.Errorf("parsing module document %s: %w", path, err)
		}
		modules = append(modules, doc.ToModule())
	}

	collector := &diagnostics.Collector{}
	emitter, summary := pipeline.Run(modules, cat, cfg, collector)

	reportDiagnostics(cfg.LogFormat, collector.Diagnostics)

	for _, cycle := range summary.SelfReferenceCycles {
		color.Yellow("warning: last(X) alias self-reference cycle: %s", strings.Join(cycle, " -> "))
	}

	var w *os.File
	if outputPath == "" {
		w = os.Stdout
	} else {
		w, err = os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("creating output %s: %w", outputPath, err)
		}
		defer w.Close()
	}
	if err := emit.NewCSVWriter(w).WriteRecords(emitter.Records()); err != nil {
		return fmt.Errorf("writing records: %w", err)
	}

	color.Green(
		"synthesized %d/%d decisions across %d modules (%d atoms masked, %d records)",
		summary.DecisionsSynthesized, summary.DecisionsExtracted, summary.ModulesProcessed,
		summary.AtomsMasked, summary.PairsEmitted*2,
	)

	if err := diagnostics.Aggregate(collector.Diagnostics); err != nil {
		return fmt.Errorf("run had blocking diagnostics: %w", err)
	}
	return nil
}

// reportDiagnostics replays diags through the sink selected by format:
// "json" for structured go.uber.org/zap logging (a caller embedding this
// tool in a service), anything else for the terminal Reporter.
func reportDiagnostics(format string, diags []diagnostics.Diagnostic) {
	if format == "json" {
		sink := diagnostics.NewZapSink(nil)
		for _, d := range diags {
			sink.Emit(d)
		}
		return
	}
	reporter := diagnostics.NewReporter("")
	for _, d := range diags {
		fmt.Fprint(os.Stderr, reporter.Format(d))
	}
}
