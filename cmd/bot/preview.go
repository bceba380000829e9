package main

import (
	"fmt"
	"io"

	"grammar_reminder_bot/internal/app"
	"grammar_reminder_bot/internal/domain/grammar"

	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Generate one quiz batch and print it without touching Telegram",
	RunE:  runPreview,
}

func runPreview(cmd *cobra.Command, _ []string) error {
	cfg, err := bootstrap()
	if err != nil {
		return err
	}

	catalog, err := grammar.LoadDefault()
	if err != nil {
		return fmt.Errorf("could not load grammar catalog: %w", err)
	}
	generator, err := newGenerator(cmd.Context(), cfg, catalog)
	if err != nil {
		return err
	}

	patterns, err := catalog.Sample(app.BatchSize)
	if err != nil {
		return err
	}
	sentences := make([]string, len(patterns))
	for i, p := range patterns {
		sentences[i] = generator.Generate(cmd.Context(), p)
	}

	return writePreview(cmd.OutOrStdout(), patterns, sentences)
}

func writePreview(w io.Writer, patterns []grammar.Pattern, sentences []string) error {
	for i, opt := range app.BuildOptions(sentences) {
		if _, err := fmt.Fprintf(w, "%-7s %-24s %s\n        %s\n", opt.Data, opt.Label, patterns[i].Label, sentences[i]); err != nil {
			return err
		}
	}
	return nil
}
