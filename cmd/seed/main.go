// Command seed converts a question-sheet export into the persisted document
// format the server loads at startup.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/anirbanjana883/question-traker/seed"
	"github.com/anirbanjana883/question-traker/store"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		source string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Normalise a sheet export into the store's data file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := seed.LoadSource(source)
			if err != nil {
				return err
			}

			doc := seed.Normalize(src)
			if err := store.NewFileGateway(out).Save(context.Background(), doc); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}

			slog.Info("seed written",
				"out", out,
				"topics", len(doc.Topics),
				"subTopics", len(doc.SubTopics),
				"questions", len(doc.Questions),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "scripts/sheet.json", "Sheet export to read (.json, .yaml or .yml)")
	cmd.Flags().StringVar(&out, "out", "store/data.json", "Data file to write")
	return cmd
}
