package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yuriykulikov/MarkdownObsidianInjester/internal/config"
	"github.com/yuriykulikov/MarkdownObsidianInjester/internal/markdown"
	"github.com/yuriykulikov/MarkdownObsidianInjester/internal/ui"
	"github.com/yuriykulikov/MarkdownObsidianInjester/internal/youtrack"
)

// runBoards converts each root ticket to a board. A failing board is
// reported and skipped; the remaining boards still render.
func runBoards(cmd *cobra.Command, cfg config.Config, ids []string) error {
	if cfg.BaseURL == "" {
		return fmt.Errorf("base_url is not configured")
	}
	token, err := cfg.ResolveToken()
	if err != nil {
		return err
	}

	client, err := youtrack.NewClient(cfg.BaseURL, token, cfg.CacheDir)
	if err != nil {
		return err
	}

	label := flagTodoLabel
	if label == "" {
		label = cfg.TodoLabel
	}
	opts := markdown.Options{TodoLabel: label}

	var titles []string
	failed := 0
	for _, id := range ids {
		board, err := youtrack.ConvertBoard(cmd.Context(), client, cfg.BaseURL, id)
		if err != nil {
			fmt.Fprintln(os.Stderr, ui.FailLine(id, err))
			failed++
			continue
		}
		if err := markdown.WriteBoard(board, flagOutput, opts); err != nil {
			fmt.Fprintln(os.Stderr, ui.FailLine(board.Title, err))
			failed++
			continue
		}
		titles = append(titles, board.Title)
		fmt.Println(ui.BoardLine(board.Title, len(board.Projects), noteCount(board)))
	}

	if err := markdown.WriteIndex(titles, flagOutput); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d boards failed", failed, len(ids))
	}
	fmt.Printf("%s %s boards written to %s\n", ui.BoldCyan("Done:"), ui.Bold(len(titles)), ui.Bold(flagOutput))
	return nil
}
