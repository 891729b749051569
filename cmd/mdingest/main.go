package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/yuriykulikov/MarkdownObsidianInjester/internal/config"
	"github.com/yuriykulikov/MarkdownObsidianInjester/internal/gtd"
	"github.com/yuriykulikov/MarkdownObsidianInjester/internal/markdown"
	"github.com/yuriykulikov/MarkdownObsidianInjester/internal/mstodo"
	"github.com/yuriykulikov/MarkdownObsidianInjester/internal/ui"
)

var (
	flagOutput    string
	flagConfig    string
	flagTodoLabel string
	flagVerbose   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mdingest",
		Short: "Convert task sources into Obsidian Kanban boards",
		Long: `mdingest reads tasks from a Microsoft To Do export snapshot or from a
YouTrack instance and writes them as interlinked Markdown files compatible
with the Obsidian Kanban plugin: one board file per source grouping plus one
note file per project that has actions or a description.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagVerbose {
				log.SetLevel(log.DebugLevel)
			} else {
				log.SetLevel(log.WarnLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&flagOutput, "output", "out", "Output directory")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path")
	rootCmd.PersistentFlags().StringVar(&flagTodoLabel, "todo-label", "", "Column label for projects without a stage (default TODO)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Verbose logging")

	rootCmd.AddCommand(convertCmd())
	rootCmd.AddCommand(boardCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func convertCmd() *cobra.Command {
	var flagSkipCreatedOn string

	cmd := &cobra.Command{
		Use:   "convert <export.json>",
		Short: "Convert a Microsoft To Do export snapshot to Kanban boards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open export: %w", err)
			}
			defer f.Close()

			lists, err := mstodo.Decode(f)
			if err != nil {
				return err
			}
			boards, err := mstodo.MapBoards(lists)
			if err != nil {
				return err
			}

			if flagSkipCreatedOn != "" {
				boards = dropCreatedOn(boards, flagSkipCreatedOn)
			}

			opts := renderOptions()
			var titles []string
			for _, board := range boards {
				if len(board.Projects) == 0 {
					continue
				}
				if err := markdown.WriteBoard(board, flagOutput, opts); err != nil {
					return fmt.Errorf("board %q: %w", board.Title, err)
				}
				titles = append(titles, board.Title)
				fmt.Println(ui.BoardLine(board.Title, len(board.Projects), noteCount(board)))
			}
			if err := markdown.WriteIndex(titles, flagOutput); err != nil {
				return err
			}
			fmt.Printf("%s %s boards written to %s\n", ui.BoldCyan("Done:"), ui.Bold(len(titles)), ui.Bold(flagOutput))
			return nil
		},
	}

	cmd.Flags().StringVar(&flagSkipCreatedOn, "skip-created-on", "", "Drop created stamps equal to this date (YYYY-MM-DD), e.g. the export import date")

	return cmd
}

func boardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board <issue-id>...",
		Short: "Convert YouTrack tickets and their linked issues to Kanban boards",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flagConfig)
			if err != nil {
				return err
			}
			return runBoards(cmd, cfg, args)
		},
	}
}

func renderOptions() markdown.Options {
	return markdown.Options{TodoLabel: flagTodoLabel}
}

// dropCreatedOn clears created stamps that fall on the given UTC date.
// Bulk imports stamp every task with the import time, which would litter
// each board line with the same meaningless date.
func dropCreatedOn(boards []gtd.Board, date string) []gtd.Board {
	for bi := range boards {
		for pi := range boards[bi].Projects {
			p := &boards[bi].Projects[pi]
			if p.Created != nil && markdown.ShortDate(*p.Created) == date {
				p.Created = nil
			}
		}
	}
	return boards
}

func noteCount(board gtd.Board) int {
	n := 0
	for _, p := range board.Projects {
		if p.HasBody() {
			n++
		}
	}
	return n
}
