// ABOUTME: Cobra command for the interactive post board.
// ABOUTME: Runs the bubbletea board over one post store session.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/2389-research/postboard/internal/tui"
)

var boardNoFetch bool

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Open the interactive post board",
	Long:  "Browse, add, edit, and delete posts in an interactive terminal board.",
	RunE:  runBoard,
}

func init() {
	rootCmd.AddCommand(boardCmd)
	boardCmd.Flags().BoolVar(&boardNoFetch, "no-fetch", false, "Start with an empty board instead of loading the server's posts")
}

func runBoard(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	model := tui.NewBoardModel(ctx, globalPostStore, globalConfig.User.ID, !boardNoFetch)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
