package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/itchan-dev/postadmin/frontend/internal/manage"
	"github.com/itchan-dev/postadmin/frontend/internal/setup"
	"github.com/itchan-dev/postadmin/frontend/internal/tui"
	"github.com/itchan-dev/postadmin/shared/config"
	"github.com/itchan-dev/postadmin/shared/logger"
)

var logFile string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Manage posts from the terminal",
	RunE:  runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&logFile, "log_file", "postadmin.log", "file to write logs to while the terminal UI runs")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg := config.MustLoad(configFolder)

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON, f)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	postStore := setup.NewStore(cfg)
	postStore.StartBackgroundRefresh(ctx, cfg.Public.RefreshInterval)
	page := manage.NewPage(postStore, cfg.Public.DescriptionMaxLen)

	p := tea.NewProgram(tui.New(ctx, page, cfg.Public.DescriptionMaxLen), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal UI: %w", err)
	}
	return nil
}
