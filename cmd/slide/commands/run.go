package commands

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/rangeslider/pkg/loader"
	"github.com/Dicklesworthstone/rangeslider/pkg/ui"
	"github.com/Dicklesworthstone/rangeslider/pkg/watcher"
)

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open the interactive slider board",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard()
		},
	}
}

func runBoard() error {
	if logFile != "" {
		f, err := tea.LogToFile(logFile, "slide")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	board, err := loadBoard()
	if err != nil {
		return err
	}

	theme := ui.ThemeByName(resolveTheme(board), lipgloss.NewRenderer(os.Stdout))
	m := ui.NewModel(board, ui.Options{
		Theme:       theme,
		Title:       "Sliders · " + filepath.Base(configPath),
		SettleDelay: settings.SettleDelay,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	m.BindProgram(p)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if !noWatch {
		w, err := watcher.New(configPath, settings.SettleDelay, func() {
			f, err := loader.Load(configPath)
			if err == nil {
				f, err = loader.Select(f, preset)
			}
			if err != nil {
				p.Send(ui.ConfigErrorMsg{Err: err})
				return
			}
			p.Send(ui.ConfigReloadedMsg{File: f})
		})
		if err != nil {
			log.Printf("Warning: config watching disabled: %v", err)
		} else {
			w.Start(ctx)
			defer w.Close()
			log.Printf("watching %s", w.Path())
		}
	}

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run slider board: %w", err)
	}
	if fm, ok := final.(ui.Model); ok {
		for _, v := range fm.Values() {
			fmt.Printf("%s: %s\n", v.ID, v.Value)
		}
	}
	return nil
}
