package commands

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Dicklesworthstone/rangeslider/pkg/ui"
)

const fallbackWidth = 80

func printCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print",
		Short: "Render the slider board once and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := loadBoard()
			if err != nil {
				return err
			}
			width := fallbackWidth
			if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
				if w, _, err := term.GetSize(fd); err == nil && w > 0 {
					width = w
				}
			}

			theme := ui.ThemeByName(resolveTheme(board), lipgloss.NewRenderer(cmd.OutOrStdout()))
			var m tea.Model = ui.NewModel(board, ui.Options{Theme: theme, Title: configPath})
			m, _ = m.Update(tea.WindowSizeMsg{Width: width, Height: 0})
			fmt.Fprintln(cmd.OutOrStdout(), m.View())
			return nil
		},
	}
}
