package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/rangeslider/pkg/export"
)

func exportCmd() *cobra.Command {
	var (
		outDir string
		name   string
		format string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Save the slider board as SVG and PNG images",
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := loadBoard()
			if err != nil {
				return err
			}
			snaps := export.FromFile(board)
			title := filepath.Base(configPath)

			var paths []string
			switch strings.ToLower(format) {
			case "", "all":
				paths, err = export.SaveAll(cmd.Context(), outDir, name, title, snaps)
				if err != nil {
					return err
				}
			default:
				path := filepath.Join(outDir, name+"."+strings.ToLower(format))
				err = export.SaveSnapshot(export.SnapshotOptions{
					Path:    path,
					Format:  format,
					Title:   title,
					Sliders: snaps,
				})
				if err != nil {
					return err
				}
				paths = []string{path}
			}
			for _, p := range paths {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", p)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	cmd.Flags().StringVar(&name, "name", "sliders", "base file name")
	cmd.Flags().StringVarP(&format, "format", "f", "all", "svg, png or all")
	return cmd
}
