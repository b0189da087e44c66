package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/rangeslider/pkg/loader"
)

var (
	settings loader.Settings

	configPath string
	themeName  string
	logFile    string
	preset     string
	noWatch    bool
)

func Execute() error {
	root := &cobra.Command{
		Use:           "slide",
		Short:         "Interactive range sliders in the terminal",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s, err := loader.ParseSettings()
			if err != nil {
				return err
			}
			settings = s
			flags := cmd.Flags()
			if !flags.Changed("config") {
				configPath = s.ConfigPath
			}
			if !flags.Changed("theme") {
				themeName = s.Theme
			}
			if !flags.Changed("log") {
				logFile = s.LogFile
			}
			if !flags.Changed("preset") {
				preset = s.Preset
			}
			if !flags.Changed("no-watch") {
				noWatch = s.NoWatch
			}
			if configPath == "" {
				p, err := loader.DefaultPath()
				if err != nil {
					return err
				}
				configPath = p
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard()
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "slider config file (default <user config dir>/rangeslider/sliders.yaml)")
	root.PersistentFlags().StringVar(&themeName, "theme", "", "color theme: dark or light (default from config)")
	root.PersistentFlags().StringVar(&logFile, "log", "", "write debug log to this file")
	root.PersistentFlags().StringVar(&preset, "preset", "", "show only the slider best matching this name")
	root.PersistentFlags().BoolVar(&noWatch, "no-watch", false, "do not reload the config when it changes")

	root.AddCommand(runCmd(), initCmd(), printCmd(), exportCmd())
	return root.Execute()
}

// loadBoard reads the config (creating the default on first run) and
// applies the preset filter.
func loadBoard() (*loader.File, error) {
	f, err := loader.LoadOrCreate(configPath)
	if err != nil {
		return nil, err
	}
	f, err = loader.Select(f, preset)
	if err != nil {
		return nil, fmt.Errorf("preset: %w", err)
	}
	return f, nil
}

// resolveTheme picks the flag, then the config file, then dark
func resolveTheme(f *loader.File) string {
	if themeName != "" {
		return themeName
	}
	if f != nil && f.Theme != "" {
		return f.Theme
	}
	return "dark"
}
