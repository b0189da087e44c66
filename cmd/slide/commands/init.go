package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/rangeslider/pkg/loader"
)

func initCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a slider config with an interactive form",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(configPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
			}

			f := loader.Default()
			spec := loader.SliderSpec{Orientation: "horizontal"}
			minS, maxS, stepS := "0", "100", "1"
			theme := f.Theme

			form := huh.NewForm(
				huh.NewGroup(
					huh.NewInput().Title("Slider name").Value(&spec.Name).
						Validate(func(s string) error {
							if strings.TrimSpace(s) == "" {
								return fmt.Errorf("name is required")
							}
							return nil
						}),
					huh.NewInput().Title("Label").Value(&spec.Label),
					huh.NewInput().Title("Unit").Value(&spec.Unit),
				),
				huh.NewGroup(
					huh.NewInput().Title("Minimum").Value(&minS).Validate(validateNumber),
					huh.NewInput().Title("Maximum").Value(&maxS).Validate(validateNumber),
					huh.NewInput().Title("Step").Value(&stepS).Validate(validateNumber),
					huh.NewConfirm().Title("Two thumbs (range)?").Value(&spec.Range),
					huh.NewSelect[string]().Title("Orientation").
						Options(huh.NewOptions("horizontal", "vertical")...).
						Value(&spec.Orientation),
				),
				huh.NewGroup(
					huh.NewSelect[string]().Title("Theme").
						Options(huh.NewOptions("dark", "light")...).
						Value(&theme),
				),
			)
			if err := form.Run(); err != nil {
				return err
			}

			spec.Min, _ = strconv.ParseFloat(strings.TrimSpace(minS), 64)
			spec.Max, _ = strconv.ParseFloat(strings.TrimSpace(maxS), 64)
			spec.Step, _ = strconv.ParseFloat(strings.TrimSpace(stepS), 64)
			if err := spec.Validate(); err != nil {
				return fmt.Errorf("slider %s: %w", spec.Name, err)
			}

			f.Theme = theme
			sliders := []loader.SliderSpec{spec}
			for _, s := range f.Sliders {
				if s.Name != spec.Name {
					sliders = append(sliders, s)
				}
			}
			f.Sliders = sliders
			if err := loader.Write(configPath, f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s with %d sliders.\n", configPath, len(f.Sliders))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")
	return cmd
}

func validateNumber(s string) error {
	if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
		return fmt.Errorf("not a number")
	}
	return nil
}
