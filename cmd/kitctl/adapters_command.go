package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/hsdfat8/kitcheck/internal/domain/models"
	"github.com/hsdfat8/kitcheck/internal/report"
)

func newAdaptersCommand() *cobra.Command {
	var (
		fromMount    string
		toMount      string
		adaptersPath string
		format       string
	)

	cmd := &cobra.Command{
		Use:   "adapters",
		Short: "List known lens mount adapters",
		Long:  "List known lens mount adapters. --from filters by lens mount, --to by camera mount.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			registry, err := loadRegistry(adaptersPath)
			if err != nil {
				return err
			}

			var adapters []models.Adapter
			if fromMount != "" && toMount != "" {
				adapters = registry.FindCompatibleAdapters(fromMount, toMount)
			} else {
				adapters = filterAdapters(registry.List(), fromMount, toMount)
			}
			if adapters == nil {
				adapters = []models.Adapter{}
			}

			if format == formatJSON {
				return writeJSON(cmd, adapters)
			}
			return report.RenderAdapters(cmd.OutOrStdout(), adapters)
		},
	}

	cmd.Flags().StringVar(&fromMount, "from", "", "Lens mount")
	cmd.Flags().StringVar(&toMount, "to", "", "Camera mount")
	cmd.Flags().StringVar(&adaptersPath, "adapters", "", "Extra adapter table YAML file")
	cmd.Flags().StringVar(&format, "format", formatTable, "Output format (table, json)")

	return cmd
}

// filterAdapters keeps adapters matching whichever of from and to is set
func filterAdapters(all []models.Adapter, from, to string) []models.Adapter {
	var out []models.Adapter
	for _, a := range all {
		if from != "" && !strings.EqualFold(strings.TrimSpace(a.FromMount), strings.TrimSpace(from)) {
			continue
		}
		if to != "" && !strings.EqualFold(strings.TrimSpace(a.ToMount), strings.TrimSpace(to)) {
			continue
		}
		out = append(out, a)
	}
	return out
}
