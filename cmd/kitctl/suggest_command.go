package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hsdfat8/kitcheck/internal/kitfile"
	"github.com/hsdfat8/kitcheck/internal/report"
	"github.com/hsdfat8/kitcheck/pkg/logic"
)

type suggestionView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Layer     int    `json:"layer"`
	LayerName string `json:"layerName"`
	Reason    string `json:"reason"`
}

func newSuggestCommand() *cobra.Command {
	var (
		catalogPath string
		hostID      string
		format      string
	)

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest catalog accessories for a camera body",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			catalog, err := kitfile.LoadCatalog(catalogPath)
			if err != nil {
				return err
			}

			idx := -1
			for i := range catalog {
				if catalog[i].ID == hostID {
					idx = i
					break
				}
			}
			if idx < 0 {
				return fmt.Errorf("equipment %q not found in %s", hostID, catalogPath)
			}
			host := &catalog[idx]
			if !logic.IsCameraBody(host) {
				return fmt.Errorf("%s (%s) is not a camera body", host.DisplayName(), host.Category)
			}

			suggestions := logic.SuggestAccessories(host, catalog)
			if format == formatTable {
				return report.RenderSuggestions(cmd.OutOrStdout(), host, suggestions)
			}

			views := make([]suggestionView, 0, len(suggestions))
			for _, s := range suggestions {
				views = append(views, suggestionView{
					ID:        s.Item.ID,
					Name:      s.Item.DisplayName(),
					Category:  string(s.Item.Category),
					Layer:     int(s.Layer),
					LayerName: s.Layer.String(),
					Reason:    s.Reason,
				})
			}
			return writeJSON(cmd, views)
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Catalog YAML file")
	cmd.Flags().StringVar(&hostID, "host", "", "Equipment id of the camera body")
	cmd.Flags().StringVar(&format, "format", formatTable, "Output format (table, json)")
	_ = cmd.MarkFlagRequired("catalog")
	_ = cmd.MarkFlagRequired("host")

	return cmd
}
