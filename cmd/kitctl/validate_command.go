package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hsdfat8/kitcheck/internal/domain/models"
	"github.com/hsdfat8/kitcheck/internal/domain/ports"
	"github.com/hsdfat8/kitcheck/internal/kitfile"
	"github.com/hsdfat8/kitcheck/internal/observability"
	"github.com/hsdfat8/kitcheck/internal/report"
	"github.com/hsdfat8/kitcheck/pkg/logic"
)

func newValidateCommand() *cobra.Command {
	var (
		kitPath      string
		catalogPath  string
		adaptersPath string
		format       string
		xlsxPath     string
		heavyLensKg  float64
		strict       bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a kit file against a catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			kit, err := kitfile.LoadKit(kitPath)
			if err != nil {
				return err
			}
			catalog, err := kitfile.LoadCatalog(catalogPath)
			if err != nil {
				return err
			}
			registry, err := loadRegistry(adaptersPath)
			if err != nil {
				return err
			}

			warnings := logic.Validate(kit.Entries, catalog,
				logic.WithRegistry(registry),
				logic.WithHeavyLensThreshold(heavyLensKg),
			)
			result := ports.NewValidationReport(kit.ID, warnings, nil)
			observability.Log.Debugw("Kit validated", "kit_id", kit.ID, "entries", len(kit.Entries), "warnings", len(warnings))

			if xlsxPath != "" {
				if err := writeWorkbookFile(xlsxPath, kit, catalog, result); err != nil {
					return err
				}
			}

			if format == formatJSON {
				err = writeJSON(cmd, result)
			} else {
				err = report.RenderWarnings(cmd.OutOrStdout(), kit, catalog, result.Warnings)
			}
			if err != nil {
				return err
			}

			if strict && result.ErrorCount > 0 {
				return fmt.Errorf("kit %s has %d blocking compatibility error(s)", kit.ID, result.ErrorCount)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kitPath, "kit", "", "Kit YAML file")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Catalog YAML file")
	cmd.Flags().StringVar(&adaptersPath, "adapters", "", "Extra adapter table YAML file")
	cmd.Flags().StringVar(&format, "format", formatTable, "Output format (table, json)")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Also write an XLSX report to this path")
	cmd.Flags().Float64Var(&heavyLensKg, "heavy-lens-kg", logic.DefaultHeavyLensThresholdKg, "Lens weight above which rod support is advised")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when any ERROR warning is reported")
	_ = cmd.MarkFlagRequired("kit")
	_ = cmd.MarkFlagRequired("catalog")

	return cmd
}

func writeWorkbookFile(path string, kit *models.Kit, catalog []models.EquipmentSpec, result *ports.ValidationReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := report.WriteWorkbook(f, kit, catalog, result.Warnings); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
