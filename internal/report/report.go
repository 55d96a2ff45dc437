// Package report renders validation results, accessory suggestions and
// adapter lookups as terminal tables, and kits as XLSX workbooks.
package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/hsdfat8/kitcheck/internal/domain/models"
	"github.com/hsdfat8/kitcheck/pkg/logic"
)

var warningHeaders = []string{"Unit", "Item", "Type", "Severity", "Message", "Solution"}

// row is one warning resolved against the kit and catalog
type row struct {
	unit     string
	item     string
	warning  models.CompatibilityWarning
	position int
}

// resolveRows attaches unit and item names to warnings and orders them by
// unit, then by the entry's position in the kit
func resolveRows(kit *models.Kit, catalog []models.EquipmentSpec, warnings []models.CompatibilityWarning) []row {
	specs := make(map[string]*models.EquipmentSpec, len(catalog))
	for i := range catalog {
		if _, ok := specs[catalog[i].ID]; !ok {
			specs[catalog[i].ID] = &catalog[i]
		}
	}

	type entryInfo struct {
		entry    models.InventoryEntry
		position int
	}
	entries := make(map[string]entryInfo)
	if kit != nil {
		for i, e := range kit.Entries {
			entries[e.ID] = entryInfo{entry: e, position: i}
		}
	}

	rows := make([]row, 0, len(warnings))
	for i, w := range warnings {
		r := row{item: w.ItemID, warning: w, position: len(entries) + i}
		if info, ok := entries[w.ItemID]; ok {
			r.unit = info.entry.AssignedUnit
			r.position = info.position
			if spec, ok := specs[info.entry.EquipmentID]; ok {
				r.item = spec.DisplayName()
			}
		}
		rows = append(rows, r)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].unit != rows[j].unit {
			return rows[i].unit < rows[j].unit
		}
		return rows[i].position < rows[j].position
	})
	return rows
}

func (r row) cells() []string {
	solution := r.warning.Solution
	if len(r.warning.SuggestedAdapters) > 0 {
		names := make([]string, 0, len(r.warning.SuggestedAdapters))
		for _, a := range r.warning.SuggestedAdapters {
			names = append(names, strings.TrimSpace(a.Brand+" "+a.Model))
		}
		if solution != "" {
			solution += "; "
		}
		solution += "adapters: " + strings.Join(names, ", ")
	}
	return []string{
		r.unit,
		r.item,
		string(r.warning.Type),
		string(r.warning.Severity),
		r.warning.Message,
		solution,
	}
}

// RenderWarnings writes the warnings as a table grouped by unit. Terminals
// get rounded box drawing; pipes and files get plain ASCII.
func RenderWarnings(w io.Writer, kit *models.Kit, catalog []models.EquipmentSpec, warnings []models.CompatibilityWarning) error {
	if len(warnings) == 0 {
		_, err := fmt.Fprintln(w, "No compatibility warnings.")
		return err
	}

	tw := newTable(w, warningHeaders)

	errs, warns := 0, 0
	for _, r := range resolveRows(kit, catalog, warnings) {
		cells := r.cells()
		tr := make(table.Row, len(cells))
		for i, c := range cells {
			tr[i] = c
		}
		tw.AppendRow(tr)

		if r.warning.Severity == models.SeverityError {
			errs++
		} else {
			warns++
		}
	}
	tw.AppendFooter(table.Row{"", "", "", "", fmt.Sprintf("%d error(s), %d warning(s)", errs, warns), ""})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true},
		{Number: 5, WidthMax: 60, AlignHeader: text.AlignLeft},
		{Number: 6, WidthMax: 50, AlignHeader: text.AlignLeft},
	})

	_, err := fmt.Fprintln(w, tw.Render())
	return err
}

// RenderSuggestions writes ranked accessory suggestions for a camera body
func RenderSuggestions(w io.Writer, host *models.EquipmentSpec, suggestions []logic.Suggestion) error {
	if len(suggestions) == 0 {
		_, err := fmt.Fprintf(w, "No accessories found for %s.\n", host.DisplayName())
		return err
	}

	tw := newTable(w, []string{"#", "Item", "Category", "Layer", "Reason"})
	tw.SetTitle("Accessories for %s", host.DisplayName())
	for i, s := range suggestions {
		tw.AppendRow(table.Row{i + 1, s.Item.DisplayName(), string(s.Item.Category), s.Layer.String(), s.Reason})
	}
	_, err := fmt.Fprintln(w, tw.Render())
	return err
}

// RenderAdapters writes an adapter table
func RenderAdapters(w io.Writer, adapters []models.Adapter) error {
	if len(adapters) == 0 {
		_, err := fmt.Fprintln(w, "No adapters found.")
		return err
	}

	tw := newTable(w, []string{"From", "To", "Adapter", "Infinity Focus", "Notes"})
	for _, a := range adapters {
		focus := "yes"
		if !a.MaintainsInfinityFocus {
			focus = "no"
		}
		tw.AppendRow(table.Row{a.FromMount, a.ToMount, strings.TrimSpace(a.Brand + " " + a.Model), focus, a.Notes})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{{Number: 1, AutoMerge: true}})
	_, err := fmt.Fprintln(w, tw.Render())
	return err
}

// newTable returns a writer styled for w: rounded box drawing on terminals,
// plain ASCII for pipes and files
func newTable(w io.Writer, headers []string) table.Writer {
	tw := table.NewWriter()
	if isTerminal(w) {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}
	tw.Style().Format.Footer = text.FormatDefault

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)
	return tw
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
