// Package rvtools parses RVTools xlsx exports into a fleet summary. The
// vInfo sheet drives the aggregate; the vDisk sheet, when present, supplies
// the raw disk total.
package rvtools

import (
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kubev2v/capacity-planner/internal/models"
	srvErrors "github.com/kubev2v/capacity-planner/pkg/errors"
)

const (
	sheetVInfo = "vInfo"
	sheetVDisk = "vDisk"

	mibPerGiB = 1024
)

// Parse reads an RVTools export and aggregates it into a fleet summary.
// Templates are excluded; powered-off VMs count.
func Parse(r io.Reader) (*models.FleetSummary, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, srvErrors.NewInvalidSpreadsheetError("not a valid xlsx file")
	}
	defer f.Close()

	rows, err := f.GetRows(sheetVInfo)
	if err != nil {
		return nil, srvErrors.NewInvalidSpreadsheetError("missing vInfo sheet")
	}
	if len(rows) < 1 {
		return nil, srvErrors.NewInvalidSpreadsheetError("vInfo sheet is empty")
	}

	header := newHeader(rows[0])
	for _, required := range []string{"VM", "CPUs", "Memory"} {
		if !header.has(required) {
			return nil, srvErrors.NewInvalidSpreadsheetError("vInfo sheet is missing the " + required + " column")
		}
	}

	fleet := &models.FleetSummary{Source: models.InventorySourceRVTools}
	templates := make(map[string]bool)

	for _, row := range rows[1:] {
		name := header.cell(row, "VM")
		if name == "" {
			continue
		}
		if isTrue(header.cell(row, "Template")) {
			templates[name] = true
			continue
		}

		fleet.VMCount++
		fleet.VCPUs += floatCell(header.cell(row, "CPUs"))
		fleet.MemoryGiB += floatCell(header.cell(row, "Memory")) / mibPerGiB
		fleet.ProvisionedStorageGiB += floatCell(header.cell(row, "Provisioned MiB")) / mibPerGiB
		fleet.UsedStorageGiB += floatCell(header.cell(row, "In Use MiB")) / mibPerGiB
	}

	fleet.RawDiskStorageGiB = rawDiskTotal(f, templates)

	return fleet, nil
}

// rawDiskTotal sums vDisk capacities, skipping disks owned by templates.
// Exports without a vDisk tab fall back to zero; the provisioned metric
// still covers them.
func rawDiskTotal(f *excelize.File, templates map[string]bool) float64 {
	rows, err := f.GetRows(sheetVDisk)
	if err != nil || len(rows) < 1 {
		return 0
	}

	header := newHeader(rows[0])
	if !header.has("Capacity MiB") {
		return 0
	}

	var total float64
	for _, row := range rows[1:] {
		if templates[header.cell(row, "VM")] {
			continue
		}
		total += floatCell(header.cell(row, "Capacity MiB")) / mibPerGiB
	}
	return total
}

// header maps column names to indexes, case-insensitively. RVTools renamed
// its size columns from MB to MiB over the years; both spellings resolve.
type header map[string]int

func newHeader(row []string) header {
	h := make(header, len(row))
	for i, name := range row {
		h[normalize(name)] = i
	}
	return h
}

func normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(name, " mb", " mib")
}

func (h header) has(name string) bool {
	_, ok := h[normalize(name)]
	return ok
}

func (h header) cell(row []string, name string) string {
	i, ok := h[normalize(name)]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func floatCell(value string) float64 {
	if value == "" {
		return 0
	}
	// RVTools localizes thousands separators in some locales.
	value = strings.ReplaceAll(value, ",", "")
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}

func isTrue(value string) bool {
	return strings.EqualFold(value, "true")
}
