// Package export projects a network's VLAN history into a spreadsheet:
// one row per VLAN, one column per date (latest first), with per-day
// totals and a grand total. Presentation only, no extra invariants.
package export

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"vlantrack/internal/vlan"
)

const sheetName = "التقرير"

// Workbook builds the .xlsx projection for one network.
func Workbook(n vlan.Network) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	// Latest date in the leftmost date column, as the table view shows it.
	dates := append([]string(nil), n.Dates...)
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	numbers := make([]int, 0, len(n.VlanData))
	for num := range n.VlanData {
		numbers = append(numbers, num)
	}
	sort.Ints(numbers)

	header := []interface{}{"#", "رقم", "الاسم"}
	for _, d := range dates {
		header = append(header, d)
	}
	header = append(header, "الإجمالي (GB)")
	if err := setRow(f, 1, header); err != nil {
		return nil, err
	}

	dayTotals := make(map[string]float64, len(dates))
	rowIdx := 2
	for i, num := range numbers {
		h := n.VlanData[num]
		row := []interface{}{i + 1, fmt.Sprintf("V%d", num), h.Name}
		var total float64
		for _, d := range dates {
			day, ok := h.Days[d]
			if !ok {
				row = append(row, "-")
				continue
			}
			row = append(row, day.MB)
			dayTotals[d] += day.MB
			total += day.MB
		}
		row = append(row, fmt.Sprintf("%.2f", total/1024))
		if err := setRow(f, rowIdx, row); err != nil {
			return nil, err
		}
		rowIdx++
	}

	totals := []interface{}{"", "", "الإجمالي"}
	var grand float64
	for _, d := range dates {
		totals = append(totals, dayTotals[d])
		grand += dayTotals[d]
	}
	totals = append(totals, fmt.Sprintf("%.2f", grand/1024))
	if err := setRow(f, rowIdx, totals); err != nil {
		return nil, err
	}

	return f, nil
}

func setRow(f *excelize.File, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheetName, cell, &values)
}
