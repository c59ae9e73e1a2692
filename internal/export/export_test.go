package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"vlantrack/internal/report"
	"vlantrack/internal/vlan"
)

func TestWorkbookProjection(t *testing.T) {
	now := time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)
	n := vlan.NewNetwork("net", "R1", "2024-01-01T00:00:00Z")
	n, _ = vlan.SaveSnapshot(n, "2024-01-01", []report.Reading{
		{Number: 10, Name: "E1 حي", Status: report.StatusPurple, MB: 1024},
		{Number: 20, Name: "فرعي", Status: report.StatusGreen, MB: 512},
	}, now)
	n, _ = vlan.SaveSnapshot(n, "2024-01-02", []report.Reading{
		{Number: 10, Name: "E1 حي", Status: report.StatusPurple, MB: 2048},
	}, now)

	f, err := Workbook(n)
	require.NoError(t, err)

	get := func(cell string) string {
		v, err := f.GetCellValue("التقرير", cell)
		require.NoError(t, err)
		return v
	}

	// Header: latest date first, then the older one.
	require.Equal(t, "2024-01-02", get("D1"))
	require.Equal(t, "2024-01-01", get("E1"))

	// Row per VLAN, ascending by number.
	require.Equal(t, "V10", get("B2"))
	require.Equal(t, "2048", get("D2"))
	require.Equal(t, "1024", get("E2"))
	require.Equal(t, "3.00", get("F2")) // (1024+2048)/1024 GB

	require.Equal(t, "V20", get("B3"))
	require.Equal(t, "-", get("D3")) // no reading on the 2nd
	require.Equal(t, "512", get("E3"))

	// Totals row.
	require.Equal(t, "الإجمالي", get("C4"))
	require.Equal(t, "2048", get("D4"))
	require.Equal(t, "1536", get("E4"))
	require.Equal(t, "3.50", get("F4"))
}
