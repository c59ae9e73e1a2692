package vlan

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"vlantrack/internal/report"
)

var testNow = time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)

func reading(number, mb int, status report.Status, name string) report.Reading {
	return report.Reading{Number: number, Name: name, Status: status, MB: mb}
}

// checkInvariants asserts the structural contract: dates mirrors the
// snapshot key set, and every snapshot reading has a populated history
// entry for that date.
func checkInvariants(t *testing.T, n Network) {
	t.Helper()
	keys := make([]string, 0, len(n.DailyReports))
	for d := range n.DailyReports {
		keys = append(keys, d)
	}
	sort.Strings(keys)
	require.Equal(t, keys, n.Dates)

	for date, snap := range n.DailyReports {
		for _, r := range snap.Readings {
			h, ok := n.VlanData[r.Number]
			require.True(t, ok, "vlan %d missing history", r.Number)
			_, ok = h.Days[date]
			require.True(t, ok, "vlan %d missing day %s", r.Number, date)
		}
	}
}

func TestSaveSnapshotCreatesHistories(t *testing.T) {
	n := NewNetwork("net", "R1", "2024-01-01T00:00:00Z")
	n, ok := SaveSnapshot(n, "2024-01-01", []report.Reading{
		reading(10, 4000, report.StatusPurple, "E1 الاول"),
		reading(20, 500, report.StatusGreen, "الثاني"),
	}, testNow)
	require.True(t, ok)

	require.Equal(t, []string{"2024-01-01"}, n.Dates)
	require.Len(t, n.VlanData, 2)
	h := n.VlanData[10]
	require.Equal(t, "2024-01-01", h.FirstSeen)
	require.Equal(t, "E1 الاول", h.OriginalName)
	require.Equal(t, 4000.0, h.Days["2024-01-01"].MB)
	checkInvariants(t, n)
}

func TestSaveSnapshotRejectsEmptyReadings(t *testing.T) {
	n := NewNetwork("net", "R1", "2024-01-01T00:00:00Z")
	saved, ok := SaveSnapshot(n, "2024-01-01", nil, testNow)
	require.False(t, ok)
	require.Equal(t, n, saved)
	require.Empty(t, saved.Dates)
}

func TestSaveSnapshotReplacesDateWholesale(t *testing.T) {
	n := NewNetwork("net", "R1", "2024-01-01T00:00:00Z")
	n, _ = SaveSnapshot(n, "2024-01-01", []report.Reading{
		reading(10, 4000, report.StatusPurple, "قديم"),
		reading(20, 500, report.StatusDown, "معطل"),
	}, testNow)
	require.Equal(t, []int{20}, n.DailyReports["2024-01-01"].Down)

	n, _ = SaveSnapshot(n, "2024-01-01", []report.Reading{
		reading(10, 4200, report.StatusPurple, "جديد"),
	}, testNow)

	snap := n.DailyReports["2024-01-01"]
	require.Len(t, snap.Readings, 1)
	require.Empty(t, snap.Down)
	require.Equal(t, []string{"2024-01-01"}, n.Dates)
	// The name tracks the most recent report.
	require.Equal(t, "جديد", n.VlanData[10].Name)
	require.Equal(t, "قديم", n.VlanData[10].OriginalName)
}

func TestSaveSnapshotIsCopyOnWrite(t *testing.T) {
	original := NewNetwork("net", "R1", "2024-01-01T00:00:00Z")
	original, _ = SaveSnapshot(original, "2024-01-01", []report.Reading{
		reading(10, 4000, report.StatusPurple, "a"),
	}, testNow)

	updated, _ := SaveSnapshot(original, "2024-01-02", []report.Reading{
		reading(10, 100, report.StatusDown, "a"),
	}, testNow)

	require.Equal(t, []string{"2024-01-01"}, original.Dates)
	require.Len(t, original.VlanData[10].Days, 1)
	require.Equal(t, []string{"2024-01-01", "2024-01-02"}, updated.Dates)
	require.Len(t, updated.VlanData[10].Days, 2)
}

func TestDeleteVlanStripsEverySnapshot(t *testing.T) {
	n := NewNetwork("net", "R1", "2024-01-01T00:00:00Z")
	n, _ = SaveSnapshot(n, "2024-01-01", []report.Reading{
		reading(10, 4000, report.StatusPurple, "a"),
		reading(20, 500, report.StatusDown, "b"),
	}, testNow)
	n, _ = SaveSnapshot(n, "2024-01-02", []report.Reading{
		reading(10, 4100, report.StatusPurple, "a"),
		reading(20, 0, report.StatusDown, "b"),
	}, testNow)

	n = DeleteVlan(n, 20)

	_, ok := n.VlanData[20]
	require.False(t, ok)
	for _, snap := range n.DailyReports {
		for _, r := range snap.Readings {
			require.NotEqual(t, 20, r.Number)
		}
		require.NotContains(t, snap.Down, 20)
	}
	checkInvariants(t, n)
}

func TestDeleteReportKeepsOtherDays(t *testing.T) {
	n := NewNetwork("net", "R1", "2024-01-01T00:00:00Z")
	n, _ = SaveSnapshot(n, "2024-01-01", []report.Reading{reading(10, 4000, report.StatusPurple, "a")}, testNow)
	n, _ = SaveSnapshot(n, "2024-01-02", []report.Reading{
		reading(10, 4100, report.StatusPurple, "a"),
		reading(30, 900, report.StatusGreen, "c"),
	}, testNow)

	n = DeleteReport(n, "2024-01-02")

	require.Equal(t, []string{"2024-01-01"}, n.Dates)
	_, ok := n.DailyReports["2024-01-02"]
	require.False(t, ok)
	// VLAN 30 only existed on the deleted day, so its history goes too.
	_, ok = n.VlanData[30]
	require.False(t, ok)
	require.Len(t, n.VlanData[10].Days, 1)
	checkInvariants(t, n)
}

func TestDeleteAllReports(t *testing.T) {
	n := NewNetwork("net", "R1", "2024-01-01T00:00:00Z")
	n, _ = SaveSnapshot(n, "2024-01-01", []report.Reading{reading(10, 4000, report.StatusPurple, "a")}, testNow)

	n = DeleteAllReports(n)
	require.Empty(t, n.Dates)
	require.Empty(t, n.DailyReports)
	require.Empty(t, n.VlanData)
	checkInvariants(t, n)
}

func TestRenameVlan(t *testing.T) {
	n := NewNetwork("net", "R1", "2024-01-01T00:00:00Z")
	n, _ = SaveSnapshot(n, "2024-01-01", []report.Reading{reading(10, 4000, report.StatusPurple, "a")}, testNow)

	renamed := RenameVlan(n, 10, "اسم المشغل")
	require.Equal(t, "اسم المشغل", renamed.VlanData[10].Name)
	require.Equal(t, "a", n.VlanData[10].Name)

	require.Equal(t, renamed, RenameVlan(renamed, 99, "غير موجود"))
	require.Equal(t, renamed, RenameVlan(renamed, 10, ""))
}
