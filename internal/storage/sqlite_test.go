package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"vlantrack/internal/report"
	"vlantrack/internal/vlan"
)

func openTestStore(t *testing.T) *SQLStore {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "vlantrack.db"))
	require.NoError(t, err)
	return store
}

func TestLoadNetworksSeedsDefaults(t *testing.T) {
	store := openTestStore(t)
	networks, err := store.LoadNetworks()
	require.NoError(t, err)
	require.Len(t, networks, 2)
	require.Equal(t, "R1", networks[DefaultNetwork1].Name)
	require.Equal(t, "R2", networks[DefaultNetwork2].Name)
	require.Empty(t, networks[DefaultNetwork1].Dates)
}

func TestNetworksRoundTrip(t *testing.T) {
	store := openTestStore(t)
	networks, err := store.LoadNetworks()
	require.NoError(t, err)

	n := networks[DefaultNetwork1]
	n, ok := vlan.SaveSnapshot(n, "2024-01-01", []report.Reading{{
		Number: 10, Name: "E1 حي", Status: report.StatusPurple, MB: 4000,
		Display: "🟣 4000MB", ShortDisplay: "🟣4000",
	}}, time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC))
	require.True(t, ok)
	networks[DefaultNetwork1] = n
	require.NoError(t, store.SaveNetworks(networks))

	loaded, err := store.LoadNetworks()
	require.NoError(t, err)
	require.Equal(t, networks, loaded)
	require.Equal(t, report.StatusPurple, loaded[DefaultNetwork1].VlanData[10].Days["2024-01-01"].Level)
}

func TestSaveNetworksReplacesWholesale(t *testing.T) {
	store := openTestStore(t)
	networks, _ := store.LoadNetworks()
	require.NoError(t, store.SaveNetworks(networks))

	// Drop one network and save; the removed row must not survive.
	delete(networks, DefaultNetwork2)
	require.NoError(t, store.SaveNetworks(networks))

	loaded, err := store.LoadNetworks()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	_, ok := loaded[DefaultNetwork2]
	require.False(t, ok)
}

func TestAlertHistoryRoundTrip(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.LoadAlertHistory()
	require.NoError(t, err)
	require.Empty(t, empty)

	history := map[string]vlan.AlertRecord{
		"2024-01-02": {
			Urgent:       []vlan.AlertItem{{Type: "new_float_big", Vlan: 10, Percent: 100, Size: vlan.SizeBig}},
			Warning:      []vlan.AlertItem{},
			Info:         []vlan.AlertItem{},
			Timestamp:    "2024-01-02T08:00:00Z",
			Date:         "2024-01-02",
			ComparedWith: "2024-01-01",
		},
	}
	require.NoError(t, store.SaveAlertHistory(history))

	loaded, err := store.LoadAlertHistory()
	require.NoError(t, err)
	require.Equal(t, history, loaded)
}

func TestSettings(t *testing.T) {
	store := openTestStore(t)

	val, err := store.LoadSetting(KeyCurrentNetwork)
	require.NoError(t, err)
	require.Empty(t, val)

	require.NoError(t, store.SaveSetting(KeyCurrentNetwork, DefaultNetwork2))
	require.NoError(t, store.SaveSetting(KeyCurrentNetwork, DefaultNetwork1))

	val, err = store.LoadSetting(KeyCurrentNetwork)
	require.NoError(t, err)
	require.Equal(t, DefaultNetwork1, val)
}
