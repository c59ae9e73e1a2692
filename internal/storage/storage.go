// Package storage is the persistence port for network state. All
// operations are whole-value load/replace; callers never patch stored
// state in place.
package storage

import "vlantrack/internal/vlan"

// Well-known settings keys.
const (
	KeyCurrentNetwork   = "current_network"
	KeyLastAutoSaveDate = "last_auto_save_date"
	KeyLastAutoSaveTime = "last_auto_save_time"
)

// Default network ids seeded on first run.
const (
	DefaultNetwork1 = "network_1"
	DefaultNetwork2 = "network_2"
)

type Store interface {
	// LoadNetworks returns all stored networks, seeding two empty default
	// networks (R1, R2) when nothing has been persisted yet.
	LoadNetworks() (map[string]vlan.Network, error)
	// SaveNetworks replaces the stored network set wholesale.
	SaveNetworks(networks map[string]vlan.Network) error

	LoadAlertHistory() (map[string]vlan.AlertRecord, error)
	SaveAlertHistory(history map[string]vlan.AlertRecord) error

	LoadSetting(key string) (string, error)
	SaveSetting(key, value string) error
}
