package storage

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"vlantrack/internal/vlan"
)

type networkRow struct {
	ID           string `gorm:"primaryKey"`
	Name         string
	State        string // full Network value as JSON
	LastModified string
}

type alertRow struct {
	Date    string `gorm:"primaryKey"`
	Payload string
}

type settingRow struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

// SQLStore persists whole-value snapshots in sqlite through gorm.
type SQLStore struct {
	db *gorm.DB
}

func Open(path string) (*SQLStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&networkRow{}, &alertRow{}, &settingRow{}); err != nil {
		return nil, err
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) LoadNetworks() (map[string]vlan.Network, error) {
	var rows []networkRow
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		now := time.Now().UTC().Format(time.RFC3339)
		return map[string]vlan.Network{
			DefaultNetwork1: vlan.NewNetwork(DefaultNetwork1, "R1", now),
			DefaultNetwork2: vlan.NewNetwork(DefaultNetwork2, "R2", now),
		}, nil
	}

	networks := make(map[string]vlan.Network, len(rows))
	for _, row := range rows {
		var n vlan.Network
		if err := json.Unmarshal([]byte(row.State), &n); err != nil {
			return nil, err
		}
		networks[row.ID] = n
	}
	return networks, nil
}

func (s *SQLStore) SaveNetworks(networks map[string]vlan.Network) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&networkRow{}).Error; err != nil {
			return err
		}
		for id, n := range networks {
			state, err := json.Marshal(n)
			if err != nil {
				return err
			}
			row := networkRow{
				ID:           id,
				Name:         n.Name,
				State:        string(state),
				LastModified: n.LastModified,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLStore) LoadAlertHistory() (map[string]vlan.AlertRecord, error) {
	var rows []alertRow
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	history := make(map[string]vlan.AlertRecord, len(rows))
	for _, row := range rows {
		var rec vlan.AlertRecord
		if err := json.Unmarshal([]byte(row.Payload), &rec); err != nil {
			return nil, err
		}
		history[row.Date] = rec
	}
	return history, nil
}

func (s *SQLStore) SaveAlertHistory(history map[string]vlan.AlertRecord) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&alertRow{}).Error; err != nil {
			return err
		}
		for date, rec := range history {
			payload, err := json.Marshal(rec)
			if err != nil {
				return err
			}
			if err := tx.Create(&alertRow{Date: date, Payload: string(payload)}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLStore) LoadSetting(key string) (string, error) {
	var row settingRow
	err := s.db.First(&row, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return row.Value, nil
}

func (s *SQLStore) SaveSetting(key, value string) error {
	return s.db.Save(&settingRow{Key: key, Value: value}).Error
}
