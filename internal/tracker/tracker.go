// Package tracker is the save pipeline: parse a report blob, merge it
// into the network's time series, persist the result and derive the
// day-over-day alert record. Both the HTTP API and the background
// auto-fetch loop go through it.
package tracker

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"vlantrack/internal/report"
	"vlantrack/internal/storage"
	"vlantrack/internal/vlan"
)

var ErrUnknownNetwork = errors.New("unknown network")

type Service struct {
	Store storage.Store
	Log   *logrus.Logger
}

func New(store storage.Store, log *logrus.Logger) *Service {
	return &Service{Store: store, Log: log}
}

// SaveReport runs the full pipeline for one (network, date, text) triple.
// A text that parses to zero readings is a soft failure: nothing is
// persisted and saved=0 is returned with a nil alert record and nil error.
func (s *Service) SaveReport(networkID, date, text string) (int, *vlan.AlertRecord, error) {
	networks, err := s.Store.LoadNetworks()
	if err != nil {
		return 0, nil, err
	}
	n, ok := networks[networkID]
	if !ok {
		return 0, nil, ErrUnknownNetwork
	}

	readings, stats := report.Parse(text)
	if !stats.Success {
		s.Log.WithFields(logrus.Fields{
			"network": networkID,
			"date":    date,
			"lines":   stats.TotalLines,
		}).Warn("report parsed to zero readings, not saving")
		return 0, nil, nil
	}

	now := time.Now()
	updated, ok := vlan.SaveSnapshot(n, date, readings, now)
	if !ok {
		return 0, nil, nil
	}
	networks[networkID] = updated
	if err := s.Store.SaveNetworks(networks); err != nil {
		return 0, nil, err
	}

	rec := vlan.Analyze(updated, date, now)
	if rec != nil {
		history, err := s.Store.LoadAlertHistory()
		if err != nil {
			return 0, nil, err
		}
		history[date] = *rec
		if err := s.Store.SaveAlertHistory(history); err != nil {
			return 0, nil, err
		}
	}

	s.Log.WithFields(logrus.Fields{
		"network": networkID,
		"date":    date,
		"vlans":   len(readings),
	}).Info("report saved")
	return len(readings), rec, nil
}
