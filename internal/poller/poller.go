// Package poller runs the daily auto-fetch: once the local clock passes
// 06:00 and no auto-save has happened today, it pulls every configured
// network's report text and saves it under today's date.
package poller

import (
	"context"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"vlantrack/internal/fetch"
	"vlantrack/internal/storage"
	"vlantrack/internal/tracker"
)

// Labels maps a stored network id to the label its reports are published
// under in the realtime store.
type Labels map[string]string

// Start blocks, re-checking the schedule every interval. Run it in a
// goroutine from main.
func Start(interval time.Duration, svc *tracker.Service, client *fetch.Client, labels Labels, log *logrus.Logger) {
	for {
		checkAndFetch(svc, client, labels, log)
		time.Sleep(interval)
	}
}

func checkAndFetch(svc *tracker.Service, client *fetch.Client, labels Labels, log *logrus.Logger) {
	now := time.Now()
	if now.Hour() < 6 {
		return
	}
	today := now.Format("2006-01-02")

	last, err := svc.Store.LoadSetting(storage.KeyLastAutoSaveDate)
	if err != nil {
		log.WithError(err).Error("cannot read auto-save marker")
		return
	}
	if last == today {
		return
	}

	ids := make([]string, 0, len(labels))
	for id := range labels {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	totalSaved := 0
	for _, id := range ids {
		label := labels[id]
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		text, err := client.RawReportText(ctx, label)
		cancel()
		if err != nil {
			log.WithFields(logrus.Fields{"network": id, "label": label}).
				WithError(err).Error("auto-fetch failed")
			continue
		}
		if text == "" {
			log.WithFields(logrus.Fields{"network": id, "label": label}).
				Info("no report text available")
			continue
		}

		count, _, err := svc.SaveReport(id, today, text)
		if err != nil {
			log.WithFields(logrus.Fields{"network": id}).
				WithError(err).Error("auto-save failed")
			continue
		}
		totalSaved += count

		// Stay gentle with the store between networks.
		time.Sleep(time.Second)
	}

	if totalSaved > 0 {
		if err := svc.Store.SaveSetting(storage.KeyLastAutoSaveDate, today); err != nil {
			log.WithError(err).Error("cannot record auto-save date")
		}
		if err := svc.Store.SaveSetting(storage.KeyLastAutoSaveTime, now.Format(time.RFC3339)); err != nil {
			log.WithError(err).Error("cannot record auto-save time")
		}
		log.WithField("vlans", totalSaved).Info("auto-fetch cycle complete")
	}
}
