package main

import (
	"os"
	"strconv"
	"strings"
	"time"

	"vlantrack/internal/fetch"
	"vlantrack/internal/poller"
	"vlantrack/internal/storage"
	"vlantrack/internal/tracker"
	"vlantrack/internal/web"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// getEnv fetches environment variable or returns fallback
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parseLabels reads "network_1:R1,network_2:R2" into a label map.
func parseLabels(s string) poller.Labels {
	labels := poller.Labels{}
	for _, pair := range strings.Split(s, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), ":", 2)
		if len(parts) == 2 && parts[0] != "" && parts[1] != "" {
			labels[parts[0]] = parts[1]
		}
	}
	return labels
}

func main() {
	// Load .env if exists
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Configurable values from env
	host := getEnv("WEB_HOST", "0.0.0.0")
	port := getEnv("WEB_PORT", "8080")
	dbPath := getEnv("DB_PATH", "/tmp/vlantrack.db")
	fetchBase := getEnv("FETCH_BASE_URL", "https://eskandernet-default-rtdb.firebaseio.com")
	labels := parseLabels(getEnv("FETCH_NETWORKS", "network_1:R1,network_2:R2"))
	pollIntervalSec, _ := strconv.Atoi(getEnv("POLL_INTERVAL", "1800"))

	store, err := storage.Open(dbPath)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}

	svc := tracker.New(store, log)
	client := fetch.New(fetchBase, log)

	// Background daily auto-fetch
	go poller.Start(time.Duration(pollIntervalSec)*time.Second, svc, client, labels, log)

	app := fiber.New()
	web.SetupRoutes(app, svc, client, labels)

	log.Infof("Server running at http://%s:%s", host, port)
	log.Fatal(app.Listen(host + ":" + port))
}
