// Package fetch pulls raw report text from the realtime store that the
// field bots publish to. Each network label has four per-color message
// slots; a failed or empty color is skipped and the rest are still
// collected, so the result may be partial or empty.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"vlantrack/internal/report"
)

// colors in fetch order, with the glyph each color's lines are tagged with.
var colors = []struct {
	name  string
	glyph report.Status
}{
	{"purple", report.StatusPurple},
	{"green", report.StatusGreen},
	{"orange", report.StatusOrange},
	{"red", report.StatusDown},
}

// Placeholder strings the bots publish when a slot has no data.
var placeholders = []string{"لا يوجد تقرير", "جاري التحميل"}

type Client struct {
	BaseURL string
	HTTP    *http.Client
	Log     *logrus.Logger
}

func New(baseURL string, log *logrus.Logger) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 15 * time.Second},
		Log:     log,
	}
}

// RawReportText assembles one parseable text blob for a network label.
// Per-color failures are logged and skipped; the returned error is non-nil
// only when no color yielded anything and at least one fetch failed.
func (c *Client) RawReportText(ctx context.Context, label string) (string, error) {
	var parts []string
	var lastErr error

	for _, col := range colors {
		text, err := c.colorMessage(ctx, label, col.name)
		if err != nil {
			c.Log.WithFields(logrus.Fields{"network": label, "color": col.name}).
				WithError(err).Warn("fetch failed, skipping color")
			lastErr = err
			continue
		}
		if text == "" || isPlaceholder(text) {
			continue
		}

		clean := strings.TrimSpace(text)
		if strings.Contains(clean, "Router:") && strings.Contains(clean, "Time:") {
			clean = reformatRouterDump(clean, col.name, col.glyph)
		}
		if clean != "" {
			parts = append(parts, clean)
		}
	}

	out := strings.TrimSpace(strings.Join(parts, "\n"))
	if out == "" && lastErr != nil {
		return "", lastErr
	}
	return out, nil
}

func (c *Client) colorMessage(ctx context.Context, label, color string) (string, error) {
	url := fmt.Sprintf("%s/%s/messages/%s/message.json", c.BaseURL, label, color)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	// The store returns a JSON-encoded string, or null for an empty slot.
	var msg string
	if err := json.Unmarshal(body, &msg); err != nil {
		if strings.TrimSpace(string(body)) == "null" {
			return "", nil
		}
		return "", err
	}
	return msg, nil
}

func isPlaceholder(text string) bool {
	for _, p := range placeholders {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

var vlanChunkRe = regexp.MustCompile(`(?i)V(\d+)[:\s]+(\d+)\s*MB\s*[-\s]+([^|]+)`)

// reformatRouterDump converts the bots' pipe-delimited router dump
// ("Router: ... | Purple (3) | V10: 500 MB - name | V11: ...") into the
// glyph-per-line format the parser understands. Only the section for the
// requested color is extracted.
func reformatRouterDump(text, color string, glyph report.Status) string {
	colorName := strings.ToUpper(color[:1]) + color[1:]
	sectionRe := regexp.MustCompile(`(?is)` + colorName +
		`\s*\(\d+\)\s*\|\s*(.+?)(?:\|\s*(?:Green|Orange|Red|Purple)\s*\(|$)`)
	m := sectionRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}

	var lines []string
	for _, chunk := range vlanChunkRe.FindAllStringSubmatch(m[1], -1) {
		name := strings.TrimSpace(chunk[3])
		if name == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s V%s: %s MB - %s", glyph, chunk[1], chunk[2], name))
	}
	return strings.Join(lines, "\n")
}
