package web

import (
	"bytes"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"vlantrack/internal/export"
	"vlantrack/internal/fetch"
	"vlantrack/internal/poller"
	"vlantrack/internal/storage"
	"vlantrack/internal/tracker"
	"vlantrack/internal/vlan"
)

// Backup is the whole-state export/import payload.
type Backup struct {
	Networks     map[string]vlan.Network     `json:"networks"`
	AlertHistory map[string]vlan.AlertRecord `json:"alertHistory"`
}

func SetupRoutes(app *fiber.App, svc *tracker.Service, client *fetch.Client, labels poller.Labels) {
	store := svc.Store

	loadNetwork := func(id string) (map[string]vlan.Network, vlan.Network, error) {
		networks, err := store.LoadNetworks()
		if err != nil {
			return nil, vlan.Network{}, err
		}
		n, ok := networks[id]
		if !ok {
			return nil, vlan.Network{}, tracker.ErrUnknownNetwork
		}
		return networks, n, nil
	}

	fail := func(c *fiber.Ctx, err error) error {
		if errors.Is(err, tracker.ErrUnknownNetwork) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "network not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	app.Get("/api/networks", func(c *fiber.Ctx) error {
		networks, err := store.LoadNetworks()
		if err != nil {
			return fail(c, err)
		}
		list := make([]vlan.Network, 0, len(networks))
		for _, n := range networks {
			list = append(list, n)
		}
		sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
		return c.JSON(list)
	})

	app.Post("/api/networks", func(c *fiber.Ctx) error {
		var body struct {
			Name string `json:"name"`
		}
		if err := c.BodyParser(&body); err != nil || body.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
		}
		networks, err := store.LoadNetworks()
		if err != nil {
			return fail(c, err)
		}
		n := vlan.NewNetwork(uuid.NewString(), body.Name, time.Now().UTC().Format(time.RFC3339))
		networks[n.ID] = n
		if err := store.SaveNetworks(networks); err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(n)
	})

	app.Get("/api/networks/current", func(c *fiber.Ctx) error {
		id, err := store.LoadSetting(storage.KeyCurrentNetwork)
		if err != nil {
			return fail(c, err)
		}
		if id == "" {
			id = storage.DefaultNetwork1
		}
		return c.JSON(fiber.Map{"id": id})
	})

	app.Put("/api/networks/current", func(c *fiber.Ctx) error {
		var body struct {
			ID string `json:"id"`
		}
		if err := c.BodyParser(&body); err != nil || body.ID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "id is required"})
		}
		if _, _, err := loadNetwork(body.ID); err != nil {
			return fail(c, err)
		}
		if err := store.SaveSetting(storage.KeyCurrentNetwork, body.ID); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"id": body.ID})
	})

	// Save a pasted report. Rejects without touching state when the text
	// parses to zero readings.
	app.Post("/api/reports", func(c *fiber.Ctx) error {
		var body struct {
			NetworkID  string `json:"networkId"`
			ReportDate string `json:"reportDate"`
			Text       string `json:"text"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
		}
		if body.NetworkID == "" || body.ReportDate == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "networkId and reportDate are required"})
		}
		saved, alerts, err := svc.SaveReport(body.NetworkID, body.ReportDate, body.Text)
		if err != nil {
			return fail(c, err)
		}
		if saved == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"saved": 0,
				"error": "no readings parsed",
			})
		}
		return c.JSON(fiber.Map{"saved": saved, "alerts": alerts})
	})

	app.Get("/api/reports/:networkId", func(c *fiber.Ctx) error {
		_, n, err := loadNetwork(c.Params("networkId"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(n.DailyReports)
	})

	app.Delete("/api/reports/:networkId/:date", func(c *fiber.Ctx) error {
		id := c.Params("networkId")
		networks, n, err := loadNetwork(id)
		if err != nil {
			return fail(c, err)
		}
		networks[id] = vlan.DeleteReport(n, c.Params("date"))
		if err := store.SaveNetworks(networks); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"deleted": c.Params("date")})
	})

	app.Delete("/api/reports/:networkId", func(c *fiber.Ctx) error {
		id := c.Params("networkId")
		networks, n, err := loadNetwork(id)
		if err != nil {
			return fail(c, err)
		}
		networks[id] = vlan.DeleteAllReports(n)
		if err := store.SaveNetworks(networks); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"deleted": "all"})
	})

	app.Patch("/api/vlans/:networkId/:number", func(c *fiber.Ctx) error {
		number, err := strconv.Atoi(c.Params("number"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid vlan number"})
		}
		var body struct {
			Name string `json:"name"`
		}
		if err := c.BodyParser(&body); err != nil || body.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
		}
		id := c.Params("networkId")
		networks, n, err := loadNetwork(id)
		if err != nil {
			return fail(c, err)
		}
		if _, ok := n.VlanData[number]; !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "vlan not found"})
		}
		networks[id] = vlan.RenameVlan(n, number, body.Name)
		if err := store.SaveNetworks(networks); err != nil {
			return fail(c, err)
		}
		return c.JSON(networks[id].VlanData[number])
	})

	app.Delete("/api/vlans/:networkId/:number", func(c *fiber.Ctx) error {
		number, err := strconv.Atoi(c.Params("number"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid vlan number"})
		}
		id := c.Params("networkId")
		networks, n, err := loadNetwork(id)
		if err != nil {
			return fail(c, err)
		}
		networks[id] = vlan.DeleteVlan(n, number)
		if err := store.SaveNetworks(networks); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"deleted": number})
	})

	// Day-over-day annotation for one table cell.
	app.Get("/api/compare/:networkId/:number/:date", func(c *fiber.Ctx) error {
		number, err := strconv.Atoi(c.Params("number"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid vlan number"})
		}
		_, n, err := loadNetwork(c.Params("networkId"))
		if err != nil {
			return fail(c, err)
		}
		hist, ok := n.VlanData[number]
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "vlan not found"})
		}
		return c.JSON(vlan.Compare(hist, c.Params("date"), n.Dates))
	})

	app.Get("/api/alerts", func(c *fiber.Ctx) error {
		history, err := store.LoadAlertHistory()
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(history)
	})

	app.Get("/api/alerts/:date", func(c *fiber.Ctx) error {
		history, err := store.LoadAlertHistory()
		if err != nil {
			return fail(c, err)
		}
		rec, ok := history[c.Params("date")]
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no alerts for date"})
		}
		return c.JSON(rec)
	})

	app.Get("/api/export/:networkId", func(c *fiber.Ctx) error {
		_, n, err := loadNetwork(c.Params("networkId"))
		if err != nil {
			return fail(c, err)
		}
		f, err := export.Workbook(n)
		if err != nil {
			return fail(c, err)
		}
		var buf bytes.Buffer
		if err := f.Write(&buf); err != nil {
			return fail(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="vlan_report_`+n.Name+`.xlsx"`)
		return c.Send(buf.Bytes())
	})

	app.Get("/api/backup", func(c *fiber.Ctx) error {
		networks, err := store.LoadNetworks()
		if err != nil {
			return fail(c, err)
		}
		history, err := store.LoadAlertHistory()
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(Backup{Networks: networks, AlertHistory: history})
	})

	app.Post("/api/backup", func(c *fiber.Ctx) error {
		var backup Backup
		if err := c.BodyParser(&backup); err != nil || len(backup.Networks) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid backup file"})
		}
		if err := store.SaveNetworks(backup.Networks); err != nil {
			return fail(c, err)
		}
		if backup.AlertHistory != nil {
			if err := store.SaveAlertHistory(backup.AlertHistory); err != nil {
				return fail(c, err)
			}
		}
		return c.JSON(fiber.Map{"imported": len(backup.Networks)})
	})

	// Manual fetch-and-save for one network, today's date by default.
	app.Post("/api/fetch/:networkId", func(c *fiber.Ctx) error {
		id := c.Params("networkId")
		label, ok := labels[id]
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no fetch label for network"})
		}
		date := c.Query("date", time.Now().Format("2006-01-02"))

		text, err := client.RawReportText(c.Context(), label)
		if err != nil {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
		}
		if text == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"saved": 0, "error": "no report text available"})
		}
		saved, alerts, err := svc.SaveReport(id, date, text)
		if err != nil {
			return fail(c, err)
		}
		if saved == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"saved": 0, "error": "no readings parsed"})
		}
		return c.JSON(fiber.Map{"saved": saved, "alerts": alerts})
	})
}
