package handler

import (
	"bufio"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"sitrack/internal/events"
)

// EventSource subscribes to the change events a stream relays.
type EventSource interface {
	Subscribe() (<-chan events.Event, func())
}

// Events godoc
// @Summary Change event stream
// @Description Server-Sent Events of row changes. Filter with table and report_id.
// @Tags events
// @Produce text/event-stream
// @Security BearerAuth
// @Param table query string false "Only events of this table"
// @Param report_id query string false "Only events of this report"
// @Success 200 {string} string "event stream"
// @Router /api/v1/events [get]
func Events(src EventSource, keepAlive time.Duration) fiber.Handler {
	if keepAlive <= 0 {
		keepAlive = 25 * time.Second
	}
	return func(c *fiber.Ctx) error {
		table := events.Table(c.Query("table"))
		reportID := c.Query("report_id")

		c.Set(fiber.HeaderContentType, "text/event-stream")
		c.Set(fiber.HeaderCacheControl, "no-cache")
		c.Set(fiber.HeaderConnection, "keep-alive")
		c.Set("X-Accel-Buffering", "no")

		ch, cancel := src.Subscribe()
		c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
			defer cancel()

			ticker := time.NewTicker(keepAlive)
			defer ticker.Stop()

			fmt.Fprint(w, "retry: 3000\n\n")
			if w.Flush() != nil {
				return
			}
			for {
				select {
				case e, ok := <-ch:
					if !ok {
						return
					}
					if (table != "" && e.Table != table) || (reportID != "" && e.ReportID != reportID) {
						continue
					}
					if err := writeSSE(w, e); err != nil {
						return
					}
				case <-ticker.C:
					fmt.Fprint(w, ": ping\n\n")
				}
				// A failed flush means the client went away.
				if w.Flush() != nil {
					return
				}
			}
		}))
		return nil
	}
}

// writeSSE writes e as one SSE message named after its table.
func writeSSE(w *bufio.Writer, e events.Event) error {
	b, err := e.Encode()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Table, b)
	return err
}
