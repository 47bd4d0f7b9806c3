// Package events carries row change notifications to other processes and
// to clients listening on the server-sent events stream.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Table names the entity a change happened on.
type Table string

const (
	TableReports     Table = "reports"
	TableAssignments Table = "task_assignments"
	TableHistory     Table = "workflow_history"
	TableProfiles    Table = "profiles"
	TableAttachments Table = "file_attachments"
)

// Type is the kind of change.
type Type string

const (
	TypeInsert Type = "INSERT"
	TypeUpdate Type = "UPDATE"
	TypeDelete Type = "DELETE"
)

// Event describes one change.
type Event struct {
	Table    Table     `json:"table"`
	Type     Type      `json:"type"`
	ID       string    `json:"id"`
	ReportID string    `json:"report_id,omitempty"`
	NoSurat  string    `json:"no_surat,omitempty"`
	Status   string    `json:"status,omitempty"`
	At       time.Time `json:"at"`
}

// Encode returns the JSON wire form of e.
func (e Event) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// Decode parses the JSON wire form of an event.
func Decode(b []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(b, &e); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}
	if e.Table == "" || e.Type == "" {
		return Event{}, errors.New("decode event: table and type are required")
	}
	return e, nil
}

// Publisher delivers events somewhere.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(ctx context.Context, e Event) error

func (f PublisherFunc) Publish(ctx context.Context, e Event) error { return f(ctx, e) }

// Noop drops every event.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }

type multi []Publisher

// Multi fans an event out to every publisher. All publishers are tried;
// their errors are joined.
func Multi(pubs ...Publisher) Publisher {
	out := make(multi, 0, len(pubs))
	for _, p := range pubs {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

func (m multi) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
