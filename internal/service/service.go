// Package service holds the use cases of the tracking system. Handlers call
// services; services call repositories, storage and the event publisher.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sitrack/internal/events"
	"sitrack/internal/logging"
	"sitrack/internal/model"
	"sitrack/internal/repository"
	"sitrack/internal/workflow"
)

var (
	ErrIDRequired     = errors.New("id is required")
	ErrNotFound       = errors.New("not found")
	ErrReaderNil      = errors.New("reader is nil")
	ErrInvalidInput   = errors.New("invalid input")
	ErrConflict       = errors.New("conflict")
	ErrUnauthorized   = errors.New("invalid username or password")
	ErrSearchRequired = errors.New("search is required")

	// ErrForbidden is shared with the workflow rules so callers test for one value.
	ErrForbidden = workflow.ErrForbidden
)

// Actor is the authenticated user a call is made for.
type Actor struct {
	ID   string
	Role model.Role
	Name string
}

func (a Actor) userID() *string {
	if a.ID == "" {
		return nil
	}
	id := a.ID
	return &id
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func forbiddenf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrForbidden, fmt.Sprintf(format, args...))
}

// notFound turns a missing row into ErrNotFound naming what was missing.
func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return err
}

// conflict turns a unique violation into ErrConflict.
func conflict(err error, msg string) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return fmt.Errorf("%w: %s", ErrConflict, msg)
	}
	return err
}

// notifier publishes change events after a unit of work commits. Failures
// are logged and never returned to the caller.
type notifier struct {
	pub events.Publisher
	log *logging.Logger
}

func newNotifier(pub events.Publisher, log *logging.Logger) notifier {
	if pub == nil {
		pub = events.Noop{}
	}
	if log == nil {
		log = logging.Default()
	}
	return notifier{pub: pub, log: log}
}

func (n notifier) publish(ctx context.Context, evs ...events.Event) {
	for _, e := range evs {
		if err := n.pub.Publish(ctx, e); err != nil {
			n.log.Error("event_publish_failed", err, map[string]any{
				"component": "events",
				"table":     string(e.Table),
				"type":      string(e.Type),
				"id":        e.ID,
			})
		}
	}
}

func reportEvent(t events.Type, r *model.Report, at time.Time) events.Event {
	return events.Event{
		Table:    events.TableReports,
		Type:     t,
		ID:       r.ID,
		ReportID: r.ID,
		NoSurat:  r.NoSurat,
		Status:   string(r.Status),
		At:       at,
	}
}

func assignmentEvent(t events.Type, a *model.TaskAssignment, noSurat string, at time.Time) events.Event {
	return events.Event{
		Table:    events.TableAssignments,
		Type:     t,
		ID:       a.ID,
		ReportID: a.ReportID,
		NoSurat:  noSurat,
		Status:   string(a.Status),
		At:       at,
	}
}

func historyEvent(h *model.WorkflowHistory, noSurat string) events.Event {
	return events.Event{
		Table:    events.TableHistory,
		Type:     events.TypeInsert,
		ID:       h.ID,
		ReportID: h.ReportID,
		NoSurat:  noSurat,
		Status:   string(h.Status),
		At:       h.CreatedAt,
	}
}

func utcNow() time.Time { return time.Now().UTC() }
