package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sitrack/internal/config"
	"sitrack/internal/events"
	"sitrack/internal/logging"
	"sitrack/internal/repository"
)

var fixedNow = time.Date(2024, 7, 1, 9, 30, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) tables() []events.Table {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Table, len(p.events))
	for i, e := range p.events {
		out[i] = e.Table
	}
	return out
}

func testLogger() (*logging.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return logging.New(&buf, time.UTC), &buf
}

func testCatalog() *config.Catalog {
	return &config.Catalog{
		Services: []string{"Perizinan", "Pengaduan"},
		Requirements: map[string][]string{
			"Perizinan": {"KTP", "Surat Permohonan"},
		},
		TodoItems: []string{"Verifikasi berkas", "Input data ke sistem"},
	}
}

func strPtr(s string) *string { return &s }

func TestErrorHelpers(t *testing.T) {
	assert.ErrorIs(t, notFound(sql.ErrNoRows, "report"), ErrNotFound)
	assert.EqualError(t, notFound(sql.ErrNoRows, "report"), "not found: report")
	other := errors.New("boom")
	assert.Equal(t, other, notFound(other, "report"))

	assert.ErrorIs(t, conflict(repository.ErrDuplicate, "dup"), ErrConflict)
	assert.Equal(t, other, conflict(other, "dup"))

	assert.ErrorIs(t, invalidf("x %d", 1), ErrInvalidInput)
	assert.EqualError(t, forbiddenf("nope"), "action not permitted for role: nope")
}

func TestNotifier_LogsFailures(t *testing.T) {
	log, buf := testLogger()
	pub := &recordingPublisher{err: errors.New("broker down")}
	n := newNotifier(pub, log)

	n.publish(context.Background(), events.Event{Table: events.TableReports, Type: events.TypeInsert, ID: "r-1"})

	assert.Len(t, pub.events, 1)
	assert.Contains(t, buf.String(), `"msg":"event_publish_failed"`)
	assert.Contains(t, buf.String(), `"error":"broker down"`)
}

func TestActorUserID(t *testing.T) {
	assert.Nil(t, Actor{}.userID())
	id := Actor{ID: "u-1"}.userID()
	if assert.NotNil(t, id) {
		assert.Equal(t, "u-1", *id)
	}
}
