package service

import (
	"context"
	"math"
	"strings"
	"time"

	"sitrack/internal/logging"
	"sitrack/internal/model"
	"sitrack/internal/repository"
	"sitrack/internal/workflow"
)

const (
	systemActor      = "Sistem"
	unknownStaff     = "Staff tidak diketahui"
	stepDoneFallback = "Proses telah dilaksanakan."
)

// TrackingStep is one of the fixed public process steps.
type TrackingStep struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	Date        *time.Time `json:"date,omitempty"`
	Actor       string     `json:"actor,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// CoordinatorNote is what a coordinator wrote for one staff member.
type CoordinatorNote struct {
	StaffName    string `json:"staff_name"`
	Note         string `json:"note,omitempty"`
	RevisionNote string `json:"revision_note,omitempty"`
}

// TrackingResult is the public view of a report.
type TrackingResult struct {
	NoSurat          string            `json:"no_surat"`
	Hal              string            `json:"hal"`
	Layanan          string            `json:"layanan"`
	Status           string            `json:"status"`
	StatusCode       model.Status      `json:"status_code"`
	Progress         int               `json:"progress"`
	Timeline         []TrackingStep    `json:"timeline"`
	CoordinatorNotes []CoordinatorNote `json:"coordinator_notes"`
	LastUpdate       time.Time         `json:"last_update"`
}

// TrackingCache stores tracking results by letter number.
type TrackingCache interface {
	Get(ctx context.Context, noSurat string, dst any) (bool, error)
	Set(ctx context.Context, noSurat string, v any) error
}

// TrackingService answers public lookups by letter number.
type TrackingService interface {
	// Track finds a report by letter number, ignoring case and surrounding spaces.
	Track(ctx context.Context, search string) (*TrackingResult, error)
}

type trackingService struct {
	store repository.Store
	cache TrackingCache
	log   *logging.Logger
}

// NewTrackingService constructs a new TrackingService. cache may be nil.
func NewTrackingService(store repository.Store, cache TrackingCache, log *logging.Logger) TrackingService {
	if log == nil {
		log = logging.Default()
	}
	return &trackingService{store: store, cache: cache, log: log}
}

func (s *trackingService) Track(ctx context.Context, search string) (*TrackingResult, error) {
	search = strings.TrimSpace(search)
	if search == "" {
		return nil, ErrSearchRequired
	}

	if s.cache != nil {
		var cached TrackingResult
		hit, err := s.cache.Get(ctx, search, &cached)
		if err != nil {
			s.log.Warn("tracking_cache_get_failed", map[string]any{"component": "cache", "error": err.Error()})
		} else if hit {
			return &cached, nil
		}
	}

	r, err := s.store.Reports().FindByNoSurat(ctx, search)
	if err != nil {
		return nil, notFound(err, "report")
	}
	history, err := s.store.History().ListByReport(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	assignments, err := s.store.Assignments().ListByReport(ctx, r.ID)
	if err != nil {
		return nil, err
	}

	res := BuildTracking(r, history, assignments)
	if s.cache != nil {
		if err := s.cache.Set(ctx, search, res); err != nil {
			s.log.Warn("tracking_cache_set_failed", map[string]any{"component": "cache", "error": err.Error()})
		}
	}
	return res, nil
}

// BuildTracking assembles the public view from a report, its history
// (oldest first) and its assignments.
func BuildTracking(r *model.Report, history []model.WorkflowHistory, assignments []model.TaskAssignment) *TrackingResult {
	res := &TrackingResult{
		NoSurat:          r.NoSurat,
		Hal:              r.Hal,
		Layanan:          r.Layanan,
		Status:           workflow.StatusLabel(r.Status),
		StatusCode:       r.Status,
		Progress:         TrackingProgress(r.Status, len(history)),
		Timeline:         timeline(history),
		CoordinatorNotes: coordinatorNotes(assignments),
		LastUpdate:       r.CreatedAt,
	}
	if n := len(history); n > 0 {
		res.LastUpdate = history[n-1].CreatedAt
	}
	return res
}

// TrackingProgress estimates progress from the number of history entries.
func TrackingProgress(status model.Status, entries int) int {
	steps := len(workflow.Steps)
	switch {
	case status == model.StatusCompleted:
		return 100
	case entries == 0:
		return 5
	case entries >= steps:
		return 95
	}
	p := float64(entries) / float64(steps-1) * 95
	return int(math.Round(math.Min(p, 95)))
}

// timeline marks the steps reached by history. An entry whose action names no
// step counts for the step at its position; later entries overwrite earlier
// ones for the same step.
func timeline(history []model.WorkflowHistory) []TrackingStep {
	steps := make([]TrackingStep, len(workflow.Steps))
	index := make(map[string]int, len(workflow.Steps))
	for i, st := range workflow.Steps {
		steps[i] = TrackingStep{Title: st.Title, Description: st.Description}
		index[st.Title] = i
	}
	for pos, h := range history {
		title := workflow.StepOf(h.Action)
		i, ok := index[title]
		if !ok {
			if pos >= len(steps) {
				continue
			}
			i = pos
		}
		at := h.CreatedAt
		st := &steps[i]
		st.Completed = true
		st.Date = &at
		st.Actor = h.ActorName
		if st.Actor == "" {
			st.Actor = systemActor
		}
		st.Notes = h.Notes
		if st.Notes == "" {
			st.Notes = stepDoneFallback
		}
	}
	return steps
}

func coordinatorNotes(assignments []model.TaskAssignment) []CoordinatorNote {
	out := make([]CoordinatorNote, 0, len(assignments))
	for _, a := range assignments {
		if a.Notes == "" && a.RevisionNotes == "" {
			continue
		}
		name := a.StaffName
		if name == "" {
			name = unknownStaff
		}
		out = append(out, CoordinatorNote{StaffName: name, Note: a.Notes, RevisionNote: a.RevisionNotes})
	}
	return out
}
