package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"sitrack/internal/config"
	"sitrack/internal/events"
	"sitrack/internal/logging"
	"sitrack/internal/model"
	"sitrack/internal/repository"
	"sitrack/internal/storage"
	"sitrack/internal/workflow"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100

	// fallbackSender is the sender label when the creator has no name.
	fallbackSender = "Pengguna TU"
)

// ReportInput is the editable part of a report.
type ReportInput struct {
	NoSurat              string            `json:"no_surat"`
	Hal                  string            `json:"hal"`
	Layanan              string            `json:"layanan"`
	DocumentVerification map[string]string `json:"document_verification"`
}

// ReportListQuery filters a report listing. Empty fields do not filter.
type ReportListQuery struct {
	Layanan string
	Status  model.Status
	Query   string
	Holder  string
	Limit   int
	Offset  int
}

// ReportListResult is the service-level DTO for paginated reports.
type ReportListResult struct {
	Items  []model.Report `json:"data"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// ReportStats counts reports per status for the dashboards.
// InProgress includes reports waiting for TU approval.
type ReportStats struct {
	Total             int `json:"total"`
	Draft             int `json:"draft"`
	InProgress        int `json:"in_progress"`
	PendingApprovalTU int `json:"pending_approval_tu"`
	RevisionRequired  int `json:"revision_required"`
	Completed         int `json:"completed"`
}

// ReportService registers and lists reports.
type ReportService interface {
	Create(ctx context.Context, actor Actor, in ReportInput) (*model.Report, error)
	// Update edits a draft report.
	Update(ctx context.Context, actor Actor, id string, in ReportInput) (*model.Report, error)
	// Delete removes a draft report, or any report when actor is an admin.
	Delete(ctx context.Context, actor Actor, id string) error
	// Get returns a report with assignments, history and attachments.
	Get(ctx context.Context, actor Actor, id string) (*model.ReportDetail, error)
	// List returns the reports visible to actor.
	List(ctx context.Context, actor Actor, q ReportListQuery) (*ReportListResult, error)
	Stats(ctx context.Context) (*ReportStats, error)
}

type reportService struct {
	store         repository.Store
	objects       storage.Storage
	catalog       *config.Catalog
	presignExpiry time.Duration
	notify        notifier
	log           *logging.Logger
	now           func() time.Time
}

// NewReportService constructs a new ReportService.
func NewReportService(store repository.Store, objects storage.Storage, catalog *config.Catalog, presignExpiry time.Duration, pub events.Publisher, log *logging.Logger) ReportService {
	n := newNotifier(pub, log)
	return &reportService{
		store:         store,
		objects:       objects,
		catalog:       catalog,
		presignExpiry: presignExpiry,
		notify:        n,
		log:           n.log,
		now:           utcNow,
	}
}

func (s *reportService) validate(in *ReportInput) error {
	in.NoSurat = strings.TrimSpace(in.NoSurat)
	in.Hal = strings.TrimSpace(in.Hal)
	in.Layanan = strings.TrimSpace(in.Layanan)
	if in.Hal == "" {
		return invalidf("hal is required")
	}
	if !s.catalog.HasService(in.Layanan) {
		return invalidf("unknown layanan %q", in.Layanan)
	}
	return validateVerification(in.DocumentVerification)
}

func validateVerification(v map[string]string) error {
	for doc, state := range v {
		if state != model.DocumentPresent && state != model.DocumentMissing {
			return invalidf("document %q must be %q or %q", doc, model.DocumentPresent, model.DocumentMissing)
		}
	}
	return nil
}

func (s *reportService) Create(ctx context.Context, actor Actor, in ReportInput) (*model.Report, error) {
	if actor.Role != model.RoleTU && actor.Role != model.RoleAdmin {
		return nil, forbiddenf("%s cannot register reports", actor.Role)
	}
	if err := s.validate(&in); err != nil {
		return nil, err
	}
	now := s.now()
	if in.NoSurat == "" {
		in.NoSurat = fmt.Sprintf("NS-%d", now.UnixMilli())
	}
	dari := strings.TrimSpace(actor.Name)
	if dari == "" {
		dari = fallbackSender
	}
	verification := in.DocumentVerification
	if verification == nil {
		verification = map[string]string{}
	}

	r := &model.Report{
		ID:                   uuid.New().String(),
		NoSurat:              in.NoSurat,
		Hal:                  in.Hal,
		Layanan:              in.Layanan,
		Dari:                 dari,
		Status:               model.StatusDraft,
		CreatedBy:            actor.ID,
		DocumentVerification: verification,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	var (
		stored *model.Report
		entry  *model.WorkflowHistory
	)
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		var err error
		if stored, err = tx.Reports().Create(ctx, r); err != nil {
			return conflict(err, "no_surat already exists")
		}
		entry, err = appendHistory(ctx, tx, stored.ID, workflow.ActionCreate, "", stored.Status, actor, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.notify.publish(ctx, reportEvent(events.TypeInsert, stored, now), historyEvent(entry, stored.NoSurat))
	return stored, nil
}

func (s *reportService) Update(ctx context.Context, actor Actor, id string, in ReportInput) (*model.Report, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if err := s.validate(&in); err != nil {
		return nil, err
	}
	now := s.now()

	var (
		out     *model.Report
		entry   *model.WorkflowHistory
		renamed string
	)
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		cur, err := tx.Reports().FindByIDForUpdate(ctx, id)
		if err != nil {
			return notFound(err, "report")
		}
		if _, err := workflow.Transition(cur.Status, workflow.ActionEdit, actor.Role); err != nil {
			return err
		}
		if in.NoSurat != "" && in.NoSurat != cur.NoSurat {
			renamed = cur.NoSurat
			cur.NoSurat = in.NoSurat
		}
		cur.Hal = in.Hal
		cur.Layanan = in.Layanan
		if in.DocumentVerification != nil {
			cur.DocumentVerification = in.DocumentVerification
		}
		cur.UpdatedAt = now
		if out, err = tx.Reports().Update(ctx, cur); err != nil {
			return conflict(notFound(err, "report"), "no_surat already exists")
		}
		entry, err = appendHistory(ctx, tx, id, workflow.ActionEdit, "", out.Status, actor, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	evs := []events.Event{reportEvent(events.TypeUpdate, out, now), historyEvent(entry, out.NoSurat)}
	if renamed != "" {
		// Subscribers keyed by letter number also need to hear about the old one.
		prev := reportEvent(events.TypeUpdate, out, now)
		prev.NoSurat = renamed
		evs = append(evs, prev)
	}
	s.notify.publish(ctx, evs...)
	return out, nil
}

func (s *reportService) Delete(ctx context.Context, actor Actor, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	r, err := s.store.Reports().FindByID(ctx, id)
	if err != nil {
		return notFound(err, "report")
	}
	if _, err := workflow.Transition(r.Status, workflow.ActionDelete, actor.Role); err != nil {
		return err
	}
	attachments, err := s.store.Attachments().ListByReport(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Reports().Delete(ctx, id); err != nil {
		return err
	}
	// Rows cascade with the report; stored objects do not.
	for _, a := range attachments {
		if err := s.objects.Delete(ctx, a.StoragePath); err != nil {
			s.log.Error("attachment_cleanup_failed", err, map[string]any{
				"component": "storage",
				"report_id": id,
				"key":       a.StoragePath,
			})
		}
	}
	s.notify.publish(ctx, reportEvent(events.TypeDelete, r, s.now()))
	return nil
}

func (s *reportService) Get(ctx context.Context, actor Actor, id string) (*model.ReportDetail, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	r, err := s.store.Reports().FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "report")
	}
	assignments, err := s.store.Assignments().ListByReport(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == model.RoleStaff && !assignedTo(assignments, actor.ID) {
		return nil, forbiddenf("report is not assigned to you")
	}
	history, err := s.store.History().ListByReport(ctx, id)
	if err != nil {
		return nil, err
	}
	attachments, err := s.store.Attachments().ListByReport(ctx, id)
	if err != nil {
		return nil, err
	}
	for i := range attachments {
		attachments[i].URL = presign(ctx, s.objects, s.log, attachments[i].StoragePath, s.presignExpiry)
	}
	return &model.ReportDetail{
		Report:      *r,
		Progress:    workflow.Progress(r.Status, assignments),
		Assignments: assignments,
		History:     history,
		Attachments: attachments,
	}, nil
}

func (s *reportService) List(ctx context.Context, actor Actor, q ReportListQuery) (*ReportListResult, error) {
	if q.Status != "" && !q.Status.Valid() {
		return nil, invalidf("unknown status %q", q.Status)
	}
	if q.Limit <= 0 {
		q.Limit = defaultPageLimit
	}
	if q.Limit > maxPageLimit {
		q.Limit = maxPageLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	f := repository.ReportFilter{
		Layanan:   strings.TrimSpace(q.Layanan),
		Status:    q.Status,
		Query:     q.Query,
		HolderID:  q.Holder,
		PageQuery: repository.PageQuery{Limit: q.Limit, Offset: q.Offset},
	}
	switch actor.Role {
	case model.RoleKoordinator:
		f.HolderID = actor.ID
		f.Statuses = []model.Status{model.StatusInProgress, model.StatusRevisionRequired}
	case model.RoleStaff:
		f.HolderID = ""
		f.StaffID = actor.ID
	}

	res, err := s.store.Reports().List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &ReportListResult{Items: res.Items, Total: res.Total, Limit: q.Limit, Offset: q.Offset}, nil
}

func (s *reportService) Stats(ctx context.Context) (*ReportStats, error) {
	counts, err := s.store.Reports().CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	st := &ReportStats{
		Draft:             counts[model.StatusDraft],
		PendingApprovalTU: counts[model.StatusPendingApprovalTU],
		RevisionRequired:  counts[model.StatusRevisionRequired],
		Completed:         counts[model.StatusCompleted],
	}
	st.InProgress = counts[model.StatusInProgress] + st.PendingApprovalTU
	for _, n := range counts {
		st.Total += n
	}
	return st, nil
}

func assignedTo(assignments []model.TaskAssignment, staffID string) bool {
	for _, a := range assignments {
		if a.StaffID == staffID {
			return true
		}
	}
	return false
}

// appendHistory writes the log entry of an action.
func appendHistory(ctx context.Context, tx repository.Store, reportID string, a workflow.Action, notes string, status model.Status, actor Actor, at time.Time) (*model.WorkflowHistory, error) {
	return tx.History().Append(ctx, &model.WorkflowHistory{
		ID:        uuid.New().String(),
		ReportID:  reportID,
		Action:    workflow.ActionLabel(a),
		Notes:     strings.TrimSpace(notes),
		UserID:    actor.userID(),
		ActorName: actor.Name,
		Status:    status,
		CreatedAt: at,
	})
}

// presign returns a download URL for key, or "" when signing fails.
func presign(ctx context.Context, objects storage.Storage, log *logging.Logger, key string, expiry time.Duration) string {
	u, err := objects.PresignGet(ctx, key, expiry)
	if err != nil {
		log.Error("presign_failed", err, map[string]any{"component": "storage", "key": key})
		return ""
	}
	return u
}
