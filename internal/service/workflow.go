package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"sitrack/internal/config"
	"sitrack/internal/events"
	"sitrack/internal/logging"
	"sitrack/internal/metrics"
	"sitrack/internal/model"
	"sitrack/internal/repository"
	"sitrack/internal/workflow"
)

// AssignInput describes a staff assignment made by a coordinator.
type AssignInput struct {
	StaffIDs             []string          `json:"staff_ids"`
	TodoList             []string          `json:"todo_list"`
	Notes                string            `json:"notes"`
	DocumentVerification map[string]string `json:"document_verification"`
}

// WorkflowService moves reports and assignments through the workflow.
// Every action checks the actor's role and the current status, writes a
// history entry and publishes change events.
type WorkflowService interface {
	// Forward sends a draft report to a coordinator.
	Forward(ctx context.Context, actor Actor, reportID, coordinatorID, notes string) (*model.Report, error)
	// Assign gives a report to one or more staff members. Staff already
	// assigned to the report are skipped.
	Assign(ctx context.Context, actor Actor, reportID string, in AssignInput) ([]model.TaskAssignment, error)
	// Submit completes the actor's own assignment.
	Submit(ctx context.Context, actor Actor, assignmentID string, completed []string, notes string) (*model.TaskAssignment, error)
	// RequestRevision sends an assignment back to its staff member.
	RequestRevision(ctx context.Context, actor Actor, assignmentID, notes string) (*model.TaskAssignment, error)
	// ForwardToTU approves a report whose assignments are all completed.
	ForwardToTU(ctx context.Context, actor Actor, reportID, notes string) (*model.Report, error)
	// ReturnToCoordinator sends a report awaiting approval back for more work.
	ReturnToCoordinator(ctx context.Context, actor Actor, reportID, notes string) (*model.Report, error)
	// Finalize completes a report.
	Finalize(ctx context.Context, actor Actor, reportID, notes string) (*model.Report, error)
	// MyTasks lists the actor's open assignments, newest first.
	MyTasks(ctx context.Context, actor Actor) ([]model.TaskAssignment, error)
}

type workflowService struct {
	store   repository.Store
	catalog *config.Catalog
	metrics *metrics.Workflow
	notify  notifier
	now     func() time.Time
}

// NewWorkflowService constructs a new WorkflowService. m may be nil.
func NewWorkflowService(store repository.Store, catalog *config.Catalog, m *metrics.Workflow, pub events.Publisher, log *logging.Logger) WorkflowService {
	return &workflowService{
		store:   store,
		catalog: catalog,
		metrics: m,
		notify:  newNotifier(pub, log),
		now:     utcNow,
	}
}

// observe records the outcome of an action.
func (s *workflowService) observe(a workflow.Action, from, to model.Status, err error) {
	switch {
	case err == nil:
		s.metrics.Transition(string(a), string(from), string(to))
	case errors.Is(err, workflow.ErrForbidden):
		s.metrics.Rejected(string(a), "forbidden")
	case errors.Is(err, workflow.ErrInvalidTransition):
		s.metrics.Rejected(string(a), "invalid_transition")
	case errors.Is(err, ErrInvalidInput):
		s.metrics.Rejected(string(a), "invalid_input")
	}
}

// move applies a status-changing action to a report.
func (s *workflowService) move(ctx context.Context, actor Actor, reportID string, a workflow.Action, notes string, holder func(tx repository.Store, r *model.Report) (*string, error)) (*model.Report, error) {
	if reportID == "" {
		return nil, ErrIDRequired
	}
	now := s.now()

	var (
		out   *model.Report
		from  model.Status
		entry *model.WorkflowHistory
	)
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		r, err := tx.Reports().FindByIDForUpdate(ctx, reportID)
		if err != nil {
			return notFound(err, "report")
		}
		from = r.Status
		to, err := workflow.Transition(r.Status, a, actor.Role)
		if err != nil {
			return err
		}
		h, err := holder(tx, r)
		if err != nil {
			return err
		}
		if err := tx.Reports().UpdateStatus(ctx, r.ID, to, h, now); err != nil {
			return notFound(err, "report")
		}
		r.Status, r.CurrentHolder, r.UpdatedAt = to, h, now
		out = r
		entry, err = appendHistory(ctx, tx, r.ID, a, notes, to, actor, now)
		return err
	})
	s.observe(a, from, statusOf(out, from), err)
	if err != nil {
		return nil, err
	}
	s.notify.publish(ctx, reportEvent(events.TypeUpdate, out, now), historyEvent(entry, out.NoSurat))
	return out, nil
}

func statusOf(r *model.Report, fallback model.Status) model.Status {
	if r == nil {
		return fallback
	}
	return r.Status
}

func (s *workflowService) Forward(ctx context.Context, actor Actor, reportID, coordinatorID, notes string) (*model.Report, error) {
	if coordinatorID == "" {
		return nil, invalidf("coordinator is required")
	}
	return s.move(ctx, actor, reportID, workflow.ActionForward, notes, func(tx repository.Store, _ *model.Report) (*string, error) {
		p, err := tx.Profiles().FindByID(ctx, coordinatorID)
		if err != nil {
			if errors.Is(notFound(err, "profile"), ErrNotFound) {
				return nil, invalidf("coordinator %s does not exist", coordinatorID)
			}
			return nil, err
		}
		if p.Role != model.RoleKoordinator {
			return nil, invalidf("%s is not a coordinator", p.DisplayName())
		}
		return &p.ID, nil
	})
}

func (s *workflowService) ForwardToTU(ctx context.Context, actor Actor, reportID, notes string) (*model.Report, error) {
	return s.move(ctx, actor, reportID, workflow.ActionForwardToTU, notes, func(tx repository.Store, r *model.Report) (*string, error) {
		assignments, err := tx.Assignments().ListByReport(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		if len(assignments) > 0 && !workflow.AllCompleted(assignments) {
			return nil, invalidf("all staff assignments must be completed first")
		}
		return nil, nil
	})
}

func (s *workflowService) ReturnToCoordinator(ctx context.Context, actor Actor, reportID, notes string) (*model.Report, error) {
	return s.move(ctx, actor, reportID, workflow.ActionReturn, notes, func(tx repository.Store, r *model.Report) (*string, error) {
		assignments, err := tx.Assignments().ListByReport(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		for i := len(assignments) - 1; i >= 0; i-- {
			if id := assignments[i].CoordinatorID; id != "" {
				return &id, nil
			}
		}
		return nil, nil
	})
}

func (s *workflowService) Finalize(ctx context.Context, actor Actor, reportID, notes string) (*model.Report, error) {
	return s.move(ctx, actor, reportID, workflow.ActionFinalize, notes, func(repository.Store, *model.Report) (*string, error) {
		return nil, nil
	})
}

func (s *workflowService) Assign(ctx context.Context, actor Actor, reportID string, in AssignInput) ([]model.TaskAssignment, error) {
	if reportID == "" {
		return nil, ErrIDRequired
	}
	staffIDs := dedupe(in.StaffIDs)
	if len(staffIDs) == 0 {
		return nil, invalidf("at least one staff member is required")
	}
	todo := dedupe(in.TodoList)
	if len(todo) == 0 {
		return nil, invalidf("todo list is required")
	}
	if len(s.catalog.TodoItems) > 0 {
		for _, t := range todo {
			if !s.catalog.HasTodo(t) {
				return nil, invalidf("unknown todo item %q", t)
			}
		}
	}
	if err := validateVerification(in.DocumentVerification); err != nil {
		return nil, err
	}
	now := s.now()

	var (
		report  *model.Report
		created []model.TaskAssignment
		entry   *model.WorkflowHistory
	)
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		r, err := tx.Reports().FindByIDForUpdate(ctx, reportID)
		if err != nil {
			return notFound(err, "report")
		}
		report = r
		if _, err := workflow.Transition(r.Status, workflow.ActionAssign, actor.Role); err != nil {
			return err
		}

		verification := mergeVerification(r.DocumentVerification, in.DocumentVerification)
		if missing := missingDocuments(s.catalog.RequiredDocuments(r.Layanan), verification); len(missing) > 0 {
			return invalidf("required documents not verified: %s", strings.Join(missing, ", "))
		}
		if in.DocumentVerification != nil {
			r.DocumentVerification = verification
			r.UpdatedAt = now
			if r, err = tx.Reports().Update(ctx, r); err != nil {
				return err
			}
			report = r
		}

		existing, err := tx.Assignments().ListByReport(ctx, r.ID)
		if err != nil {
			return err
		}
		var names []string
		for _, id := range staffIDs {
			if assignedTo(existing, id) {
				continue
			}
			p, err := tx.Profiles().FindByID(ctx, id)
			if err != nil {
				if errors.Is(notFound(err, "profile"), ErrNotFound) {
					return invalidf("staff %s does not exist", id)
				}
				return err
			}
			if p.Role != model.RoleStaff {
				return invalidf("%s is not a staff member", p.DisplayName())
			}
			a, err := tx.Assignments().Create(ctx, &model.TaskAssignment{
				ID:             uuid.New().String(),
				ReportID:       r.ID,
				StaffID:        p.ID,
				CoordinatorID:  actor.ID,
				TodoList:       todo,
				CompletedTasks: []string{},
				Notes:          strings.TrimSpace(in.Notes),
				Status:         model.StatusInProgress,
				CreatedAt:      now,
			})
			if err != nil {
				return conflict(err, "staff already assigned")
			}
			a.StaffName = p.DisplayName()
			created = append(created, *a)
			names = append(names, p.DisplayName())
		}
		if len(created) == 0 {
			return fmt.Errorf("%w: every selected staff member is already assigned", ErrConflict)
		}

		holder := r.CurrentHolder
		if actor.Role == model.RoleKoordinator {
			holder = actor.userID()
		}
		if err := tx.Reports().UpdateStatus(ctx, r.ID, r.Status, holder, now); err != nil {
			return err
		}
		report.CurrentHolder, report.UpdatedAt = holder, now

		notes := "Ditugaskan kepada: " + strings.Join(names, ", ")
		if n := strings.TrimSpace(in.Notes); n != "" {
			notes += ". " + n
		}
		entry, err = appendHistory(ctx, tx, r.ID, workflow.ActionAssign, notes, r.Status, actor, now)
		return err
	})
	var status model.Status
	if report != nil {
		status = report.Status
	}
	s.observe(workflow.ActionAssign, status, status, err)
	if err != nil {
		return nil, err
	}

	evs := []events.Event{reportEvent(events.TypeUpdate, report, now), historyEvent(entry, report.NoSurat)}
	for i := range created {
		evs = append(evs, assignmentEvent(events.TypeInsert, &created[i], report.NoSurat, now))
	}
	s.notify.publish(ctx, evs...)
	return created, nil
}

func (s *workflowService) Submit(ctx context.Context, actor Actor, assignmentID string, completed []string, notes string) (*model.TaskAssignment, error) {
	if assignmentID == "" {
		return nil, ErrIDRequired
	}
	completed = dedupe(completed)
	now := s.now()

	var (
		out    *model.TaskAssignment
		report *model.Report
		from   model.Status
		entry  *model.WorkflowHistory
	)
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		a, err := tx.Assignments().FindByIDForUpdate(ctx, assignmentID)
		if err != nil {
			return notFound(err, "assignment")
		}
		if a.StaffID != actor.ID {
			return forbiddenf("assignment belongs to another staff member")
		}
		r, err := tx.Reports().FindByIDForUpdate(ctx, a.ReportID)
		if err != nil {
			return notFound(err, "report")
		}
		report, from = r, r.Status
		if _, err := workflow.Transition(r.Status, workflow.ActionSubmit, actor.Role); err != nil {
			return err
		}
		next, err := workflow.AssignmentTransition(a.Status, workflow.ActionSubmit)
		if err != nil {
			return err
		}
		if missing := missingTasks(a.TodoList, completed); len(missing) > 0 {
			return invalidf("unfinished tasks: %s", strings.Join(missing, ", "))
		}

		a.Status = next
		a.CompletedTasks = completed
		a.Progress = 100
		a.CompletedAt = &now
		if err := tx.Assignments().Update(ctx, a); err != nil {
			return notFound(err, "assignment")
		}
		out = a

		all, err := tx.Assignments().ListByReport(ctx, r.ID)
		if err != nil {
			return err
		}
		all = replaceAssignment(all, *a)
		if to := workflow.StatusAfterSubmit(all); to != r.Status {
			if err := tx.Reports().UpdateStatus(ctx, r.ID, to, r.CurrentHolder, now); err != nil {
				return err
			}
			r.Status, r.UpdatedAt = to, now
		}
		entry, err = appendHistory(ctx, tx, r.ID, workflow.ActionSubmit, notes, r.Status, actor, now)
		return err
	})
	s.observe(workflow.ActionSubmit, from, statusOf(report, from), err)
	if err != nil {
		return nil, err
	}
	s.notify.publish(ctx,
		assignmentEvent(events.TypeUpdate, out, report.NoSurat, now),
		reportEvent(events.TypeUpdate, report, now),
		historyEvent(entry, report.NoSurat),
	)
	return out, nil
}

func (s *workflowService) RequestRevision(ctx context.Context, actor Actor, assignmentID, notes string) (*model.TaskAssignment, error) {
	if assignmentID == "" {
		return nil, ErrIDRequired
	}
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return nil, invalidf("revision notes are required")
	}
	now := s.now()

	var (
		out    *model.TaskAssignment
		report *model.Report
		from   model.Status
		entry  *model.WorkflowHistory
	)
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		a, err := tx.Assignments().FindByIDForUpdate(ctx, assignmentID)
		if err != nil {
			return notFound(err, "assignment")
		}
		r, err := tx.Reports().FindByIDForUpdate(ctx, a.ReportID)
		if err != nil {
			return notFound(err, "report")
		}
		report, from = r, r.Status
		to, err := workflow.Transition(r.Status, workflow.ActionRequestRevision, actor.Role)
		if err != nil {
			return err
		}
		next, err := workflow.AssignmentTransition(a.Status, workflow.ActionRequestRevision)
		if err != nil {
			return err
		}

		a.Status = next
		a.RevisionNotes = notes
		a.CompletedTasks = []string{}
		a.Progress = 0
		a.CompletedAt = nil
		if err := tx.Assignments().Update(ctx, a); err != nil {
			return notFound(err, "assignment")
		}
		out = a

		holder := r.CurrentHolder
		if actor.Role == model.RoleKoordinator {
			holder = actor.userID()
		}
		if err := tx.Reports().UpdateStatus(ctx, r.ID, to, holder, now); err != nil {
			return err
		}
		r.Status, r.CurrentHolder, r.UpdatedAt = to, holder, now

		staff := a.StaffName
		if staff == "" {
			staff = a.StaffID
		}
		entry, err = appendHistory(ctx, tx, r.ID, workflow.ActionRequestRevision, fmt.Sprintf("%s: %s", staff, notes), to, actor, now)
		return err
	})
	s.observe(workflow.ActionRequestRevision, from, statusOf(report, from), err)
	if err != nil {
		return nil, err
	}
	s.notify.publish(ctx,
		assignmentEvent(events.TypeUpdate, out, report.NoSurat, now),
		reportEvent(events.TypeUpdate, report, now),
		historyEvent(entry, report.NoSurat),
	)
	return out, nil
}

func (s *workflowService) MyTasks(ctx context.Context, actor Actor) ([]model.TaskAssignment, error) {
	if actor.Role != model.RoleStaff {
		return nil, forbiddenf("only staff have tasks")
	}
	return s.store.Assignments().ListForStaff(ctx, actor.ID, []model.Status{model.StatusInProgress, model.StatusRevisionRequired})
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func mergeVerification(cur, update map[string]string) map[string]string {
	out := make(map[string]string, len(cur)+len(update))
	for k, v := range cur {
		out[k] = v
	}
	for k, v := range update {
		out[k] = v
	}
	return out
}

func missingDocuments(required []string, verification map[string]string) []string {
	var missing []string
	for _, doc := range required {
		if verification[doc] != model.DocumentPresent {
			missing = append(missing, doc)
		}
	}
	return missing
}

func missingTasks(todo, completed []string) []string {
	done := make(map[string]bool, len(completed))
	for _, c := range completed {
		done[c] = true
	}
	var missing []string
	for _, t := range todo {
		if !done[t] {
			missing = append(missing, t)
		}
	}
	return missing
}

func replaceAssignment(list []model.TaskAssignment, a model.TaskAssignment) []model.TaskAssignment {
	for i := range list {
		if list[i].ID == a.ID {
			list[i] = a
			return list
		}
	}
	return append(list, a)
}
