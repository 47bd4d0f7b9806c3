package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"sitrack/internal/events"
	"sitrack/internal/logging"
	"sitrack/internal/model"
	"sitrack/internal/repository"
	"sitrack/internal/storage"
)

// UploadInput describes an uploaded file.
type UploadInput struct {
	Reader      io.Reader
	FileName    string
	ContentType string
	Size        int64
}

// AttachmentService stores the documents of a report.
type AttachmentService interface {
	// Upload stores the content, then saves metadata. The stored object is
	// removed again when the metadata cannot be saved.
	Upload(ctx context.Context, actor Actor, reportID string, in UploadInput) (*model.FileAttachment, error)
	// List returns a report's attachments with presigned download URLs.
	// Staff only see the documents of reports assigned to them.
	List(ctx context.Context, actor Actor, reportID string) ([]model.FileAttachment, error)
	// Get returns one attachment with a presigned download URL.
	Get(ctx context.Context, actor Actor, id string) (*model.FileAttachment, error)
	// Open streams an attachment's content.
	Open(ctx context.Context, actor Actor, id string) (io.ReadCloser, *model.FileAttachment, error)
	// Delete removes an attachment from storage, then deletes its record.
	Delete(ctx context.Context, actor Actor, id string) error
}

type attachmentService struct {
	objects       storage.Storage
	store         repository.Store
	presignExpiry time.Duration
	notify        notifier
	log           *logging.Logger
	now           func() time.Time
}

// NewAttachmentService constructs a new AttachmentService.
func NewAttachmentService(objects storage.Storage, store repository.Store, presignExpiry time.Duration, pub events.Publisher, log *logging.Logger) AttachmentService {
	n := newNotifier(pub, log)
	return &attachmentService{
		objects:       objects,
		store:         store,
		presignExpiry: presignExpiry,
		notify:        n,
		log:           n.log,
		now:           utcNow,
	}
}

func (s *attachmentService) Upload(ctx context.Context, actor Actor, reportID string, in UploadInput) (*model.FileAttachment, error) {
	if reportID == "" {
		return nil, ErrIDRequired
	}
	if in.Reader == nil {
		return nil, ErrReaderNil
	}
	if actor.Role == model.RoleStaff {
		return nil, forbiddenf("staff cannot upload report documents")
	}
	r, err := s.store.Reports().FindByID(ctx, reportID)
	if err != nil {
		return nil, notFound(err, "report")
	}

	name := filepath.Base(strings.TrimSpace(in.FileName))
	if name == "." || name == string(filepath.Separator) {
		name = "file"
	}
	contentType := in.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	id := uuid.New().String()
	key := storage.ReportKey(r.ID, id+strings.ToLower(filepath.Ext(name)))

	obj, err := s.objects.Put(ctx, key, in.Reader, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": name,
			"report-id":         r.ID,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	now := s.now()
	stored, err := s.store.Attachments().Create(ctx, &model.FileAttachment{
		ID:          id,
		ReportID:    r.ID,
		FileName:    name,
		StoragePath: obj.Key,
		Size:        obj.Size,
		ContentType: obj.ContentType,
		UploadedBy:  actor.ID,
		CreatedAt:   now,
	})
	if err != nil {
		if delErr := s.objects.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	stored.URL = presign(ctx, s.objects, s.log, stored.StoragePath, s.presignExpiry)
	s.notify.publish(ctx, attachmentEvent(events.TypeInsert, stored, r.NoSurat, now))
	return stored, nil
}

// authorizeRead rejects staff who are not assigned to the report.
func (s *attachmentService) authorizeRead(ctx context.Context, actor Actor, reportID string) error {
	if actor.Role != model.RoleStaff {
		return nil
	}
	assignments, err := s.store.Assignments().ListByReport(ctx, reportID)
	if err != nil {
		return err
	}
	if !assignedTo(assignments, actor.ID) {
		return forbiddenf("report is not assigned to you")
	}
	return nil
}

func (s *attachmentService) List(ctx context.Context, actor Actor, reportID string) ([]model.FileAttachment, error) {
	if reportID == "" {
		return nil, ErrIDRequired
	}
	if err := s.authorizeRead(ctx, actor, reportID); err != nil {
		return nil, err
	}
	items, err := s.store.Attachments().ListByReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].URL = presign(ctx, s.objects, s.log, items[i].StoragePath, s.presignExpiry)
	}
	return items, nil
}

func (s *attachmentService) Get(ctx context.Context, actor Actor, id string) (*model.FileAttachment, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	a, err := s.store.Attachments().FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "attachment")
	}
	if err := s.authorizeRead(ctx, actor, a.ReportID); err != nil {
		return nil, err
	}
	a.URL = presign(ctx, s.objects, s.log, a.StoragePath, s.presignExpiry)
	return a, nil
}

func (s *attachmentService) Open(ctx context.Context, actor Actor, id string) (io.ReadCloser, *model.FileAttachment, error) {
	if id == "" {
		return nil, nil, ErrIDRequired
	}
	a, err := s.store.Attachments().FindByID(ctx, id)
	if err != nil {
		return nil, nil, notFound(err, "attachment")
	}
	if err := s.authorizeRead(ctx, actor, a.ReportID); err != nil {
		return nil, nil, err
	}
	rc, info, err := s.objects.Get(ctx, a.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("read storage: %w", err)
	}
	if info.ContentType != "" {
		a.ContentType = info.ContentType
	}
	return rc, a, nil
}

func (s *attachmentService) Delete(ctx context.Context, actor Actor, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if actor.Role == model.RoleStaff {
		return forbiddenf("staff cannot delete report documents")
	}
	a, err := s.store.Attachments().FindByID(ctx, id)
	if err != nil {
		return notFound(err, "attachment")
	}
	// Storage first: a failure keeps the row so the object is not orphaned.
	if err := s.objects.Delete(ctx, a.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	if err := s.store.Attachments().Delete(ctx, id); err != nil {
		return err
	}
	s.notify.publish(ctx, attachmentEvent(events.TypeDelete, a, "", s.now()))
	return nil
}

func attachmentEvent(t events.Type, a *model.FileAttachment, noSurat string, at time.Time) events.Event {
	return events.Event{
		Table:    events.TableAttachments,
		Type:     t,
		ID:       a.ID,
		ReportID: a.ReportID,
		NoSurat:  noSurat,
		At:       at,
	}
}
