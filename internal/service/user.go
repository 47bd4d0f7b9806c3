package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"sitrack/internal/auth"
	"sitrack/internal/events"
	"sitrack/internal/logging"
	"sitrack/internal/model"
	"sitrack/internal/repository"
)

// DefaultEmailDomain is used when no email domain is configured.
const DefaultEmailDomain = "sitrack.gov.id"

// UserInput is the editable part of a profile. Password is optional on update.
type UserInput struct {
	Name     string     `json:"name"`
	FullName string     `json:"full_name"`
	Role     model.Role `json:"role"`
	Password string     `json:"password"`
}

// UserService manages profiles. Only admins reach it, except Staff which
// coordinators use to pick assignees.
type UserService interface {
	List(ctx context.Context, query string) ([]model.Profile, error)
	// Staff lists profiles with the Staff role.
	Staff(ctx context.Context) ([]model.Profile, error)
	Create(ctx context.Context, in UserInput) (*model.Profile, error)
	Update(ctx context.Context, id string, in UserInput) (*model.Profile, error)
	// Delete removes a profile. Admins cannot delete themselves, and a profile
	// assigned to a report that is not completed yet is kept.
	Delete(ctx context.Context, actor Actor, id string) error
}

type userService struct {
	store       repository.Store
	emailDomain string
	notify      notifier
	now         func() time.Time
}

// NewUserService constructs a new UserService.
func NewUserService(store repository.Store, emailDomain string, pub events.Publisher, log *logging.Logger) UserService {
	if emailDomain == "" {
		emailDomain = DefaultEmailDomain
	}
	return &userService{store: store, emailDomain: emailDomain, notify: newNotifier(pub, log), now: utcNow}
}

// SanitizeUsername keeps only ASCII letters and digits.
func SanitizeUsername(name string) string {
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// EmailFor derives the login email of a username.
func EmailFor(username, domain string) string {
	return strings.ToLower(username) + "@" + domain
}

func (s *userService) validate(in *UserInput) error {
	in.Name = SanitizeUsername(in.Name)
	in.FullName = strings.TrimSpace(in.FullName)
	if in.Name == "" {
		return invalidf("username must contain letters or digits")
	}
	if !in.Role.Valid() {
		return invalidf("unknown role %q", in.Role)
	}
	return nil
}

func (s *userService) List(ctx context.Context, query string) ([]model.Profile, error) {
	return s.store.Profiles().List(ctx, query)
}

func (s *userService) Staff(ctx context.Context) ([]model.Profile, error) {
	all, err := s.store.Profiles().List(ctx, "")
	if err != nil {
		return nil, err
	}
	out := make([]model.Profile, 0, len(all))
	for _, p := range all {
		if p.Role == model.RoleStaff {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *userService) Create(ctx context.Context, in UserInput) (*model.Profile, error) {
	if err := s.validate(&in); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, invalidf("%v", err)
	}
	now := s.now()
	p := &model.Profile{
		ID:           uuid.New().String(),
		Name:         in.Name,
		FullName:     in.FullName,
		Email:        EmailFor(in.Name, s.emailDomain),
		Role:         in.Role,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	stored, err := s.store.Profiles().Create(ctx, p)
	if err != nil {
		return nil, conflict(err, "username already exists")
	}
	s.notify.publish(ctx, profileEvent(events.TypeInsert, stored.ID, now))
	return stored, nil
}

func (s *userService) Update(ctx context.Context, id string, in UserInput) (*model.Profile, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if err := s.validate(&in); err != nil {
		return nil, err
	}
	var hash string
	if in.Password != "" {
		h, err := auth.HashPassword(in.Password)
		if err != nil {
			return nil, invalidf("%v", err)
		}
		hash = h
	}

	now := s.now()
	var (
		out     *model.Profile
		renamed bool
	)
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		cur, err := tx.Profiles().FindByID(ctx, id)
		if err != nil {
			return notFound(err, "profile")
		}
		before := cur.DisplayName()
		cur.Name = in.Name
		cur.FullName = in.FullName
		cur.Email = EmailFor(in.Name, s.emailDomain)
		cur.Role = in.Role
		cur.UpdatedAt = now
		if out, err = tx.Profiles().Update(ctx, cur); err != nil {
			return conflict(err, "username already exists")
		}
		renamed = out.DisplayName() != before
		if hash != "" {
			if err := tx.Profiles().UpdatePassword(ctx, id, hash, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notify.publish(ctx, profileEvent(events.TypeUpdate, id, now))
	if renamed {
		s.announceRename(ctx, id, now)
	}
	return out, nil
}

// announceRename republishes the profile's assignments so anything keyed by
// letter number, such as cached tracking results, drops the old staff name.
func (s *userService) announceRename(ctx context.Context, id string, at time.Time) {
	assignments, err := s.store.Assignments().ListForStaff(ctx, id, nil)
	if err != nil {
		s.notify.log.Error("profile_rename_lookup_failed", err, map[string]any{"component": "users", "id": id})
		return
	}
	evs := make([]events.Event, 0, len(assignments))
	for i := range assignments {
		a := &assignments[i]
		if a.Report == nil {
			continue
		}
		evs = append(evs, assignmentEvent(events.TypeUpdate, a, a.Report.NoSurat, at))
	}
	s.notify.publish(ctx, evs...)
}

func (s *userService) Delete(ctx context.Context, actor Actor, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if id == actor.ID {
		return forbiddenf("cannot delete your own profile")
	}
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		// The lock makes a concurrent assignment wait until the delete settles.
		if _, err := tx.Profiles().FindByIDForUpdate(ctx, id); err != nil {
			return notFound(err, "profile")
		}
		assignments, err := tx.Assignments().ListForStaff(ctx, id, nil)
		if err != nil {
			return err
		}
		if open := openReports(assignments); len(open) > 0 {
			return fmt.Errorf("%w: profile still has assignments on open reports: %s", ErrConflict, strings.Join(open, ", "))
		}
		return notFound(tx.Profiles().Delete(ctx, id), "profile")
	})
	if err != nil {
		return err
	}
	s.notify.publish(ctx, profileEvent(events.TypeDelete, id, s.now()))
	return nil
}

// openReports lists the letter numbers of reports that are not completed yet.
func openReports(assignments []model.TaskAssignment) []string {
	var out []string
	for _, a := range assignments {
		if a.Report != nil && a.Report.Status != model.StatusCompleted {
			out = append(out, a.Report.NoSurat)
		}
	}
	return out
}

func profileEvent(t events.Type, id string, at time.Time) events.Event {
	return events.Event{Table: events.TableProfiles, Type: t, ID: id, At: at}
}
