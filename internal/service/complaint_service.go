package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/municipal-services/complaint-service/internal/domain"
	"github.com/municipal-services/complaint-service/internal/events"
	"github.com/municipal-services/complaint-service/internal/repository"
)

// ComplaintService coordinates the complaint lifecycle: it validates and
// applies transitions, persists them, and publishes post-commit events for
// downstream notification.
type ComplaintService struct {
	complaints repository.ComplaintRepository
	employees  repository.EmployeeRepository
	offices    repository.OfficeRepository
	dispatcher events.Dispatcher
}

// ComplaintDependencies bundles collaborators for the lifecycle service.
type ComplaintDependencies struct {
	ComplaintRepo repository.ComplaintRepository
	EmployeeRepo  repository.EmployeeRepository
	OfficeRepo    repository.OfficeRepository
	Dispatcher    events.Dispatcher
}

// ComplaintCreateInput describes complaint creation payload.
type ComplaintCreateInput struct {
	CategoryID  int
	Subject     string
	Description string
	OfficeType  string
}

// NewComplaintService constructs the service.
func NewComplaintService(deps ComplaintDependencies) *ComplaintService {
	return &ComplaintService{
		complaints: deps.ComplaintRepo,
		employees:  deps.EmployeeRepo,
		offices:    deps.OfficeRepo,
		dispatcher: deps.Dispatcher,
	}
}

// FindAll returns every complaint, newest first.
func (s *ComplaintService) FindAll(ctx context.Context) ([]domain.Complaint, error) {
	return s.complaints.FindAll(ctx)
}

// FindByID returns the complaint or nil when none exists.
func (s *ComplaintService) FindByID(ctx context.Context, id string) (*domain.Complaint, error) {
	complaint, err := s.complaints.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return complaint, err
}

// Create persists a new complaint with status PENDING and returns the freshly
// reloaded record, so generated fields cannot drift from what the caller sees.
func (s *ComplaintService) Create(ctx context.Context, creatorID string, input ComplaintCreateInput) (Outcome, error) {
	complaint := &domain.Complaint{
		CreatorID:   creatorID,
		CategoryID:  input.CategoryID,
		Subject:     strings.TrimSpace(input.Subject),
		Description: strings.TrimSpace(input.Description),
		OfficeType:  strings.TrimSpace(input.OfficeType),
		Status:      domain.StatusPending,
	}
	if err := s.complaints.Insert(ctx, complaint); err != nil {
		return Outcome{}, err
	}

	created, err := s.complaints.FindByID(ctx, complaint.ID)
	if err != nil {
		return Outcome{}, err
	}

	s.publish(ctx, events.Event{
		Type:        events.EventComplaintCreated,
		ComplaintID: created.ID,
		Actor:       events.Actor{Role: domain.RoleCustomer, SubjectID: creatorID},
		Payload: events.ComplaintCreatedPayload{
			CreatorID:  created.CreatorID,
			CategoryID: created.CategoryID,
			Subject:    created.Subject,
		},
	})
	return accept("complaint created", created), nil
}

// Modify applies an administrative free-form edit. No transition rule is
// enforced here: any field, status included, may be overwritten, and no
// notification is sent.
func (s *ComplaintService) Modify(ctx context.Context, id string, update domain.ComplaintUpdate) (Outcome, error) {
	if _, err := s.complaints.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return reject(CodeNotFound, "complaint not found"), nil
		}
		return Outcome{}, err
	}
	if update.Empty() {
		return reject(CodeNoChange, "nothing to update"), nil
	}

	if _, err := s.complaints.Update(ctx, id, update); err != nil {
		return Outcome{}, err
	}
	updated, err := s.complaints.FindByID(ctx, id)
	if err != nil {
		return Outcome{}, err
	}
	return accept("complaint updated", updated), nil
}

// Attend applies an employee's resolution. The target status must differ from
// the current one; a successful write publishes exactly one status-changed
// event, and the result reflects the persisted update regardless of what the
// notification hooks do with it.
func (s *ComplaintService) Attend(ctx context.Context, id, employeeID string, update domain.ComplaintUpdate) (Outcome, error) {
	current, err := s.complaints.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return reject(CodeNotFound, "complaint not found"), nil
		}
		return Outcome{}, err
	}

	if update.Status == nil || *update.Status == current.Status {
		return reject(CodeNoChange, "complaint status has not changed"), nil
	}
	if !update.Status.Valid() || !domain.CanAttend(current.Status, *update.Status) {
		return reject(CodeTransitionNotAllowed, "status transition not allowed"), nil
	}

	affected, err := s.complaints.Update(ctx, id, update)
	if err != nil {
		return Outcome{}, err
	}
	if affected == 0 {
		return reject(CodePersistenceRejected, "complaint not modified"), nil
	}

	updated, err := s.complaints.FindByID(ctx, id)
	if err != nil {
		return Outcome{}, err
	}

	s.publish(ctx, events.Event{
		Type:        events.EventComplaintStatusChanged,
		ComplaintID: id,
		Actor:       events.Actor{Role: domain.RoleEmployee, SubjectID: employeeID},
		Payload: events.ComplaintStatusChangedPayload{
			OldStatus: current.Status,
			NewStatus: updated.Status,
		},
	})
	return accept("complaint attended", updated), nil
}

// Cancel lets the creator withdraw a complaint. Only PENDING complaints can
// be cancelled; the store applies the status guard so a concurrent transition
// cannot be overwritten.
func (s *ComplaintService) Cancel(ctx context.Context, id, requesterID string) (Outcome, error) {
	current, err := s.complaints.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return reject(CodeNotFound, "complaint not found"), nil
		}
		return Outcome{}, err
	}

	if current.Status == domain.StatusCancelled {
		return reject(CodeAlreadyCancelled, "complaint is already cancelled"), nil
	}
	if !domain.CanCancel(current.Status) {
		return reject(CodeTransitionNotAllowed, "complaint can no longer be cancelled"), nil
	}

	affected, err := s.complaints.Cancel(ctx, id, requesterID)
	if err != nil {
		return Outcome{}, err
	}
	if affected == 0 {
		// lost the race: another transition landed between read and write
		return reject(CodeTransitionNotAllowed, "complaint can no longer be cancelled"), nil
	}

	s.publish(ctx, events.Event{
		Type:        events.EventComplaintStatusChanged,
		ComplaintID: id,
		Actor:       events.Actor{Role: domain.RoleCustomer, SubjectID: requesterID},
		Payload: events.ComplaintStatusChangedPayload{
			OldStatus: current.Status,
			NewStatus: domain.StatusCancelled,
		},
	})
	return accept("complaint cancelled", nil), nil
}

// Query lists the complaints a customer has filed. An empty result is an
// explicit outcome, not an error.
func (s *ComplaintService) Query(ctx context.Context, creatorID string) (Outcome, error) {
	complaints, err := s.complaints.FindByCreator(ctx, creatorID)
	if err != nil {
		return Outcome{}, err
	}
	if len(complaints) == 0 {
		return reject(CodeNoResults, "no complaints found"), nil
	}
	return accept("complaints found", complaints), nil
}

// ListForOffice resolves the employee's office and lists the complaints
// routed to it. A missing assignment and an unresolvable office are distinct
// rejections.
func (s *ComplaintService) ListForOffice(ctx context.Context, employeeID string) (Outcome, error) {
	employee, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return reject(CodeNoOffice, "employee has no office assignment"), nil
		}
		return Outcome{}, err
	}
	if employee.OfficeID == nil {
		return reject(CodeNoOffice, "employee has no office assignment"), nil
	}

	office, err := s.offices.GetByID(ctx, *employee.OfficeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return reject(CodeOfficeNotFound, "office not found"), nil
		}
		return Outcome{}, err
	}

	complaints, err := s.complaints.FindByOfficeCategory(ctx, office.CategoryID)
	if err != nil {
		return Outcome{}, err
	}
	return accept("complaints for office", complaints), nil
}

// ListOffices returns the office catalog for administrative screens.
func (s *ComplaintService) ListOffices(ctx context.Context) (Outcome, error) {
	offices, err := s.offices.List(ctx)
	if err != nil {
		return Outcome{}, err
	}
	return accept("offices", offices), nil
}

func (s *ComplaintService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
