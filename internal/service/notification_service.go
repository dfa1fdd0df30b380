package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/municipal-services/complaint-service/internal/domain"
	"github.com/municipal-services/complaint-service/internal/events"
	"github.com/municipal-services/complaint-service/internal/mailer"
	"github.com/municipal-services/complaint-service/internal/observability"
	"github.com/municipal-services/complaint-service/internal/repository"
)

// NotificationService emails customers when their complaint changes status.
// It runs as a post-commit hook: the transition has already been persisted by
// the time a handler fires, so every failure here is logged and swallowed.
type NotificationService struct {
	dispatcher events.Dispatcher
	complaints repository.ComplaintRepository
	mail       mailer.Mailer
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, complaints repository.ComplaintRepository, mail mailer.Mailer, logger *zap.Logger, metrics *observability.Metrics) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		complaints: complaints,
		mail:       mail,
		logger:     logger,
		metrics:    metrics,
	}
}

// RegisterHandlers subscribes to status-change events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventComplaintStatusChanged, n.handleStatusChanged)
}

func (n *NotificationService) handleStatusChanged(ctx context.Context, event events.Event) error {
	// The contact is resolved now, not taken from the triggering request, so
	// a stale email address is impossible.
	contact, err := n.complaints.FindCustomerContact(ctx, event.ComplaintID)
	if err != nil {
		n.logger.Warn("notification skipped: customer contact unresolved",
			zap.String("complaint_id", event.ComplaintID), zap.Error(err))
		return nil
	}

	payload := domain.NotificationPayload{
		CustomerName:  contact.Name,
		CustomerEmail: contact.Email,
		ComplaintID:   event.ComplaintID,
		Status:        contact.Status,
	}

	err = n.mail.Send(ctx, payload)
	n.metrics.RecordNotification(err != nil)
	if err != nil {
		n.logger.Warn("notification delivery failed",
			zap.String("complaint_id", event.ComplaintID),
			zap.String("to", contact.Email),
			zap.Error(err))
		return nil
	}

	n.logger.Info("notification sent",
		zap.String("complaint_id", event.ComplaintID),
		zap.String("status", contact.Status.String()))
	return nil
}
