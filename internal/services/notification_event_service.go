package services

import (
	"context"
	"log/slog"

	"github.com/SPS-2025/school-portal-service/internal/events"
	"github.com/SPS-2025/school-portal-service/internal/models"
)

// NotificationEventService pushes portal notifications through the event
// publisher instead of calling a notification backend directly.
type NotificationEventService interface {
	// Account notifications
	NotifyUserRegistered(ctx context.Context, principalID, email string, role models.UserRole) error
	NotifyProfileUpdated(ctx context.Context, user *models.SessionUser, roleElevated, avatarChanged bool) error

	// Content notifications
	NotifyAnnouncementPublished(ctx context.Context, announcement *models.Announcement) error
	NotifySchoolEventCreated(ctx context.Context, event *models.SchoolEvent) error
	NotifyNewsPublished(ctx context.Context, item *models.NewsItem) error

	// Contact notifications
	NotifyContactReceived(ctx context.Context, msg *models.ContactMessage) error

	// System notifications
	SendBulkNotification(ctx context.Context, recipientIDs []string, title, message string, actionURL *string, senderID string) error
}

type notificationEventService struct {
	eventPublisher events.EventPublisher
	logger         *slog.Logger
}

func NewNotificationEventService(
	eventPublisher events.EventPublisher,
	logger *slog.Logger,
) NotificationEventService {
	return &notificationEventService{
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// ===== ACCOUNT NOTIFICATIONS =====

func (s *notificationEventService) NotifyUserRegistered(ctx context.Context, principalID, email string, role models.UserRole) error {
	s.logger.Info("Publishing user registered event", "principal_id", principalID)

	event := events.NewUserRegisteredEvent(principalID, email, string(role))
	return s.eventPublisher.PublishNotificationEvent(ctx, event)
}

func (s *notificationEventService) NotifyProfileUpdated(ctx context.Context, user *models.SessionUser, roleElevated, avatarChanged bool) error {
	s.logger.Info("Publishing profile updated event",
		"principal_id", user.ID,
		"role_elevated", roleElevated)

	event := events.NewProfileUpdatedEvent(user.ID, user.DisplayName, string(user.Role), roleElevated, avatarChanged)
	return s.eventPublisher.PublishNotificationEvent(ctx, event)
}

// ===== CONTENT NOTIFICATIONS =====

func (s *notificationEventService) NotifyAnnouncementPublished(ctx context.Context, announcement *models.Announcement) error {
	s.logger.Info("Publishing announcement published event", "announcement_id", announcement.ID)

	event := events.NewAnnouncementPublishedEvent(announcement.ID, announcement.Title, announcement.CreatedBy)
	return s.eventPublisher.PublishNotificationEvent(ctx, event)
}

func (s *notificationEventService) NotifySchoolEventCreated(ctx context.Context, schoolEvent *models.SchoolEvent) error {
	s.logger.Info("Publishing school event created event", "event_id", schoolEvent.ID)

	event := events.NewSchoolEventCreatedEvent(
		schoolEvent.ID,
		schoolEvent.Title,
		schoolEvent.Location,
		schoolEvent.StartsAt,
		schoolEvent.CreatedBy,
	)
	return s.eventPublisher.PublishNotificationEvent(ctx, event)
}

func (s *notificationEventService) NotifyNewsPublished(ctx context.Context, item *models.NewsItem) error {
	s.logger.Info("Publishing news published event", "news_id", item.ID)

	event := events.NewNewsPublishedEvent(item.ID, item.Title, item.Author)
	return s.eventPublisher.PublishNotificationEvent(ctx, event)
}

// ===== CONTACT NOTIFICATIONS =====

func (s *notificationEventService) NotifyContactReceived(ctx context.Context, msg *models.ContactMessage) error {
	s.logger.Info("Publishing contact received event", "message_id", msg.ID)

	event := events.NewContactReceivedEvent(msg.ID, msg.Name, msg.Email, msg.Subject)
	return s.eventPublisher.PublishNotificationEvent(ctx, event)
}

// ===== SYSTEM NOTIFICATIONS =====

func (s *notificationEventService) SendBulkNotification(ctx context.Context, recipientIDs []string, title, message string, actionURL *string, senderID string) error {
	s.logger.Info("Publishing bulk notification event",
		"recipient_count", len(recipientIDs))

	event := events.NewBulkNotificationEvent(recipientIDs, title, message, actionURL, nil, senderID)
	return s.eventPublisher.PublishNotificationEvent(ctx, event)
}
