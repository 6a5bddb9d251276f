package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents different types of notification events
type EventType string

const (
	// Account events
	EventUserRegistered EventType = "user.registered"
	EventProfileUpdated EventType = "profile.updated"

	// Content events
	EventAnnouncementPublished EventType = "announcement.published"
	EventSchoolEventCreated    EventType = "event.created"
	EventNewsPublished         EventType = "news.published"

	// Contact events
	EventContactReceived EventType = "contact.received"

	// System events
	EventBulkNotification EventType = "system.bulk_notification"
)

// NotificationEvent is the base event structure for all notification events
type NotificationEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Account notification event payloads

type UserRegisteredEvent struct {
	PrincipalID string    `json:"principal_id"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	SignedUpAt  time.Time `json:"signed_up_at"`
}

type ProfileUpdatedEvent struct {
	PrincipalID   string    `json:"principal_id"`
	DisplayName   string    `json:"display_name"`
	Role          string    `json:"role"`
	RoleElevated  bool      `json:"role_elevated"`
	AvatarChanged bool      `json:"avatar_changed"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Content notification event payloads

type AnnouncementPublishedEvent struct {
	AnnouncementID uint      `json:"announcement_id"`
	Title          string    `json:"title"`
	PostedBy       string    `json:"posted_by"`
	PublishedAt    time.Time `json:"published_at"`
}

type SchoolEventCreatedEvent struct {
	EventID   uint      `json:"event_id"`
	Title     string    `json:"title"`
	Location  string    `json:"location"`
	StartsAt  time.Time `json:"starts_at"`
	CreatedBy string    `json:"created_by"`
}

type NewsPublishedEvent struct {
	NewsID      uint      `json:"news_id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	PublishedAt time.Time `json:"published_at"`
}

// Contact notification event payload

type ContactReceivedEvent struct {
	MessageID  uint      `json:"message_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Subject    string    `json:"subject"`
	ReceivedAt time.Time `json:"received_at"`
}

// System notification event payload

type BulkNotificationEvent struct {
	RecipientIDs []string               `json:"recipient_ids"`
	Title        string                 `json:"title"`
	Message      string                 `json:"message"`
	ActionURL    *string                `json:"action_url,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
	SenderID     string                 `json:"sender_id"`
}

// Event factory functions

func NewUserRegisteredEvent(principalID, email, role string) *NotificationEvent {
	return &NotificationEvent{
		ID:        generateEventID(),
		Type:      EventUserRegistered,
		Timestamp: time.Now(),
		Source:    "school-portal-service",
		Version:   "1.0",
		Data: UserRegisteredEvent{
			PrincipalID: principalID,
			Email:       email,
			Role:        role,
			SignedUpAt:  time.Now(),
		},
	}
}

func NewProfileUpdatedEvent(principalID, displayName, role string, roleElevated, avatarChanged bool) *NotificationEvent {
	return &NotificationEvent{
		ID:        generateEventID(),
		Type:      EventProfileUpdated,
		Timestamp: time.Now(),
		Source:    "school-portal-service",
		Version:   "1.0",
		Data: ProfileUpdatedEvent{
			PrincipalID:   principalID,
			DisplayName:   displayName,
			Role:          role,
			RoleElevated:  roleElevated,
			AvatarChanged: avatarChanged,
			UpdatedAt:     time.Now(),
		},
	}
}

func NewAnnouncementPublishedEvent(announcementID uint, title, postedBy string) *NotificationEvent {
	return &NotificationEvent{
		ID:        generateEventID(),
		Type:      EventAnnouncementPublished,
		Timestamp: time.Now(),
		Source:    "school-portal-service",
		Version:   "1.0",
		Data: AnnouncementPublishedEvent{
			AnnouncementID: announcementID,
			Title:          title,
			PostedBy:       postedBy,
			PublishedAt:    time.Now(),
		},
	}
}

func NewSchoolEventCreatedEvent(eventID uint, title, location string, startsAt time.Time, createdBy string) *NotificationEvent {
	return &NotificationEvent{
		ID:        generateEventID(),
		Type:      EventSchoolEventCreated,
		Timestamp: time.Now(),
		Source:    "school-portal-service",
		Version:   "1.0",
		Data: SchoolEventCreatedEvent{
			EventID:   eventID,
			Title:     title,
			Location:  location,
			StartsAt:  startsAt,
			CreatedBy: createdBy,
		},
	}
}

func NewNewsPublishedEvent(newsID uint, title, author string) *NotificationEvent {
	return &NotificationEvent{
		ID:        generateEventID(),
		Type:      EventNewsPublished,
		Timestamp: time.Now(),
		Source:    "school-portal-service",
		Version:   "1.0",
		Data: NewsPublishedEvent{
			NewsID:      newsID,
			Title:       title,
			Author:      author,
			PublishedAt: time.Now(),
		},
	}
}

func NewContactReceivedEvent(messageID uint, name, email, subject string) *NotificationEvent {
	return &NotificationEvent{
		ID:        generateEventID(),
		Type:      EventContactReceived,
		Timestamp: time.Now(),
		Source:    "school-portal-service",
		Version:   "1.0",
		Data: ContactReceivedEvent{
			MessageID:  messageID,
			Name:       name,
			Email:      email,
			Subject:    subject,
			ReceivedAt: time.Now(),
		},
	}
}

func NewBulkNotificationEvent(recipientIDs []string, title, message string, actionURL *string, metadata map[string]interface{}, senderID string) *NotificationEvent {
	return &NotificationEvent{
		ID:        generateEventID(),
		Type:      EventBulkNotification,
		Timestamp: time.Now(),
		Source:    "school-portal-service",
		Version:   "1.0",
		Data: BulkNotificationEvent{
			RecipientIDs: recipientIDs,
			Title:        title,
			Message:      message,
			ActionURL:    actionURL,
			Metadata:     metadata,
			SenderID:     senderID,
		},
	}
}

func generateEventID() string {
	return uuid.NewString()
}

// GenerateEventID is the exported version for external use
func GenerateEventID() string {
	return generateEventID()
}
