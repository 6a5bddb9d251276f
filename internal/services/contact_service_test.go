package services

import (
	"context"
	"testing"

	"github.com/SPS-2025/school-portal-service/internal/events"
	"github.com/SPS-2025/school-portal-service/internal/models"
	"github.com/SPS-2025/school-portal-service/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactService_SubmitPublishesEvent(t *testing.T) {
	env := newServiceTestEnv(t)
	ctx := context.Background()

	msg, err := env.services.Contact().Submit(ctx, SubmitContactRequest{
		Name:    "A Parent",
		Email:   "parent@example.com",
		Subject: "Admissions",
		Message: "When do admissions open?",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ContactPending, msg.Status)

	evts := env.publisher.Published()
	require.Len(t, evts, 1)
	assert.Equal(t, events.EventContactReceived, evts[0].Type)

	data, ok := evts[0].Data.(events.ContactReceivedEvent)
	require.True(t, ok)
	assert.Equal(t, msg.ID, data.MessageID)
	assert.Equal(t, "parent@example.com", data.Email)
}

func TestContactService_SubmitInvalidEmail(t *testing.T) {
	env := newServiceTestEnv(t)

	_, err := env.services.Contact().Submit(context.Background(), SubmitContactRequest{
		Name:    "A Parent",
		Email:   "not-an-email",
		Message: "hello",
	})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Empty(t, env.publisher.Published())
}

func TestContactService_MarkResponded(t *testing.T) {
	env := newServiceTestEnv(t)
	ctx := context.Background()

	msg, err := env.services.Contact().Submit(ctx, SubmitContactRequest{
		Name:    "A Parent",
		Email:   "parent@example.com",
		Message: "hello",
	})
	require.NoError(t, err)

	require.NoError(t, env.services.Contact().MarkResponded(ctx, msg.ID))

	responded := models.ContactResponded
	listed, err := env.services.Contact().List(ctx, repositories.ContactFilters{Status: &responded})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, msg.ID, listed[0].ID)

	assert.ErrorIs(t, env.services.Contact().MarkResponded(ctx, 999), ErrContactNotFound)
}
