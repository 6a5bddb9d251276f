package services

import (
	"context"
	"testing"

	"github.com/SPS-2025/school-portal-service/internal/events"
	"github.com/SPS-2025/school-portal-service/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnouncementService_CreateAndPublish(t *testing.T) {
	env := newServiceTestEnv(t)
	ctx := context.Background()

	created, err := env.services.Announcements().Create(ctx, CreateAnnouncementRequest{
		Title:     "Sports day",
		Content:   "Sports day is on Friday.",
		Important: true,
	}, "teacher-1")
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.False(t, created.Published)

	published, err := env.services.Announcements().Publish(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, published.Published)
	require.NotNil(t, published.PublishedAt)

	evts := env.publisher.Published()
	require.Len(t, evts, 1)
	assert.Equal(t, events.EventAnnouncementPublished, evts[0].Type)
}

func TestAnnouncementService_CreateValidation(t *testing.T) {
	env := newServiceTestEnv(t)

	_, err := env.services.Announcements().Create(context.Background(), CreateAnnouncementRequest{
		Title:   "",
		Content: "body",
	}, "teacher-1")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestAnnouncementService_PublishMissing(t *testing.T) {
	env := newServiceTestEnv(t)

	_, err := env.services.Announcements().Publish(context.Background(), 999)
	assert.ErrorIs(t, err, ErrAnnouncementNotFound)
	assert.Empty(t, env.publisher.Published())
}

func TestAnnouncementService_UpdatePartial(t *testing.T) {
	env := newServiceTestEnv(t)
	ctx := context.Background()

	created, err := env.services.Announcements().Create(ctx, CreateAnnouncementRequest{
		Title:   "Original",
		Content: "Original content",
	}, "teacher-1")
	require.NoError(t, err)

	newTitle := "Updated"
	updated, err := env.services.Announcements().Update(ctx, created.ID, UpdateAnnouncementRequest{
		Title: &newTitle,
	})
	require.NoError(t, err)
	assert.Equal(t, "Updated", updated.Title)
	assert.Equal(t, "Original content", updated.Content)
}

func TestAnnouncementService_ListFilters(t *testing.T) {
	env := newServiceTestEnv(t)
	ctx := context.Background()

	a1, err := env.services.Announcements().Create(ctx, CreateAnnouncementRequest{
		Title: "Published one", Content: "x",
	}, "teacher-1")
	require.NoError(t, err)
	_, err = env.services.Announcements().Create(ctx, CreateAnnouncementRequest{
		Title: "Draft one", Content: "x",
	}, "teacher-1")
	require.NoError(t, err)

	_, err = env.services.Announcements().Publish(ctx, a1.ID)
	require.NoError(t, err)

	listed, err := env.services.Announcements().List(ctx, repositories.AnnouncementFilters{PublishedOnly: true})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, a1.ID, listed[0].ID)
}
