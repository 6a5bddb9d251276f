package services

import (
	"context"
	"strings"
	"testing"

	"github.com/SPS-2025/school-portal-service/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGalleryService_UploadImage(t *testing.T) {
	env := newServiceTestEnv(t)
	ctx := context.Background()

	img, err := env.services.Gallery().UploadImage(ctx, UploadGalleryImageRequest{
		Title:    "Science fair",
		Category: "events",
		Filename: "fair.jpg",
		Data:     []byte{0xff, 0xd8, 0xff},
	}, "admin-1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(img.URL, "memory://"))
	assert.Equal(t, 1, env.blobs.Len())

	listed, err := env.services.Gallery().ListImages(ctx, repositories.GalleryFilters{Category: "events"})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "admin-1", listed[0].UploadedBy)
}

func TestGalleryService_UploadRejectsBadFiles(t *testing.T) {
	env := newServiceTestEnv(t)
	ctx := context.Background()

	_, err := env.services.Gallery().UploadImage(ctx, UploadGalleryImageRequest{
		Filename: "notes.txt",
		Data:     []byte("hello"),
	}, "admin-1")
	assert.ErrorIs(t, err, ErrUnsupportedUpload)

	_, err = env.services.Gallery().UploadImage(ctx, UploadGalleryImageRequest{
		Filename: "empty.png",
	}, "admin-1")
	assert.ErrorIs(t, err, ErrEmptyUpload)

	assert.Equal(t, 0, env.blobs.Len())
}

func TestGalleryService_Achievements(t *testing.T) {
	env := newServiceTestEnv(t)
	ctx := context.Background()

	_, err := env.services.Gallery().AddAchievement(ctx, CreateAchievementRequest{
		Title: "National quiz champions",
		Year:  2025,
	})
	require.NoError(t, err)

	listed, err := env.services.Gallery().ListAchievements(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, 2025, listed[0].Year)
}
