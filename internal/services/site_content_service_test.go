package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteContentService_AboutSectionsCached(t *testing.T) {
	env := newServiceTestEnv(t)
	ctx := context.Background()

	_, err := env.services.SiteContent().UpsertAboutSection(ctx, UpsertAboutSectionRequest{
		Title:   "Our History",
		Content: "Founded in 1995.",
		Order:   1,
	})
	require.NoError(t, err)

	first, err := env.services.SiteContent().AboutSections(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Second read is served from cache; the store sees only one read.
	second, err := env.services.SiteContent().AboutSections(ctx)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, 1, env.repo.siteContent.reads)
}

func TestSiteContentService_WriteInvalidatesCache(t *testing.T) {
	env := newServiceTestEnv(t)
	ctx := context.Background()

	_, err := env.services.SiteContent().UpsertAboutSection(ctx, UpsertAboutSectionRequest{
		Title:   "Our History",
		Content: "Founded in 1995.",
	})
	require.NoError(t, err)

	sections, err := env.services.SiteContent().AboutSections(ctx)
	require.NoError(t, err)
	require.Len(t, sections, 1)

	_, err = env.services.SiteContent().UpsertAboutSection(ctx, UpsertAboutSectionRequest{
		Title:   "Our Mission",
		Content: "Learning for everyone.",
		Order:   2,
	})
	require.NoError(t, err)

	sections, err = env.services.SiteContent().AboutSections(ctx)
	require.NoError(t, err)
	assert.Len(t, sections, 2)
}

func TestSiteContentService_UpsertValidation(t *testing.T) {
	env := newServiceTestEnv(t)

	_, err := env.services.SiteContent().UpsertAboutSection(context.Background(), UpsertAboutSectionRequest{
		Title: "No content",
	})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}
