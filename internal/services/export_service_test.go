package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/SPS-2025/school-portal-service/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportService_ContactMessages(t *testing.T) {
	env := newServiceTestEnv(t)
	ctx := context.Background()

	_, err := env.services.Contact().Submit(ctx, SubmitContactRequest{
		Name:    "A Parent",
		Email:   "parent@example.com",
		Subject: "Admissions",
		Message: "When do admissions open?",
	})
	require.NoError(t, err)

	data, err := env.services.Export().ExportContactMessages(ctx, repositories.ContactFilters{})
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Contact Messages", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Name", header)

	name, err := f.GetCellValue("Contact Messages", "B2")
	require.NoError(t, err)
	assert.Equal(t, "A Parent", name)

	status, err := f.GetCellValue("Contact Messages", "F2")
	require.NoError(t, err)
	assert.Equal(t, "pending", status)
}

func TestExportService_Filename(t *testing.T) {
	env := newServiceTestEnv(t)
	assert.Equal(t, "contact_messages.xlsx", env.services.Export().ExportContactMessagesFilename())
}
