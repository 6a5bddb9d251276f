package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SPS-2025/school-portal-service/internal/repositories"
	"github.com/xuri/excelize/v2"
)

// ExportService produces admin spreadsheet exports.
type ExportService interface {
	ExportContactMessages(ctx context.Context, filters repositories.ContactFilters) ([]byte, error)
	ExportContactMessagesFilename() string
}

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

func (s *exportService) ExportContactMessages(ctx context.Context, filters repositories.ContactFilters) ([]byte, error) {
	messages, err := s.repo.Contact().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get contact messages: %w", err)
	}

	f := excelize.NewFile()
	sheetName := "Contact Messages"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headers := []string{
		"ID", "Name", "Email", "Subject", "Message", "Status", "Received At",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, msg := range messages {
		row := []interface{}{
			msg.ID,
			msg.Name,
			msg.Email,
			msg.Subject,
			msg.Message,
			string(msg.Status),
			msg.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.Info("Contact messages exported", "count", len(messages))
	return buf.Bytes(), nil
}

func (s *exportService) ExportContactMessagesFilename() string {
	return "contact_messages.xlsx"
}
