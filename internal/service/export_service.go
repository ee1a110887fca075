package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ExportService renders the current user's bills as an Excel statement.
type ExportService struct {
	list   *BillListService
	logger *zap.Logger
}

// NewExportService creates a new export service
func NewExportService(list *BillListService, logger *zap.Logger) *ExportService {
	return &ExportService{
		list:   list,
		logger: logger,
	}
}

const exportSheet = "Notes de frais"

// ExportBills builds an .xlsx statement with one row per bill owned by the
// identity's user, dates and statuses in display form.
func (s *ExportService) ExportBills(ctx context.Context, identity Identity) ([]byte, error) {
	bills, err := s.list.ListBillsForCurrentUser(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("export bills: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}

	headers := []string{"Type", "Nom", "Date", "Montant", "TVA", "%", "Statut", "Justificatif"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, fmt.Errorf("set header: %w", err)
		}
	}

	for row, bill := range bills {
		values := []any{
			bill.Type,
			bill.Name,
			bill.DisplayDate,
			bill.Amount,
			bill.VAT,
			bill.Pct,
			bill.DisplayStatus,
			bill.FileName,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, fmt.Errorf("set cell: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("Exported bills",
		zap.Int("count", len(bills)))

	return buf.Bytes(), nil
}
