// Package report renders read-only projections into files the back office
// can hand to finance. Spreadsheet output uses excelize.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/planora/eventops/internal/domain/budget"
	"github.com/planora/eventops/internal/domain/entity"
)

const budgetSheet = "Budget"

// ExcelWriter renders budget workbooks
type ExcelWriter struct {
	logger *zap.Logger
}

// NewExcelWriter creates a new ExcelWriter
func NewExcelWriter(logger *zap.Logger) *ExcelWriter {
	return &ExcelWriter{logger: logger}
}

// WriteBudgetWorkbook writes one event's budget lines and totals to path.
// The parent directory is created when missing.
func (w *ExcelWriter) WriteBudgetWorkbook(event *entity.Event, items []*entity.BudgetItem, summary budget.Summary, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(budgetSheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		w.logger.Warn("Failed to remove default sheet", zap.Error(err))
	}

	// Event header block
	w.setCell(f, "A1", "Event")
	w.setCell(f, "B1", event.Title)
	w.setCell(f, "A2", "Period")
	w.setCell(f, "B2", fmt.Sprintf("%s to %s",
		event.StartDate.Format("2006-01-02"), event.EndDate.Format("2006-01-02")))
	w.setCell(f, "A3", "Status")
	w.setCell(f, "B3", event.Status.String())

	// Line table
	headers := []string{"Category", "Description", "Supplier", "Quantity", "Unit Price", "Line Total", "Approved"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 5)
		w.setCell(f, cell, h)
	}

	row := 6
	for _, item := range items {
		values := []interface{}{
			item.Category,
			item.Description,
			item.Supplier,
			item.Quantity,
			item.UnitPrice,
			budget.LineTotal(item),
			item.Approved,
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			w.setCell(f, cell, v)
		}
		row++
	}

	// Totals block
	row++
	w.setCell(f, fmt.Sprintf("E%d", row), "Total")
	w.setCell(f, fmt.Sprintf("F%d", row), summary.Total)
	row++
	w.setCell(f, fmt.Sprintf("E%d", row), "Approved")
	w.setCell(f, fmt.Sprintf("F%d", row), summary.Approved)
	row++
	w.setCell(f, fmt.Sprintf("E%d", row), "Pending")
	w.setCell(f, fmt.Sprintf("F%d", row), summary.Pending)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	w.logger.Info("Budget workbook written",
		zap.String("event_id", event.ID),
		zap.String("path", path),
		zap.Int("lines", len(items)))
	return nil
}

// setCell sets a cell value, logging instead of failing on cell errors
func (w *ExcelWriter) setCell(f *excelize.File, cell string, value interface{}) {
	if err := f.SetCellValue(budgetSheet, cell, value); err != nil {
		w.logger.Warn("Failed to set cell value",
			zap.String("cell", cell),
			zap.Error(err))
	}
}
