package report

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/planora/eventops/internal/domain/budget"
	"github.com/planora/eventops/internal/domain/entity"
	"github.com/planora/eventops/internal/domain/lifecycle"
)

func TestWriteBudgetWorkbook(t *testing.T) {
	event := &entity.Event{
		ID:        "e1",
		Title:     "Annual kickoff",
		Status:    lifecycle.StatusBudgetGeneration,
		StartDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
	}
	stored := 500.0
	items := []*entity.BudgetItem{
		{Category: "venue", Description: "Main hall", Quantity: 1, UnitPrice: 1200},
		{Category: "catering", Description: "Coffee", Quantity: 3, UnitPrice: 999, StoredTotal: &stored, Approved: true},
	}
	summary := budget.Summarize(items)

	path := filepath.Join(t.TempDir(), "out", "budget.xlsx")
	writer := NewExcelWriter(zap.NewNop())

	err := writer.WriteBudgetWorkbook(event, items, summary, path)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue(budgetSheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Annual kickoff", title)

	status, err := f.GetCellValue(budgetSheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "budget_generation", status)

	// First data row
	category, err := f.GetCellValue(budgetSheet, "A6")
	require.NoError(t, err)
	assert.Equal(t, "venue", category)

	lineTotal, err := f.GetCellValue(budgetSheet, "F6")
	require.NoError(t, err)
	assert.Equal(t, "1200", lineTotal)

	// The stored total wins over quantity * unit price on the second row.
	storedLine, err := f.GetCellValue(budgetSheet, "F7")
	require.NoError(t, err)
	assert.Equal(t, "500", storedLine)

	// Totals block sits two rows below the last line.
	total, err := f.GetCellValue(budgetSheet, "F9")
	require.NoError(t, err)
	assert.Equal(t, "1700", total)
}

func TestWriteBudgetWorkbookEmptyBudget(t *testing.T) {
	event := &entity.Event{
		ID:        "e2",
		Title:     "No budget yet",
		Status:    lifecycle.StatusInput,
		StartDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
	}

	path := filepath.Join(t.TempDir(), "budget.xlsx")
	writer := NewExcelWriter(zap.NewNop())

	err := writer.WriteBudgetWorkbook(event, nil, budget.Summary{}, path)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	total, err := f.GetCellValue(budgetSheet, "F7")
	require.NoError(t, err)
	assert.Equal(t, "0", total)
}
