package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"murp/internal/planning"
	"murp/internal/service/planner"
)

type Planner interface {
	BuildSnapshot(ctx context.Context, today time.Time) (*planning.Snapshot, error)
	PlanProducts(ctx context.Context, snap *planning.Snapshot) (*planner.PlanResult, error)
}

type Service struct {
	planner Planner
}

func New(planner Planner) *Service {
	return &Service{planner: planner}
}

// GenerateExcel runs a full planning pass and renders it as a two-sheet
// workbook: component shortages ranked by impact, and per-product production
// status with recommendations.
func (s *Service) GenerateExcel(ctx context.Context, today time.Time) ([]byte, error) {
	const op = "service.report.GenerateExcel"

	snap, err := s.planner.BuildSnapshot(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("%s: snapshot: %w", op, err)
	}

	plan, err := s.planner.PlanProducts(ctx, snap)
	if err != nil {
		return nil, fmt.Errorf("%s: plan: %w", op, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})

	if err := s.writeShortageSheet(f, plan, headerStyle); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.writeProductionSheet(f, plan, headerStyle); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: write workbook: %w", op, err)
	}

	return buf.Bytes(), nil
}

func (s *Service) writeShortageSheet(f *excelize.File, plan *planner.PlanResult, headerStyle int) error {
	const sheet = "Shortages"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Component", "Current Stock", "Needed (next cycle)", "Shortfall", "Blocked Products"}
	for i, name := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, name)
	}
	lastCol, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheet, "A1", lastCol, headerStyle)

	for rowIdx, cs := range plan.Shortages {
		rowNum := rowIdx + 2
		f.SetCellValue(sheet, cellName(1, rowNum), cs.ComponentSKU)
		f.SetCellValue(sheet, cellName(2, rowNum), cs.CurrentStock.String())
		f.SetCellValue(sheet, cellName(3, rowNum), cs.NeededForNextBuildCycle.String())
		f.SetCellValue(sheet, cellName(4, rowNum), cs.Shortfall.String())
		f.SetCellValue(sheet, cellName(5, rowNum), strings.Join(cs.BlockedFinishedGoods, ", "))
	}

	return nil
}

func (s *Service) writeProductionSheet(f *excelize.File, plan *planner.PlanResult, headerStyle int) error {
	const sheet = "Production"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}

	headers := []string{"SKU", "Status", "Bucket", "Days of Stock", "Buildable Units", "Action", "Recommended Qty", "Component"}
	for i, name := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, name)
	}
	lastCol, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheet, "A1", lastCol, headerStyle)

	row := 2
	for _, st := range plan.Statuses {
		f.SetCellValue(sheet, cellName(1, row), st.FinishedGoodSKU)
		f.SetCellValue(sheet, cellName(2, row), string(st.State))
		f.SetCellValue(sheet, cellName(3, row), string(st.Bucket))
		f.SetCellValue(sheet, cellName(4, row), st.DaysOfStock)
		f.SetCellValue(sheet, cellName(5, row), st.BuildableUnits)
		f.SetCellValue(sheet, cellName(6, row), string(st.Action))
		f.SetCellValue(sheet, cellName(7, row), st.RecommendedQty)
		f.SetCellValue(sheet, cellName(8, row), st.ComponentSKU)
		row++
	}

	// Goods with no BOM data are listed, not hidden in a zero.
	for _, sku := range plan.UndefinedGoods {
		f.SetCellValue(sheet, cellName(1, row), sku)
		f.SetCellValue(sheet, cellName(2, row), "no BOM data")
		row++
	}

	return nil
}

func cellName(col, row int) string {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	return cell
}
