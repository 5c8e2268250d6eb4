package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/aakash-73/Se2-Project-v1/internal/catalog"
)

var (
	ErrExportEmpty        = errors.New("no syllabi match the query")
	ErrExportGenerateFail = errors.New("failed to generate workbook")
)

// ExportService catalog export
//
// The workbook has one sheet, "Syllabi", with a title row, a header row and
// one row per record. Records are laid out group by group in the same order
// the catalog view shows them.
type ExportService interface {
	ExportCatalog(ctx context.Context, caller *Caller, query string) (*bytes.Buffer, string, error)
}

type exportService struct {
	catalog CatalogService
	now     func() time.Time
	logger  *zap.Logger
}

// NewExportService creates an ExportService
func NewExportService(cat CatalogService, logger *zap.Logger) ExportService {
	return &exportService{catalog: cat, now: time.Now, logger: logger}
}

var exportHeaders = []string{"Course", "Course ID", "Department ID", "Department", "Professor", "Description", "PDF"}

func (s *exportService) ExportCatalog(ctx context.Context, caller *Caller, query string) (*bytes.Buffer, string, error) {
	records, _, err := s.catalog.Records(ctx, caller, false)
	if err != nil {
		return nil, "", err
	}
	matched := catalog.Search(records, query)
	if len(matched) == 0 {
		return nil, "", ErrExportEmpty
	}
	groups := catalog.GroupByCourse(matched)

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Syllabi"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheet, "A", "A", 28)
	f.SetColWidth(sheet, "B", "D", 16)
	f.SetColWidth(sheet, "E", "E", 20)
	f.SetColWidth(sheet, "F", "F", 48)
	f.SetColWidth(sheet, "G", "G", 28)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// title
	title := fmt.Sprintf("Syllabus catalog (%s)", caller.Identity.Username)
	if query != "" {
		title = fmt.Sprintf("%s, search %q", title, query)
	}
	f.SetCellValue(sheet, "A1", title)
	f.MergeCell(sheet, "A1", cell(colName(len(exportHeaders)-1), 1))
	f.SetCellStyle(sheet, "A1", "A1", headerStyle)

	// header
	for i, h := range exportHeaders {
		f.SetCellValue(sheet, cell(colName(i), 2), h)
	}
	f.SetCellStyle(sheet, "A2", cell(colName(len(exportHeaders)-1), 2), headerStyle)

	// rows
	row := 3
	for _, g := range groups {
		for _, r := range g.Syllabi {
			values := []string{g.CourseName, r.CourseID, r.DepartmentID, r.DepartmentName, r.Professor, r.SyllabusDescription, r.RecordID()}
			for i, v := range values {
				f.SetCellValue(sheet, cell(colName(i), row), v)
			}
			row++
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write workbook failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("syllabi_%s.xlsx", s.now().Format("20060102"))
	return buf, filename, nil
}

// ── helpers ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
