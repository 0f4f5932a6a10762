package sheets

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"
)

// XLSXStore implements Store against a local workbook file. It exists for
// offline use and for seeding dev environments from an exported copy of the
// production sheet.
type XLSXStore struct {
	mu   sync.Mutex
	path string
}

// NewXLSXStore opens (or validates) the workbook at path.
func NewXLSXStore(path string) (*XLSXStore, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return &XLSXStore{path: path}, nil
}

func (s *XLSXStore) Read(ctx context.Context, rng string) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet, startRow, startCol, endRow, endCol, err := parseRange(rng)
	if err != nil {
		return nil, err
	}

	all, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	for r := startRow; r <= endRow && r <= len(all); r++ {
		src := all[r-1]
		last := endCol
		if last > len(src) {
			last = len(src)
		}
		var cells []string
		if startCol <= last {
			cells = append([]string(nil), src[startCol-1:last]...)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func (s *XLSXStore) Append(ctx context.Context, rng string, rows [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return err
	}
	defer f.Close()

	sheet, _, startCol, _, _, err := parseRange(rng)
	if err != nil {
		return err
	}

	existing, err := f.GetRows(sheet)
	if err != nil {
		return err
	}
	next := len(existing) + 1

	if err := writeRows(f, sheet, next, startCol, rows); err != nil {
		return err
	}
	return f.Save()
}

func (s *XLSXStore) Update(ctx context.Context, rng string, rows [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := updateRange(f, rng, rows); err != nil {
		return err
	}
	return f.Save()
}

func (s *XLSXStore) BatchUpdate(ctx context.Context, updates []RangeUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, u := range updates {
		if err := updateRange(f, u.Range, u.Rows); err != nil {
			return err
		}
	}
	return f.Save()
}

func updateRange(f *excelize.File, rng string, rows [][]string) error {
	sheet, startRow, startCol, _, _, err := parseRange(rng)
	if err != nil {
		return err
	}
	return writeRows(f, sheet, startRow, startCol, rows)
}

func writeRows(f *excelize.File, sheet string, startRow, startCol int, rows [][]string) error {
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(startCol+j, startRow+i)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}

// parseRange splits "Sheet!A2:V9" into its sheet name and 1-based bounds.
// An open-ended range like "Tickets!A1:V" runs to the last populated row.
func parseRange(rng string) (sheet string, startRow, startCol, endRow, endCol int, err error) {
	name, cells, found := strings.Cut(rng, "!")
	if !found {
		return "", 0, 0, 0, 0, fmt.Errorf("range %q has no sheet name", rng)
	}
	sheet = strings.Trim(name, "'")

	first, second, hasEnd := strings.Cut(cells, ":")
	startCol, startRow, err = parseCellRef(first)
	if err != nil {
		return "", 0, 0, 0, 0, fmt.Errorf("range %q: %w", rng, err)
	}
	if startRow == 0 {
		startRow = 1
	}
	if !hasEnd {
		return sheet, startRow, startCol, startRow, startCol, nil
	}

	endCol, endRow, err = parseCellRef(second)
	if err != nil {
		return "", 0, 0, 0, 0, fmt.Errorf("range %q: %w", rng, err)
	}
	if endRow == 0 {
		// Open-ended column span: read everything below the start.
		endRow = 1 << 20
	}
	return sheet, startRow, startCol, endRow, endCol, nil
}

// parseCellRef parses "V9" into (22, 9); a bare column like "V" yields row 0.
func parseCellRef(ref string) (col, row int, err error) {
	letters := ref
	for i, r := range ref {
		if r >= '0' && r <= '9' {
			letters = ref[:i]
			break
		}
	}
	if letters == ref {
		col, err = excelize.ColumnNameToNumber(letters)
		return col, 0, err
	}
	return excelize.CellNameToCoordinates(ref)
}
