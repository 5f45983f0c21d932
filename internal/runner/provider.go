package runner

import (
	"context"
	"fmt"

	"stocktally/internal/config"
	"stocktally/internal/files"
	"stocktally/pkg/contracts/domain"
)

// WorkbookProvider opens row streams from the xlsx workbooks a project
// references, resolving relative paths through the project store.
type WorkbookProvider struct {
	store *config.ProjectStore
}

// NewWorkbookProvider creates a provider over the given project store.
func NewWorkbookProvider(store *config.ProjectStore) *WorkbookProvider {
	return &WorkbookProvider{store: store}
}

// OpenRows opens the source's workbook and returns a stream over its
// configured sheet, or the first sheet when none is configured. Closing the
// stream closes the workbook.
func (p *WorkbookProvider) OpenRows(ctx context.Context, source domain.SourceConfig) (RowStream, error) {
	path := p.store.ResolveSourcePath(source)
	wb, err := files.OpenWorkbook(path)
	if err != nil {
		return nil, err
	}

	sheet := source.SheetName
	if sheet == "" {
		names := wb.SheetNames()
		if len(names) == 0 {
			wb.Close()
			return nil, fmt.Errorf("workbook %s has no sheets", path)
		}
		sheet = names[0]
	}

	rows, err := wb.Rows(sheet)
	if err != nil {
		wb.Close()
		return nil, err
	}

	return &workbookStream{rows: rows, wb: wb}, nil
}

// workbookStream ties the lifetime of a sheet stream to its workbook.
type workbookStream struct {
	rows *files.SheetRows
	wb   *files.Workbook
}

func (s *workbookStream) Next() ([]string, error) {
	return s.rows.Next()
}

func (s *workbookStream) Close() error {
	if err := s.rows.Close(); err != nil {
		s.wb.Close()
		return err
	}
	return s.wb.Close()
}
