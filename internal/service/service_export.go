package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/models"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Tasks"

var exportHeader = []any{"ID", "Title", "Description", "Start Date", "End Date", "Priority", "Completed", "Assignees", "Projects"}

// ExportTasks pages through every task created by userID and writes them to
// a single sheet, one row per task below a header row.
func (t *taskService) ExportTasks(ctx context.Context, userID string) ([]byte, error) {
	log := logger.FromContext(ctx)

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Err(err).Str("func", "*taskService.ExportTasks").Msg("failed to close workbook")
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return nil, fmt.Errorf("export failed: %w", err)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("export failed: %w", err)
	}

	row := 2
	req := models.ListTasksRequest{UserID: userID, Page: 1, Limit: MaxLimit}
	for {
		page, err := t.ListTasks(ctx, req)
		if err != nil {
			return nil, err
		}

		for _, task := range page.Results {
			cell, cellErr := excelize.CoordinatesToCellName(1, row)
			if cellErr != nil {
				return nil, fmt.Errorf("export failed: %w", cellErr)
			}
			values := exportRow(task)
			if err = f.SetSheetRow(exportSheet, cell, &values); err != nil {
				return nil, fmt.Errorf("export failed: %w", err)
			}
			row++
		}

		if page.NextPage == nil {
			break
		}
		req.Page++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export failed: %w", err)
	}

	return buf.Bytes(), nil
}

func exportRow(task models.Task) []any {
	assignees := make([]string, 0, len(task.Assignees))
	for _, a := range task.Assignees {
		assignees = append(assignees, a.Name)
	}
	projects := make([]string, 0, len(task.Projects))
	for _, p := range task.Projects {
		projects = append(projects, p.Title)
	}

	return []any{
		task.TaskID,
		task.Title,
		task.Description,
		task.StartDate.Format(models.DateLayout),
		task.EndDate.Format(models.DateLayout),
		string(task.Priority),
		task.Completed,
		strings.Join(assignees, ", "),
		strings.Join(projects, ", "),
	}
}
