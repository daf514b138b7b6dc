package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jobtrackd/jobtrackd/internal/core/domain"
)

const (
	applicationsSheet = "Applications"
	overviewSheet     = "Overview"
)

// Exporter renders an owner's applications as an XLSX workbook with one
// sheet of rows and one of dashboard counters.
type Exporter struct{}

func New() *Exporter {
	return &Exporter{}
}

func (e *Exporter) WriteApplicationsReport(w io.Writer, apps []domain.Application, stats []domain.Stat) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	index, err := f.NewSheet(applicationsSheet)
	if err != nil {
		return fmt.Errorf("create applications sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	header := []interface{}{"Company", "Position", "Location", "Status", "Applied on", "Appointment"}
	if err := f.SetSheetRow(applicationsSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, app := range apps {
		appointment := ""
		if app.AppointmentAt != nil {
			appointment = app.AppointmentAt.Format("2006-01-02 15:04")
		}
		row := []interface{}{
			app.Company,
			app.Position,
			app.Location,
			string(app.Status),
			app.AppliedOn.Format("2006-01-02"),
			appointment,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(applicationsSheet, cell, &row); err != nil {
			return fmt.Errorf("write application row %d: %w", i, err)
		}
	}

	if _, err := f.NewSheet(overviewSheet); err != nil {
		return fmt.Errorf("create overview sheet: %w", err)
	}
	statsHeader := []interface{}{"Metric", "Value", "Total"}
	if err := f.SetSheetRow(overviewSheet, "A1", &statsHeader); err != nil {
		return fmt.Errorf("write overview header: %w", err)
	}
	for i, stat := range stats {
		row := []interface{}{stat.Title, stat.Value, stat.Total}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(overviewSheet, cell, &row); err != nil {
			return fmt.Errorf("write overview row %d: %w", i, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
