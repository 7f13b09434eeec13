package interfaces

import "menu_verification/domain/entities"

// ReportStore keeps the reports of past runs
type ReportStore interface {
	// Save appends a run report
	Save(report entities.RunReport) error

	// Load returns every stored run report, oldest first
	Load() ([]entities.RunReport, error)
}
