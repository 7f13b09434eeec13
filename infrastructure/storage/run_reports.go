package storage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"menu_verification/domain/entities"
	"menu_verification/domain/interfaces"
)

type runReports struct {
	path string
}

// NewRunReports - creates report storage backed by a JSON file at path
func NewRunReports(path string) interfaces.ReportStore {
	return &runReports{path: path}
}

// Save - appends a run report to the file
func (s *runReports) Save(report entities.RunReport) error {
	reports, err := s.Load()
	if err != nil {
		return err
	}
	reports = append(reports, report)

	data, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

// Load - loads every stored run report
func (s *runReports) Load() ([]entities.RunReport, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []entities.RunReport{}, nil
		}
		return nil, err
	}

	var reports []entities.RunReport
	if err := json.Unmarshal(data, &reports); err != nil {
		return nil, err
	}

	return reports, nil
}
