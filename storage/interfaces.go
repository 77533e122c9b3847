package storage

import "macro-averages/models"

// RowCollector is the interface any tabular source must satisfy.
type RowCollector interface {
	Collect(path string, fields []string) (*models.RawDataset, error)
}

var _ RowCollector = (*CSVReader)(nil)
