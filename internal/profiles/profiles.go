package profiles

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/serenata/whistleblower/internal/models"
)

// Dataset reads the congresspeople social accounts CSV. Rows are loaded on
// first use and cached for the lifetime of the dataset.
type Dataset struct {
	path   string
	cached []*models.Profile
}

func NewDataset(path string) *Dataset {
	return &Dataset{path: path}
}

func (d *Dataset) Profiles() ([]*models.Profile, error) {
	if d.cached != nil {
		return d.cached, nil
	}

	file, err := os.Open(d.path)
	if err != nil {
		return nil, fmt.Errorf("open social accounts file: %w", err)
	}
	defer file.Close()

	var rows []*models.Profile
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("parse social accounts file: %w", err)
	}

	d.cached = rows
	return rows, nil
}

// Handles returns every non-empty Twitter handle in the dataset, primary
// profiles first, then secondary ones.
func (d *Dataset) Handles() ([]string, error) {
	rows, err := d.Profiles()
	if err != nil {
		return nil, err
	}

	var handles []string
	for _, row := range rows {
		if row.TwitterProfile != "" {
			handles = append(handles, row.TwitterProfile)
		}
	}
	for _, row := range rows {
		if row.SecondaryTwitterProfile != "" {
			handles = append(handles, row.SecondaryTwitterProfile)
		}
	}
	return handles, nil
}
