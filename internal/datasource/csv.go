// Package datasource loads daily bar series from disk for the recognizer
// and the strategy runner.
package datasource

import (
	"os"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/rxtech-lab/chart-patterns/internal/types"
	"github.com/rxtech-lab/chart-patterns/pkg/errors"
)

// LoadCSV reads a bar series from a CSV file with time, open, high, low,
// close and volume columns. Timestamps must be RFC3339. The returned series
// is validated to have strictly increasing times.
func LoadCSV(path string) ([]types.Bar, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrCodeDataNotFound, err, "bar data file %s not found", path)
		}

		return nil, errors.Wrapf(errors.ErrCodeDataLoad, err, "failed to open bar data file %s", path)
	}
	defer file.Close()

	var bars []types.Bar
	if err := gocsv.UnmarshalFile(file, &bars); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDataLoad, err, "failed to parse bar data file %s", path)
	}

	if err := types.ValidateSeries(bars); err != nil {
		return nil, err
	}

	return bars, nil
}

// FilterRange returns the bars whose times fall inside [start, end]
// inclusive. The input order is preserved.
func FilterRange(bars []types.Bar, start, end time.Time) []types.Bar {
	var filtered []types.Bar

	for _, bar := range bars {
		if bar.Time.Before(start) || bar.Time.After(end) {
			continue
		}

		filtered = append(filtered, bar)
	}

	return filtered
}
