package datasource

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/rxtech-lab/chart-patterns/pkg/errors"
)

type CSVTestSuite struct {
	suite.Suite
}

func TestCSVSuite(t *testing.T) {
	suite.Run(t, new(CSVTestSuite))
}

const sampleCSV = `time,open,high,low,close,volume
2024-01-02T00:00:00Z,100,102,99,101,1500
2024-01-03T00:00:00Z,101,104,100,103,1800
2024-01-04T00:00:00Z,103,103.5,98,99,2400
`

func (suite *CSVTestSuite) writeFile(name, content string) string {
	path := filepath.Join(suite.T().TempDir(), name)
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0644))

	return path
}

func (suite *CSVTestSuite) TestLoadCSV() {
	path := suite.writeFile("bars.csv", sampleCSV)

	bars, err := LoadCSV(path)
	suite.Require().NoError(err)
	suite.Require().Len(bars, 3)

	suite.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), bars[0].Time)
	suite.Equal(100.0, bars[0].Open)
	suite.Equal(102.0, bars[0].High)
	suite.Equal(99.0, bars[0].Low)
	suite.Equal(101.0, bars[0].Close)
	suite.Equal(1500.0, bars[0].Volume)
	suite.Equal(99.0, bars[2].Close)
}

func (suite *CSVTestSuite) TestLoadCSVMissingFile() {
	_, err := LoadCSV(filepath.Join(suite.T().TempDir(), "missing.csv"))
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeDataNotFound))
}

func (suite *CSVTestSuite) TestLoadCSVMalformed() {
	path := suite.writeFile("bad.csv", "time,open\nnot-a-time,abc\n")

	_, err := LoadCSV(path)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeDataLoad))
}

func (suite *CSVTestSuite) TestLoadCSVRejectsUnorderedSeries() {
	unordered := `time,open,high,low,close,volume
2024-01-03T00:00:00Z,101,104,100,103,1800
2024-01-02T00:00:00Z,100,102,99,101,1500
`
	path := suite.writeFile("unordered.csv", unordered)

	_, err := LoadCSV(path)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidSeries))
}

func (suite *CSVTestSuite) TestFilterRange() {
	path := suite.writeFile("bars.csv", sampleCSV)

	bars, err := LoadCSV(path)
	suite.Require().NoError(err)

	filtered := FilterRange(bars,
		time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC))
	suite.Require().Len(filtered, 2)
	suite.Equal(103.0, filtered[0].Close)

	empty := FilterRange(bars,
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	suite.Empty(empty)
}
