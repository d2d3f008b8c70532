package schema

import "time"

// DataFormat identifies the on-disk format of an input dataset.
type DataFormat string

// All input data formats supported.
const (
	AutoFormat    DataFormat = "auto" // default: decide by file extension
	CSVFormat     DataFormat = "csv"
	ParquetFormat DataFormat = "parquet"
)

// ValidDataFormats lists all valid input data formats.
var ValidDataFormats = map[DataFormat]struct{}{
	AutoFormat:    {},
	CSVFormat:     {},
	ParquetFormat: {},
}

// RunStoreStatus reports the state of the run store backing database.
type RunStoreStatus struct {
	Backend      DatabaseBackend `json:"backend"`
	Location     string          `json:"location"`
	TotalRuns    int64           `json:"total_runs"`
	TotalRecords int64           `json:"total_records"`
}

// RunRecord is one row of the keydriver_runs table.
type RunRecord struct {
	RunID         int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	TotalDrivers  int32
	ConfigParams  *string
}

// ImportanceRowRecord is one row of the keydriver_importance table.
type ImportanceRowRecord struct {
	RunID        int64
	Outcome      string
	Driver       string
	Label        string
	Kind         string
	ShapleyPct   float64
	ShapleyValue float64
	RelWeightPct float64
	BetaPct      float64
	BetaStd      float64
	Direction    string
	Correlation  *float64
	AvgRank      float64
}
