package schema

// Custom string types for type safety.
type (
	// DriverKind distinguishes numeric from categorical drivers.
	DriverKind string

	// Method identifies one of the importance decomposition methods.
	Method string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the run store.
	DatabaseBackend string

	// Direction is the sign of a driver's association with the outcome.
	Direction string
)

// All driver kinds supported.
const (
	NumericKind     DriverKind = "numeric"
	CategoricalKind DriverKind = "categorical"
)

// All importance methods supported.
const (
	ShapleyMethod        Method = "shapley"
	RelativeWeightMethod Method = "relative_weight"
	BetaWeightMethod     Method = "beta_weight"
	CorrelationMethod    Method = "correlation"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All run store backends supported.
const (
	NoneBackend       DatabaseBackend = "none" // default
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
)

// All directions supported.
const (
	PositiveDirection Direction = "+"
	NegativeDirection Direction = "-"
	MixedDirection    Direction = "mixed"
	NoDirection       Direction = "n/a"
)

// Combinatorial and sample-size limits for the decomposition engine.
const (
	// MaxShapleyDrivers caps exact subset enumeration at 2^15 reduced fits.
	MaxShapleyDrivers = 15

	// MinSampleFloor is the absolute minimum complete-case count.
	MinSampleFloor = 30

	// MinSamplePerDriver scales the minimum complete-case count with model size.
	MinSamplePerDriver = 10
)

// AllMethods returns the importance methods in presentation order.
var AllMethods = []Method{ShapleyMethod, RelativeWeightMethod, BetaWeightMethod, CorrelationMethod}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidStoreBackends lists all valid run store backends.
var ValidStoreBackends = map[DatabaseBackend]struct{}{
	NoneBackend:       {},
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
}
