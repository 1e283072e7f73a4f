package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for scan history.
	DatabaseBackend string

	// SizeBand represents the unit a size is rendered in.
	SizeBand string

	// LogLevel represents the verbosity of debug tracing.
	LogLevel string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	TableOut   OutputMode = "table"
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// Size bands, in ascending order.
const (
	ByteBand     SizeBand = "B"
	KilobyteBand SizeBand = "KB"
	MegabyteBand SizeBand = "MB"
	GigabyteBand SizeBand = "GB"
)

// Log levels supported.
const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn" // default
	ErrorLevel LogLevel = "error"
)

// Byte multiples used by the size formatter.
const (
	KiB int64 = 1024
	MiB       = KiB * 1024
	GiB       = MiB * 1024
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	TableOut:   {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidLogLevels lists all valid log levels.
var ValidLogLevels = map[LogLevel]struct{}{
	DebugLevel: {},
	InfoLevel:  {},
	WarnLevel:  {},
	ErrorLevel: {},
}

// SizeBandOf returns the band a size falls into. Thresholds are powers of 1024.
func SizeBandOf(size int64) SizeBand {
	switch {
	case size < KiB:
		return ByteBand
	case size < MiB:
		return KilobyteBand
	case size < GiB:
		return MegabyteBand
	default:
		return GigabyteBand
	}
}

// Divisor returns the number of bytes in one unit of the band.
func (b SizeBand) Divisor() int64 {
	switch b {
	case KilobyteBand:
		return KiB
	case MegabyteBand:
		return MiB
	case GigabyteBand:
		return GiB
	default:
		return 1
	}
}
