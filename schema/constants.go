package schema

// Custom string types for type safety.
type (
	// Shift represents a half-day operating period of a production line.
	Shift string

	// LineState represents where a single line sits in the ingestion pipeline.
	LineState string

	// OutputMode represents the format of the output.
	OutputMode string

	// CopyStrategy names the mechanism that produced a consolidated workbook.
	CopyStrategy string

	// DatabaseBackend represents the database backend for history storage.
	DatabaseBackend string
)

// Shifts recognized by the extractor. ManualShift marks events added by hand
// after extraction.
const (
	DayShift    Shift = "DAY"
	NightShift  Shift = "NIGHT"
	ManualShift Shift = "MANUAL"
)

// All line states reported through the status callback.
const (
	LineWaiting    LineState = "waiting"
	LineProcessing LineState = "processing"
	LineDone       LineState = "done"
	LineError      LineState = "error"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// Consolidation strategies, fastest first.
const (
	HostStrategy     CopyStrategy = "host"     // external automation host process
	PortableStrategy CopyStrategy = "portable" // in-process cell-by-cell copy
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// MaxLineFiles bounds the number of source workbooks per ingestion run.
// One workbook per production line; the plant has 11 lines.
const MaxLineFiles = 11

// DefaultEventLimit is how many events survive per sheet after the
// longest-first sort. Everything below the cut is treated as noise.
const DefaultEventLimit = 2
