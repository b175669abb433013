package schema

// LineStatus is one per-line progress update emitted by the ingestion
// pipeline. Progress runs 0-100; State is terminal once done or error.
type LineStatus struct {
	LineName string    `json:"line_name"`
	Progress int       `json:"progress"`
	State    LineState `json:"state"`
	Message  string    `json:"message"`
}

// ConsolidationResult reports what a consolidation run produced.
type ConsolidationResult struct {
	SheetCount int          `json:"sheet_count"`
	Strategy   CopyStrategy `json:"strategy"`
	OutputPath string       `json:"output_path"`
}
