// pkg/api/summary_v1.go
package api

// SummaryV1 is the stable JSON/YAML schema for a triage run summary.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type SummaryV1 struct {
	Schema     string `json:"schema" yaml:"schema"` // "qctriage.summary/v1"
	RunID      string `json:"run_id" yaml:"run_id"`
	Vocabulary string `json:"vocabulary" yaml:"vocabulary"`

	QCRows         int `json:"qc_rows" yaml:"qc_rows"`
	QCRowsParsed   int `json:"qc_rows_parsed" yaml:"qc_rows_parsed"`
	Chains         int `json:"chains" yaml:"chains"`
	TotalSequences int `json:"total_sequences" yaml:"total_sequences"`
	TotalPairs     int `json:"total_pairs" yaml:"total_pairs"`

	Sequences []TierV1 `json:"sequences" yaml:"sequences"`
	Pairs     []TierV1 `json:"pairs" yaml:"pairs"`

	Anomalies AnomaliesV1 `json:"anomalies" yaml:"anomalies"`
	Outputs   []string    `json:"outputs,omitempty" yaml:"outputs,omitempty"`
}

// TierV1 is one category row of a summary.
type TierV1 struct {
	Category int     `json:"category" yaml:"category"`
	Count    int     `json:"count" yaml:"count"`
	Percent  float64 `json:"percent" yaml:"percent"`
}

// AnomaliesV1 lists unmatched identifiers by kind, in natural order.
type AnomaliesV1 struct {
	QCMissingSequence []string `json:"qc_missing_sequence" yaml:"qc_missing_sequence"`
	SequenceMissingQC []string `json:"sequence_missing_qc" yaml:"sequence_missing_qc"`
	UnparsableNames   []string `json:"unparsable_sequence_names" yaml:"unparsable_sequence_names"`
	UnparsableQC      []string `json:"unparsable_qc_names" yaml:"unparsable_qc_names"`
}

// AssignmentV1 is the stable JSONL schema for one sequence placement.
type AssignmentV1 struct {
	Index    int    `json:"index"`
	ID       string `json:"id"`
	FullID   string `json:"full_id,omitempty"`
	BaseID   string `json:"base_id,omitempty"`
	Category int    `json:"category"`
	Reason   string `json:"reason"` // "resolved" | "no_entry" | "unparsable"
}

// SummarySchema tags SummaryV1 documents.
const SummarySchema = "qctriage.summary/v1"
