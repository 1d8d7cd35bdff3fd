// Package writers turns triage results into serialized outputs.
//
// Design:
//   - Writers own all presentation knowledge (text table, JSON, YAML, JSONL).
//   - Core packages stay domain-only; the pipeline stays orchestration-only.
//   - JSON/YAML/JSONL go through pkg/api (v1) for a stable wire format.
package writers
