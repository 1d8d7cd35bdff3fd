// Package pipeline runs a triage in named phases, each consuming the complete
// output of the previous one:
//
//	Ingest → Check → Resolve → Partition → Summarize
//
// Ingest classifies QC rows and folds them into the pair registry, optionally
// across several workers sharded by base id. Check reconciles the registry
// with the sequence names, Resolve fixes each pair's tier, Partition places
// every sequence record into a bucket, and Summarize counts the result.
//
// Every event is written to the injected *zap.Logger in input order,
// regardless of the number of workers.
package pipeline
