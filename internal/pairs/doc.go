// Package pairs holds the per-chain and per-pair state built from QC reads:
//
//   - Reducer keeps the best tier seen for each full (chain) id.
//   - Registry keeps the best heavy and light tier for each base (pair) id.
//   - Check cross-references the registry with the sequence records and
//     demotes sides that have no counterpart.
//   - Resolve computes the pair tier as the worse of the two sides.
//
// Reducer and Registry are safe for concurrent use. Writes for one key are
// serialized by a striped lock chosen with ShardOf, so callers that
// partition work with the same function never contend across workers.
package pairs
