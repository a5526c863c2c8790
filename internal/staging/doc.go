// Package staging loads raw-zone objects into typed staging tables.
//
// Loads are per-record: each record is validated and inserted on its own,
// and a bad record is logged and skipped without aborting the batch. The
// natural-grain conflict targets make every load idempotent; re-processing
// the same raw object inserts zero additional rows.
package staging
