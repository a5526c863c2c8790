// Package rawzone writes provider payloads, untouched, into partitioned
// object storage. Two backends exist behind one interface: S3 (single-call
// atomic put) and local filesystem (temp file + rename).
//
// Incremental partitions are write-once: an existing key makes the write a
// no-op. Historical partitions are replaced atomically on re-runs.
package rawzone
