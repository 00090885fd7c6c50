// Package mediastore keeps a relational content record and its durably
// stored image files consistent across create, append, reorder and delete
// operations.
//
// The package is storage- and transport-agnostic: persistence goes through
// the Repository interface (see repo/memory and repo/postgres), binary
// storage goes through the AssetStore interface (see storage/fs,
// storage/memory and storage/s3), and callers hand the Coordinator validated
// commands rather than HTTP requests.
//
// The Coordinator owns the failure semantics. Files are written before the
// database row exists, so a later persistence failure triggers compensating
// deletion of the files already written; removal paths attempt physical
// cleanup best-effort and never let a missing file block record deletion.
package mediastore
