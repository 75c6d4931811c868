// Package history persists one record per analysis session in SQLite.
//
// The store is append-mostly: the pipeline adds a record when a run
// finishes (successfully or not) and the CLI lists recent records. To
// change the recorded fields, update schema.sql and bump schemaVersion.
package history
