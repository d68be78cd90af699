// Package diagstore persists per-candidate diagnostics records in SQLite.
//
// Responsibilities: open the database, apply embedded schema migrations,
// insert one row per candidate per cycle and read rows back by cycle.
// Key types: Store.
//
// Dependency rule: diagstore may depend on candidate (for the Record type)
// and monitoring. Planning code never imports diagstore; it only sees the
// candidate.Sink interface.
package diagstore
