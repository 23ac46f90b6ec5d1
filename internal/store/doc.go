// Package store provides the optional SQLite ledger of generation runs.
//
// Each run records the manifest digest of the fixture set it wrote and one
// row per fixture with that file's digest. Comparing digests across runs
// shows when, and for which fixtures, the generated output changed.
//
// # Ordering
//
// Runs are ordered by a logical seq assigned at insert time, never by wall
// clock. Fixture listings are ordered by name.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
