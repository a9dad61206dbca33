// Package store persists planning runs and their travel moves in SQLite.
//
// The schema is managed by golang-migrate from migrations embedded in the
// binary. A run records the configuration it was planned with; moves hold
// the profile parameters and 3D points of every planned travel, keyed by
// run, layer and emission index. Deleting a run cascades to its moves.
package store
