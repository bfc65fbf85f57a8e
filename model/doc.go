// Package model defines the value types shared across the conversion
// pipeline: geometric primitives, line fragments, merged blocks, links,
// images, tables, and per-page aggregates.
//
// All entities are plain value records scoped to a single conversion call.
// Merging and classification always construct new values rather than
// mutating existing ones.
package model
