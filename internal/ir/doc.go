// Package ir provides the intermediate representation shared by every
// stage of the iterstruct generation pipeline.
//
// This package contains type definitions and their canonical encoding only.
// All other internal packages import ir; ir imports nothing internal. This
// keeps the declaration model the foundational layer with no circular
// dependencies.
//
// Key design constraints:
//   - Field order is declaration order everywhere; no stage reorders fields
//   - RecordDefinition is immutable once constructed
//   - Nothing here is persisted; values live for one generation pass
//   - Kinds form a closed set, matched through KindVisitor
package ir
