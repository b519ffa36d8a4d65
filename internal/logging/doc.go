// Package logging assembles the structured slog loggers used by arrtag.
//
// A run writes two size-rotated files: main.log carries the operational
// trail (progress, path changes, failures) and debug.log carries per-entry
// diagnostics such as rejected update payloads. Both can be mirrored to the
// console through the same human-readable handler, and every record is
// tagged with the run id so lines from one invocation can be grouped.
//
// Prefer these constructors over hand-rolled slog setup so new components
// emit data with the same shape and routing as the rest of the tool.
package logging
