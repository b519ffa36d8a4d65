// Package reconcile appends missing identifier tags to Sonarr and Radarr
// folder paths.
//
// A Backend describes one catalog: how to list it, which identifiers belong
// in a folder name, when an entry should be considered, and how to send the
// edit back. Scan walks a single backend under a modification cap, and the
// Coordinator runs the series backend followed by the movie backend under a
// process-wide lock, then reports the combined outcome.
package reconcile
