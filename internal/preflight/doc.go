// Package preflight provides readiness checks for the Sonarr and Radarr
// instances and the log directory arrtag depends on.
//
// The CLI "arrtag check" command runs RunAll and renders the results. Each
// backend check is gated by its enabled toggle; disabled backends are skipped.
package preflight
