// Package config loads, normalizes, and validates arrtag configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SONARR_API_KEY and RADARR_API_KEY. A missing file is reported rather than
// treated as an error so the CLI can write the embedded sample on first run.
//
// Empty API keys pass validation on purpose: the run coordinator reports them
// as a configuration error in the operational log before any request is made.
package config
