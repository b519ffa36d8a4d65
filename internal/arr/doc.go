// Package arr is a small client for the v3 REST API shared by Sonarr and
// Radarr.
//
// It covers listing series and movies, submitting path edits with
// moveFiles=true, and the system status probe used by preflight checks.
// Every request carries the instance API key in the X-Api-Key header. List
// and status calls fail with *StatusError on anything but 200; update calls
// return the raw status so callers can tell an applied edit (200) from one
// queued by the instance (202).
package arr
