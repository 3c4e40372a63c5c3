// Package monitor runs the poll loop that keeps the status document current.
//
// Each cycle fetches a snapshot from the backend, classifies it, renders the
// dashboard into memory and overwrites the output document. The first
// successful write opens the viewer. Cycle failures of any kind, panics
// included, are logged and retried after the poll interval; only context
// cancellation ends Run. A flock on the output's lock file keeps two monitors
// from writing the same document.
package monitor
