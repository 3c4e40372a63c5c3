// Package backend adapts external job-queue sources into jobs.Snapshot values.
//
// Every source answers one question, "list all jobs", and is called once per
// poll cycle indefinitely. Sources decode the backend's own encodings at the
// boundary: submit timestamps become time.Time in the local zone and
// remaining-time strings become jobs.Remaining via ParseTimeSpan, so the core
// never handles raw values. A malformed record fails the whole fetch (the
// poll loop retries next cycle); an undecodable remaining-time value only
// marks that job's estimate invalid.
//
// Three sources exist: an HTTP job export endpoint, the same export read from
// a file, and a SQLite mirror of the queue.
package backend
