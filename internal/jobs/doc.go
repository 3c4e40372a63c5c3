// Package jobs holds the render-farm job model and the pure decision logic the
// dashboard is built from.
//
// Records arrive from a backend once per poll cycle and are never mutated. The
// package categorizes free-text statuses, partitions a snapshot into the
// farm-wide active view and the operator's jobs submitted today, computes
// completion percentages, and formats remaining-time estimates. Nothing here
// performs I/O or keeps state between calls; the poll loop supplies the clock.
//
// Categorize is the only place status text is interpreted. Renderers and
// table builders must ask it rather than matching status strings themselves.
package jobs
