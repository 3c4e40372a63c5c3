// Package dashboard turns a classified job snapshot into the self-refreshing
// HTML status document.
//
// NewPage builds a view model from jobs.Classification: every row carries its
// category, a CSS class derived from that category, the formatted percent and
// ETA, and whether the row belongs to the operator. Render executes the
// embedded template against a Page. Neither function touches the filesystem;
// persisting the document is the monitor's job.
package dashboard
