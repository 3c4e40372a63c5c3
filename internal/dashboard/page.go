package dashboard

import (
	"strings"
	"time"

	"farmwatch/internal/jobs"
)

// DefaultRefreshSeconds is used when Options.RefreshSeconds is not positive.
const DefaultRefreshSeconds = 10

const (
	generatedLayout = "2006-01-02 15:04:05"
	submitLayout    = "15:04"
)

// Options controls page assembly.
type Options struct {
	// Operator marks rows owned by this user in the farm-wide table.
	Operator string
	// GeneratedAt is shown in the header.
	GeneratedAt time.Time
	// RefreshSeconds sets the meta refresh interval of the document.
	RefreshSeconds int
	// FormatTimestamp renders the submit column; defaults to HH:MM.
	FormatTimestamp func(time.Time) string
}

// Row is one table line.
type Row struct {
	User        string
	Name        string
	Status      string
	Category    jobs.Category
	StatusClass string
	Percent     int
	ETA         string
	ETAMuted    bool
	Mine        bool
	Submitted   string
}

// Summary counts jobs per category for the summary strip.
type Summary struct {
	Rendering int
	Queued    int
	Completed int
	Failed    int
	MineTotal int
}

// Page is the view model executed by the status template.
type Page struct {
	Title          string
	Operator       string
	GeneratedAt    string
	RefreshSeconds int
	Active         []Row
	Mine           []Row
	Summary        Summary
}

// NewPage assembles the view model for one render.
func NewPage(cls jobs.Classification, opts Options) Page {
	refresh := opts.RefreshSeconds
	if refresh <= 0 {
		refresh = DefaultRefreshSeconds
	}
	formatSubmit := opts.FormatTimestamp
	if formatSubmit == nil {
		formatSubmit = func(t time.Time) string { return t.Format(submitLayout) }
	}
	generated := opts.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}

	page := Page{
		Title:          "Farm Status",
		Operator:       strings.TrimSpace(opts.Operator),
		GeneratedAt:    generated.Format(generatedLayout),
		RefreshSeconds: refresh,
		Active:         make([]Row, 0, len(cls.Active)),
		Mine:           make([]Row, 0, len(cls.MineToday)),
	}
	for _, rec := range cls.Active {
		page.Active = append(page.Active, newRow(rec, page.Operator, formatSubmit))
	}
	for _, rec := range cls.MineToday {
		row := newRow(rec, page.Operator, formatSubmit)
		row.Mine = false
		page.Mine = append(page.Mine, row)
	}

	active := jobs.Counts(cls.Active)
	mine := jobs.Counts(cls.MineToday)
	page.Summary = Summary{
		Rendering: active[jobs.CategoryRendering],
		Queued:    active[jobs.CategoryQueued],
		Completed: mine[jobs.CategoryCompleted],
		Failed:    mine[jobs.CategoryFailed],
		MineTotal: len(cls.MineToday),
	}
	return page
}

func newRow(rec jobs.Record, operator string, formatSubmit func(time.Time) string) Row {
	category := jobs.Categorize(rec.Status)
	eta := rec.ETA()
	return Row{
		User:        rec.User,
		Name:        rec.Name,
		Status:      rec.Status,
		Category:    category,
		StatusClass: statusClass(category),
		Percent:     rec.Percent(),
		ETA:         eta,
		ETAMuted:    eta == jobs.ETANotApplicable || eta == jobs.ETACalculating,
		Mine:        operator != "" && jobs.SameUser(rec.User, operator),
		Submitted:   formatSubmit(rec.Submitted),
	}
}

// statusClass returns the CSS class for a job category.
func statusClass(category jobs.Category) string {
	return "st-" + category.String()
}
