package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"farmwatch/internal/backend"
	"farmwatch/internal/jobs"
)

type jobJSON struct {
	User      string `json:"user"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	Category  string `json:"category"`
	Percent   int    `json:"percent"`
	ETA       string `json:"eta"`
	Submitted string `json:"submitted"`
}

type jobsJSON struct {
	Operator  string    `json:"operator"`
	Generated string    `json:"generated"`
	Active    []jobJSON `json:"active"`
	MineToday []jobJSON `json:"mine_today"`
}

func newJobsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Fetch the queue once and print the dashboard views",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			src, err := backend.Open(cfg)
			if err != nil {
				return fmt.Errorf("open backend: %w", err)
			}
			defer backend.Close(src)

			snapshot, err := src.ListJobs(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch jobs: %w", err)
			}
			now := time.Now()
			cls := jobs.Classify(snapshot, cfg.Operator.User, now)

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJobsJSON(out, cfg.Operator.User, now, cls)
			}
			writeJobsTables(out, now, cls, shouldColorize(out))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func writeJobsTables(out io.Writer, now time.Time, cls jobs.Classification, colorize bool) {
	if len(cls.Active) == 0 {
		fmt.Fprintln(out, "The farm is completely empty!")
	} else {
		rows := make([][]string, 0, len(cls.Active))
		for _, rec := range cls.Active {
			category := jobs.Categorize(rec.Status)
			rows = append(rows, []string{
				rec.User,
				rec.Name,
				colorizeStatus(rec.Status, category, colorize),
				strconv.Itoa(rec.Percent()) + "%",
				rec.ETA(),
				humanize.RelTime(rec.Submitted, now, "ago", "from now"),
			})
		}
		fmt.Fprintln(out, renderTable("Active Queue & Renders",
			[]string{"User", "Job Name", "Status", "Progress", "ETA", "Submitted"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
		))
	}
	fmt.Fprintln(out)

	if len(cls.MineToday) == 0 {
		fmt.Fprintln(out, "No submissions today.")
		return
	}
	rows := make([][]string, 0, len(cls.MineToday))
	for _, rec := range cls.MineToday {
		category := jobs.Categorize(rec.Status)
		rows = append(rows, []string{
			rec.Name,
			colorizeStatus(rec.Status, category, colorize),
			strconv.Itoa(rec.Percent()) + "%",
			rec.Submitted.In(now.Location()).Format("15:04"),
		})
	}
	fmt.Fprintln(out, renderTable("My History (Today)",
		[]string{"Job Name", "Status", "Progress", "Submitted"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
	))
}

func writeJobsJSON(out io.Writer, operator string, now time.Time, cls jobs.Classification) error {
	payload := jobsJSON{
		Operator:  operator,
		Generated: now.Format(time.RFC3339),
		Active:    toJobJSON(cls.Active),
		MineToday: toJobJSON(cls.MineToday),
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func toJobJSON(records []jobs.Record) []jobJSON {
	out := make([]jobJSON, 0, len(records))
	for _, rec := range records {
		out = append(out, jobJSON{
			User:      rec.User,
			Name:      rec.Name,
			Status:    rec.Status,
			Category:  jobs.Categorize(rec.Status).String(),
			Percent:   rec.Percent(),
			ETA:       rec.ETA(),
			Submitted: rec.Submitted.Format(time.RFC3339),
		})
	}
	return out
}
