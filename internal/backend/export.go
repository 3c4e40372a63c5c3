package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"farmwatch/internal/jobs"
)

// exportJob mirrors the job properties exposed by the queue's scripting API,
// as written by the farm's job export endpoint.
type exportJob struct {
	User      string  `json:"JobUserName"`
	Name      string  `json:"JobName"`
	Status    string  `json:"JobStatus"`
	Submitted string  `json:"JobSubmitDateTime"`
	Completed int     `json:"CompletedChunks"`
	Tasks     int     `json:"JobTaskCount"`
	Remaining *string `json:"JobEstimatedWallClockTimeRemaining"`
}

var submitLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04",
}

// decodeExport reads a JSON array of exported jobs.
func decodeExport(r io.Reader, loc *time.Location) (jobs.Snapshot, error) {
	var payload []exportJob
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode job export: %w", err)
	}
	snapshot := make(jobs.Snapshot, 0, len(payload))
	for i, job := range payload {
		rec, err := job.record(loc)
		if err != nil {
			return nil, fmt.Errorf("job %d (%q): %w", i, job.Name, err)
		}
		snapshot = append(snapshot, rec)
	}
	return snapshot, nil
}

func (j exportJob) record(loc *time.Location) (jobs.Record, error) {
	submitted, err := parseSubmitTime(j.Submitted, loc)
	if err != nil {
		return jobs.Record{}, err
	}
	if j.Completed < 0 || j.Tasks < 0 {
		return jobs.Record{}, fmt.Errorf("negative chunk counts %d/%d", j.Completed, j.Tasks)
	}
	remaining := jobs.UnknownRemaining()
	if j.Remaining != nil {
		remaining = ParseTimeSpan(*j.Remaining)
	}
	return jobs.Record{
		User:           strings.TrimSpace(j.User),
		Name:           j.Name,
		Status:         strings.TrimSpace(j.Status),
		Submitted:      submitted,
		CompletedUnits: j.Completed,
		TotalUnits:     j.Tasks,
		Remaining:      remaining,
	}, nil
}

// parseSubmitTime accepts RFC 3339 timestamps or zone-less local timestamps,
// which are interpreted in loc.
func parseSubmitTime(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("missing submit time")
	}
	if loc == nil {
		loc = time.Local
	}
	if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ts.In(loc), nil
	}
	for _, layout := range submitLayouts {
		if ts, err := time.ParseInLocation(layout, value, loc); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized submit time %q", value)
}
