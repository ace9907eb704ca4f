// package formatter renders loaded match data as terminal tables and CSV exports
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/desertthunder/stratos/internal/models"
	"github.com/desertthunder/stratos/internal/tasks"
	"github.com/desertthunder/stratos/internal/timeline"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// WriteMatchTable writes one row per fixture.
func WriteMatchTable(w io.Writer, matches []models.Match) error {
	table := newTable(w)
	table.Header("ID", "DATE", "HOME", "SCORE", "AWAY", "COMPETITION")

	for _, m := range matches {
		if err := table.Append(
			strconv.Itoa(m.ID),
			m.Date,
			m.HomeTeam,
			fmt.Sprintf("%d-%d", m.HomeScore, m.AwayScore),
			m.AwayTeam,
			fmt.Sprintf("%s %s", m.Competition, m.Season),
		); err != nil {
			return fmt.Errorf("failed to append match row: %w", err)
		}
	}
	return table.Render()
}

// WriteSummary writes the replay header, the tracking counts and the per-team event table.
func WriteSummary(w io.Writer, match models.Match, s timeline.Summary) error {
	if _, err := fmt.Fprintf(w, "\n%s  |  %s %s  |  %s\n\n", match.Title(), match.Competition, match.Season, match.Date); err != nil {
		return err
	}

	counts := newTable(w)
	counts.Header("FRAMES", "SAMPLES", "EVENTS", "MATCHED", "PASSES", "SHOTS", "OTHER", "DUPLICATES")
	if err := counts.Append(
		strconv.Itoa(s.Frames),
		strconv.Itoa(s.Samples),
		strconv.Itoa(s.Events),
		strconv.Itoa(s.MatchedFrames),
		strconv.Itoa(s.ByKind[models.KindPass]),
		strconv.Itoa(s.ByKind[models.KindShot]),
		strconv.Itoa(s.ByKind[models.KindOther]),
		strconv.Itoa(s.Duplicates),
	); err != nil {
		return fmt.Errorf("failed to append summary row: %w", err)
	}
	if err := counts.Render(); err != nil {
		return err
	}

	teams := newTable(w)
	teams.Header("TEAM", "PASSES", "COMPLETE", "FAILED", "COMP%", "SHOTS", "XG")
	for _, t := range s.Teams {
		pct := "-"
		if t.Passes > 0 {
			pct = fmt.Sprintf("%.0f%%", float64(t.PassesComplete())/float64(t.Passes)*100)
		}
		if err := teams.Append(
			t.Team,
			strconv.Itoa(t.Passes),
			strconv.Itoa(t.PassesComplete()),
			strconv.Itoa(t.PassesFailed),
			pct,
			strconv.Itoa(t.Shots),
			fmt.Sprintf("%.2f", t.ExpectedGoals),
		); err != nil {
			return fmt.Errorf("failed to append team row: %w", err)
		}
	}
	return teams.Render()
}

// WritePrefetchTable writes one row per prefetched match.
func WritePrefetchTable(w io.Writer, s *tasks.PrefetchSummary) error {
	table := newTable(w)
	table.Header("ID", "MATCH", "360", "SAMPLES", "EVENTS", "ERROR")

	for _, r := range s.Results {
		available, errText := "no", ""
		if r.Available {
			available = "yes"
		}
		if r.Error != nil {
			errText = r.Error.Error()
		}
		if err := table.Append(
			strconv.Itoa(r.Match.ID),
			r.Match.Title(),
			available,
			strconv.Itoa(r.Samples),
			strconv.Itoa(r.Events),
			errText,
		); err != nil {
			return fmt.Errorf("failed to append prefetch row: %w", err)
		}
	}
	return table.Render()
}

// WriteCacheTable writes one row per cached payload.
func WriteCacheTable(w io.Writer, entries []*models.CacheEntry) error {
	table := newTable(w)
	table.Header("#", "KIND", "KEY", "BYTES", "UPDATED")

	for _, e := range entries {
		if err := table.Append(
			strconv.Itoa(e.Sequence()),
			e.Kind(),
			e.Key(),
			strconv.Itoa(len(e.Body())),
			e.UpdatedAt().Format("2006-01-02 15:04"),
		); err != nil {
			return fmt.Errorf("failed to append cache row: %w", err)
		}
	}
	return table.Render()
}

// EventsToCSV converts events to CSV with columns:
// ID, Index, Period, Minute, Second, Type, Team, Player, X, Y, EndX, EndY, Outcome, XG.
// Missing coordinates and xG are empty cells.
func EventsToCSV(events []models.Event) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Index", "Period", "Minute", "Second", "Type", "Team", "Player", "X", "Y", "EndX", "EndY", "Outcome", "XG"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, ev := range events {
		if err := writer.Write(eventRecord(ev)); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

func eventRecord(ev models.Event) []string {
	meta := ev.Info()
	record := []string{
		meta.ID,
		strconv.Itoa(meta.Index),
		strconv.Itoa(meta.Period),
		strconv.Itoa(meta.Minute),
		strconv.Itoa(meta.Second),
		"", "", "", "", "", "", "", "", "",
	}
	record[6], record[7] = meta.Team, meta.Player

	var start, end *models.Point
	switch e := ev.(type) {
	case models.Pass:
		record[5], record[12] = "Pass", e.Outcome
		start, end = e.Start, e.End
	case models.Shot:
		record[5], record[12] = "Shot", e.Outcome
		start = e.Start
		if e.XG != nil {
			record[13] = formatFloat(*e.XG)
		}
	case models.Other:
		record[5] = e.Type
		start = e.Start
	}

	if start != nil {
		record[8], record[9] = formatFloat(start.X), formatFloat(start.Y)
	}
	if end != nil {
		record[10], record[11] = formatFloat(end.X), formatFloat(end.Y)
	}
	return record
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// WriteEventsCSV writes [EventsToCSV] output to path, creating parent directories.
func WriteEventsCSV(events []models.Event, path string) error {
	data, err := EventsToCSV(events)
	if err != nil {
		return fmt.Errorf("failed to generate CSV: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write CSV file: %w", err)
	}
	return nil
}
