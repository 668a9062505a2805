package datarecording

import (
	"context"
	"database/sql"
	"fmt"
	"os"
)

// A Reader reads recorded paging simulations.
type Reader struct {
	*sql.DB
}

// NewReader opens an existing database file.
func NewReader(path string) (*Reader, error) {
	filename := databaseFilename(path)

	_, err := os.Stat(filename)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, err
	}

	return &Reader{DB: db}, nil
}

// NewReaderWithDB creates a reader over an open database.
func NewReaderWithDB(db *sql.DB) *Reader {
	return &Reader{DB: db}
}

// Runs returns the recorded runs in recording order.
func (r *Reader) Runs(ctx context.Context) ([]RunEntry, error) {
	rows, err := r.QueryContext(ctx,
		"SELECT RunID, Engine, Policy, TotalInstructions, FirstInstruction "+
			"FROM "+RunTable+" ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunEntry
	for rows.Next() {
		var e RunEntry

		err := rows.Scan(&e.RunID, &e.Engine, &e.Policy,
			&e.TotalInstructions, &e.FirstInstruction)
		if err != nil {
			return nil, err
		}

		runs = append(runs, e)
	}

	return runs, rows.Err()
}

// Steps returns the recorded steps of a run in execution order.
func (r *Reader) Steps(ctx context.Context, runID string) ([]StepEntry, error) {
	rows, err := r.QueryContext(ctx,
		"SELECT RunID, Seq, Instruction, Page, Hit, Evicted, Loaded, Frame, "+
			"PhysicalAddress, Frames, FaultCount, ExecutedCount "+
			"FROM "+StepTable+" WHERE RunID = ? ORDER BY Seq", runID)
	if err != nil {
		return nil, fmt.Errorf("query steps of run %s: %w", runID, err)
	}
	defer rows.Close()

	var steps []StepEntry
	for rows.Next() {
		var e StepEntry

		err := rows.Scan(&e.RunID, &e.Seq, &e.Instruction, &e.Page, &e.Hit,
			&e.Evicted, &e.Loaded, &e.Frame, &e.PhysicalAddress, &e.Frames,
			&e.FaultCount, &e.ExecutedCount)
		if err != nil {
			return nil, err
		}

		steps = append(steps, e)
	}

	return steps, rows.Err()
}

// Summaries aggregates every recorded run.
func (r *Reader) Summaries(ctx context.Context) ([]RunSummary, error) {
	rows, err := r.QueryContext(ctx, `
		SELECT r.RunID, r.Policy, r.TotalInstructions,
			COUNT(s.Seq), COALESCE(SUM(CASE WHEN s.Seq IS NULL OR s.Hit THEN 0 ELSE 1 END), 0)
		FROM `+RunTable+` r
		LEFT JOIN `+StepTable+` s ON s.RunID = r.RunID
		GROUP BY r.RunID
		ORDER BY MIN(r.rowid)`)
	if err != nil {
		return nil, fmt.Errorf("summarize runs: %w", err)
	}
	defer rows.Close()

	var summaries []RunSummary
	for rows.Next() {
		var s RunSummary

		err := rows.Scan(&s.RunID, &s.Policy, &s.TotalInstructions,
			&s.Executed, &s.Faults)
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}
