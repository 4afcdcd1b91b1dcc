// Package match provides an integration-test harness that runs complete
// games between Agents end to end, following the teacher's engine/local.go
// game loop and experiments/metrics CSV-writer idiom for recording results.
package match

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// GameRecord summarizes one completed match, the CSV row shape of the
// teacher's metrics.GameRecord.
type GameRecord struct {
	ID             int
	StartingPlayer int
	Winner         int // -1 if no winner was reached within the turn cap
	Turns          int
	StartTime      time.Time
	EndTime        time.Time
}

// MoveRecord summarizes one agent decision within a game, the teacher's
// metrics.MoveRecord equivalent enriched with this engine's own
// diagnostics (simulation count, tree size) in place of the teacher's
// goroutine/episode fields.
type MoveRecord struct {
	Game        int
	Turn        int
	Player      int
	Duration    time.Duration
	Simulations int
	TreeSize    int
}

// Writer persists GameRecords and MoveRecords as CSV files under a
// timestamped subdirectory, mirroring experiments/metrics/writer.go.
type Writer struct {
	baseDir string
}

// NewWriter creates baseDir/<UTC timestamp>/ and returns a Writer rooted
// there.
func NewWriter(baseDir string) (*Writer, error) {
	dir := filepath.Join(baseDir, time.Now().UTC().Format(time.RFC3339))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("match: creating output directory: %w", err)
	}
	return &Writer{baseDir: dir}, nil
}

// WriteGameRecords writes one row per completed game.
func (w *Writer) WriteGameRecords(records []GameRecord) error {
	f, err := os.Create(filepath.Join(w.baseDir, "game_records.csv"))
	if err != nil {
		return fmt.Errorf("match: creating game_records.csv: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "starting_player", "winner", "turns", "start_time", "end_time", "duration"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("match: writing game_records header: %w", err)
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.ID),
			strconv.Itoa(r.StartingPlayer),
			strconv.Itoa(r.Winner),
			strconv.Itoa(r.Turns),
			r.StartTime.Format(time.RFC3339),
			r.EndTime.Format(time.RFC3339),
			r.EndTime.Sub(r.StartTime).String(),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("match: writing game_records row: %w", err)
		}
	}
	return nil
}

// WriteMoveRecords writes one row per agent decision across all games.
func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	f, err := os.Create(filepath.Join(w.baseDir, "move_records.csv"))
	if err != nil {
		return fmt.Errorf("match: creating move_records.csv: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"game", "turn", "player", "duration", "simulations", "tree_size"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("match: writing move_records header: %w", err)
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Game),
			strconv.Itoa(r.Turn),
			strconv.Itoa(r.Player),
			r.Duration.String(),
			strconv.Itoa(r.Simulations),
			strconv.Itoa(r.TreeSize),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("match: writing move_records row: %w", err)
		}
	}
	return nil
}
