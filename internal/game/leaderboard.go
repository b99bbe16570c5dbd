package game

import "wolfpack/internal/game/spatial"

// HighScoreEntry is one completed run recorded in the local history.
type HighScoreEntry struct {
	RunID string
	Score float64
	Rank  int
}

// HighScoreBoard tracks the single local player's score across completed
// runs. There is no opponent to rank against, only this player's own
// past attempts, but a skip list is still the right structure for
// "best of N runs so far" and "top 10 runs" queries over a long play
// history.
type HighScoreBoard struct {
	skipList *spatial.SkipList
}

// NewHighScoreBoard creates an empty history.
func NewHighScoreBoard() *HighScoreBoard {
	return &HighScoreBoard{skipList: spatial.NewSkipList()}
}

// Record stores a completed run's final score under runID.
func (h *HighScoreBoard) Record(runID string, score float64) {
	h.skipList.Insert(runID, score)
}

// Best returns the highest score recorded, or (0, false) if no run has
// completed yet.
func (h *HighScoreBoard) Best() (float64, bool) {
	entry := h.skipList.GetByRank(1)
	if entry == nil {
		return 0, false
	}
	return entry.Score, true
}

// Top returns the best n runs, highest score first.
func (h *HighScoreBoard) Top(n int) []HighScoreEntry {
	entries := h.skipList.GetRange(1, n)
	result := make([]HighScoreEntry, len(entries))
	for i, e := range entries {
		result[i] = HighScoreEntry{RunID: e.Key, Score: e.Score, Rank: i + 1}
	}
	return result
}

// Length returns the number of recorded runs.
func (h *HighScoreBoard) Length() int { return h.skipList.Length() }

// Clear removes every recorded run.
func (h *HighScoreBoard) Clear() { h.skipList.Clear() }
