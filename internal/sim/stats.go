package sim

import (
	"math"
	"sync"
)

// Statistics aggregates completed runs across a session. It lives outside
// any single Run and survives Run.Reset; callers share one value between
// the runs they want aggregated.
type Statistics struct {
	mu                    sync.Mutex
	shortest              int
	longest               int
	average               float64
	current               int
	runs                  []int
	longestWithoutMeeting int
}

// StatsSnapshot is a point-in-time copy of Statistics.
type StatsSnapshot struct {
	Shortest              int     // -1 until a run completes
	Longest               int     // -1 until a run completes
	Average               float64 // Mean run length, rounded to 2 decimals
	Current               int     // Length of the most recent run
	Runs                  []int   // Every completed run length, in order
	LongestWithoutMeeting int     // Longest streak any agent wandered alone
}

// Completed returns how many runs have been recorded.
func (s StatsSnapshot) Completed() int {
	return len(s.Runs)
}

// NewStatistics returns empty statistics.
func NewStatistics() *Statistics {
	s := &Statistics{}
	s.reset()
	return s
}

// RecordRun appends a completed run of the given length and recomputes
// shortest, longest and average.
func (s *Statistics) RecordRun(turns int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = turns
	s.runs = append(s.runs, turns)
	if s.shortest == -1 || turns < s.shortest {
		s.shortest = turns
	}
	if s.longest == -1 || turns > s.longest {
		s.longest = turns
	}

	total := 0
	for _, r := range s.runs {
		total += r
	}
	s.average = round2(float64(total) / float64(len(s.runs)))
}

// ObserveMeeting folds the move counts of two agents that just met into
// the longest-without-meeting record and returns the longer of the two.
func (s *Statistics) ObserveMeeting(a, b int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	streak := max(a, b)
	if streak > s.longestWithoutMeeting {
		s.longestWithoutMeeting = streak
	}
	return streak
}

// Snapshot returns a copy of the current values.
func (s *Statistics) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	runs := make([]int, len(s.runs))
	copy(runs, s.runs)
	return StatsSnapshot{
		Shortest:              s.shortest,
		Longest:               s.longest,
		Average:               s.average,
		Current:               s.current,
		Runs:                  runs,
		LongestWithoutMeeting: s.longestWithoutMeeting,
	}
}

// Reset clears all recorded runs.
func (s *Statistics) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *Statistics) reset() {
	s.shortest = -1
	s.longest = -1
	s.average = 0
	s.current = 0
	s.runs = nil
	s.longestWithoutMeeting = 0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
