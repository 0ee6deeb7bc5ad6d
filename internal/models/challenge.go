package models

import (
	"math"
	"time"
)

// ChallengeLength is the number of days in the challenge
const ChallengeLength = 7

// ChallengeDay is one user's completion record for a single day
type ChallengeDay struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"-"`
	DayNumber   int        `json:"dayNumber"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
}

// ChallengeProgress is derived from the day records and never stored
type ChallengeProgress struct {
	CurrentDay          int  `json:"currentDay"`
	CompletedCount      int  `json:"completedCount"`
	ProgressPercentage  int  `json:"progressPercentage"`
	IsChallengeComplete bool `json:"isChallengeComplete"`
}

// NewChallengeDays returns the pending records for days 1..7
func NewChallengeDays(userID int64) []ChallengeDay {
	days := make([]ChallengeDay, ChallengeLength)
	for i := range days {
		days[i] = ChallengeDay{UserID: userID, DayNumber: i + 1}
	}
	return days
}

// MissingDays lists the day numbers in 1..7 that have no record
func MissingDays(days []ChallengeDay) []int {
	present := make(map[int]bool, len(days))
	for _, d := range days {
		present[d.DayNumber] = true
	}
	var missing []int
	for n := 1; n <= ChallengeLength; n++ {
		if !present[n] {
			missing = append(missing, n)
		}
	}
	return missing
}

// CurrentDay returns the lowest incomplete day, or 7 once every day is
// complete. An empty set means the challenge has not started.
func CurrentDay(days []ChallengeDay) int {
	if len(days) == 0 {
		return 1
	}
	current := 0
	for _, d := range days {
		if d.Completed {
			continue
		}
		if current == 0 || d.DayNumber < current {
			current = d.DayNumber
		}
	}
	if current == 0 || current > ChallengeLength {
		return ChallengeLength
	}
	return current
}

// Advance returns the day to display after displayedDay. It never
// persists anything and stops at the last day.
func Advance(displayedDay int) int {
	if displayedDay < 1 {
		return 1
	}
	if displayedDay < ChallengeLength {
		return displayedDay + 1
	}
	return ChallengeLength
}

// FindDay returns the record for dayNumber, if present
func FindDay(days []ChallengeDay, dayNumber int) (ChallengeDay, bool) {
	for _, d := range days {
		if d.DayNumber == dayNumber {
			return d, true
		}
	}
	return ChallengeDay{}, false
}

// Summarize computes the progress view for a set of day records
func Summarize(days []ChallengeDay) ChallengeProgress {
	completed := 0
	for _, d := range days {
		if d.Completed {
			completed++
		}
	}
	return ChallengeProgress{
		CurrentDay:          CurrentDay(days),
		CompletedCount:      completed,
		ProgressPercentage:  int(math.Round(float64(completed) / ChallengeLength * 100)),
		IsChallengeComplete: completed == ChallengeLength,
	}
}
