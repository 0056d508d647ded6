// ABOUTME: WorkoutSession model for exercise session attempts.
// ABOUTME: Sessions are append-only; status and intensity are string enums.
package models

import (
	"strings"
	"time"
)

// Intensity is the difficulty tier a session was run at. Callers may also
// store a display label; the store does not validate it.
type Intensity string

const (
	IntensityLow    Intensity = "Low"
	IntensityMedium Intensity = "Medium"
	IntensityHigh   Intensity = "High"
)

// WorkoutStatus records whether a session was finished.
type WorkoutStatus string

const (
	StatusComplete   WorkoutStatus = "Complete"
	StatusIncomplete WorkoutStatus = "Incomplete"
)

// IsValid reports whether s is one of the known statuses.
func (s WorkoutStatus) IsValid() bool {
	return s == StatusComplete || s == StatusIncomplete
}

// WorkoutSession represents one exercise session attempt.
type WorkoutSession struct {
	ID        int64         `json:"id" yaml:"id"`
	UserID    int64         `json:"user_id" yaml:"user_id"`
	Timestamp time.Time     `json:"timestamp" yaml:"timestamp"`
	Day       string        `json:"day" yaml:"day"`
	Intensity Intensity     `json:"intensity" yaml:"intensity"`
	XPEarned  int           `json:"xp_earned" yaml:"xp_earned"`
	Exercises []string      `json:"exercises" yaml:"exercises"`
	Status    WorkoutStatus `json:"status" yaml:"status"`
	ImageURI  *string       `json:"image_uri,omitempty" yaml:"image_uri,omitempty"`
}

// IsComplete reports whether the session counts toward streaks and XP.
func (w *WorkoutSession) IsComplete() bool {
	return w.Status == StatusComplete
}

// WorkoutInput is what a caller supplies when a session ends.
type WorkoutInput struct {
	Intensity Intensity
	XPEarned  int
	Exercises []string
	Status    WorkoutStatus
	ImageURI  *string
}

// NewWorkoutInput creates a Complete session input.
func NewWorkoutInput(intensity Intensity, xp int, exercises ...string) *WorkoutInput {
	return &WorkoutInput{
		Intensity: intensity,
		XPEarned:  xp,
		Exercises: exercises,
		Status:    StatusComplete,
	}
}

// Abandoned marks the session Incomplete.
func (in *WorkoutInput) Abandoned() *WorkoutInput {
	in.Status = StatusIncomplete
	return in
}

// WithImage attaches a proof-photo reference.
func (in *WorkoutInput) WithImage(uri string) *WorkoutInput {
	in.ImageURI = &uri
	return in
}

// Normalized returns a copy with the status defaulted and the XP invariant
// applied: only Complete sessions carry XP, and XP is never negative.
func (in WorkoutInput) Normalized() WorkoutInput {
	if in.Status == "" {
		in.Status = StatusComplete
	}
	if in.Status != StatusComplete || in.XPEarned < 0 {
		in.XPEarned = 0
	}
	if in.ImageURI != nil && *in.ImageURI == "" {
		in.ImageURI = nil
	}
	return in
}

// JoinExercises serializes an exercise list the way it is persisted.
func JoinExercises(names []string) string {
	cleaned := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n != "" {
			cleaned = append(cleaned, n)
		}
	}
	return strings.Join(cleaned, ", ")
}

// SplitExercises parses the persisted exercise list.
func SplitExercises(details string) []string {
	if strings.TrimSpace(details) == "" {
		return nil
	}
	parts := strings.Split(details, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			names = append(names, p)
		}
	}
	return names
}
