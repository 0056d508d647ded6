// ABOUTME: Workout log: append-only session records and derived statistics.
// ABOUTME: Streaks and weekly distribution are computed from the indexed day column.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Reogieakero/fitness/internal/models"
)

const workoutColumns = `id, userId, timestamp, COALESCE(day, substr(timestamp, 1, 10)),
	COALESCE(intensity, ''), COALESCE(xpEarned, 0), COALESCE(details, ''),
	COALESCE(status, 'Complete'), imageUri`

// WorkoutStore records exercise sessions.
type WorkoutStore struct {
	d *DB
}

// NewWorkoutStore returns a WorkoutStore backed by d.
func NewWorkoutStore(d *DB) *WorkoutStore {
	return &WorkoutStore{d: d}
}

// Record appends a session. The timestamp and calendar day come from the
// storage clock, never from the caller.
func (s *WorkoutStore) Record(userID int64, in models.WorkoutInput) (int64, error) {
	n := in.Normalized()
	now := s.d.now()

	w := &models.WorkoutSession{
		UserID:    userID,
		Timestamp: now.UTC(),
		Day:       models.DayKey(now),
		Intensity: n.Intensity,
		XPEarned:  n.XPEarned,
		Exercises: n.Exercises,
		Status:    n.Status,
		ImageURI:  n.ImageURI,
	}
	return insertWorkout(s.d.db, w)
}

func insertWorkout(x execer, w *models.WorkoutSession) (int64, error) {
	var image any
	if w.ImageURI != nil {
		image = *w.ImageURI
	}

	result, err := x.Exec(`
		INSERT INTO workouts (userId, timestamp, day, intensity, xpEarned, details, status, imageUri)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		w.UserID,
		w.Timestamp.UTC().Format(timestampLayout),
		w.Day,
		string(w.Intensity),
		w.XPEarned,
		models.JoinExercises(w.Exercises),
		string(w.Status),
		image,
	)
	if err != nil {
		return 0, fmt.Errorf("record workout: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("record workout: %w", err)
	}
	return id, nil
}

// ListAll returns every session of a user, most recent first.
func (s *WorkoutStore) ListAll(userID int64) ([]*models.WorkoutSession, error) {
	rows, err := s.d.db.Query(`
		SELECT `+workoutColumns+`
		FROM workouts
		WHERE userId = ?
		ORDER BY timestamp DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()

	return scanWorkouts(rows)
}

// ListToday returns the user's sessions recorded on the current day.
func (s *WorkoutStore) ListToday(userID int64) ([]*models.WorkoutSession, error) {
	rows, err := s.d.db.Query(`
		SELECT `+workoutColumns+`
		FROM workouts
		WHERE userId = ? AND day = ?
		ORDER BY timestamp DESC, id DESC`, userID, s.d.Today())
	if err != nil {
		return nil, fmt.Errorf("list today's workouts: %w", err)
	}
	defer rows.Close()

	return scanWorkouts(rows)
}

// Get returns a single session by ID.
func (s *WorkoutStore) Get(id int64) (*models.WorkoutSession, error) {
	rows, err := s.d.db.Query(`SELECT `+workoutColumns+` FROM workouts WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("get workout: %w", err)
	}
	defer rows.Close()

	workouts, err := scanWorkouts(rows)
	if err != nil {
		return nil, err
	}
	if len(workouts) == 0 {
		return nil, fmt.Errorf("get workout %d: %w", id, ErrNotFound)
	}
	return workouts[0], nil
}

// Delete removes a session by ID.
func (s *WorkoutStore) Delete(id int64) error {
	result, err := s.d.db.Exec("DELETE FROM workouts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	return checkAffected(result, "delete workout", id)
}

// ComputeStreak counts consecutive days with at least one Complete session.
// The streak is current if its latest day is today or yesterday; an older
// latest day means it was broken and the result is 0.
func (s *WorkoutStore) ComputeStreak(userID int64) (int, error) {
	rows, err := s.d.db.Query(`
		SELECT DISTINCT day FROM workouts
		WHERE userId = ? AND status = ? AND day IS NOT NULL AND day != ''
		ORDER BY day DESC`, userID, string(models.StatusComplete))
	if err != nil {
		return 0, fmt.Errorf("compute streak: %w", err)
	}
	defer rows.Close()

	var days []string
	present := make(map[string]bool)
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return 0, fmt.Errorf("scan workout day: %w", err)
		}
		days = append(days, day)
		present[day] = true
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("compute streak: %w", err)
	}

	return streakFrom(days, present, s.d.Today())
}

// streakFrom walks back from the most recent day in days (sorted
// descending) until the first missing day.
func streakFrom(days []string, present map[string]bool, today string) (int, error) {
	if len(days) == 0 {
		return 0, nil
	}

	yesterday, err := models.ShiftDay(today, -1)
	if err != nil {
		return 0, err
	}
	if days[0] < yesterday {
		return 0, nil
	}

	streak := 0
	cursor := days[0]
	for present[cursor] {
		streak++
		if cursor, err = models.ShiftDay(cursor, -1); err != nil {
			return 0, err
		}
	}
	return streak, nil
}

// WeeklyDistribution counts Complete sessions for each of the last seven
// days including today, oldest first.
func (s *WorkoutStore) WeeklyDistribution(userID int64) ([]models.DayCount, error) {
	today := s.d.Today()
	start, err := models.ShiftDay(today, -6)
	if err != nil {
		return nil, fmt.Errorf("weekly distribution: %w", err)
	}

	rows, err := s.d.db.Query(`
		SELECT day, COUNT(*) FROM workouts
		WHERE userId = ? AND status = ? AND day BETWEEN ? AND ?
		GROUP BY day`, userID, string(models.StatusComplete), start, today)
	if err != nil {
		return nil, fmt.Errorf("weekly distribution: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var day string
		var n int
		if err := rows.Scan(&day, &n); err != nil {
			return nil, fmt.Errorf("scan weekly distribution: %w", err)
		}
		counts[day] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("weekly distribution: %w", err)
	}

	dist := make([]models.DayCount, 0, 7)
	for i := 0; i < 7; i++ {
		day, _ := models.ShiftDay(start, i)
		dist = append(dist, models.DayCount{
			Label: models.WeekdayInitial(day),
			Date:  day,
			Value: counts[day],
		})
	}
	return dist, nil
}

// scanWorkouts scans multiple rows into a slice of sessions.
func scanWorkouts(rows *sql.Rows) ([]*models.WorkoutSession, error) {
	var workouts []*models.WorkoutSession

	for rows.Next() {
		var w models.WorkoutSession
		var timestamp, intensity, details, status string
		var image sql.NullString

		err := rows.Scan(&w.ID, &w.UserID, &timestamp, &w.Day, &intensity,
			&w.XPEarned, &details, &status, &image)
		if err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}

		w.Timestamp = parseTimestamp(timestamp)
		w.Intensity = models.Intensity(intensity)
		w.Exercises = models.SplitExercises(details)
		w.Status = models.WorkoutStatus(status)
		if image.Valid && image.String != "" {
			w.ImageURI = &image.String
		}

		workouts = append(workouts, &w)
	}

	if err := rows.Err(); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	return workouts, nil
}
