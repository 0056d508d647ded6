// ABOUTME: Nutrition log: meal entries partitioned by calendar day.
// ABOUTME: Totals are summed in SQL on every read; nothing is cached.
package storage

import (
	"database/sql"
	"fmt"

	"github.com/Reogieakero/fitness/internal/models"
)

const mealColumns = `id, userId, foodName, COALESCE(calories, 0), COALESCE(protein, 0),
	COALESCE(carbs, 0), COALESCE(fat, 0), COALESCE(fiber, 0), COALESCE(grade, ''),
	COALESCE(recommendation, ''), date`

// MealStore records logged meals.
type MealStore struct {
	d *DB
}

// NewMealStore returns a MealStore backed by d.
func NewMealStore(d *DB) *MealStore {
	return &MealStore{d: d}
}

// Append logs a meal on date, or today when date is empty. Macro values are
// rounded to integers and default to 0 when unparseable.
func (s *MealStore) Append(userID int64, in models.MealInput, date string) (int64, error) {
	if date == "" {
		date = s.d.Today()
	} else if _, err := models.ParseDay(date); err != nil {
		return 0, fmt.Errorf("append meal: %w", err)
	}
	return insertMeal(s.d.db, in.Entry(userID, date))
}

func insertMeal(x execer, e *models.MealEntry) (int64, error) {
	result, err := x.Exec(`
		INSERT INTO nutrition_logs (userId, foodName, calories, protein, carbs, fat, fiber, grade, recommendation, date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.UserID, e.FoodName, e.Calories, e.Protein, e.Carbs, e.Fat, e.Fiber,
		e.Grade, e.Recommendation, e.Date,
	)
	if err != nil {
		return 0, fmt.Errorf("append meal: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("append meal: %w", err)
	}
	return id, nil
}

// ListByDate returns a user's meals for one day, newest insert first.
func (s *MealStore) ListByDate(userID int64, date string) ([]*models.MealEntry, error) {
	rows, err := s.d.db.Query(`
		SELECT `+mealColumns+`
		FROM nutrition_logs
		WHERE userId = ? AND date = ?
		ORDER BY id DESC`, userID, date)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	defer rows.Close()

	return scanMeals(rows)
}

// ListToday returns today's meals.
func (s *MealStore) ListToday(userID int64) ([]*models.MealEntry, error) {
	return s.ListByDate(userID, s.d.Today())
}

// ListAll returns every meal of a user, latest day first.
func (s *MealStore) ListAll(userID int64) ([]*models.MealEntry, error) {
	rows, err := s.d.db.Query(`
		SELECT `+mealColumns+`
		FROM nutrition_logs
		WHERE userId = ?
		ORDER BY date DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	defer rows.Close()

	return scanMeals(rows)
}

// ListDistinctDates returns the days a user logged meals on, latest first.
func (s *MealStore) ListDistinctDates(userID int64) ([]string, error) {
	rows, err := s.d.db.Query(`
		SELECT DISTINCT date FROM nutrition_logs
		WHERE userId = ?
		ORDER BY date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list meal dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("scan meal date: %w", err)
		}
		dates = append(dates, date)
	}
	return dates, rows.Err()
}

// Delete removes a meal by ID.
func (s *MealStore) Delete(id int64) error {
	result, err := s.d.db.Exec("DELETE FROM nutrition_logs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}
	return checkAffected(result, "delete meal", id)
}

// DailyTotal sums calories for date, or today when date is empty.
func (s *MealStore) DailyTotal(userID int64, date string) (int, error) {
	if date == "" {
		date = s.d.Today()
	}

	var total int
	err := s.d.db.QueryRow(`
		SELECT COALESCE(SUM(calories), 0) FROM nutrition_logs
		WHERE userId = ? AND date = ?`, userID, date,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("daily total: %w", err)
	}
	return total, nil
}

// DayTotals sums every macro for date, or today when date is empty.
func (s *MealStore) DayTotals(userID int64, date string) (models.MacroTotals, error) {
	if date == "" {
		date = s.d.Today()
	}
	t, err := s.sumMacros(`WHERE userId = ? AND date = ?`, userID, date)
	if err != nil {
		return t, fmt.Errorf("day totals: %w", err)
	}
	return t, nil
}

// LifetimeTotals sums macros across a user's whole history.
func (s *MealStore) LifetimeTotals(userID int64) (models.MacroTotals, error) {
	t, err := s.sumMacros(`WHERE userId = ?`, userID)
	if err != nil {
		return t, fmt.Errorf("lifetime totals: %w", err)
	}
	return t, nil
}

func (s *MealStore) sumMacros(where string, args ...any) (models.MacroTotals, error) {
	var t models.MacroTotals
	err := s.d.db.QueryRow(`
		SELECT COALESCE(SUM(calories), 0), COALESCE(SUM(protein), 0), COALESCE(SUM(carbs), 0),
			COALESCE(SUM(fat), 0), COALESCE(SUM(fiber), 0)
		FROM nutrition_logs `+where, args...,
	).Scan(&t.Calories, &t.Protein, &t.Carbs, &t.Fat, &t.Fiber)
	return t, err
}

// scanMeals scans multiple rows into a slice of meal entries.
func scanMeals(rows *sql.Rows) ([]*models.MealEntry, error) {
	var meals []*models.MealEntry

	for rows.Next() {
		var e models.MealEntry
		err := rows.Scan(&e.ID, &e.UserID, &e.FoodName, &e.Calories, &e.Protein,
			&e.Carbs, &e.Fat, &e.Fiber, &e.Grade, &e.Recommendation, &e.Date)
		if err != nil {
			return nil, fmt.Errorf("scan meal: %w", err)
		}
		meals = append(meals, &e)
	}

	return meals, rows.Err()
}
