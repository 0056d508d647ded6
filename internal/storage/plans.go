// ABOUTME: Meal plan store for planned meals on upcoming days.
// ABOUTME: Plans are independent of logged meals and never aggregated.
package storage

import (
	"fmt"
	"strings"

	"github.com/Reogieakero/fitness/internal/models"
)

// MealPlanStore records planned meals.
type MealPlanStore struct {
	d *DB
}

// NewMealPlanStore returns a MealPlanStore backed by d.
func NewMealPlanStore(d *DB) *MealPlanStore {
	return &MealPlanStore{d: d}
}

// Add plans a meal on date, or today when date is empty.
func (s *MealPlanStore) Add(userID int64, date, title, details string) (int64, error) {
	if date == "" {
		date = s.d.Today()
	} else if _, err := models.ParseDay(date); err != nil {
		return 0, fmt.Errorf("add meal plan: %w", err)
	}
	if strings.TrimSpace(title) == "" {
		return 0, fmt.Errorf("add meal plan: title is required")
	}

	return insertMealPlan(s.d.db, &models.MealPlan{
		UserID:    userID,
		PlanDate:  date,
		Title:     strings.TrimSpace(title),
		Details:   details,
		CreatedAt: s.d.now(),
	})
}

func insertMealPlan(x execer, p *models.MealPlan) (int64, error) {
	result, err := x.Exec(`
		INSERT INTO meal_plans (userId, planDate, title, details, createdAt)
		VALUES (?, ?, ?, ?, ?)`,
		p.UserID, p.PlanDate, p.Title, p.Details, p.CreatedAt.UTC().Format(timestampLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("add meal plan: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("add meal plan: %w", err)
	}
	return id, nil
}

// ListByDate returns the plans for one day in insertion order.
func (s *MealPlanStore) ListByDate(userID int64, date string) ([]*models.MealPlan, error) {
	return s.list(`WHERE userId = ? AND planDate = ? ORDER BY id ASC`, userID, date)
}

// ListUpcoming returns plans on or after from, earliest first.
func (s *MealPlanStore) ListUpcoming(userID int64, from string) ([]*models.MealPlan, error) {
	if from == "" {
		from = s.d.Today()
	}
	return s.list(`WHERE userId = ? AND planDate >= ? ORDER BY planDate ASC, id ASC`, userID, from)
}

// ListAll returns every plan of a user, earliest first.
func (s *MealPlanStore) ListAll(userID int64) ([]*models.MealPlan, error) {
	return s.list(`WHERE userId = ? ORDER BY planDate ASC, id ASC`, userID)
}

// Delete removes a plan by ID.
func (s *MealPlanStore) Delete(id int64) error {
	result, err := s.d.db.Exec("DELETE FROM meal_plans WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete meal plan: %w", err)
	}
	return checkAffected(result, "delete meal plan", id)
}

func (s *MealPlanStore) list(clause string, args ...any) ([]*models.MealPlan, error) {
	rows, err := s.d.db.Query(`
		SELECT id, userId, planDate, title, COALESCE(details, ''), createdAt
		FROM meal_plans `+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("list meal plans: %w", err)
	}
	defer rows.Close()

	var plans []*models.MealPlan
	for rows.Next() {
		var p models.MealPlan
		var createdAt string
		if err := rows.Scan(&p.ID, &p.UserID, &p.PlanDate, &p.Title, &p.Details, &createdAt); err != nil {
			return nil, fmt.Errorf("scan meal plan: %w", err)
		}
		p.CreatedAt = parseTimestamp(createdAt)
		plans = append(plans, &p)
	}
	return plans, rows.Err()
}
