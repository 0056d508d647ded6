// ABOUTME: Quest completion facts, meal plans, and per-day counts.
// ABOUTME: Quest definitions live in the caller-owned catalog, not here.
package models

import "time"

// QuestCompletion records that a user finished a quest on a day.
type QuestCompletion struct {
	ID             int64  `json:"id" yaml:"id"`
	UserID         int64  `json:"user_id" yaml:"user_id"`
	QuestID        string `json:"quest_id" yaml:"quest_id"`
	CompletionDate string `json:"completion_date" yaml:"completion_date"`
}

// MealPlan is a planned meal for a future or current day.
type MealPlan struct {
	ID        int64     `json:"id" yaml:"id"`
	UserID    int64     `json:"user_id" yaml:"user_id"`
	PlanDate  string    `json:"plan_date" yaml:"plan_date"`
	Title     string    `json:"title" yaml:"title"`
	Details   string    `json:"details" yaml:"details"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// DayCount is one bar of a per-day distribution.
type DayCount struct {
	Label string `json:"label"`
	Date  string `json:"date"`
	Value int    `json:"value"`
}
