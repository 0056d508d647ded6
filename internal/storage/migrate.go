// ABOUTME: Data migration of one user's history between database files.
// ABOUTME: Copies workouts, meals, quests, and meal plans from source to destination.

package storage

import (
	"fmt"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Workouts      int `json:"workouts"`
	Meals         int `json:"meals"`
	Quests        int `json:"quests"`
	SkippedQuests int `json:"skipped_quests"`
	MealPlans     int `json:"meal_plans"`
}

// MigrateUserData copies srcUserID's history in src into dstUserID's
// history in dst. The destination account must already exist; its profile
// and progression are left alone.
func MigrateUserData(src, dst *DB, srcUserID, dstUserID int64) (*MigrateSummary, error) {
	if _, err := NewAccountStore(dst).GetFullProfile(dstUserID); err != nil {
		return nil, fmt.Errorf("destination user: %w", err)
	}

	data, err := src.GetAllData(srcUserID)
	if err != nil {
		return nil, fmt.Errorf("read source data: %w", err)
	}

	summary, err := dst.ImportData(dstUserID, data)
	if err != nil {
		return nil, fmt.Errorf("write destination data: %w", err)
	}
	return summary, nil
}
