// ABOUTME: Quest ledger: one completion per user, quest and day.
// ABOUTME: Duplicate completions are ignored by the unique key, not reported as errors.
package storage

import (
	"fmt"

	"github.com/Reogieakero/fitness/internal/models"
)

// QuestStore records quest completions. Quest IDs are opaque keys into a
// catalog owned by the caller and are never validated here.
type QuestStore struct {
	d *DB
}

// NewQuestStore returns a QuestStore backed by d.
func NewQuestStore(d *DB) *QuestStore {
	return &QuestStore{d: d}
}

// Complete marks questID done for today. It returns true when a new
// completion was written and false when the quest was already done today.
func (s *QuestStore) Complete(userID int64, questID string) (bool, error) {
	return completeQuest(s.d.db, userID, questID, s.d.Today())
}

func completeQuest(x execer, userID int64, questID, date string) (bool, error) {
	result, err := x.Exec(`
		INSERT OR IGNORE INTO daily_quests (userId, questId, completionDate)
		VALUES (?, ?, ?)`, userID, questID, date)
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("complete quest: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("complete quest: %w", err)
	}
	return affected > 0, nil
}

// TodaysCompletions returns the quest IDs completed today in completion order.
func (s *QuestStore) TodaysCompletions(userID int64) ([]string, error) {
	rows, err := s.d.db.Query(`
		SELECT COALESCE(questId, '') FROM daily_quests
		WHERE userId = ? AND completionDate = ?
		ORDER BY id ASC`, userID, s.d.Today())
	if err != nil {
		return nil, fmt.Errorf("list today's quests: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan quest id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// LifetimeCount returns how many quests the user has ever completed.
func (s *QuestStore) LifetimeCount(userID int64) (int, error) {
	var n int
	if err := s.d.db.QueryRow(`SELECT COUNT(*) FROM daily_quests WHERE userId = ?`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count quests: %w", err)
	}
	return n, nil
}

// History returns every completion, latest day first.
func (s *QuestStore) History(userID int64) ([]*models.QuestCompletion, error) {
	rows, err := s.d.db.Query(`
		SELECT id, userId, COALESCE(questId, ''), COALESCE(completionDate, '') FROM daily_quests
		WHERE userId = ?
		ORDER BY completionDate DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("quest history: %w", err)
	}
	defer rows.Close()

	var history []*models.QuestCompletion
	for rows.Next() {
		var q models.QuestCompletion
		if err := rows.Scan(&q.ID, &q.UserID, &q.QuestID, &q.CompletionDate); err != nil {
			return nil, fmt.Errorf("scan quest completion: %w", err)
		}
		history = append(history, &q)
	}
	return history, rows.Err()
}
