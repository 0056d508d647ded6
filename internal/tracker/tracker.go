// ABOUTME: Coordinates store writes with progression awards.
// ABOUTME: Stores never call each other; the tracker pairs a log entry with its XP.
package tracker

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Reogieakero/fitness/internal/catalog"
	"github.com/Reogieakero/fitness/internal/logging"
	"github.com/Reogieakero/fitness/internal/models"
	"github.com/Reogieakero/fitness/internal/progression"
	"github.com/Reogieakero/fitness/internal/storage"
)

// Tracker is the caller-side entry point for actions that earn XP.
type Tracker struct {
	accounts storage.AccountRepository
	workouts storage.WorkoutRepository
	meals    storage.MealRepository
	quests   storage.QuestRepository
	catalog  *catalog.Catalog
	rules    progression.Rules
	now      func() time.Time
	logger   *slog.Logger
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithRules overrides the leveling rules.
func WithRules(r progression.Rules) Option {
	return func(t *Tracker) { t.rules = r }
}

// WithClock sets the clock used to pick the weekday's quests. It should
// match the storage clock.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithLogger sets the logger for level-up and award events.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) { t.logger = l }
}

// New builds a Tracker over the given stores. A nil catalog means the
// built-in one.
func New(s *storage.Stores, cat *catalog.Catalog, opts ...Option) *Tracker {
	if cat == nil {
		cat = catalog.Default()
	}
	t := &Tracker{
		accounts: s.Accounts,
		workouts: s.Workouts,
		meals:    s.Meals,
		quests:   s.Quests,
		catalog:  cat,
		rules:    progression.DefaultRules,
		now:      time.Now,
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Catalog returns the quest catalog in use.
func (t *Tracker) Catalog() *catalog.Catalog {
	return t.catalog
}

// Award is the outcome of an XP-earning action.
type Award struct {
	ID        int64 `json:"id,omitempty"`
	Inserted  bool  `json:"inserted"`
	XPAwarded int   `json:"xp_awarded"`
	XP        int   `json:"xp"`
	Level     int   `json:"level"`
	LeveledUp bool  `json:"leveled_up"`
}

// FinishWorkout records a session and, when it is Complete, awards its XP.
func (t *Tracker) FinishWorkout(userID int64, in models.WorkoutInput) (*Award, error) {
	n := in.Normalized()
	id, err := t.workouts.Record(userID, n)
	if err != nil {
		return nil, err
	}

	award := &Award{ID: id, Inserted: true}
	if n.Status != models.StatusComplete || n.XPEarned == 0 {
		p, err := t.accounts.GetProfile(userID)
		if err != nil {
			return nil, err
		}
		award.XP, award.Level = p.XP, p.Level
		return award, nil
	}

	if err := t.award(userID, n.XPEarned, award); err != nil {
		return nil, err
	}
	return award, nil
}

// CompleteQuest marks a quest done for today. XP from the catalog is
// awarded only when a new completion was written. The completion and the
// award are separate writes: if the award fails the completion stays and a
// retry awards nothing, so the lost award is logged at warn.
func (t *Tracker) CompleteQuest(userID int64, questID string) (*Award, error) {
	inserted, err := t.quests.Complete(userID, questID)
	if err != nil {
		return nil, err
	}

	award := &Award{Inserted: inserted}
	reward := t.catalog.RewardXP(questID)
	if !inserted || reward == 0 {
		if !inserted {
			t.logger.Debug("quest already completed today", "user_id", userID, "quest_id", questID)
		}
		p, err := t.accounts.GetProfile(userID)
		if err != nil {
			return nil, err
		}
		award.XP, award.Level = p.XP, p.Level
		return award, nil
	}

	if err := t.award(userID, reward, award); err != nil {
		t.logger.Warn("quest completed but xp not awarded",
			"user_id", userID, "quest_id", questID, "xp", reward, "error", err)
		return nil, err
	}
	return award, nil
}

// AwardXP applies delta to the user's progression.
func (t *Tracker) AwardXP(userID int64, delta int) (*Award, error) {
	award := &Award{}
	if err := t.award(userID, delta, award); err != nil {
		return nil, err
	}
	return award, nil
}

func (t *Tracker) award(userID int64, delta int, a *Award) error {
	var leveled bool
	xp, level, err := t.accounts.UpdateProgressionFunc(userID, func(xp, level int) (int, int) {
		res := t.rules.Apply(xp, level, delta)
		leveled = res.LeveledUp
		return res.XP, res.Level
	})
	if err != nil {
		return fmt.Errorf("award xp: %w", err)
	}

	a.XPAwarded = delta
	a.XP, a.Level, a.LeveledUp = xp, level, leveled
	if leveled {
		t.logger.Info("level up", "user_id", userID, "level", level)
	}
	return nil
}

// QuestStatus is one of today's quests with its completion state.
type QuestStatus struct {
	catalog.Quest
	Done bool `json:"done"`
}

// QuestEntry is a completed quest with its display title.
type QuestEntry struct {
	Date    string `json:"date"`
	QuestID string `json:"quest_id"`
	Title   string `json:"title"`
}

// Dashboard is the aggregate behind the stats screen.
type Dashboard struct {
	Profile        *models.ProfileSnapshot `json:"profile"`
	WorkoutCount   int                     `json:"workout_count"`
	Streak         int                     `json:"streak"`
	TodayMacros    models.MacroTotals      `json:"today_macros"`
	TodayQuests    []QuestStatus           `json:"today_quests"`
	QuestsDone     int                     `json:"quests_done"`
	LifetimeQuests int                     `json:"lifetime_quests"`
	Weekly         []models.DayCount       `json:"weekly"`
	QuestHistory   []QuestEntry            `json:"quest_history"`
}

// Dashboard gathers every statistic for a user. Each value is computed from
// the stores on every call.
func (t *Tracker) Dashboard(userID int64) (*Dashboard, error) {
	profile, err := t.accounts.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	workouts, err := t.workouts.ListAll(userID)
	if err != nil {
		return nil, err
	}

	streak, err := t.workouts.ComputeStreak(userID)
	if err != nil {
		return nil, err
	}

	macros, err := t.meals.DayTotals(userID, "")
	if err != nil {
		return nil, err
	}

	today, done, err := t.todayQuests(userID)
	if err != nil {
		return nil, err
	}

	lifetime, err := t.quests.LifetimeCount(userID)
	if err != nil {
		return nil, err
	}

	weekly, err := t.workouts.WeeklyDistribution(userID)
	if err != nil {
		return nil, err
	}

	history, err := t.quests.History(userID)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		Profile:        profile,
		WorkoutCount:   len(workouts),
		Streak:         streak,
		TodayMacros:    macros,
		TodayQuests:    today,
		QuestsDone:     done,
		LifetimeQuests: lifetime,
		Weekly:         weekly,
	}
	for _, h := range history {
		d.QuestHistory = append(d.QuestHistory, QuestEntry{
			Date:    h.CompletionDate,
			QuestID: h.QuestID,
			Title:   t.catalog.Title(h.QuestID),
		})
	}
	return d, nil
}

// TodayQuests lists the catalog quests for the current weekday with their
// completion state.
func (t *Tracker) TodayQuests(userID int64) ([]QuestStatus, error) {
	quests, _, err := t.todayQuests(userID)
	return quests, err
}

// todayQuests also returns how many completions exist today, including IDs
// that are not in the catalog.
func (t *Tracker) todayQuests(userID int64) ([]QuestStatus, int, error) {
	done, err := t.quests.TodaysCompletions(userID)
	if err != nil {
		return nil, 0, err
	}

	doneSet := make(map[string]bool, len(done))
	for _, id := range done {
		doneSet[id] = true
	}

	var out []QuestStatus
	for _, q := range t.catalog.ForDay(t.now().Weekday()) {
		out = append(out, QuestStatus{Quest: q, Done: doneSet[q.ID]})
	}
	return out, len(done), nil
}
