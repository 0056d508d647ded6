// ABOUTME: Repository interfaces for the fitness stores and the Stores bundle.
// ABOUTME: Callers depend on these contracts so implementations can be swapped in tests.
package storage

import "github.com/Reogieakero/fitness/internal/models"

// AccountRepository defines the account store contract.
type AccountRepository interface {
	Register(reg models.Registration) (int64, error)
	Authenticate(email, password string) (*models.User, error)
	GetProfile(userID int64) (*models.ProfileSnapshot, error)
	GetFullProfile(userID int64) (*models.User, error)
	UpdateProfile(userID int64, p models.ProfileUpdate) error
	UpdateProfileImage(userID int64, uri string) error
	UpdateProgression(userID int64, xp, level int) error
	UpdateProgressionFunc(userID int64, fn func(xp, level int) (int, int)) (int, int, error)
}

// WorkoutRepository defines the workout log contract.
type WorkoutRepository interface {
	Record(userID int64, in models.WorkoutInput) (int64, error)
	ListAll(userID int64) ([]*models.WorkoutSession, error)
	ListToday(userID int64) ([]*models.WorkoutSession, error)
	Get(id int64) (*models.WorkoutSession, error)
	Delete(id int64) error
	ComputeStreak(userID int64) (int, error)
	WeeklyDistribution(userID int64) ([]models.DayCount, error)
}

// MealRepository defines the nutrition log contract.
type MealRepository interface {
	Append(userID int64, in models.MealInput, date string) (int64, error)
	ListByDate(userID int64, date string) ([]*models.MealEntry, error)
	ListToday(userID int64) ([]*models.MealEntry, error)
	ListDistinctDates(userID int64) ([]string, error)
	Delete(id int64) error
	DailyTotal(userID int64, date string) (int, error)
	DayTotals(userID int64, date string) (models.MacroTotals, error)
	LifetimeTotals(userID int64) (models.MacroTotals, error)
}

// QuestRepository defines the quest ledger contract.
type QuestRepository interface {
	Complete(userID int64, questID string) (bool, error)
	TodaysCompletions(userID int64) ([]string, error)
	LifetimeCount(userID int64) (int, error)
	History(userID int64) ([]*models.QuestCompletion, error)
}

// MealPlanRepository defines the meal plan contract.
type MealPlanRepository interface {
	Add(userID int64, date, title, details string) (int64, error)
	ListByDate(userID int64, date string) ([]*models.MealPlan, error)
	ListUpcoming(userID int64, from string) ([]*models.MealPlan, error)
	Delete(id int64) error
}

var (
	_ AccountRepository  = (*AccountStore)(nil)
	_ WorkoutRepository  = (*WorkoutStore)(nil)
	_ MealRepository     = (*MealStore)(nil)
	_ QuestRepository    = (*QuestStore)(nil)
	_ MealPlanRepository = (*MealPlanStore)(nil)
)

// Stores bundles one store per entity over a shared handle.
type Stores struct {
	Accounts  *AccountStore
	Workouts  *WorkoutStore
	Meals     *MealStore
	Quests    *QuestStore
	MealPlans *MealPlanStore
}

// NewStores constructs every store over d.
func NewStores(d *DB) *Stores {
	return &Stores{
		Accounts:  NewAccountStore(d),
		Workouts:  NewWorkoutStore(d),
		Meals:     NewMealStore(d),
		Quests:    NewQuestStore(d),
		MealPlans: NewMealPlanStore(d),
	}
}
