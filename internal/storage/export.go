// ABOUTME: Export and import of a user's fitness data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats and JSON import.
package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Reogieakero/fitness/internal/models"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// ExportData represents the full export format for one user.
type ExportData struct {
	Version    string                    `json:"version" yaml:"version"`
	ExportID   string                    `json:"export_id" yaml:"export_id"`
	ExportedAt time.Time                 `json:"exported_at" yaml:"exported_at"`
	Tool       string                    `json:"tool" yaml:"tool"`
	Profile    *models.User              `json:"profile" yaml:"profile"`
	Workouts   []*models.WorkoutSession  `json:"workouts" yaml:"workouts"`
	Meals      []*models.MealEntry       `json:"meals" yaml:"meals"`
	Quests     []*models.QuestCompletion `json:"quests" yaml:"quests"`
	MealPlans  []*models.MealPlan        `json:"meal_plans" yaml:"meal_plans"`
}

// GetAllData retrieves everything owned by userID.
func (d *DB) GetAllData(userID int64) (*ExportData, error) {
	stores := NewStores(d)

	profile, err := stores.Accounts.GetFullProfile(userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	workouts, err := stores.Workouts.ListAll(userID)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}

	meals, err := stores.Meals.ListAll(userID)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}

	quests, err := stores.Quests.History(userID)
	if err != nil {
		return nil, fmt.Errorf("list quests: %w", err)
	}

	plans, err := stores.MealPlans.ListAll(userID)
	if err != nil {
		return nil, fmt.Errorf("list meal plans: %w", err)
	}

	return &ExportData{
		Version:    "1.0",
		ExportID:   uuid.New().String(),
		ExportedAt: d.now(),
		Tool:       "kinetiqo",
		Profile:    profile,
		Workouts:   workouts,
		Meals:      meals,
		Quests:     quests,
		MealPlans:  plans,
	}, nil
}

// ImportData copies exported rows into userID's history in one transaction.
// Original timestamps and day keys are preserved; quest completions already
// present are skipped. The profile itself is not overwritten.
func (d *DB) ImportData(userID int64, data *ExportData) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	tx, err := d.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, w := range data.Workouts {
		copied, err := importedWorkout(userID, w)
		if err != nil {
			return nil, fmt.Errorf("import workout: %w", err)
		}
		if _, err := insertWorkout(tx, copied); err != nil {
			return nil, fmt.Errorf("import workout: %w", err)
		}
		summary.Workouts++
	}

	for _, m := range data.Meals {
		copied, err := importedMeal(userID, m)
		if err != nil {
			return nil, fmt.Errorf("import meal: %w", err)
		}
		if _, err := insertMeal(tx, copied); err != nil {
			return nil, fmt.Errorf("import meal: %w", err)
		}
		summary.Meals++
	}

	for _, q := range data.Quests {
		if _, err := models.ParseDay(q.CompletionDate); err != nil {
			return nil, fmt.Errorf("import quest %s: %w", q.QuestID, err)
		}
		inserted, err := completeQuest(tx, userID, q.QuestID, q.CompletionDate)
		if err != nil {
			return nil, fmt.Errorf("import quest: %w", err)
		}
		if inserted {
			summary.Quests++
		} else {
			summary.SkippedQuests++
		}
	}

	for _, p := range data.MealPlans {
		copied := *p
		copied.UserID = userID
		if _, err := models.ParseDay(copied.PlanDate); err != nil {
			return nil, fmt.Errorf("import meal plan: %w", err)
		}
		if _, err := insertMealPlan(tx, &copied); err != nil {
			return nil, fmt.Errorf("import meal plan: %w", err)
		}
		summary.MealPlans++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}
	return summary, nil
}

// importedWorkout applies the same status and XP rules as Record. An empty
// day key is derived from the timestamp; a malformed one is rejected.
func importedWorkout(userID int64, w *models.WorkoutSession) (*models.WorkoutSession, error) {
	n := models.WorkoutInput{
		Intensity: w.Intensity,
		XPEarned:  w.XPEarned,
		Exercises: w.Exercises,
		Status:    w.Status,
		ImageURI:  w.ImageURI,
	}.Normalized()

	copied := *w
	copied.UserID = userID
	copied.XPEarned = n.XPEarned
	copied.Status = n.Status
	copied.ImageURI = n.ImageURI
	if !copied.Status.IsValid() {
		return nil, fmt.Errorf("unknown status %q", copied.Status)
	}
	if copied.Day == "" {
		copied.Day = models.DayKey(copied.Timestamp)
	} else if _, err := models.ParseDay(copied.Day); err != nil {
		return nil, err
	}
	return &copied, nil
}

// importedMeal clamps negative amounts to 0 and rejects a malformed date.
func importedMeal(userID int64, m *models.MealEntry) (*models.MealEntry, error) {
	if _, err := models.ParseDay(m.Date); err != nil {
		return nil, err
	}

	copied := *m
	copied.UserID = userID
	for _, v := range []*int{&copied.Calories, &copied.Protein, &copied.Carbs, &copied.Fat, &copied.Fiber} {
		if *v < 0 {
			*v = 0
		}
	}
	return &copied, nil
}

// ExportJSON exports a user's data as JSON.
func (d *DB) ExportJSON(userID int64) ([]byte, error) {
	data, err := d.GetAllData(userID)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports a user's data as YAML with meals grouped by day.
func (d *DB) ExportYAML(userID int64) ([]byte, error) {
	data, err := d.GetAllData(userID)
	if err != nil {
		return nil, err
	}

	yamlData := struct {
		Version    string                `yaml:"version"`
		ExportID   string                `yaml:"export_id"`
		ExportedAt string                `yaml:"exported_at"`
		Tool       string                `yaml:"tool"`
		Profile    *models.User          `yaml:"profile"`
		Workouts   []yamlWorkout         `yaml:"workouts"`
		Meals      map[string][]yamlMeal `yaml:"meals"`
		Quests     map[string][]string   `yaml:"quests"`
		MealPlans  []*models.MealPlan    `yaml:"meal_plans,omitempty"`
	}{
		Version:    data.Version,
		ExportID:   data.ExportID,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Profile:    data.Profile,
		Workouts:   make([]yamlWorkout, 0, len(data.Workouts)),
		Meals:      make(map[string][]yamlMeal),
		Quests:     make(map[string][]string),
		MealPlans:  data.MealPlans,
	}

	for _, w := range data.Workouts {
		yw := yamlWorkout{
			ID:        w.ID,
			Timestamp: w.Timestamp.Format(time.RFC3339),
			Intensity: string(w.Intensity),
			Status:    string(w.Status),
			XP:        w.XPEarned,
			Exercises: w.Exercises,
		}
		if w.ImageURI != nil {
			yw.Image = *w.ImageURI
		}
		yamlData.Workouts = append(yamlData.Workouts, yw)
	}

	for _, m := range data.Meals {
		yamlData.Meals[m.Date] = append(yamlData.Meals[m.Date], yamlMeal{
			Food:     m.FoodName,
			Calories: m.Calories,
			Protein:  m.Protein,
			Carbs:    m.Carbs,
			Fat:      m.Fat,
			Fiber:    m.Fiber,
			Grade:    m.Grade,
		})
	}

	for _, q := range data.Quests {
		yamlData.Quests[q.CompletionDate] = append(yamlData.Quests[q.CompletionDate], q.QuestID)
	}

	return yaml.Marshal(yamlData)
}

type yamlWorkout struct {
	ID        int64    `yaml:"id"`
	Timestamp string   `yaml:"timestamp"`
	Intensity string   `yaml:"intensity"`
	Status    string   `yaml:"status"`
	XP        int      `yaml:"xp"`
	Exercises []string `yaml:"exercises,omitempty"`
	Image     string   `yaml:"image,omitempty"`
}

type yamlMeal struct {
	Food     string `yaml:"food"`
	Calories int    `yaml:"calories"`
	Protein  int    `yaml:"protein"`
	Carbs    int    `yaml:"carbs"`
	Fat      int    `yaml:"fat"`
	Fiber    int    `yaml:"fiber"`
	Grade    string `yaml:"grade,omitempty"`
}

// ExportMarkdown exports a user's data as Markdown tables. When since is
// non-empty, only rows on or after that day are included.
func (d *DB) ExportMarkdown(userID int64, since string) (string, error) {
	data, err := d.GetAllData(userID)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	now := d.now()

	sb.WriteString(fmt.Sprintf("# Fitness Export - %s\n\n", data.Profile.Username))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Level %d, %d XP\n\n", data.Profile.Level, data.Profile.XP))

	sb.WriteString("## Workouts\n\n")
	sb.WriteString("| Date | Intensity | Status | XP | Exercises |\n")
	sb.WriteString("|------|-----------|--------|----|-----------|\n")
	for _, w := range data.Workouts {
		if since != "" && w.Day < since {
			continue
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %d | %s |\n",
			w.Day,
			w.Intensity, w.Status, w.XPEarned, strings.Join(w.Exercises, ", ")))
	}

	sb.WriteString("\n## Meals\n\n")
	sb.WriteString("| Date | Food | kcal | P | C | F | Grade |\n")
	sb.WriteString("|------|------|------|---|---|---|-------|\n")
	for _, m := range data.Meals {
		if since != "" && m.Date < since {
			continue
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %d | %d | %d | %d | %s |\n",
			m.Date, m.FoodName, m.Calories, m.Protein, m.Carbs, m.Fat, m.Grade))
	}

	sb.WriteString("\n## Quests\n\n")
	sb.WriteString("| Date | Quest |\n")
	sb.WriteString("|------|-------|\n")
	for _, q := range data.Quests {
		if since != "" && q.CompletionDate < since {
			continue
		}
		sb.WriteString(fmt.Sprintf("| %s | %s |\n", q.CompletionDate, q.QuestID))
	}

	return sb.String(), nil
}

// ImportJSON imports a JSON export into userID's history.
func (d *DB) ImportJSON(userID int64, raw []byte) (*MigrateSummary, error) {
	var exportData ExportData
	if err := json.Unmarshal(raw, &exportData); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}
	return d.ImportData(userID, &exportData)
}
