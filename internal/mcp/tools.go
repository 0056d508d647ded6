// ABOUTME: MCP tool implementations for workouts, meals, quests, and progression.
// ABOUTME: Every tool acts on user_id or, when omitted, the server's active user.
package mcp

import (
	"context"
	"fmt"

	"github.com/Reogieakero/fitness/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// log_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_workout",
		Description: "Record a finished workout session and award its XP when complete",
	}, s.handleLogWorkout)

	// list_workouts
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List workout sessions, most recent first",
	}, s.handleListWorkouts)

	// delete_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_workout",
		Description: "Delete a workout session by ID",
	}, s.handleDeleteWorkout)

	// log_meal
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_meal",
		Description: "Log a food item with its calories and macros",
	}, s.handleLogMeal)

	// list_meals
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_meals",
		Description: "List meals logged on a day with the day's totals",
	}, s.handleListMeals)

	// delete_meal
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_meal",
		Description: "Delete a logged meal by ID",
	}, s.handleDeleteMeal)

	// complete_quest
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "complete_quest",
		Description: "Mark a daily quest done for today; repeats on the same day are ignored",
	}, s.handleCompleteQuest)

	// list_quests
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_quests",
		Description: "List today's quests and whether each is done",
	}, s.handleListQuests)

	// plan_meal
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "plan_meal",
		Description: "Plan a meal for a day",
	}, s.handlePlanMeal)

	// get_stats
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_stats",
		Description: "Get the stats dashboard: level, XP, streak, macros, quests, and weekly workouts",
	}, s.handleGetStats)
}

// Tool input/output types

type userInput struct {
	UserID int64 `json:"user_id,omitempty" jsonschema:"User ID, defaults to the active user"`
}

type logWorkoutInput struct {
	UserID    int64    `json:"user_id,omitempty" jsonschema:"User ID, defaults to the active user"`
	Intensity string   `json:"intensity" jsonschema:"Difficulty tier: Low, Medium or High"`
	XP        int      `json:"xp,omitempty" jsonschema:"XP the session is worth when complete"`
	Exercises []string `json:"exercises,omitempty" jsonschema:"Exercise names performed"`
	Status    string   `json:"status,omitempty" jsonschema:"Complete (default) or Incomplete"`
	ImageURI  string   `json:"image_uri,omitempty" jsonschema:"Optional proof photo reference"`
}

type awardOutput struct {
	ID        int64  `json:"id,omitempty"`
	XPAwarded int    `json:"xp_awarded"`
	XP        int    `json:"xp"`
	Level     int    `json:"level"`
	LeveledUp bool   `json:"leveled_up"`
	Message   string `json:"message"`
}

type listWorkoutsInput struct {
	UserID int64 `json:"user_id,omitempty" jsonschema:"User ID, defaults to the active user"`
	Today  bool  `json:"today,omitempty" jsonschema:"Only sessions recorded today"`
	Limit  int   `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type idInput struct {
	ID int64 `json:"id" jsonschema:"Row ID"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type logMealInput struct {
	UserID         int64   `json:"user_id,omitempty" jsonschema:"User ID, defaults to the active user"`
	FoodName       string  `json:"food_name" jsonschema:"Name of the food"`
	Calories       float64 `json:"calories,omitempty" jsonschema:"Calories (kcal)"`
	Protein        float64 `json:"protein,omitempty" jsonschema:"Protein in grams"`
	Carbs          float64 `json:"carbs,omitempty" jsonschema:"Carbohydrates in grams"`
	Fat            float64 `json:"fat,omitempty" jsonschema:"Fat in grams"`
	Fiber          float64 `json:"fiber,omitempty" jsonschema:"Fiber in grams"`
	Grade          string  `json:"grade,omitempty" jsonschema:"Health grade such as A or B+"`
	Recommendation string  `json:"recommendation,omitempty" jsonschema:"Short advice about the food"`
	Date           string  `json:"date,omitempty" jsonschema:"Day as YYYY-MM-DD, defaults to today"`
}

type mealOutput struct {
	ID       int64  `json:"id"`
	Calories int    `json:"calories"`
	DayTotal int    `json:"day_total"`
	Message  string `json:"message"`
}

type listMealsInput struct {
	UserID int64  `json:"user_id,omitempty" jsonschema:"User ID, defaults to the active user"`
	Date   string `json:"date,omitempty" jsonschema:"Day as YYYY-MM-DD, defaults to today"`
}

type listMealsOutput struct {
	Date   string              `json:"date"`
	Meals  []*models.MealEntry `json:"meals"`
	Totals models.MacroTotals  `json:"totals"`
}

type completeQuestInput struct {
	UserID  int64  `json:"user_id,omitempty" jsonschema:"User ID, defaults to the active user"`
	QuestID string `json:"quest_id" jsonschema:"Quest ID from list_quests"`
}

type planMealInput struct {
	UserID  int64  `json:"user_id,omitempty" jsonschema:"User ID, defaults to the active user"`
	Date    string `json:"date,omitempty" jsonschema:"Day as YYYY-MM-DD, defaults to today"`
	Title   string `json:"title" jsonschema:"What to eat"`
	Details string `json:"details,omitempty" jsonschema:"Ingredients or notes"`
}

// Tool handlers

func (s *Server) handleLogWorkout(ctx context.Context, req *mcp.CallToolRequest, input logWorkoutInput) (*mcp.CallToolResult, awardOutput, error) {
	uid, err := s.user(input.UserID)
	if err != nil {
		return nil, awardOutput{}, err
	}

	in := models.NewWorkoutInput(models.Intensity(input.Intensity), input.XP, input.Exercises...)
	if input.Status != "" {
		status := models.WorkoutStatus(input.Status)
		if !status.IsValid() {
			return nil, awardOutput{}, fmt.Errorf("unknown status: %s", input.Status)
		}
		in.Status = status
	}
	if input.ImageURI != "" {
		in.WithImage(input.ImageURI)
	}

	award, err := s.tracker.FinishWorkout(uid, *in)
	if err != nil {
		return nil, awardOutput{}, fmt.Errorf("failed to log workout: %w", err)
	}

	msg := fmt.Sprintf("Logged workout %d (+%d XP, level %d, %d XP)", award.ID, award.XPAwarded, award.Level, award.XP)
	if award.LeveledUp {
		msg += ". Level up!"
	}
	return nil, awardOutput{
		ID:        award.ID,
		XPAwarded: award.XPAwarded,
		XP:        award.XP,
		Level:     award.Level,
		LeveledUp: award.LeveledUp,
		Message:   msg,
	}, nil
}

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input listWorkoutsInput) (*mcp.CallToolResult, any, error) {
	uid, err := s.user(input.UserID)
	if err != nil {
		return nil, nil, err
	}
	if input.Limit <= 0 {
		input.Limit = 20
	}

	var workouts []*models.WorkoutSession
	if input.Today {
		workouts, err = s.stores.Workouts.ListToday(uid)
	} else {
		workouts, err = s.stores.Workouts.ListAll(uid)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list workouts: %w", err)
	}

	if len(workouts) == 0 {
		return nil, map[string]any{"message": "No workouts found."}, nil
	}
	if len(workouts) > input.Limit {
		workouts = workouts[:input.Limit]
	}

	return nil, map[string]any{"workouts": workouts}, nil
}

func (s *Server) handleDeleteWorkout(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.stores.Workouts.Delete(input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete workout: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted workout: %d", input.ID),
	}, nil
}

func (s *Server) handleLogMeal(ctx context.Context, req *mcp.CallToolRequest, input logMealInput) (*mcp.CallToolResult, mealOutput, error) {
	uid, err := s.user(input.UserID)
	if err != nil {
		return nil, mealOutput{}, err
	}
	if input.FoodName == "" {
		return nil, mealOutput{}, fmt.Errorf("food_name is required")
	}

	in := models.MealInput{
		FoodName:       input.FoodName,
		Calories:       models.AmountOf(input.Calories),
		Protein:        models.AmountOf(input.Protein),
		Carbs:          models.AmountOf(input.Carbs),
		Fat:            models.AmountOf(input.Fat),
		Fiber:          models.AmountOf(input.Fiber),
		Grade:          input.Grade,
		Recommendation: input.Recommendation,
	}

	id, err := s.stores.Meals.Append(uid, in, input.Date)
	if err != nil {
		return nil, mealOutput{}, fmt.Errorf("failed to log meal: %w", err)
	}

	total, err := s.stores.Meals.DailyTotal(uid, input.Date)
	if err != nil {
		return nil, mealOutput{}, fmt.Errorf("failed to total meals: %w", err)
	}

	return nil, mealOutput{
		ID:       id,
		Calories: in.Calories.Int(),
		DayTotal: total,
		Message:  fmt.Sprintf("Logged %s (%d kcal). Day total: %d kcal", input.FoodName, in.Calories.Int(), total),
	}, nil
}

func (s *Server) handleListMeals(ctx context.Context, req *mcp.CallToolRequest, input listMealsInput) (*mcp.CallToolResult, listMealsOutput, error) {
	uid, err := s.user(input.UserID)
	if err != nil {
		return nil, listMealsOutput{}, err
	}

	date := input.Date
	if date == "" {
		date = s.db.Today()
	} else if _, err := models.ParseDay(date); err != nil {
		return nil, listMealsOutput{}, err
	}

	meals, err := s.stores.Meals.ListByDate(uid, date)
	if err != nil {
		return nil, listMealsOutput{}, fmt.Errorf("failed to list meals: %w", err)
	}
	totals, err := s.stores.Meals.DayTotals(uid, date)
	if err != nil {
		return nil, listMealsOutput{}, fmt.Errorf("failed to total meals: %w", err)
	}

	return nil, listMealsOutput{Date: date, Meals: meals, Totals: totals}, nil
}

func (s *Server) handleDeleteMeal(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.stores.Meals.Delete(input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete meal: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted meal: %d", input.ID),
	}, nil
}

func (s *Server) handleCompleteQuest(ctx context.Context, req *mcp.CallToolRequest, input completeQuestInput) (*mcp.CallToolResult, awardOutput, error) {
	uid, err := s.user(input.UserID)
	if err != nil {
		return nil, awardOutput{}, err
	}
	if input.QuestID == "" {
		return nil, awardOutput{}, fmt.Errorf("quest_id is required")
	}

	award, err := s.tracker.CompleteQuest(uid, input.QuestID)
	if err != nil {
		return nil, awardOutput{}, fmt.Errorf("failed to complete quest: %w", err)
	}

	title := s.tracker.Catalog().Title(input.QuestID)
	msg := fmt.Sprintf("Completed %q (+%d XP)", title, award.XPAwarded)
	if !award.Inserted {
		msg = fmt.Sprintf("%q was already completed today", title)
	}
	return nil, awardOutput{
		XPAwarded: award.XPAwarded,
		XP:        award.XP,
		Level:     award.Level,
		LeveledUp: award.LeveledUp,
		Message:   msg,
	}, nil
}

func (s *Server) handleListQuests(ctx context.Context, req *mcp.CallToolRequest, input userInput) (*mcp.CallToolResult, any, error) {
	uid, err := s.user(input.UserID)
	if err != nil {
		return nil, nil, err
	}

	d, err := s.tracker.Dashboard(uid)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load quests: %w", err)
	}

	return nil, map[string]any{
		"quests":          d.TodayQuests,
		"done":            d.QuestsDone,
		"lifetime_quests": d.LifetimeQuests,
	}, nil
}

func (s *Server) handlePlanMeal(ctx context.Context, req *mcp.CallToolRequest, input planMealInput) (*mcp.CallToolResult, simpleOutput, error) {
	uid, err := s.user(input.UserID)
	if err != nil {
		return nil, simpleOutput{}, err
	}

	id, err := s.stores.MealPlans.Add(uid, input.Date, input.Title, input.Details)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to plan meal: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Planned %s (ID: %d)", input.Title, id),
	}, nil
}

func (s *Server) handleGetStats(ctx context.Context, req *mcp.CallToolRequest, input userInput) (*mcp.CallToolResult, any, error) {
	uid, err := s.user(input.UserID)
	if err != nil {
		return nil, nil, err
	}

	d, err := s.tracker.Dashboard(uid)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load stats: %w", err)
	}
	return nil, d, nil
}
