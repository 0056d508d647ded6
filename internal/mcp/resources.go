// ABOUTME: MCP resource implementations for the active user's fitness data.
// ABOUTME: Provides kinetiqo://today, kinetiqo://stats, and kinetiqo://profile resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// kinetiqo://today - Workouts, meals, and quests logged today
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "kinetiqo://today",
		Name:        "Today's Activity",
		Description: "Workouts, meals with totals, and quests logged today",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	// kinetiqo://stats - Stats dashboard
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "kinetiqo://stats",
		Name:        "Stats Dashboard",
		Description: "Level, XP, streak, weekly workouts, and quest progress",
		MIMEType:    "application/json",
	}, s.handleStatsResource)

	// kinetiqo://profile - Profile and upcoming meal plans
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "kinetiqo://profile",
		Name:        "Profile",
		Description: "Profile fields and upcoming meal plans",
		MIMEType:    "application/json",
	}, s.handleProfileResource)
}

// Resource handlers

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uid, err := s.user(0)
	if err != nil {
		return nil, err
	}

	workouts, err := s.stores.Workouts.ListToday(uid)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	meals, err := s.stores.Meals.ListToday(uid)
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}
	totals, err := s.stores.Meals.DayTotals(uid, "")
	if err != nil {
		return nil, fmt.Errorf("failed to total meals: %w", err)
	}
	quests, err := s.stores.Quests.TodaysCompletions(uid)
	if err != nil {
		return nil, fmt.Errorf("failed to list quests: %w", err)
	}

	return jsonResource("kinetiqo://today", map[string]any{
		"date":     s.db.Today(),
		"workouts": workouts,
		"meals":    meals,
		"totals":   totals,
		"quests":   quests,
		"counts": map[string]int{
			"workouts": len(workouts),
			"meals":    len(meals),
			"quests":   len(quests),
		},
	})
}

func (s *Server) handleStatsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uid, err := s.user(0)
	if err != nil {
		return nil, err
	}

	d, err := s.tracker.Dashboard(uid)
	if err != nil {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}
	return jsonResource("kinetiqo://stats", d)
}

func (s *Server) handleProfileResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uid, err := s.user(0)
	if err != nil {
		return nil, err
	}

	u, err := s.stores.Accounts.GetFullProfile(uid)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	plans, err := s.stores.MealPlans.ListUpcoming(uid, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list meal plans: %w", err)
	}

	return jsonResource("kinetiqo://profile", map[string]any{
		"profile":    u,
		"meal_plans": plans,
	})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
