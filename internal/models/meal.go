// ABOUTME: MealEntry and MealInput models for nutrition logging.
// ABOUTME: Amount accepts numbers or strings and rounds to non-negative ints.
package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// MealEntry is one logged food item.
type MealEntry struct {
	ID             int64  `json:"id" yaml:"id"`
	UserID         int64  `json:"user_id" yaml:"user_id"`
	FoodName       string `json:"food_name" yaml:"food_name"`
	Calories       int    `json:"calories" yaml:"calories"`
	Protein        int    `json:"protein" yaml:"protein"`
	Carbs          int    `json:"carbs" yaml:"carbs"`
	Fat            int    `json:"fat" yaml:"fat"`
	Fiber          int    `json:"fiber" yaml:"fiber"`
	Grade          string `json:"grade" yaml:"grade"`
	Recommendation string `json:"recommendation" yaml:"recommendation"`
	Date           string `json:"date" yaml:"date"`
}

// Amount is a raw macro value as typed by a user or returned by food
// analysis. It is resolved to an int only at write time.
type Amount string

// AmountOf wraps a numeric value.
func AmountOf(v float64) Amount {
	return Amount(strconv.FormatFloat(v, 'f', -1, 64))
}

// Int rounds the amount to the nearest integer. Unparseable, non-finite and
// negative values resolve to 0.
func (a Amount) Int() int {
	f, err := strconv.ParseFloat(strings.TrimSpace(string(a)), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return int(math.Round(f))
}

// UnmarshalJSON accepts a JSON number, string, or null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	*a = Amount(data)
	return nil
}

// MealInput is the write contract shared by manual entry and food analysis.
type MealInput struct {
	FoodName       string `json:"foodName"`
	Calories       Amount `json:"calories"`
	Protein        Amount `json:"protein"`
	Carbs          Amount `json:"carbs"`
	Fat            Amount `json:"fat"`
	Fiber          Amount `json:"fiber"`
	Grade          string `json:"grade"`
	Recommendation string `json:"recommendation"`
}

// ParseMealInput decodes an analysis result.
func ParseMealInput(data []byte) (*MealInput, error) {
	var in MealInput
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

// Entry resolves the input into a MealEntry for the given user and day.
func (in *MealInput) Entry(userID int64, date string) *MealEntry {
	return &MealEntry{
		UserID:         userID,
		FoodName:       strings.TrimSpace(in.FoodName),
		Calories:       in.Calories.Int(),
		Protein:        in.Protein.Int(),
		Carbs:          in.Carbs.Int(),
		Fat:            in.Fat.Int(),
		Fiber:          in.Fiber.Int(),
		Grade:          in.Grade,
		Recommendation: in.Recommendation,
		Date:           date,
	}
}

// MacroTotals is a sum over meal entries.
type MacroTotals struct {
	Calories int `json:"calories" yaml:"calories"`
	Protein  int `json:"protein" yaml:"protein"`
	Carbs    int `json:"carbs" yaml:"carbs"`
	Fat      int `json:"fat" yaml:"fat"`
	Fiber    int `json:"fiber" yaml:"fiber"`
}
