// ABOUTME: User account, profile snapshot, and registration models.
// ABOUTME: Progression fields (xp, level) live on the user row.
package models

// User is an account with its profile and progression snapshot.
type User struct {
	ID           int64   `json:"id" yaml:"id"`
	Username     string  `json:"username" yaml:"username"`
	Email        string  `json:"email" yaml:"email"`
	Password     string  `json:"-" yaml:"-"`
	Age          string  `json:"age" yaml:"age"`
	Weight       string  `json:"weight" yaml:"weight"`
	Height       string  `json:"height" yaml:"height"`
	FitnessLevel string  `json:"fitness_level" yaml:"fitness_level"`
	FitnessGoal  string  `json:"fitness_goal" yaml:"fitness_goal"`
	XP           int     `json:"xp" yaml:"xp"`
	Level        int     `json:"level" yaml:"level"`
	ProfileImage *string `json:"profile_image,omitempty" yaml:"profile_image,omitempty"`
}

// ProfileSnapshot is the reduced projection used by dashboards.
type ProfileSnapshot struct {
	Age          string `json:"age"`
	Weight       string `json:"weight"`
	Height       string `json:"height"`
	Level        int    `json:"level"`
	FitnessLevel string `json:"fitness_level"`
	FitnessGoal  string `json:"fitness_goal"`
	XP           int    `json:"xp"`
}

// Registration holds the fields captured at sign-up.
type Registration struct {
	Username     string
	Email        string
	Password     string
	Age          string
	Weight       string
	Height       string
	FitnessLevel string
	FitnessGoal  string
}

// ProfileUpdate is a full overwrite of the editable profile fields.
type ProfileUpdate struct {
	Username    string
	Age         string
	Weight      string
	Height      string
	FitnessGoal string
}

// Profile returns the update populated from the user's current values.
func (u *User) Profile() ProfileUpdate {
	return ProfileUpdate{
		Username:    u.Username,
		Age:         u.Age,
		Weight:      u.Weight,
		Height:      u.Height,
		FitnessGoal: u.FitnessGoal,
	}
}
