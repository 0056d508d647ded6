// ABOUTME: XP and level transitions for the progression system.
// ABOUTME: Pure computation; callers persist the result via the account store.
package progression

// Rules holds the per-level XP threshold and the level cap.
type Rules struct {
	MaxXP    int
	MaxLevel int
}

// DefaultRules matches the shipped leveling pace.
var DefaultRules = Rules{MaxXP: 100, MaxLevel: 20}

// Result is the outcome of applying an XP award.
type Result struct {
	XP        int  `json:"xp"`
	Level     int  `json:"level"`
	LeveledUp bool `json:"leveled_up"`
}

// ApplyXP applies delta under DefaultRules.
func ApplyXP(currentXP, currentLevel, delta int) Result {
	return DefaultRules.Apply(currentXP, currentLevel, delta)
}

// Apply adds delta to currentXP and performs at most one rollover.
//
// When the sum reaches MaxXP below the level cap, the level increases by one
// and MaxXP is subtracted. At the cap the XP is left as is, even above MaxXP.
// A delta large enough for several levels still only rolls over once.
func (r Rules) Apply(currentXP, currentLevel, delta int) Result {
	r = r.withDefaults()

	res := Result{XP: currentXP + delta, Level: currentLevel}
	if res.XP >= r.MaxXP && currentLevel < r.MaxLevel {
		res.Level = currentLevel + 1
		res.XP -= r.MaxXP
		res.LeveledUp = true
	}
	return res
}

func (r Rules) withDefaults() Rules {
	if r.MaxXP <= 0 {
		r.MaxXP = DefaultRules.MaxXP
	}
	if r.MaxLevel <= 0 {
		r.MaxLevel = DefaultRules.MaxLevel
	}
	return r
}
