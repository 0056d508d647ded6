// ABOUTME: Daily quest catalog keyed by weekday, loaded from YAML.
// ABOUTME: The quest ledger stores IDs only; titles and XP rewards live here.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Quest is one daily challenge.
type Quest struct {
	ID    string `yaml:"id" json:"id"`
	Title string `yaml:"title" json:"title"`
	XP    int    `yaml:"xp" json:"xp"`
}

// Catalog is a read-only lookup of quests per weekday.
type Catalog struct {
	days map[time.Weekday][]Quest
	byID map[string]Quest
}

type file struct {
	Days map[string][]Quest `yaml:"days"`
}

// Parse decodes a catalog document. Day names are case-insensitive English
// weekday names; quest IDs must be unique across the document unless the
// same quest is repeated verbatim.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse quest catalog: %w", err)
	}

	c := &Catalog{
		days: make(map[time.Weekday][]Quest),
		byID: make(map[string]Quest),
	}
	for name, quests := range f.Days {
		day, ok := parseWeekday(name)
		if !ok {
			return nil, fmt.Errorf("parse quest catalog: unknown day %q", name)
		}
		for _, q := range quests {
			if q.ID == "" {
				return nil, fmt.Errorf("parse quest catalog: quest without id on %s", name)
			}
			if prev, seen := c.byID[q.ID]; seen && prev != q {
				return nil, fmt.Errorf("parse quest catalog: conflicting definitions for %q", q.ID)
			}
			c.byID[q.ID] = q
		}
		c.days[day] = append(c.days[day], quests...)
	}
	return c, nil
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(err)
	}
	return c
}

// LoadFile reads a catalog from path. A missing file yields the built-in
// catalog.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read quest catalog: %w", err)
	}
	return Parse(data)
}

// ForDay returns the quests offered on a weekday.
func (c *Catalog) ForDay(day time.Weekday) []Quest {
	return c.days[day]
}

// Lookup returns the quest with the given ID.
func (c *Catalog) Lookup(id string) (Quest, bool) {
	q, ok := c.byID[id]
	return q, ok
}

// Title returns the quest title, or the ID itself for unknown quests.
func (c *Catalog) Title(id string) string {
	if q, ok := c.byID[id]; ok {
		return q.Title
	}
	return id
}

// RewardXP returns the XP a quest grants, 0 for unknown quests.
func (c *Catalog) RewardXP(id string) int {
	return c.byID[id].XP
}

func parseWeekday(name string) (time.Weekday, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == name {
			return d, true
		}
	}
	return 0, false
}
