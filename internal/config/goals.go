package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/boddenberg/budgeteer-api-go/internal/domain"
)

// goalSpec is the on-disk shape of a single goal. Months are written as
// YYYY-MM and expanded to the first day of that month.
type goalSpec struct {
	Type       string `yaml:"type"`
	Target     int64  `yaml:"target"`
	StartMonth string `yaml:"start_month"`
	EndMonth   string `yaml:"end_month"`
}

// LoadGoals reads a YAML file mapping category IDs to goals:
//
//	c-groceries:
//	  type: MonthlyBudget
//	  target: 10000
//	  start_month: 2023-03
//	  end_month: 2023-03
//
// An empty path returns an empty map and no error.
func LoadGoals(path string) (map[string]domain.Goal, error) {
	if path == "" {
		return map[string]domain.Goal{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading goals file: %w", err)
	}

	var specs map[string]goalSpec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("parsing goals file %s: %w", path, err)
	}

	goals := make(map[string]domain.Goal, len(specs))
	for categoryID, spec := range specs {
		g, err := spec.toGoal()
		if err != nil {
			return nil, fmt.Errorf("goal for category %s: %w", categoryID, err)
		}
		goals[categoryID] = g
	}
	return goals, nil
}

func (s goalSpec) toGoal() (domain.Goal, error) {
	switch domain.GoalType(s.Type) {
	case domain.GoalBalanceByDate, domain.GoalMonthlyBudget, domain.GoalMinimumBalance:
	default:
		return domain.Goal{}, fmt.Errorf("unknown goal type %q", s.Type)
	}

	start, err := parseMonth(s.StartMonth)
	if err != nil {
		return domain.Goal{}, fmt.Errorf("start_month: %w", err)
	}
	end, err := parseMonth(s.EndMonth)
	if err != nil {
		return domain.Goal{}, fmt.Errorf("end_month: %w", err)
	}

	return domain.Goal{
		Type:       domain.GoalType(s.Type),
		Target:     s.Target,
		StartMonth: start,
		EndMonth:   end,
	}, nil
}

func parseMonth(s string) (time.Time, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("want YYYY-MM, got %q", s)
	}
	return t, nil
}
