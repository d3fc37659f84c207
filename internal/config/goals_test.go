package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/boddenberg/budgeteer-api-go/internal/config"
	"github.com/boddenberg/budgeteer-api-go/internal/domain"
)

func writeGoalsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "goals.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write goals file: %v", err)
	}
	return path
}

func TestLoadGoals(t *testing.T) {
	path := writeGoalsFile(t, `
c-groceries:
  type: MonthlyBudget
  target: 10000
  start_month: "2023-03"
  end_month: "2023-06"
c-vacation:
  type: BalanceByDate
  target: 250000
  start_month: "2023-01"
  end_month: "2024-01"
`)

	goals, err := config.LoadGoals(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(goals) != 2 {
		t.Fatalf("expected 2 goals, got %d", len(goals))
	}

	g := goals["c-groceries"]
	if g.Type != domain.GoalMonthlyBudget {
		t.Errorf("expected MonthlyBudget, got %s", g.Type)
	}
	if g.Target != 10000 {
		t.Errorf("expected target 10000, got %d", g.Target)
	}
	want := time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC)
	if !g.StartMonth.Equal(want) {
		t.Errorf("expected start %v, got %v", want, g.StartMonth)
	}
}

func TestLoadGoals_EmptyPath(t *testing.T) {
	goals, err := config.LoadGoals("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(goals) != 0 {
		t.Errorf("expected empty map, got %d entries", len(goals))
	}
}

func TestLoadGoals_UnknownType(t *testing.T) {
	path := writeGoalsFile(t, `
c-bad:
  type: WeeklyBudget
  target: 100
  start_month: "2023-01"
  end_month: "2023-02"
`)

	_, err := config.LoadGoals(path)
	if err == nil {
		t.Fatal("expected an error for unknown goal type")
	}
	if !strings.Contains(err.Error(), "WeeklyBudget") {
		t.Errorf("error should name the bad type, got: %v", err)
	}
}

func TestLoadGoals_BadMonth(t *testing.T) {
	path := writeGoalsFile(t, `
c-bad:
  type: MonthlyBudget
  target: 100
  start_month: "March 2023"
  end_month: "2023-04"
`)

	_, err := config.LoadGoals(path)
	if err == nil {
		t.Fatal("expected an error for a non YYYY-MM month")
	}
	if !strings.Contains(err.Error(), "YYYY-MM") {
		t.Errorf("error should mention the expected layout, got: %v", err)
	}
}

func TestLoadGoals_MissingFile(t *testing.T) {
	if _, err := config.LoadGoals("/nonexistent/goals.yaml"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
