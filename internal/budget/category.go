package budget

import (
	"github.com/samber/lo"

	"github.com/boddenberg/budgeteer-api-go/internal/domain"
)

// IsDisplayed reports whether the category exists and is neither hidden
// nor deleted.
func IsDisplayed(categoryID string, categories []domain.Category) bool {
	c, ok := Find(categoryID, categories)
	return ok && c.Displayed()
}

// NameOf returns the category's display name, or "" when the id does not
// resolve.
func NameOf(categoryID string, categories []domain.Category) string {
	return LabelOf(categoryID, categories)
}

// ChildrenOf returns the month-category rows whose underlying category is
// a child of the given parent.
func ChildrenOf(parentID string, rows []domain.MonthCategory, categories []domain.Category) []domain.MonthCategory {
	return lo.Filter(rows, func(row domain.MonthCategory, _ int) bool {
		c, ok := Find(row.CategoryID, categories)
		return ok && c.ParentCategoryID == parentID
	})
}

// VisibleGroups returns the rows whose category is a displayed top-level
// group. These are the rows the assembler iterates to build the budget
// table.
func VisibleGroups(rows []domain.MonthCategory, categories []domain.Category) []domain.MonthCategory {
	return lo.Filter(rows, func(row domain.MonthCategory, _ int) bool {
		c, ok := Find(row.CategoryID, categories)
		return ok && c.IsGroup() && c.Displayed()
	})
}

// ApplyDefaultHidden force-hides categories whose name matches the
// configured default-ignored set (systemic categories such as starting
// balance adjustments). The override is OR-merged with the stored flag
// and applied once, by name, before any other processing. An explicitly
// stored isHidden=false is still overridden on a name match; callers rely
// on this behavior, so it must not be "fixed" here.
func ApplyDefaultHidden(categories []domain.Category, ignoredNames []string) []domain.Category {
	ignored := make(map[string]bool, len(ignoredNames))
	for _, name := range ignoredNames {
		ignored[name] = true
	}
	for i := range categories {
		categories[i].IsHidden = categories[i].IsHidden || ignored[categories[i].Name]
	}
	return categories
}
