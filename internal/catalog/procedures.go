package catalog

import (
	"strings"

	"github.com/mmynk/dentaldesk/internal/models"
)

// CategoryAll matches every procedure category.
const CategoryAll = "All"

// Categories lists the filter tabs in display order.
var Categories = []string{
	CategoryAll,
	models.CategoryGeneral,
	models.CategoryOrthodontics,
	models.CategorySurgery,
	models.CategoryCosmetic,
}

// ProcedureFilter narrows the catalog. The zero value matches everything.
type ProcedureFilter struct {
	// Category is CategoryAll, empty, or an exact category name.
	Category string

	// Query matches a case-insensitive substring of the name or billing code.
	Query string
}

// Matches reports whether p passes the filter.
func (f ProcedureFilter) Matches(p models.Procedure) bool {
	if f.Category != "" && f.Category != CategoryAll && p.Category != f.Category {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Code), q)
}

// FilterProcedures returns the procedures matching f in catalog order.
func FilterProcedures(procs []models.Procedure, f ProcedureFilter) []models.Procedure {
	out := make([]models.Procedure, 0, len(procs))
	for _, p := range procs {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// CategoryCounts counts procedures per category, with the catalog size under CategoryAll.
func CategoryCounts(procs []models.Procedure) map[string]int {
	counts := map[string]int{CategoryAll: len(procs)}
	for _, p := range procs {
		counts[p.Category]++
	}
	return counts
}

// FindProcedure looks up a procedure by ID.
func FindProcedure(procs []models.Procedure, id int64) (models.Procedure, bool) {
	for _, p := range procs {
		if p.ID == id {
			return p, true
		}
	}
	return models.Procedure{}, false
}
