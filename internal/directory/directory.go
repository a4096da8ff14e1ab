// Package directory implements the patient directory's search, status filter, sort and
// pagination.
package directory

import (
	"math"
	"sort"
	"strings"

	"github.com/mmynk/dentaldesk/internal/models"
)

// RowsPerPage is the directory page size.
const RowsPerPage = 8

// StatusAll disables the status filter.
const StatusAll = "all"

// SortKey orders the directory.
type SortKey string

const (
	SortByLastVisit SortKey = "lastVisit"
	SortByName      SortKey = "name"
	SortByBalance   SortKey = "balance"
)

// ParseSortKey maps a request value to a SortKey, defaulting to SortByLastVisit.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortByName, SortByBalance:
		return SortKey(s)
	default:
		return SortByLastVisit
	}
}

// Query selects one page of the directory.
type Query struct {
	// Search matches the name or chart ID case-insensitively, or a phone substring.
	Search string

	// Status is StatusAll, empty, or an exact PatientStatus.
	Status string

	Sort SortKey

	// Page is 1-based and clamped into range.
	Page int
}

// Page is one page of directory results.
type Page struct {
	Patients   []models.Patient
	Matched    int
	Page       int
	TotalPages int

	// From and To are the 1-based positions of the first and last row shown; both are
	// zero when nothing matched.
	From int
	To   int
}

// Search filters, sorts and paginates patients. The input slice is not modified.
func Search(patients []models.Patient, q Query) Page {
	list := Filter(patients, q.Search, q.Status)
	Sort(list, q.Sort)

	totalPages := int(math.Max(1, math.Ceil(float64(len(list))/RowsPerPage)))
	page := q.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * RowsPerPage
	end := min(start+RowsPerPage, len(list))

	out := Page{
		Patients:   list[start:end],
		Matched:    len(list),
		Page:       page,
		TotalPages: totalPages,
	}
	if len(list) > 0 {
		out.From = start + 1
		out.To = end
	}
	return out
}

// Filter returns the patients matching the search text and status, in input order.
// Blank search text matches everyone; otherwise the text is matched as typed, spaces
// included.
func Filter(patients []models.Patient, search, status string) []models.Patient {
	searching := strings.TrimSpace(search) != ""
	q := strings.ToLower(search)
	out := make([]models.Patient, 0, len(patients))
	for _, p := range patients {
		if searching &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(p.Phone, q) &&
			!strings.Contains(strings.ToLower(p.ID), q) {
			continue
		}
		if status != "" && status != StatusAll && string(p.Status) != status {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Sort orders patients in place: by name ascending, by balance descending, or by most
// recent visit first.
func Sort(patients []models.Patient, key SortKey) {
	sort.SliceStable(patients, func(i, j int) bool {
		a, b := patients[i], patients[j]
		switch key {
		case SortByName:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case SortByBalance:
			return a.Balance > b.Balance
		default:
			return a.LastVisit.After(b.LastVisit)
		}
	})
}

// StatusCounts counts patients per status.
func StatusCounts(patients []models.Patient) map[models.PatientStatus]int {
	counts := make(map[models.PatientStatus]int)
	for _, p := range patients {
		counts[p.Status]++
	}
	return counts
}
