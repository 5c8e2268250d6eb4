package catalog

import (
	"strings"

	"github.com/aakash-73/Se2-Project-v1/internal/model"
)

// Group records sharing a course name
type Group struct {
	CourseName string
	Syllabi    []model.SyllabusRecord
}

// Search case-insensitive substring match over course id, course name,
// department id and department name. A blank query returns every record.
func Search(records []model.SyllabusRecord, query string) []model.SyllabusRecord {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]model.SyllabusRecord, 0, len(records))
	if q == "" {
		return append(out, records...)
	}
	for _, r := range records {
		if matches(r, q) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r model.SyllabusRecord, q string) bool {
	for _, field := range []string{r.CourseID, r.CourseName, r.DepartmentID, r.DepartmentName} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// GroupByCourse groups records by course name in first-appearance order
func GroupByCourse(records []model.SyllabusRecord) []Group {
	index := make(map[string]int)
	groups := make([]Group, 0)
	for _, r := range records {
		i, ok := index[r.CourseName]
		if !ok {
			i = len(groups)
			index[r.CourseName] = i
			groups = append(groups, Group{CourseName: r.CourseName})
		}
		groups[i].Syllabi = append(groups[i].Syllabi, r)
	}
	return groups
}

// DistinctCourses course names in first-appearance order
func DistinctCourses(records []model.SyllabusRecord) []string {
	seen := make(map[string]struct{}, len(records))
	out := make([]string, 0)
	for _, r := range records {
		if _, ok := seen[r.CourseName]; ok {
			continue
		}
		seen[r.CourseName] = struct{}{}
		out = append(out, r.CourseName)
	}
	return out
}

// FilterByCourse records whose course name equals name exactly
func FilterByCourse(records []model.SyllabusRecord, name string) []model.SyllabusRecord {
	out := make([]model.SyllabusRecord, 0)
	for _, r := range records {
		if r.CourseName == name {
			out = append(out, r)
		}
	}
	return out
}

// Find record by identifier
func Find(records []model.SyllabusRecord, recordID string) (model.SyllabusRecord, bool) {
	for _, r := range records {
		if r.RecordID() == recordID {
			return r, true
		}
	}
	return model.SyllabusRecord{}, false
}
