// Package usecases - format.go renders store rows into reply text.
// Every function here is pure and deterministic: same rows in, same text out.
// An empty return string always means "nothing to say, defer to the fallback" -
// the formatter never fabricates an "N/A" for data the store does not have.
package usecases

import (
	"fmt"
	"strings"

	"github.com/0xcro3dile/collegebot-go/internal/domain/entities"
)

// FormatFaculty renders a faculty answer: a single requested field when one
// was asked for, otherwise a bulleted listing.
func FormatFaculty(params entities.Params, rows []entities.FacultyRecord) string {
	if len(rows) == 0 {
		return ""
	}
	if params.Field != entities.FieldNone {
		return formatFacultyField(params, rows)
	}
	return formatFacultyList(params.Department, rows)
}

// formatFacultyField picks the row whose name best matches the extracted
// person name (substring on the lower-cased name), else the first row.
func formatFacultyField(params entities.Params, rows []entities.FacultyRecord) string {
	match := rows[0]
	if params.PersonName != "" {
		want := strings.ToLower(params.PersonName)
		for _, r := range rows {
			if strings.Contains(strings.ToLower(r.Name), want) {
				match = r
				break
			}
		}
	}

	var value string
	switch params.Field {
	case entities.FieldEmail:
		value = match.Email
	case entities.FieldPhone:
		value = match.Phone
	case entities.FieldDepartment:
		value = match.Department
	}
	if value == "" {
		// Absence of data is "don't fabricate, fall back", never "N/A".
		return ""
	}
	return fmt.Sprintf("**%s** — %s: %s", match.Name, params.Field.Label(), value)
}

func formatFacultyList(dept string, rows []entities.FacultyRecord) string {
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		var sb strings.Builder
		sb.WriteString("- **" + r.Name + "** — ")
		if r.Department != "" {
			sb.WriteString("Dept: " + r.Department)
		}
		if r.Phone != "" {
			sb.WriteString(", Phone: " + r.Phone)
		}
		if r.Email != "" {
			sb.WriteString(", Email: " + r.Email)
		}
		lines = append(lines, sb.String())
	}

	header := "Faculty list"
	if dept != "" {
		header = "Faculty list — " + strings.ToUpper(dept)
	}
	return fmt.Sprintf("**%s**\n\n%s", header, strings.Join(lines, "\n"))
}

// FormatHighestPackage renders the top-salary row for a year.
func FormatHighestPackage(year string, row *entities.PlacementRecord) string {
	if row == nil {
		return ""
	}
	return fmt.Sprintf("Highest package in %s was %s LPA at %s.", year, entities.FormatLPA(row.SalaryLPA), row.Company)
}

// FormatCompanyOffers sums offers across the matched rows and quotes the total.
func FormatCompanyOffers(year string, rows []entities.PlacementRecord) string {
	if len(rows) == 0 {
		return ""
	}
	total := 0
	for _, r := range rows {
		total += r.Offers
	}
	return fmt.Sprintf("%s made %d offer(s) in %s.", rows[0].Company, total, year)
}

// FormatPlacements renders the per-company summary for a year plus the
// computed total offers and maximum salary across the row set.
func FormatPlacements(year string, rows []entities.PlacementRecord) string {
	if len(rows) == 0 {
		return ""
	}
	lines := make([]string, 0, len(rows))
	total := 0
	highest := 0.0
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%s - %d offers, Package: %s LPA", r.Company, r.Offers, entities.FormatLPA(r.SalaryLPA)))
		total += r.Offers
		if r.SalaryLPA > highest {
			highest = r.SalaryLPA
		}
	}
	return fmt.Sprintf("Placements for %s: %s. Total offers: %d. Highest: %s LPA.",
		year, strings.Join(lines, ", "), total, entities.FormatLPA(highest))
}

// FormatCollegeInfo branches on which fact was asked and renders one
// templated sentence; an unrecognized sub-question gets the composite.
func FormatCollegeInfo(fact string, info *entities.CollegeInfo) string {
	if info == nil {
		return ""
	}
	switch fact {
	case "address":
		if info.Address == "" {
			return ""
		}
		s := fmt.Sprintf("%s — %s.", info.Name, info.Address)
		if info.Phone != "" {
			s += " Phone: " + info.Phone + "."
		}
		return s
	case "established":
		if info.Established == "" {
			return ""
		}
		return fmt.Sprintf("%s was established in %s.", info.Name, info.Established)
	case "affiliation":
		if info.Affiliation == "" {
			return ""
		}
		s := "Affiliation: " + info.Affiliation + "."
		if info.ApprovedBy != "" {
			s += " Approved by: " + info.ApprovedBy + "."
		}
		return s
	}

	// Generic composite from whatever fields are present.
	parts := make([]string, 0, 4)
	if info.Address != "" {
		parts = append(parts, info.Address)
	}
	if info.Established != "" {
		parts = append(parts, "established "+info.Established)
	}
	if info.Affiliation != "" {
		parts = append(parts, "affiliated to "+info.Affiliation)
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("%s — %s.", info.Name, strings.Join(parts, ", "))
}

// FormatSubjects renders a curriculum listing for one branch and semester.
func FormatSubjects(branch string, semester int, subjects []string) string {
	if len(subjects) == 0 {
		return ""
	}
	return fmt.Sprintf("Subjects for %s Semester %d:\n%s", branch, semester, strings.Join(subjects, "\n"))
}

// BestFAQ scores each FAQ row by counting question-word overlaps with the
// normalized input. The strictly highest score wins; ties keep the first-seen
// row; a zero score never matches.
func BestFAQ(question string, rows []entities.FaqRecord) string {
	words := strings.FieldsFunc(entities.Normalize(question), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})

	var best *entities.FaqRecord
	bestScore := 0
	for i := range rows {
		rnorm := entities.Normalize(rows[i].Question)
		score := 0
		for _, w := range words {
			if strings.Contains(rnorm, w) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = &rows[i]
		}
	}
	if best == nil {
		return ""
	}
	return best.Answer
}
