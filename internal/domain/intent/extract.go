package intent

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/0xcro3dile/collegebot-go/internal/domain/entities"
)

var deptPattern = regexp.MustCompile(`\b(computer science|computer|cse|cs|mechanical engineering|mechanical|civil engineering|civil|electrical|eee|ece|electronics|management|mba|applied sciences)\b`)

// Department extracts a canonical department code, or "" when the question
// names none (meaning: no department filter).
func Department(q string) string {
	m := deptPattern.FindString(q)
	if m == "" {
		return ""
	}
	if strings.Contains(m, "computer") || m == "cse" || m == "cs" {
		return "cs"
	}
	return strings.TrimSpace(strings.TrimSuffix(m, " engineering"))
}

// Branch maps a canonical department code to the curriculum branch key.
// Unknown or empty departments default to CSE, the original data's largest branch.
func Branch(dept string) string {
	switch dept {
	case "cs":
		return "CSE"
	case "electronics", "ece":
		return "ECE"
	case "electrical", "eee":
		return "EEE"
	case "mechanical":
		return "ME"
	case "civil":
		return "CE"
	default:
		return "CSE"
	}
}

var (
	anchoredName   = regexp.MustCompile(`\b(?:of|is|named|for)\s+([A-Z][A-Za-z.'` + "`" + `-]+(?:\s+[A-Z][A-Za-z.'` + "`" + `-]+)?)\b`)
	capitalized    = regexp.MustCompile(`\b([A-Z][a-z]{2,})(?:\s+[A-Z][a-z]{2,})?\b`)
	nameStopwords  = map[string]bool{
		"the": true, "a": true, "an": true, "in": true, "on": true, "at": true,
		"of": true, "for": true, "and": true, "or": true, "with": true,
		"to": true, "is": true, "are": true, "was": true, "were": true,
		"by": true, "faculty": true, "list": true,
	}
	tokenSplitter = regexp.MustCompile(`\W+`)
)

// PersonName extracts a likely person name from the original (case-preserved)
// question. Patterns are tried in order of decreasing precision: a linguistic
// anchor ("of|is|named|for" followed by a capitalized name), then a bare
// capitalized word, then the last non-stopword token. First success wins.
func PersonName(original string) string {
	if m := anchoredName.FindStringSubmatch(original); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := capitalized.FindString(original); m != "" {
		return m
	}
	tokens := tokenSplitter.Split(original, -1)
	for i := len(tokens) - 1; i >= 0; i-- {
		t := strings.ToLower(tokens[i])
		if t != "" && len(t) > 1 && !nameStopwords[t] {
			return tokens[i]
		}
	}
	return ""
}

// RequestedField detects an explicit single-field request. Unmatched means
// "no single-field request" - the caller returns the full record or list.
func RequestedField(q string) entities.Field {
	switch {
	case strings.Contains(q, "email"):
		return entities.FieldEmail
	case strings.Contains(q, "phone"), strings.Contains(q, "mobile"), strings.Contains(q, "contact"):
		return entities.FieldPhone
	case strings.Contains(q, "department"), strings.Contains(q, "dept"):
		return entities.FieldDepartment
	default:
		return entities.FieldNone
	}
}

var (
	yearRange  = regexp.MustCompile(`(20\d{2})\s*[-–]\s*(\d{2,4})`)
	yearSingle = regexp.MustCompile(`\b(20\d{2})\b`)
)

// Year extracts a normalized "YYYY-YY" academic year. A literal range wins;
// a bare four-digit year is converted to its span; "" means the caller must
// resolve the latest available year from the store.
func Year(q string) string {
	if m := yearRange.FindStringSubmatch(q); m != nil {
		end := m[2]
		if len(end) > 2 {
			end = end[len(end)-2:]
		}
		return m[1] + "-" + end
	}
	if m := yearSingle.FindStringSubmatch(q); m != nil {
		start, _ := strconv.Atoi(m[1])
		return entities.YearSpan(start)
	}
	return ""
}

var companyPattern = regexp.MustCompile(`\b(?:from|at|by)\s+([a-z0-9 .&+\-()/']+)`)

// Company extracts a company name following "from", "at" or "by".
func Company(q string) string {
	m := companyPattern.FindStringSubmatch(q)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

var semesterPattern = regexp.MustCompile(`\bsem(?:ester)?\s*(\d+)`)

// Semester extracts a semester number, 0 when unspecified.
func Semester(q string) int {
	m := semesterPattern.FindStringSubmatch(q)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// Fact picks which college-info fact was asked about.
func Fact(q string) string {
	switch {
	case strings.Contains(q, "address"), strings.Contains(q, "where"), strings.Contains(q, "location"):
		return "address"
	case strings.Contains(q, "establish"), strings.Contains(q, "founded"):
		return "established"
	case strings.Contains(q, "affiliat"), strings.Contains(q, "aicte"), strings.Contains(q, "approved"):
		return "affiliation"
	default:
		return ""
	}
}
