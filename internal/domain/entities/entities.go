// Package entities contains core business entities.
// These are the enterprise business rules - pure domain objects with no external dependencies.
package entities

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Intent is the classified purpose of a question.
type Intent string

const (
	IntentFaculty        Intent = "faculty"
	IntentPlacements     Intent = "placements"
	IntentHighestPackage Intent = "highest_package"
	IntentCompanyOffers  Intent = "company_offers"
	IntentCollegeInfo    Intent = "college_info"
	IntentCurriculum     Intent = "curriculum"
	IntentFAQ            Intent = "faq"
	IntentNone           Intent = "none"
)

// Field is a single faculty attribute the caller asked for.
type Field string

const (
	FieldNone       Field = ""
	FieldEmail      Field = "email"
	FieldPhone      Field = "phone"
	FieldDepartment Field = "department"
)

// Label returns the human-facing label for a field.
func (f Field) Label() string {
	switch f {
	case FieldEmail:
		return "Email"
	case FieldPhone:
		return "Phone"
	case FieldDepartment:
		return "Department"
	default:
		return ""
	}
}

// Params holds the values extracted from a question alongside its intent.
// Zero values mean "unconstrained" - no filter is applied for that dimension.
type Params struct {
	Department string // canonical department code, e.g. "cs"
	PersonName string
	Field      Field
	Year       string // normalized "YYYY-YY"; empty means "resolve latest"
	Company    string
	Semester   int    // 0 means unspecified
	Fact       string // college_info sub-question: "address", "established", "affiliation"
}

// FacultyRecord is one row of the faculty table. Read-only from this core's
// perspective; the set is mutated out of band by administrative data entry.
type FacultyRecord struct {
	ID          int64
	Name        string
	Department  string
	Designation string
	Email       string
	Phone       string
}

// PlacementRecord is one company's result for one academic year.
type PlacementRecord struct {
	Year      string // "YYYY-YY"
	Company   string
	Offers    int
	SalaryLPA float64
}

// FaqRecord is a static question/answer pair matched by token overlap.
type FaqRecord struct {
	Question string
	Answer   string
}

// CollegeInfo holds the institution-level facts.
type CollegeInfo struct {
	Name        string
	Address     string
	Phone       string
	Established string
	Affiliation string
	ApprovedBy  string
}

// ChatMessage represents a conversation turn.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Source tags where a reply came from.
type Source string

const (
	SourceDB    Source = "db"
	SourceLLM   Source = "llm"
	SourceError Source = "error"
)

// Reply is the unit returned to the caller. An empty Text is the only
// in-band "no structured answer" signal; it is distinct from a failure,
// which carries a non-nil error or an error source tag.
type Reply struct {
	Text   string `json:"text"`
	Source Source `json:"source"`
}

// Empty reports whether the reply carries no answer.
func (r Reply) Empty() bool {
	return strings.TrimSpace(r.Text) == ""
}

// Normalize lower-cases and trims a question for matching.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

var nonNumeric = regexp.MustCompile(`[^0-9.\-]`)

// LooseFloat parses a numeric value from the store defensively: non-numeric
// characters are stripped before parsing and failures default to zero.
// Store data is entered by hand; "6.5 LPA" must never break a reply.
func LooseFloat(v string) float64 {
	n, err := strconv.ParseFloat(nonNumeric.ReplaceAllString(v, ""), 64)
	if err != nil {
		return 0
	}
	return n
}

// LooseInt is LooseFloat truncated to an integer count.
func LooseInt(v string) int {
	return int(LooseFloat(v))
}

// FormatLPA renders a salary without trailing zeros ("6.5", "9").
func FormatLPA(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// YearSpan normalizes a bare start year to the five-character academic form
// "YYYY-YY" where the end is (start+1) mod 100, zero-padded.
func YearSpan(start int) string {
	return fmt.Sprintf("%d-%02d", start, (start+1)%100)
}
