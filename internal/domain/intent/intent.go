// Package intent classifies a raw question into a discrete intent plus
// extracted parameters. Everything here is a pure function over the
// question text - no I/O, no state.
package intent

import (
	"regexp"

	"github.com/0xcro3dile/collegebot-go/internal/domain/entities"
)

// domainGate decides whether a question is in scope for the structured
// store at all. Out-of-domain questions short-circuit to IntentNone so the
// store never answers something it has no authority over.
var domainGate = regexp.MustCompile(`\b(college|faculty|placements?|package|offers?|recruiters?|lpa|fees|admission|principal|department|campus|hostel|staff|professor|teacher|lecturer|hod|email|phone|contact|semester|syllabus|subjects?|affiliat\w*|establish\w*|aicte)\b`)

// rule pairs a predicate with the intent it selects.
type rule struct {
	pattern *regexp.Regexp
	intent  entities.Intent
}

// rules is evaluated in order; first match wins. The order is the policy:
// faculty-role and contact-field words beat placement words beat
// college-info words beat curriculum words, and the more specific placement
// sub-intents are tested before the generic summary.
var rules = []rule{
	{regexp.MustCompile(`\b(faculty|staff|professor|teacher|lecturer|hod)\b`), entities.IntentFaculty},
	{regexp.MustCompile(`\b(email|phone|mobile|contact)\b`), entities.IntentFaculty},
	{regexp.MustCompile(`(highest|max|top).*(package|salary|lpa)`), entities.IntentHighestPackage},
	{regexp.MustCompile(`\boffers?\b`), entities.IntentCompanyOffers},
	{regexp.MustCompile(`\b(placements?|package|lpa|recruiters?|company|companies)\b`), entities.IntentPlacements},
	{regexp.MustCompile(`\b(address|location|establish(ed)?|founded|affiliat\w*|aicte|approved)\b|\bwhere\b`), entities.IntentCollegeInfo},
	{regexp.MustCompile(`\bsem(ester)?\b|\bsubjects?\b|\bsyllabus\b`), entities.IntentCurriculum},
}

// Classify maps a raw question to an intent and its extracted parameters.
// An empty question, or one failing the domain gate, returns
// (IntentNone, Params{}) - that is not an error, it is the signal to defer
// straight to the LLM fallback.
func Classify(question string) (entities.Intent, entities.Params) {
	q := entities.Normalize(question)
	if q == "" || !domainGate.MatchString(q) {
		return entities.IntentNone, entities.Params{}
	}

	for _, r := range rules {
		if r.pattern.MatchString(q) {
			return r.intent, extract(r.intent, question, q)
		}
	}

	// In-domain but no sub-intent rule fired: let the FAQ table have a go.
	return entities.IntentFAQ, entities.Params{}
}

// extract runs only the extractors relevant to the chosen intent.
func extract(it entities.Intent, original, normalized string) entities.Params {
	var p entities.Params
	switch it {
	case entities.IntentFaculty:
		p.Department = Department(normalized)
		p.PersonName = PersonName(original)
		p.Field = RequestedField(normalized)
	case entities.IntentPlacements, entities.IntentHighestPackage, entities.IntentCompanyOffers:
		p.Year = Year(normalized)
		p.Company = Company(normalized)
	case entities.IntentCollegeInfo:
		p.Fact = Fact(normalized)
	case entities.IntentCurriculum:
		p.Department = Department(normalized)
		p.Semester = Semester(normalized)
	}
	return p
}
