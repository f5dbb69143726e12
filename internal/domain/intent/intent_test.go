package intent

import (
	"testing"

	"github.com/0xcro3dile/collegebot-go/internal/domain/entities"
)

func TestClassify_OutOfDomain(t *testing.T) {
	cases := []string{
		"what is the weather today",
		"tell me a joke",
		"how do I cook pasta",
	}
	for _, q := range cases {
		it, _ := Classify(q)
		if it != entities.IntentNone {
			t.Errorf("Classify(%q) = %v, want none", q, it)
		}
	}
}

func TestClassify_EmptyQuestion(t *testing.T) {
	it, _ := Classify("   ")
	if it != entities.IntentNone {
		t.Errorf("got %v, want none", it)
	}
}

func TestClassify_Intents(t *testing.T) {
	cases := []struct {
		question string
		want     entities.Intent
	}{
		{"list the faculty of computer science", entities.IntentFaculty},
		{"who is the HOD of mechanical department", entities.IntentFaculty},
		{"email of professor Sharma", entities.IntentFaculty},
		{"email of Ramesh", entities.IntentFaculty},
		{"phone number of the principal", entities.IntentFaculty},
		{"what was the highest package in 2024", entities.IntentHighestPackage},
		{"top salary package this year at the college", entities.IntentHighestPackage},
		{"how many offers from infosys in placements", entities.IntentCompanyOffers},
		{"placements in 2023", entities.IntentPlacements},
		{"which companies came for placements", entities.IntentPlacements},
		{"where is the college located", entities.IntentCollegeInfo},
		{"when was the college established", entities.IntentCollegeInfo},
		{"is the college AICTE approved", entities.IntentCollegeInfo},
		{"subjects in semester 3 of cse", entities.IntentCurriculum},
		{"syllabus for sem 5", entities.IntentCurriculum},
	}
	for _, c := range cases {
		it, _ := Classify(c.question)
		if it != c.want {
			t.Errorf("Classify(%q) = %v, want %v", c.question, it, c.want)
		}
	}
}

// Faculty-role words take priority even when placement words also appear.
func TestClassify_FacultyBeatsPlacements(t *testing.T) {
	it, _ := Classify("which professor handles placements")
	if it != entities.IntentFaculty {
		t.Errorf("got %v, want faculty", it)
	}
}

// "highest ... package" must not be swallowed by the generic placements rule.
func TestClassify_HighestPackageBeatsPlacements(t *testing.T) {
	it, _ := Classify("highest package in placements 2024")
	if it != entities.IntentHighestPackage {
		t.Errorf("got %v, want highest_package", it)
	}
}

func TestClassify_InDomainUnmatchedFallsToFAQ(t *testing.T) {
	it, _ := Classify("what are the college fees")
	if it != entities.IntentFAQ {
		t.Errorf("got %v, want faq", it)
	}
}

func TestClassify_ExtractsParams(t *testing.T) {
	it, p := Classify("email of Dr. Kumar from the cs faculty")
	if it != entities.IntentFaculty {
		t.Fatalf("got intent %v", it)
	}
	if p.Field != entities.FieldEmail {
		t.Errorf("field = %q, want email", p.Field)
	}
	if p.Department != "cs" {
		t.Errorf("department = %q, want cs", p.Department)
	}

	it, p = Classify("placements in 2023 at the college")
	if it != entities.IntentPlacements {
		t.Fatalf("got intent %v", it)
	}
	if p.Year != "2023-24" {
		t.Errorf("year = %q, want 2023-24", p.Year)
	}
}
