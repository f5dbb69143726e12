// Package usecases - answer.go composes the pipeline:
// classify -> lookup -> format, deferring to the LLM fallback when the
// structured path has nothing to say.
package usecases

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/0xcro3dile/collegebot-go/internal/domain/entities"
	"github.com/0xcro3dile/collegebot-go/internal/domain/intent"
	"github.com/0xcro3dile/collegebot-go/internal/domain/ports"
)

// defaultYear is the last-resort literal when neither the question nor the
// store can produce an academic year.
const defaultYear = "2024-25"

// ErrNoFallback reports that the structured path produced nothing and no
// LLM provider is configured to take over.
var ErrNoFallback = errors.New("no fallback provider configured")

// AnswerUseCase orchestrates intent resolution and fallback routing.
type AnswerUseCase struct {
	store ports.DataStore
	llm   ports.Completer // nil when no provider credentials are configured
	log   *zap.Logger
}

// NewAnswerUseCase creates an AnswerUseCase with injected dependencies.
// llm may be nil; store failures then become hard errors.
func NewAnswerUseCase(store ports.DataStore, llm ports.Completer, log *zap.Logger) *AnswerUseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &AnswerUseCase{store: store, llm: llm, log: log}
}

// HasFallback reports whether an LLM provider is configured.
func (uc *AnswerUseCase) HasFallback() bool {
	return uc.llm != nil
}

// Ask runs only the structured half: classify -> lookup -> format.
// An empty reply text means "no structured answer"; callers use it as the
// signal to invoke the LLM path themselves. Store failures are hard here.
func (uc *AnswerUseCase) Ask(ctx context.Context, question string) (entities.Reply, error) {
	it, params := intent.Classify(question)
	if it == entities.IntentNone {
		return entities.Reply{Source: entities.SourceDB}, nil
	}

	text, err := uc.resolve(ctx, it, params, question)
	if err != nil {
		return entities.Reply{Source: entities.SourceError}, err
	}
	return entities.Reply{Text: text, Source: entities.SourceDB}, nil
}

// Answer runs the full pipeline for one question with conversation history.
// The state machine is linear: CLASSIFY -> LOOKUP -> FORMAT -> LLM, where the
// LLM step is reached directly on intent "none", on an empty formatted
// answer, or on a store failure when a fallback exists. The LLM receives the
// full history, not just the latest question.
func (uc *AnswerUseCase) Answer(ctx context.Context, question string, history []entities.ChatMessage) (entities.Reply, error) {
	it, params := intent.Classify(question)

	if it != entities.IntentNone {
		text, err := uc.resolve(ctx, it, params, question)
		switch {
		case err != nil && uc.llm == nil:
			return entities.Reply{Source: entities.SourceError}, err
		case err != nil:
			// Degrade to the fallback rather than surfacing a store error.
			uc.log.Warn("structured lookup failed, deferring to llm",
				zap.String("intent", string(it)), zap.Error(err))
		case text != "":
			return entities.Reply{Text: text, Source: entities.SourceDB}, nil
		}
	}

	if uc.llm == nil {
		return entities.Reply{Source: entities.SourceError}, ErrNoFallback
	}

	if len(history) == 0 {
		history = []entities.ChatMessage{{Role: "user", Content: question}}
	}
	text, err := uc.llm.Complete(ctx, history)
	if err != nil {
		return entities.Reply{Source: entities.SourceError}, fmt.Errorf("completing via llm: %w", err)
	}
	return entities.Reply{Text: text, Source: entities.SourceLLM}, nil
}

// resolve performs the structured lookup for a classified intent and formats
// the rows. An empty string with a nil error means "defer to the fallback".
func (uc *AnswerUseCase) resolve(ctx context.Context, it entities.Intent, params entities.Params, question string) (string, error) {
	switch it {
	case entities.IntentFaculty:
		rows, err := uc.store.Faculty(ctx, ports.FacultyFilter{Department: params.Department, Name: params.PersonName})
		if err != nil {
			return "", fmt.Errorf("querying faculty: %w", err)
		}
		return FormatFaculty(params, rows), nil

	case entities.IntentHighestPackage:
		year := uc.resolveYear(ctx, params.Year)
		row, err := uc.store.HighestPackage(ctx, year)
		if errors.Is(err, ports.ErrNotFound) {
			return "", nil
		}
		if err != nil {
			return "", fmt.Errorf("querying highest package: %w", err)
		}
		return FormatHighestPackage(year, row), nil

	case entities.IntentCompanyOffers:
		year := uc.resolveYear(ctx, params.Year)
		var rows []entities.PlacementRecord
		var err error
		if params.Company != "" {
			rows, err = uc.store.PlacementsByCompany(ctx, year, params.Company)
		} else {
			rows, err = uc.store.Placements(ctx, year)
		}
		if err != nil {
			return "", fmt.Errorf("querying offers: %w", err)
		}
		return FormatCompanyOffers(year, rows), nil

	case entities.IntentPlacements:
		year := uc.resolveYear(ctx, params.Year)
		rows, err := uc.store.Placements(ctx, year)
		if err != nil {
			return "", fmt.Errorf("querying placements: %w", err)
		}
		return FormatPlacements(year, rows), nil

	case entities.IntentCollegeInfo:
		info, err := uc.store.College(ctx)
		if errors.Is(err, ports.ErrNotFound) {
			return "", nil
		}
		if err != nil {
			return "", fmt.Errorf("querying college info: %w", err)
		}
		return FormatCollegeInfo(params.Fact, info), nil

	case entities.IntentCurriculum:
		if params.Semester == 0 {
			return "", nil
		}
		branch := intent.Branch(params.Department)
		subjects, err := uc.store.Subjects(ctx, branch, params.Semester)
		if err != nil {
			return "", fmt.Errorf("querying curriculum: %w", err)
		}
		return FormatSubjects(branch, params.Semester, subjects), nil

	case entities.IntentFAQ:
		rows, err := uc.store.FAQs(ctx)
		if err != nil {
			return "", fmt.Errorf("querying faq: %w", err)
		}
		return BestFAQ(question, rows), nil
	}

	return "", nil
}

// resolveYear substitutes the latest stored year when the question named
// none. The hardcoded default is a last resort only - the store's maximum
// year is always preferred.
func (uc *AnswerUseCase) resolveYear(ctx context.Context, year string) string {
	if year != "" {
		return year
	}
	latest, err := uc.store.LatestPlacementYear(ctx)
	if err != nil || latest == "" {
		if err != nil && !errors.Is(err, ports.ErrNotFound) {
			uc.log.Warn("resolving latest placement year failed", zap.Error(err))
		}
		return defaultYear
	}
	return latest
}
