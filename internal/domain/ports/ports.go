// Package ports defines interfaces for external dependencies.
// Clean Architecture: These are the boundaries - usecases depend on these abstractions,
// not concrete implementations. Adapters implement these interfaces.
package ports

import (
	"context"
	"errors"

	"github.com/0xcro3dile/collegebot-go/internal/domain/entities"
)

// ErrNotFound reports a lookup that matched nothing where one row was required.
var ErrNotFound = errors.New("not found")

// FacultyFilter narrows a faculty query. Empty fields apply no filter;
// both fields match case-insensitively on substrings.
type FacultyFilter struct {
	Department string
	Name       string
}

// Listing reports whether the filter describes a department listing,
// which is the only faculty query with an explicit sort (name ascending).
func (f FacultyFilter) Listing() bool {
	return f.Name == ""
}

// DataStore is the structured source of authoritative college data.
// Implementations are read-only; the record sets are owned externally.
type DataStore interface {
	// Faculty returns rows matching the filter, store order unless the
	// filter is a department listing (then name ascending).
	Faculty(ctx context.Context, filter FacultyFilter) ([]entities.FacultyRecord, error)

	// Placements returns all company rows for an exact year.
	Placements(ctx context.Context, year string) ([]entities.PlacementRecord, error)

	// PlacementsByCompany filters one year by partial company-name match.
	PlacementsByCompany(ctx context.Context, year, company string) ([]entities.PlacementRecord, error)

	// HighestPackage returns the top-salary row for a year, or ErrNotFound.
	HighestPackage(ctx context.Context, year string) (*entities.PlacementRecord, error)

	// LatestPlacementYear returns the maximum year present in the store,
	// or ErrNotFound when the table is empty.
	LatestPlacementYear(ctx context.Context) (string, error)

	// FAQs returns the full FAQ table (bounded size assumed).
	FAQs(ctx context.Context) ([]entities.FaqRecord, error)

	// College returns the institution facts, or ErrNotFound.
	College(ctx context.Context) (*entities.CollegeInfo, error)

	// Subjects returns the subject list for a branch and semester.
	Subjects(ctx context.Context, branch string, semester int) ([]string, error)
}

// ErrNoReply reports a provider call that succeeded but produced no usable text.
var ErrNoReply = errors.New("no usable reply")

// Completer generates a reply from a conversation history.
type Completer interface {
	// Complete returns the provider's reply text. A successful call with no
	// extractable text fails with ErrNoReply so the caller can try the next tier.
	Complete(ctx context.Context, history []entities.ChatMessage) (string, error)
}

// FileWatcher monitors a file for changes.
type FileWatcher interface {
	// Watch starts monitoring the path and emits an event per change.
	Watch(ctx context.Context, path string) (<-chan FileEvent, error)

	// Stop stops the watcher.
	Stop() error
}

// FileEvent represents a file system change.
type FileEvent struct {
	Path      string
	Operation FileOperation
}

// FileOperation is the type of file change.
type FileOperation int

const (
	FileCreated FileOperation = iota
	FileModified
	FileDeleted
)
