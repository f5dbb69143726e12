package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/0xcro3dile/collegebot-go/internal/domain/entities"
	"github.com/0xcro3dile/collegebot-go/internal/domain/ports"
)

// SnapshotStore implements ports.DataStore over a local JSON snapshot file.
// The whole snapshot is held in memory behind an RWMutex and swapped
// atomically on reload, so readers never see a partial load.
type SnapshotStore struct {
	mu      sync.RWMutex
	data    snapshotData
	path    string
	watcher ports.FileWatcher
	log     *zap.Logger
}

// snapshotData is the on-disk shape of the snapshot file.
type snapshotData struct {
	College    snapshotCollege              `json:"college"`
	Faculty    []snapshotFaculty            `json:"faculty"`
	Placements []snapshotPlacement          `json:"placements"`
	FAQ        []entities.FaqRecord         `json:"faq"`
	Curriculum map[string]map[string][]string `json:"curriculum"` // branch -> "Semester N" -> subjects
}

type snapshotCollege struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Established string `json:"established"`
	Affiliation string `json:"affiliation"`
	ApprovedBy  string `json:"approved_by"`
}

type snapshotFaculty struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Department  string `json:"department"`
	Designation string `json:"designation"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

// snapshotPlacement tolerates hand-entered numbers: offers and salary may be
// JSON numbers or strings like "6.5 LPA".
type snapshotPlacement struct {
	Year    string `json:"year"`
	Company string `json:"company_name"`
	Offers  any    `json:"offers"`
	Salary  any    `json:"salary_lpa"`
}

func (p snapshotPlacement) record() entities.PlacementRecord {
	return entities.PlacementRecord{
		Year:      p.Year,
		Company:   p.Company,
		Offers:    entities.LooseInt(fmt.Sprint(p.Offers)),
		SalaryLPA: entities.LooseFloat(fmt.Sprint(p.Salary)),
	}
}

// NewSnapshotStore loads the snapshot at path. watcher may be nil to disable
// hot reloading.
func NewSnapshotStore(path string, watcher ports.FileWatcher, log *zap.Logger) (*SnapshotStore, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &SnapshotStore{path: path, watcher: watcher, log: log}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Start begins watching the snapshot file and reloading on change.
// It returns immediately; reloads happen on a background goroutine.
func (s *SnapshotStore) Start(ctx context.Context) error {
	if s.watcher == nil {
		return nil
	}
	events, err := s.watcher.Watch(ctx, s.path)
	if err != nil {
		return fmt.Errorf("watching snapshot: %w", err)
	}

	go func() {
		for ev := range events {
			if ev.Operation == ports.FileDeleted {
				continue // keep serving the last good snapshot
			}
			if err := s.reload(); err != nil {
				s.log.Warn("snapshot reload failed, keeping previous data", zap.Error(err))
				continue
			}
			s.log.Info("snapshot reloaded", zap.String("path", s.path))
		}
	}()
	return nil
}

func (s *SnapshotStore) reload() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}
	var data snapshotData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("parsing snapshot: %w", err)
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

// Faculty returns rows matching the filter, mirroring the SQLite adapter's
// semantics: case-insensitive substring matches, department listings sorted
// by name ascending.
func (s *SnapshotStore) Faculty(ctx context.Context, filter ports.FacultyFilter) ([]entities.FacultyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dept := strings.ToLower(filter.Department)
	name := strings.ToLower(filter.Name)

	var records []entities.FacultyRecord
	for _, f := range s.data.Faculty {
		if dept != "" && !strings.Contains(strings.ToLower(f.Department), dept) {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(f.Name), name) {
			continue
		}
		records = append(records, entities.FacultyRecord(f))
	}

	if filter.Department != "" && filter.Listing() {
		sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	}
	return records, nil
}

// Placements returns all company rows for an exact year.
func (s *SnapshotStore) Placements(ctx context.Context, year string) ([]entities.PlacementRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []entities.PlacementRecord
	for _, p := range s.data.Placements {
		if p.Year == year {
			records = append(records, p.record())
		}
	}
	return records, nil
}

// PlacementsByCompany filters one year by partial company-name match.
func (s *SnapshotStore) PlacementsByCompany(ctx context.Context, year, company string) ([]entities.PlacementRecord, error) {
	rows, err := s.Placements(ctx, year)
	if err != nil {
		return nil, err
	}
	want := strings.ToLower(company)
	var records []entities.PlacementRecord
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Company), want) {
			records = append(records, r)
		}
	}
	return records, nil
}

// HighestPackage returns the top-salary row for a year.
func (s *SnapshotStore) HighestPackage(ctx context.Context, year string) (*entities.PlacementRecord, error) {
	rows, err := s.Placements(ctx, year)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ports.ErrNotFound
	}
	best := rows[0]
	for _, r := range rows[1:] {
		if r.SalaryLPA > best.SalaryLPA {
			best = r
		}
	}
	return &best, nil
}

// LatestPlacementYear returns the maximum year present in the snapshot.
func (s *SnapshotStore) LatestPlacementYear(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	latest := ""
	for _, p := range s.data.Placements {
		if p.Year > latest {
			latest = p.Year
		}
	}
	if latest == "" {
		return "", ports.ErrNotFound
	}
	return latest, nil
}

// FAQs returns the full FAQ table.
func (s *SnapshotStore) FAQs(ctx context.Context) ([]entities.FaqRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.FaqRecord(nil), s.data.FAQ...), nil
}

// College returns the institution facts.
func (s *SnapshotStore) College(ctx context.Context) (*entities.CollegeInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := s.data.College
	if c == (snapshotCollege{}) {
		return nil, ports.ErrNotFound
	}
	return &entities.CollegeInfo{
		Name:        c.Name,
		Address:     c.Address,
		Phone:       c.Phone,
		Established: c.Established,
		Affiliation: c.Affiliation,
		ApprovedBy:  c.ApprovedBy,
	}, nil
}

// Subjects returns the subject list for a branch and semester.
func (s *SnapshotStore) Subjects(ctx context.Context, branch string, semester int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for b, semesters := range s.data.Curriculum {
		if !strings.EqualFold(b, branch) {
			continue
		}
		key := fmt.Sprintf("Semester %d", semester)
		return append([]string(nil), semesters[key]...), nil
	}
	return nil, nil
}

// Stop stops the underlying watcher, if any.
func (s *SnapshotStore) Stop() error {
	if s.watcher == nil {
		return nil
	}
	return s.watcher.Stop()
}
