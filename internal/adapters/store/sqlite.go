// Package store provides structured-data store adapters.
// Clean Architecture: Adapters implementing ports.DataStore.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/0xcro3dile/collegebot-go/internal/domain/entities"
	"github.com/0xcro3dile/collegebot-go/internal/domain/ports"
)

// SQLiteStore implements ports.DataStore over a SQLite database.
// The record sets are owned externally (administrative data entry); this
// adapter only reads.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and if needed initializes) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return s, nil
}

// initSchema creates the tables. The placement schema is fixed as
// (year, company_name, offers, salary_lpa) - one row per company per year.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS faculty (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		department TEXT,
		designation TEXT,
		email TEXT,
		phone TEXT
	);
	CREATE TABLE IF NOT EXISTS placements (
		year TEXT NOT NULL,
		company_name TEXT NOT NULL,
		offers INTEGER NOT NULL DEFAULT 0,
		salary_lpa REAL NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_placements_year ON placements(year);
	CREATE TABLE IF NOT EXISTS faq (
		question TEXT NOT NULL,
		answer TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS college (
		name TEXT,
		address TEXT,
		phone TEXT,
		established TEXT,
		affiliation TEXT,
		approved_by TEXT
	);
	CREATE TABLE IF NOT EXISTS curriculum (
		branch TEXT NOT NULL,
		semester INTEGER NOT NULL,
		subject TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Faculty returns rows matching the filter with case-insensitive partial
// matching. Department listings sort by name ascending; everything else is
// store order.
func (s *SQLiteStore) Faculty(ctx context.Context, filter ports.FacultyFilter) ([]entities.FacultyRecord, error) {
	query := "SELECT id, name, IFNULL(department,''), IFNULL(designation,''), IFNULL(email,''), IFNULL(phone,'') FROM faculty"
	var args []any
	var where []string

	if filter.Department != "" {
		where = append(where, "LOWER(department) LIKE ?")
		args = append(args, "%"+lower(filter.Department)+"%")
	}
	if filter.Name != "" {
		where = append(where, "LOWER(name) LIKE ?")
		args = append(args, "%"+lower(filter.Name)+"%")
	}
	query += joinWhere(where)
	if filter.Department != "" && filter.Listing() {
		query += " ORDER BY name ASC"
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying faculty: %w", err)
	}
	defer rows.Close()

	var records []entities.FacultyRecord
	for rows.Next() {
		var r entities.FacultyRecord
		if err := rows.Scan(&r.ID, &r.Name, &r.Department, &r.Designation, &r.Email, &r.Phone); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Placements returns all company rows for an exact year, store order.
func (s *SQLiteStore) Placements(ctx context.Context, year string) ([]entities.PlacementRecord, error) {
	return s.placementRows(ctx,
		"SELECT year, company_name, offers, salary_lpa FROM placements WHERE year = ?", year)
}

// PlacementsByCompany filters one year by partial company-name match.
func (s *SQLiteStore) PlacementsByCompany(ctx context.Context, year, company string) ([]entities.PlacementRecord, error) {
	return s.placementRows(ctx,
		"SELECT year, company_name, offers, salary_lpa FROM placements WHERE year = ? AND LOWER(company_name) LIKE ?",
		year, "%"+lower(company)+"%")
}

// HighestPackage returns the top-salary row for a year.
func (s *SQLiteStore) HighestPackage(ctx context.Context, year string) (*entities.PlacementRecord, error) {
	records, err := s.placementRows(ctx,
		"SELECT year, company_name, offers, salary_lpa FROM placements WHERE year = ? ORDER BY salary_lpa DESC LIMIT 1", year)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ports.ErrNotFound
	}
	return &records[0], nil
}

// LatestPlacementYear returns the maximum year present in the table.
func (s *SQLiteStore) LatestPlacementYear(ctx context.Context) (string, error) {
	var year sql.NullString
	err := s.db.QueryRowContext(ctx, "SELECT MAX(year) FROM placements").Scan(&year)
	if err != nil {
		return "", fmt.Errorf("querying latest year: %w", err)
	}
	if !year.Valid || year.String == "" {
		return "", ports.ErrNotFound
	}
	return year.String, nil
}

func (s *SQLiteStore) placementRows(ctx context.Context, query string, args ...any) ([]entities.PlacementRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying placements: %w", err)
	}
	defer rows.Close()

	var records []entities.PlacementRecord
	for rows.Next() {
		var r entities.PlacementRecord
		var offers, salary string
		if err := rows.Scan(&r.Year, &r.Company, &offers, &salary); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		// SQLite columns are dynamically typed and the data is hand-entered;
		// coerce rather than trust.
		r.Offers = entities.LooseInt(offers)
		r.SalaryLPA = entities.LooseFloat(salary)
		records = append(records, r)
	}
	return records, rows.Err()
}

// FAQs returns the full FAQ table.
func (s *SQLiteStore) FAQs(ctx context.Context) ([]entities.FaqRecord, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT question, answer FROM faq")
	if err != nil {
		return nil, fmt.Errorf("querying faq: %w", err)
	}
	defer rows.Close()

	var records []entities.FaqRecord
	for rows.Next() {
		var r entities.FaqRecord
		if err := rows.Scan(&r.Question, &r.Answer); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// College returns the single institution row.
func (s *SQLiteStore) College(ctx context.Context) (*entities.CollegeInfo, error) {
	var info entities.CollegeInfo
	err := s.db.QueryRowContext(ctx,
		"SELECT IFNULL(name,''), IFNULL(address,''), IFNULL(phone,''), IFNULL(established,''), IFNULL(affiliation,''), IFNULL(approved_by,'') FROM college LIMIT 1").
		Scan(&info.Name, &info.Address, &info.Phone, &info.Established, &info.Affiliation, &info.ApprovedBy)
	if err == sql.ErrNoRows {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying college: %w", err)
	}
	return &info, nil
}

// Subjects returns the subject list for a branch and semester, store order.
func (s *SQLiteStore) Subjects(ctx context.Context, branch string, semester int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT subject FROM curriculum WHERE LOWER(branch) = ? AND semester = ?", lower(branch), semester)
	if err != nil {
		return nil, fmt.Errorf("querying curriculum: %w", err)
	}
	defer rows.Close()

	var subjects []string
	for rows.Next() {
		var subject string
		if err := rows.Scan(&subject); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		subjects = append(subjects, subject)
	}
	return subjects, rows.Err()
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func lower(s string) string {
	return strings.ToLower(s)
}

func joinWhere(clauses []string) string {
	if len(clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(clauses, " AND ")
}
