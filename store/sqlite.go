package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hanjelito/hackatonNasa2025/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			token TEXT NOT NULL,
			paper_id TEXT NOT NULL,
			last_activity DATETIME NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			PRIMARY KEY (token, paper_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_paper ON sessions(paper_id, last_activity)`,
		`CREATE TABLE IF NOT EXISTS turns (
			token TEXT NOT NULL,
			paper_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			PRIMARY KEY (token, paper_id, seq),
			FOREIGN KEY (token, paper_id) REFERENCES sessions(token, paper_id)
		)`,
		`CREATE TABLE IF NOT EXISTS papers (
			paper_id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			abstract TEXT NOT NULL DEFAULT '',
			authors TEXT NOT NULL DEFAULT '[]',
			year INTEGER NOT NULL DEFAULT 0,
			date TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL DEFAULT '',
			study_types TEXT NOT NULL DEFAULT '[]',
			organisms TEXT NOT NULL DEFAULT '[]',
			platforms TEXT NOT NULL DEFAULT '[]',
			stressors TEXT NOT NULL DEFAULT '[]',
			agencies TEXT NOT NULL DEFAULT '[]',
			full_text TEXT NOT NULL DEFAULT ''
		)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// FindSession retrieves a session and its full turn history by composite
// key. Returns nil when no record exists.
func (s *SQLiteStore) FindSession(ctx context.Context, token, paperID string) (*domain.Session, error) {
	var session domain.Session
	err := s.db.QueryRowContext(ctx,
		`SELECT token, paper_id, last_activity, created_at, updated_at FROM sessions WHERE token = ? AND paper_id = ?`,
		token, paperID).Scan(&session.Token, &session.PaperID, &session.LastActivity, &session.CreatedAt, &session.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	history, err := s.loadTurns(ctx, token, paperID)
	if err != nil {
		return nil, err
	}
	session.History = history
	return &session, nil
}

// LatestSession retrieves the paper's most recently active session that
// has recorded turns, including sessions that are logically expired; a
// fresh empty replacement does not shadow the conversation that came
// before it. Falls back to the most recent session when none has turns.
// Returns nil when the paper has never had a session.
func (s *SQLiteStore) LatestSession(ctx context.Context, paperID string) (*domain.Session, error) {
	var token string
	err := s.db.QueryRowContext(ctx,
		`SELECT s.token FROM sessions s
		 WHERE s.paper_id = ?
		 ORDER BY EXISTS (
		     SELECT 1 FROM turns t WHERE t.token = s.token AND t.paper_id = s.paper_id
		 ) DESC, s.last_activity DESC
		 LIMIT 1`,
		paperID).Scan(&token)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.FindSession(ctx, token, paperID)
}

// InsertSession creates a new session record with its current history.
func (s *SQLiteStore) InsertSession(ctx context.Context, session *domain.Session) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (token, paper_id, last_activity, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		session.Token, session.PaperID, session.LastActivity.UTC(), session.CreatedAt.UTC(), session.UpdatedAt.UTC())
	if err != nil {
		return err
	}

	if err := insertTurns(ctx, tx, session, 0); err != nil {
		return err
	}
	return tx.Commit()
}

// SaveSession persists the session's bookkeeping timestamps and appends any
// turns not yet stored. Stored turns are never rewritten; the history is
// append-only and its seq order is the commit order.
func (s *SQLiteStore) SaveSession(ctx context.Context, session *domain.Session) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE sessions SET last_activity = ?, updated_at = ? WHERE token = ? AND paper_id = ?`,
		session.LastActivity.UTC(), session.UpdatedAt.UTC(), session.Token, session.PaperID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("save session %s: %w", session.Token, domain.ErrSessionNotFound)
	}

	var stored int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM turns WHERE token = ? AND paper_id = ?`,
		session.Token, session.PaperID).Scan(&stored); err != nil {
		return err
	}
	if err := insertTurns(ctx, tx, session, stored); err != nil {
		return err
	}
	return tx.Commit()
}

func insertTurns(ctx context.Context, tx *sql.Tx, session *domain.Session, from int) error {
	for i := from; i < len(session.History); i++ {
		t := session.History[i]
		_, err := tx.ExecContext(ctx,
			`INSERT INTO turns (token, paper_id, seq, role, content, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			session.Token, session.PaperID, i, t.Role, t.Content, t.Timestamp.UTC())
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) loadTurns(ctx context.Context, token, paperID string) ([]domain.Turn, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT role, content, created_at FROM turns WHERE token = ? AND paper_id = ? ORDER BY seq ASC`,
		token, paperID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	turns := []domain.Turn{}
	for rows.Next() {
		var t domain.Turn
		if err := rows.Scan(&t.Role, &t.Content, &t.Timestamp); err != nil {
			return nil, err
		}
		// Timestamps without zone information are assumed UTC.
		t.Timestamp = t.Timestamp.UTC()
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

// GetPaper retrieves a paper by ID. Returns nil when absent.
func (s *SQLiteStore) GetPaper(ctx context.Context, paperID string) (*domain.Paper, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT paper_id, title, abstract, authors, year, date, source, image_url,
		        study_types, organisms, platforms, stressors, agencies, full_text
		 FROM papers WHERE paper_id = ?`, paperID)
	paper, err := scanPaper(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return paper, nil
}

// InsertPaper creates or replaces a paper record.
func (s *SQLiteStore) InsertPaper(ctx context.Context, paper *domain.Paper) error {
	authors, _ := json.Marshal(paper.Authors)
	studyTypes, _ := json.Marshal(paper.StudyTypes)
	organisms, _ := json.Marshal(paper.Organisms)
	platforms, _ := json.Marshal(paper.Platforms)
	stressors, _ := json.Marshal(paper.Stressors)
	agencies, _ := json.Marshal(paper.Agencies)

	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO papers
		 (paper_id, title, abstract, authors, year, date, source, image_url,
		  study_types, organisms, platforms, stressors, agencies, full_text)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		paper.ID, paper.Title, paper.Abstract, string(authors), paper.Year,
		paper.Date, paper.Source, paper.ImageURL, string(studyTypes),
		string(organisms), string(platforms), string(stressors),
		string(agencies), paper.FullText)
	return err
}

// filterColumns maps filter names to taxonomy columns. Unknown filter names
// are rejected by SearchPapers.
var filterColumns = map[string]string{
	domain.FilterStudyTypes: "study_types",
	domain.FilterOrganisms:  "organisms",
	domain.FilterPlatforms:  "platforms",
	domain.FilterStressors:  "stressors",
	domain.FilterAgencies:   "agencies",
}

// SearchPapers runs a compound query: a free-text clause over title,
// abstract and full text, AND one clause per filter where any of the
// filter's values may match. Taxonomy columns hold JSON arrays, so value
// matching quotes the value to avoid prefix collisions.
func (s *SQLiteStore) SearchPapers(ctx context.Context, req *domain.SearchRequest) ([]domain.Paper, error) {
	query := `SELECT paper_id, title, abstract, authors, year, date, source, image_url,
	                 study_types, organisms, platforms, stressors, agencies, full_text
	          FROM papers`
	var clauses []string
	var args []interface{}

	if q := strings.TrimSpace(req.Query); q != "" {
		clauses = append(clauses, `(title LIKE ? OR abstract LIKE ? OR full_text LIKE ?)`)
		like := "%" + q + "%"
		args = append(args, like, like, like)
	}

	for _, f := range req.Filters {
		col, ok := filterColumns[f.Name]
		if !ok {
			return nil, fmt.Errorf("unknown filter %q: %w", f.Name, domain.ErrInvalidInput)
		}
		if len(f.Values) == 0 {
			continue
		}
		var alts []string
		for _, v := range f.Values {
			alts = append(alts, col+` LIKE ?`)
			args = append(args, `%"`+v+`"%`)
		}
		clauses = append(clauses, "("+strings.Join(alts, " OR ")+")")
	}

	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY year DESC, paper_id ASC`

	limit := req.Limit
	if limit <= 0 {
		limit = 20
	}
	query += fmt.Sprintf(" LIMIT %d", limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var papers []domain.Paper
	for rows.Next() {
		paper, err := scanPaper(rows.Scan)
		if err != nil {
			return nil, err
		}
		papers = append(papers, *paper)
	}
	return papers, rows.Err()
}

func scanPaper(scan func(dest ...interface{}) error) (*domain.Paper, error) {
	var p domain.Paper
	var authors, studyTypes, organisms, platforms, stressors, agencies string
	err := scan(&p.ID, &p.Title, &p.Abstract, &authors, &p.Year, &p.Date,
		&p.Source, &p.ImageURL, &studyTypes, &organisms, &platforms,
		&stressors, &agencies, &p.FullText)
	if err != nil {
		return nil, err
	}
	json.Unmarshal([]byte(authors), &p.Authors)
	json.Unmarshal([]byte(studyTypes), &p.StudyTypes)
	json.Unmarshal([]byte(organisms), &p.Organisms)
	json.Unmarshal([]byte(platforms), &p.Platforms)
	json.Unmarshal([]byte(stressors), &p.Stressors)
	json.Unmarshal([]byte(agencies), &p.Agencies)
	return &p, nil
}
