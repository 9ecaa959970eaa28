// Package cases implements the fraud-case store behind the Murf Bank
// verification agent.
//
// It is a narrow read/update collaborator: look a case up by customer
// user name, confirm or reject the flagged transaction, done. SQLite
// keeps it durable across calls without any server dependency.
package cases

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// ErrNotFound reports a lookup miss. The tool layer turns it into the
// advisory "no case found" line the agent speaks.
var ErrNotFound = errors.New("case not found")

// ─── Types ───────────────────────────────────────────────────────────────────

// Case is one flagged transaction under review.
type Case struct {
	ID                  int64  `json:"id"`
	UserName            string `json:"userName"`
	SecurityIdentifier  string `json:"securityIdentifier"`
	CardEnding          string `json:"cardEnding"`
	Status              string `json:"case_status"`
	TransactionName     string `json:"transactionName"`
	TransactionTime     string `json:"transactionTime"`
	TransactionCategory string `json:"transactionCategory"`
	TransactionSource   string `json:"transactionSource"`
	TransactionAmount   string `json:"transactionAmount"`
	SecurityQuestion    string `json:"securityQuestion"`
	SecurityAnswer      string `json:"securityAnswer"`
	OutcomeNote         string `json:"outcome_note"`
}

// Review outcome statuses. Cases start in pending_review and move to
// exactly one of these after the customer confirms or denies the
// transaction.
const (
	StatusPending        = "pending_review"
	StatusConfirmedSafe  = "confirmed_safe"
	StatusConfirmedFraud = "confirmed_fraud"
)

// validOutcomes is the set of statuses a review may move a case to.
var validOutcomes = map[string]bool{
	StatusConfirmedSafe:  true,
	StatusConfirmedFraud: true,
}

// ValidateOutcome returns an error if the status is not a valid review
// outcome.
func ValidateOutcome(status string) error {
	if !validOutcomes[status] {
		return fmt.Errorf("invalid case status %q: must be one of: confirmed_safe, confirmed_fraud", status)
	}
	return nil
}

// ─── Config ──────────────────────────────────────────────────────────────────

// Config holds case store configuration.
type Config struct {
	DataDir string
}

// DefaultConfig returns the default configuration for the case store.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DataDir: filepath.Join(home, ".murf-agent"),
	}
}

// ─── Store ───────────────────────────────────────────────────────────────────

// Store is the SQLite-backed case database.
type Store struct {
	db *sql.DB
}

// New opens (creating if needed) the case database under the
// configured data directory and runs migrations.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("cases: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, "fraud_cases.db")
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("cases: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("cases: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("cases: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS fraud_cases (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			userName TEXT NOT NULL,
			securityIdentifier TEXT,
			cardEnding TEXT,
			case_status TEXT,
			transactionName TEXT,
			transactionTime TEXT,
			transactionCategory TEXT,
			transactionSource TEXT,
			transactionAmount TEXT,
			securityQuestion TEXT,
			securityAnswer TEXT,
			outcome_note TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_cases_user ON fraud_cases(userName);
	`
	_, err := s.db.Exec(schema)
	return err
}

// ─── Lookup / update ─────────────────────────────────────────────────────────

// Get retrieves the case for a customer user name. The match is
// case-insensitive — spoken names arrive with arbitrary casing.
func (s *Store) Get(userName string) (*Case, error) {
	row := s.db.QueryRow(
		`SELECT id, userName, securityIdentifier, cardEnding, case_status,
		        transactionName, transactionTime, transactionCategory,
		        transactionSource, transactionAmount, securityQuestion,
		        securityAnswer, outcome_note
		 FROM fraud_cases WHERE userName = ? COLLATE NOCASE`,
		userName,
	)

	var c Case
	if err := row.Scan(
		&c.ID, &c.UserName, &c.SecurityIdentifier, &c.CardEnding, &c.Status,
		&c.TransactionName, &c.TransactionTime, &c.TransactionCategory,
		&c.TransactionSource, &c.TransactionAmount, &c.SecurityQuestion,
		&c.SecurityAnswer, &c.OutcomeNote,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: no case for %q", ErrNotFound, userName)
		}
		return nil, fmt.Errorf("cases: lookup %q: %w", userName, err)
	}
	return &c, nil
}

// UpdateStatus records the review outcome and note for a case.
func (s *Store) UpdateStatus(id int64, status, note string) error {
	if err := ValidateOutcome(status); err != nil {
		return err
	}

	res, err := s.db.Exec(
		`UPDATE fraud_cases SET case_status = ?, outcome_note = ? WHERE id = ?`,
		status, note, id,
	)
	if err != nil {
		return fmt.Errorf("cases: update %d: %w", id, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%w: no case with id %d", ErrNotFound, id)
	}
	return nil
}

// ─── Seeding ─────────────────────────────────────────────────────────────────

// Seed inserts the sample review case used for demos. Idempotent: a
// case already on file for the sample customer is left alone.
func (s *Store) Seed() error {
	var count int
	if err := s.db.QueryRow(
		`SELECT COUNT(*) FROM fraud_cases WHERE userName = ? COLLATE NOCASE`, "John",
	).Scan(&count); err != nil {
		return fmt.Errorf("cases: seed check: %w", err)
	}
	if count > 0 {
		return nil
	}

	_, err := s.db.Exec(
		`INSERT INTO fraud_cases (
			userName, securityIdentifier, cardEnding, case_status,
			transactionName, transactionTime, transactionCategory,
			transactionSource, transactionAmount, securityQuestion,
			securityAnswer, outcome_note
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		"John", "12345", "4242", StatusPending,
		"ABC Industry", "2023-10-27 14:30:00", "e-commerce",
		"alibaba.com", "$1,250.00", "What is your mother's maiden name?",
		"Smith", "",
	)
	if err != nil {
		return fmt.Errorf("cases: seed insert: %w", err)
	}
	return nil
}
