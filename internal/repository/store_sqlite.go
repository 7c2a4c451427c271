package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"giftcases-rest-api/internal/model"

	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required
)

// SQLiteStore implements Store using SQLite. User records are stored one
// JSON document per row with unique indexes on email and username, so
// duplicate checks ride on the schema rather than full-collection scans.
// Thread-safe with WAL mode for high-concurrency reads.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore creates a new SQLite-backed store.
// dbPath is the path to the SQLite database file (e.g., "./data/giftcases.db")
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	// SQLite only supports 1 writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := createSQLiteTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("[SQLiteStore] Initialized with database: %s", dbPath)
	return &SQLiteStore{db: db}, nil
}

func createSQLiteTables(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		username TEXT NOT NULL UNIQUE,
		doc TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS leaders (
		board_id INTEGER PRIMARY KEY CHECK (board_id = 1),
		doc TEXT NOT NULL
	);
	`
	_, err := db.Exec(query)
	return err
}

func (s *SQLiteStore) getUserWhere(ctx context.Context, clause, arg string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var doc string
	err := s.db.QueryRowContext(ctx, "SELECT doc FROM users WHERE "+clause, arg).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	var user model.User
	if err := json.Unmarshal([]byte(doc), &user); err != nil {
		return nil, fmt.Errorf("failed to decode user document: %w", err)
	}
	return &user, nil
}

// GetUserByID retrieves a user record by id.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return s.getUserWhere(ctx, "id = ?", id)
}

// GetUserByEmail retrieves a user record by email.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.getUserWhere(ctx, "email = ?", email)
}

// GetUserByUsername retrieves a user record by username.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.getUserWhere(ctx, "username = ?", username)
}

// SaveUser inserts or overwrites a user record.
func (s *SQLiteStore) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user document: %w", err)
	}

	query := `
		INSERT INTO users (id, email, username, doc)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			email = excluded.email,
			username = excluded.username,
			doc = excluded.doc`

	_, err = s.db.ExecContext(ctx, query, user.ID, user.Email, user.Username, string(doc))
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// LoadLeaders reads the full leaderboard document.
func (s *SQLiteStore) LoadLeaders(ctx context.Context) ([]model.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var doc string
	err := s.db.QueryRowContext(ctx, "SELECT doc FROM leaders WHERE board_id = 1").Scan(&doc)
	if err == sql.ErrNoRows {
		return []model.LeaderboardEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load leaders: %w", err)
	}

	var leaders []model.LeaderboardEntry
	if err := json.Unmarshal([]byte(doc), &leaders); err != nil {
		return nil, fmt.Errorf("failed to decode leaders document: %w", err)
	}
	return leaders, nil
}

// SaveLeaders overwrites the full leaderboard document.
func (s *SQLiteStore) SaveLeaders(ctx context.Context, leaders []model.LeaderboardEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := json.Marshal(leaders)
	if err != nil {
		return fmt.Errorf("failed to encode leaders document: %w", err)
	}

	query := `
		INSERT INTO leaders (board_id, doc) VALUES (1, ?)
		ON CONFLICT(board_id) DO UPDATE SET doc = excluded.doc`

	_, err = s.db.ExecContext(ctx, query, string(doc))
	if err != nil {
		return fmt.Errorf("failed to save leaders: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ensure SQLiteStore implements Store
var _ Store = (*SQLiteStore)(nil)
