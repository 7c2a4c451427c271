package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"giftcases-rest-api/internal/model"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
)

// MySQLStore implements Store using MySQL. Same one-document-per-row
// layout as the SQLite backend.
type MySQLStore struct {
	db *sql.DB
}

// NewMySQLStore creates a new MySQL-backed store.
// dsn format: "user:password@tcp(host:port)/dbname?parseTime=true"
func NewMySQLStore(dsn string) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	if err := createMySQLTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Println("[MySQLStore] Initialized")
	return &MySQLStore{db: db}, nil
}

func createMySQLTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(36) PRIMARY KEY,
			email VARCHAR(255) NOT NULL UNIQUE,
			username VARCHAR(255) NOT NULL UNIQUE,
			doc JSON NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS leaders (
			board_id INT PRIMARY KEY,
			doc JSON NOT NULL
		)`,
	}
	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

func (s *MySQLStore) getUserWhere(ctx context.Context, clause, arg string) (*model.User, error) {
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
func (s *MySQLStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return s.getUserWhere(ctx, "id = ?", id)
}

// GetUserByEmail retrieves a user record by email.
func (s *MySQLStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.getUserWhere(ctx, "email = ?", email)
}

// GetUserByUsername retrieves a user record by username.
func (s *MySQLStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.getUserWhere(ctx, "username = ?", username)
}

// SaveUser inserts or overwrites a user record.
func (s *MySQLStore) SaveUser(ctx context.Context, user *model.User) error {
	doc, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user document: %w", err)
	}

	query := `
		INSERT INTO users (id, email, username, doc)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			email = VALUES(email),
			username = VALUES(username),
			doc = VALUES(doc)`

	_, err = s.db.ExecContext(ctx, query, user.ID, user.Email, user.Username, string(doc))
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// LoadLeaders reads the full leaderboard document.
func (s *MySQLStore) LoadLeaders(ctx context.Context) ([]model.LeaderboardEntry, error) {
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
func (s *MySQLStore) SaveLeaders(ctx context.Context, leaders []model.LeaderboardEntry) error {
	doc, err := json.Marshal(leaders)
	if err != nil {
		return fmt.Errorf("failed to encode leaders document: %w", err)
	}

	query := `
		INSERT INTO leaders (board_id, doc) VALUES (1, ?)
		ON DUPLICATE KEY UPDATE doc = VALUES(doc)`

	_, err = s.db.ExecContext(ctx, query, string(doc))
	if err != nil {
		return fmt.Errorf("failed to save leaders: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *MySQLStore) Close() error {
	return s.db.Close()
}

// Ensure MySQLStore implements Store
var _ Store = (*MySQLStore)(nil)
