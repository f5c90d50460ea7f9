package session

import (
	"bytes"
	"database/sql"
	"encoding/gob"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

var ErrNotFound = fmt.Errorf("session not found")

// Store keeps finished session results in a sqlite table, gob-encoded. Only
// outcomes land here; live game state never does.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

func NewStore(db *sql.DB) (*Store, error) {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS sessions (
	id		TEXT PRIMARY KEY,
	result	BLOB
);`)
	if err != nil {
		return nil, fmt.Errorf("failed to create sessions table: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Save(result Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(result); err != nil {
		return err
	}
	_, err := s.db.Exec(`
INSERT INTO sessions (id, result)
VALUES(?, ?)
ON CONFLICT(id)
DO UPDATE SET result=excluded.result;`,
		result.ID.String(), buf.Bytes())
	return err
}

// Get retrieves one result by session id. Returns [ErrNotFound] if the id is
// not present.
func (s *Store) Get(id uuid.UUID) (Result, error) {
	var (
		result Result
		blob   []byte
	)
	err := s.db.QueryRow(
		`SELECT result FROM sessions WHERE id = ?;`, id.String(),
	).Scan(&blob)
	if err == sql.ErrNoRows {
		return result, ErrNotFound
	} else if err != nil {
		return result, err
	}
	err = gob.NewDecoder(bytes.NewReader(blob)).Decode(&result)
	return result, err
}

func (s *Store) All() ([]Result, error) {
	rows, err := s.db.Query(`SELECT result FROM sessions;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var blob []byte
		if err := rows.Scan(&blob); err != nil {
			return nil, err
		}
		var result Result
		if err := gob.NewDecoder(bytes.NewReader(blob)).Decode(&result); err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

// Delete removes a session without checking that it existed.
func (s *Store) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM sessions WHERE id = ?;`, id.String())
	return err
}
