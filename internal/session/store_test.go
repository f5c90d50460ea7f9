package session

import (
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/vancomm/mastermind/internal/mastermind"
)

func setupTestStore() (*Store, func(), error) {
	f, err := os.CreateTemp("", "sqlite-sessions-")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create temp file: %v", err)
	}

	db, err := sql.Open("sqlite3", f.Name())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect sqlite db: %v", err)
	}

	s, err := NewStore(db)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create store: %v", err)
	}

	teardown := func() {
		db.Close()
		f.Close()
		os.Remove(f.Name())
	}

	return s, teardown, nil
}

func sampleResult() Result {
	return Result{
		ID:       uuid.New(),
		Strategy: "pruner",
		Solution: []string{"red", "white", "white", "blue"},
		Rounds: []Round{
			{
				Guess:  []string{"black", "black", "black", "black"},
				Clue:   mastermind.Clue{},
				Status: "4096 candidates remain",
			},
			{
				Guess:  []string{"red", "white", "white", "blue"},
				Clue:   mastermind.Clue{mastermind.ExactMatch, mastermind.ExactMatch, mastermind.ExactMatch, mastermind.ExactMatch},
				Status: "1 candidates remain",
			},
		},
		Solved:    true,
		StartedAt: time.Now().Truncate(time.Second),
		Duration:  125 * time.Millisecond,
	}
}

func TestStoreGetMissing(t *testing.T) {
	s, teardown, err := setupTestStore()
	if err != nil {
		t.Fatal(err)
	}
	defer teardown()

	if _, err := s.Get(uuid.New()); err != ErrNotFound {
		t.Fatalf("expected not found error, received %v", err)
	}
}

func TestStoreSaveAndGet(t *testing.T) {
	s, teardown, err := setupTestStore()
	if err != nil {
		t.Fatal(err)
	}
	defer teardown()

	want := sampleResult()
	if err := s.Save(want); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(want.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.StartedAt.Equal(want.StartedAt) {
		t.Fatalf("StartedAt mismatch: %v != %v", got.StartedAt, want.StartedAt)
	}
	got.StartedAt = want.StartedAt
	if fmt.Sprintf("%+v", got) != fmt.Sprintf("%+v", want) {
		t.Fatalf("read back %+v, expected %+v", got, want)
	}
}

func TestStoreSaveOverwrites(t *testing.T) {
	s, teardown, err := setupTestStore()
	if err != nil {
		t.Fatal(err)
	}
	defer teardown()

	result := sampleResult()
	result.Solved = false
	if err := s.Save(result); err != nil {
		t.Fatal(err)
	}
	result.Solved = true
	if err := s.Save(result); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(result.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Solved {
		t.Fatal("expected the second save to win")
	}

	all, err := s.All()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Fatalf("expected a single stored session, found %d", len(all))
	}
}

func TestStoreDelete(t *testing.T) {
	s, teardown, err := setupTestStore()
	if err != nil {
		t.Fatal(err)
	}
	defer teardown()

	result := sampleResult()
	if err := s.Save(result); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(result.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(result.ID); err != ErrNotFound {
		t.Fatalf("expected not found error, received %v", err)
	}
}
