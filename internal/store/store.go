// Package store persists vocabulary and review scheduling state in SQLite.
//
// The store is the data-access boundary of the engine: rows persisted
// before the stability/difficulty model existed (NULL stability or
// difficulty columns) are decoded as legacy records and normalized through
// recall.Migrate exactly once, on load. Everything handed to callers is a
// current-schema state.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/tandemloop/recall"
)

// Store wraps a SQLite database holding vocabulary, review states, and the
// append-only review history.
type Store struct {
	db      *sql.DB
	entropy *rand.Rand
}

// New opens or creates a SQLite database at the given path.
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS vocabulary (
		id          TEXT PRIMARY KEY,
		front       TEXT NOT NULL,
		back        TEXT NOT NULL,
		chat_refs   TEXT,
		created_at  TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS review_states (
		vocabulary_id  TEXT PRIMARY KEY,
		owner_chat_id  TEXT NOT NULL DEFAULT '',
		phase          TEXT NOT NULL DEFAULT 'New',
		stability      REAL,
		difficulty     REAL,
		interval_days  INTEGER NOT NULL DEFAULT 0,
		next_review    TEXT NOT NULL,
		last_review    TEXT,
		lapses         INTEGER NOT NULL DEFAULT 0,
		starred        INTEGER NOT NULL DEFAULT 0,
		direction      TEXT NOT NULL DEFAULT ''
	);
	CREATE TABLE IF NOT EXISTS review_history (
		id                TEXT PRIMARY KEY,
		vocabulary_id     TEXT NOT NULL,
		seq               INTEGER NOT NULL,
		reviewed_at       TEXT NOT NULL,
		rating            TEXT NOT NULL,
		interval_before   INTEGER NOT NULL,
		interval_after    INTEGER NOT NULL,
		stability_before  REAL NOT NULL,
		stability_after   REAL NOT NULL,
		difficulty_before REAL NOT NULL,
		difficulty_after  REAL NOT NULL,
		retrievability    REAL NOT NULL,
		UNIQUE (vocabulary_id, seq)
	);
	CREATE INDEX IF NOT EXISTS idx_states_next_review ON review_states(next_review);
	CREATE INDEX IF NOT EXISTS idx_history_vocab ON review_history(vocabulary_id, seq);
	`
	_, err := s.db.Exec(schema)
	return err
}

// PutVocabulary inserts or replaces vocabulary items.
func (s *Store) PutVocabulary(ctx context.Context, items ...recall.VocabularyItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, item := range items {
		refs, err := json.Marshal(item.ChatRefs)
		if err != nil {
			return fmt.Errorf("encode chat refs: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO vocabulary (id, front, back, chat_refs, created_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET front=excluded.front, back=excluded.back, chat_refs=excluded.chat_refs`,
			item.ID, item.Front, item.Back, string(refs), item.CreatedAt.UTC().Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("put vocabulary %s: %w", item.ID, err)
		}
	}
	return tx.Commit()
}

// ListVocabulary returns all vocabulary items, oldest first.
func (s *Store) ListVocabulary(ctx context.Context) ([]recall.VocabularyItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, front, back, chat_refs, created_at
		FROM vocabulary ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list vocabulary: %w", err)
	}
	defer rows.Close()

	var items []recall.VocabularyItem
	for rows.Next() {
		var item recall.VocabularyItem
		var refs sql.NullString
		var createdAt string
		if err := rows.Scan(&item.ID, &item.Front, &item.Back, &refs, &createdAt); err != nil {
			return nil, fmt.Errorf("scan vocabulary: %w", err)
		}
		if refs.Valid && refs.String != "" {
			if err := json.Unmarshal([]byte(refs.String), &item.ChatRefs); err != nil {
				return nil, fmt.Errorf("decode chat refs for %s: %w", item.ID, err)
			}
		}
		item.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at for %s: %w", item.ID, err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// SaveStates upserts review states and appends any history entries not yet
// persisted, in one transaction. History rows already on disk are never
// rewritten.
func (s *Store) SaveStates(ctx context.Context, states ...recall.ReviewState) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, st := range states {
		if err := s.saveStateTx(ctx, tx, st); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) saveStateTx(ctx context.Context, tx *sql.Tx, st recall.ReviewState) error {
	var lastReview any
	if st.LastReviewDate != nil {
		lastReview = st.LastReviewDate.UTC().Format(time.RFC3339)
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO review_states
			(vocabulary_id, owner_chat_id, phase, stability, difficulty,
			 interval_days, next_review, last_review, lapses, starred, direction)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(vocabulary_id) DO UPDATE SET
			owner_chat_id=excluded.owner_chat_id,
			phase=excluded.phase,
			stability=excluded.stability,
			difficulty=excluded.difficulty,
			interval_days=excluded.interval_days,
			next_review=excluded.next_review,
			last_review=excluded.last_review,
			lapses=excluded.lapses,
			starred=excluded.starred,
			direction=excluded.direction`,
		st.VocabularyID, st.OwnerChatID, st.Phase.String(), st.Stability, st.Difficulty,
		st.CurrentIntervalDays, st.NextReviewDate.UTC().Format(time.RFC3339), lastReview,
		st.Lapses, boolToInt(st.IsStarred), st.CardDirection)
	if err != nil {
		return fmt.Errorf("save state %s: %w", st.VocabularyID, err)
	}

	var persisted int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM review_history WHERE vocabulary_id = ?`,
		st.VocabularyID).Scan(&persisted)
	if err != nil {
		return fmt.Errorf("count history %s: %w", st.VocabularyID, err)
	}

	for seq := persisted; seq < len(st.ReviewHistory); seq++ {
		e := st.ReviewHistory[seq]
		_, err := tx.ExecContext(ctx, `
			INSERT INTO review_history
				(id, vocabulary_id, seq, reviewed_at, rating,
				 interval_before, interval_after, stability_before, stability_after,
				 difficulty_before, difficulty_after, retrievability)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			s.newID(), st.VocabularyID, seq, e.Date.UTC().Format(time.RFC3339), e.Rating.String(),
			e.IntervalBefore, e.IntervalAfter, e.StabilityBefore, e.StabilityAfter,
			e.DifficultyBefore, e.DifficultyAfter, e.Retrievability)
		if err != nil {
			return fmt.Errorf("append history %s[%d]: %w", st.VocabularyID, seq, err)
		}
	}
	return nil
}

// GetState loads one review state with its full history, migrated to the
// current schema. Returns sql.ErrNoRows if the state does not exist.
func (s *Store) GetState(ctx context.Context, vocabularyID string) (recall.ReviewState, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT vocabulary_id, owner_chat_id, phase, stability, difficulty,
		       interval_days, next_review, last_review, lapses, starred, direction
		FROM review_states WHERE vocabulary_id = ?`, vocabularyID)
	st, err := scanState(row)
	if err != nil {
		return recall.ReviewState{}, err
	}
	st.ReviewHistory, err = s.loadHistory(ctx, vocabularyID)
	if err != nil {
		return recall.ReviewState{}, err
	}
	return recall.Migrate(st), nil
}

// ListStates loads every review state with history, dropping records whose
// vocabulary item was deleted out-of-band and migrating legacy rows.
func (s *Store) ListStates(ctx context.Context) ([]recall.ReviewState, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT vocabulary_id, owner_chat_id, phase, stability, difficulty,
		       interval_days, next_review, last_review, lapses, starred, direction
		FROM review_states ORDER BY vocabulary_id`)
	if err != nil {
		return nil, fmt.Errorf("list states: %w", err)
	}
	defer rows.Close()

	var states []recall.ReviewState
	for rows.Next() {
		st, err := scanState(rows)
		if err != nil {
			return nil, err
		}
		states = append(states, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range states {
		states[i].ReviewHistory, err = s.loadHistory(ctx, states[i].VocabularyID)
		if err != nil {
			return nil, err
		}
	}

	vocab, err := s.ListVocabulary(ctx)
	if err != nil {
		return nil, err
	}
	return recall.MigrateAll(states, vocab), nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanState(row scanner) (recall.ReviewState, error) {
	var st recall.ReviewState
	var phase string
	var stability, difficulty sql.NullFloat64
	var nextReview string
	var lastReview sql.NullString
	var starred int

	err := row.Scan(&st.VocabularyID, &st.OwnerChatID, &phase, &stability, &difficulty,
		&st.CurrentIntervalDays, &nextReview, &lastReview, &st.Lapses, &starred, &st.CardDirection)
	if err != nil {
		return recall.ReviewState{}, fmt.Errorf("scan state: %w", err)
	}

	// NULL stability or difficulty marks a row persisted by the old
	// schema; tag it so Migrate resolves it once at this boundary.
	if stability.Valid && difficulty.Valid {
		st.Schema = recall.SchemaCurrent
		st.Stability = stability.Float64
		st.Difficulty = difficulty.Float64
	} else {
		st.Schema = recall.SchemaLegacy
	}

	if err := st.Phase.UnmarshalText([]byte(phase)); err != nil {
		st.Phase = recall.New
	}
	st.NextReviewDate, err = time.Parse(time.RFC3339, nextReview)
	if err != nil {
		return recall.ReviewState{}, fmt.Errorf("parse next_review for %s: %w", st.VocabularyID, err)
	}
	if lastReview.Valid {
		t, err := time.Parse(time.RFC3339, lastReview.String)
		if err != nil {
			return recall.ReviewState{}, fmt.Errorf("parse last_review for %s: %w", st.VocabularyID, err)
		}
		st.LastReviewDate = &t
	}
	st.IsStarred = starred != 0
	return st, nil
}

func (s *Store) loadHistory(ctx context.Context, vocabularyID string) ([]recall.ReviewHistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT reviewed_at, rating, interval_before, interval_after,
		       stability_before, stability_after, difficulty_before, difficulty_after,
		       retrievability
		FROM review_history WHERE vocabulary_id = ? ORDER BY seq`, vocabularyID)
	if err != nil {
		return nil, fmt.Errorf("load history %s: %w", vocabularyID, err)
	}
	defer rows.Close()

	var history []recall.ReviewHistoryEntry
	for rows.Next() {
		var e recall.ReviewHistoryEntry
		var reviewedAt, rating string
		err := rows.Scan(&reviewedAt, &rating, &e.IntervalBefore, &e.IntervalAfter,
			&e.StabilityBefore, &e.StabilityAfter, &e.DifficultyBefore, &e.DifficultyAfter,
			&e.Retrievability)
		if err != nil {
			return nil, fmt.Errorf("scan history %s: %w", vocabularyID, err)
		}
		e.Date, err = time.Parse(time.RFC3339, reviewedAt)
		if err != nil {
			return nil, fmt.Errorf("parse reviewed_at %s: %w", vocabularyID, err)
		}
		e.Rating, err = decodeRating(rating)
		if err != nil {
			return nil, fmt.Errorf("history %s: %w", vocabularyID, err)
		}
		history = append(history, e)
	}
	return history, rows.Err()
}

// decodeRating accepts both the canonical rating names and the retired
// numeric 3-level scale (0=Again, 1=Hard, 2=Good) found in old databases.
func decodeRating(s string) (recall.Rating, error) {
	var r recall.Rating
	if err := r.UnmarshalText([]byte(s)); err == nil {
		return r, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", recall.ErrInvalidRating, s)
	}
	return recall.RatingFromLegacy(n)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
