package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/flashiz/internal/session"
)

// SessionRecord is a stored study session without its attempts.
type SessionRecord struct {
	ID         string
	Sequence   int64
	Deck       string
	Mode       string
	StartedAt  time.Time
	FinishedAt time.Time
	Attempts   int
	Correct    int
	Mastered   int
	Total      int
	BestStreak int
	Rounds     int
}

// Accuracy returns Correct/Attempts, or 0 with no attempts.
func (r SessionRecord) Accuracy() float64 {
	if r.Attempts == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Attempts)
}

// CardStats aggregates every stored attempt for one card.
type CardStats struct {
	CardID   string
	Attempts int
	Correct  int
	LastSeen time.Time
}

// Accuracy returns Correct/Attempts, or 0 with no attempts.
func (c CardStats) Accuracy() float64 {
	if c.Attempts == 0 {
		return 0
	}
	return float64(c.Correct) / float64(c.Attempts)
}

// SessionRepo persists finished study sessions.
type SessionRepo interface {
	// SaveSession stores the summary and its attempts in one transaction.
	SaveSession(ctx context.Context, sum session.Summary) error

	// RecentSessions returns up to limit sessions, newest first.
	RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error)

	// CardAccuracy aggregates attempts for a card across all sessions.
	CardAccuracy(ctx context.Context, cardID string) (CardStats, error)
}

type sessionRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *sessionRepo) SaveSession(ctx context.Context, sum session.Summary) error {
	if sum.SessionID == "" {
		return errors.New("save session: empty session id")
	}

	// One number for the session row, then one per attempt.
	first, err := r.seq.Reserve(ctx, 1+len(sum.Attempts))
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	st := sum.Stats
	_, err = tx.ExecContext(ctx, `INSERT INTO study_session
		(id, sequence, deck, mode, started_at, finished_at, attempts, correct, mastered, total, best_streak, rounds)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sum.SessionID, first, sum.DeckName, sum.Mode,
		sum.StartedAt.UnixMilli(), sum.FinishedAt.UnixMilli(),
		st.Attempts, st.CorrectCount, st.MasteredCount, st.TotalCount, st.BestStreak, st.Rounds,
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO study_attempt
		(sequence, session_id, card_id, stage, correct, input, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare attempt: %w", err)
	}
	defer stmt.Close()

	for i, a := range sum.Attempts {
		_, err := stmt.ExecContext(ctx,
			first+1+int64(i), sum.SessionID, a.CardID, string(a.Stage),
			boolToInt(a.Correct), a.Input, a.Timestamp.UnixMilli(),
		)
		if err != nil {
			return fmt.Errorf("save attempt %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *sessionRepo) RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx, `SELECT
		id, sequence, deck, mode, started_at, finished_at, attempts, correct, mastered, total, best_streak, rounds
		FROM study_session ORDER BY sequence DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		var started, finished int64
		if err := rows.Scan(&rec.ID, &rec.Sequence, &rec.Deck, &rec.Mode, &started, &finished,
			&rec.Attempts, &rec.Correct, &rec.Mastered, &rec.Total, &rec.BestStreak, &rec.Rounds); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		rec.StartedAt = time.UnixMilli(started)
		rec.FinishedAt = time.UnixMilli(finished)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *sessionRepo) CardAccuracy(ctx context.Context, cardID string) (CardStats, error) {
	stats := CardStats{CardID: cardID}
	var last sql.NullInt64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(SUM(correct), 0), MAX(timestamp)
		FROM study_attempt WHERE card_id = ?`, cardID,
	).Scan(&stats.Attempts, &stats.Correct, &last)
	if err != nil {
		return CardStats{}, fmt.Errorf("card accuracy: %w", err)
	}
	if last.Valid {
		stats.LastSeen = time.UnixMilli(last.Int64)
	}
	return stats, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
