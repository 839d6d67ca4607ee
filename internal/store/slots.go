package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// slotRepo implements SlotRepo on the slots table.
type slotRepo struct {
	db *sql.DB
}

func (r *slotRepo) Load(ctx context.Context) (Slots, bool, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, data FROM slots`)
	if err != nil {
		return Slots{}, false, fmt.Errorf("query slots: %w", err)
	}
	defer rows.Close()

	var slots Slots
	for rows.Next() {
		var (
			name string
			data []byte
		)
		if err := rows.Scan(&name, &data); err != nil {
			return Slots{}, false, fmt.Errorf("scan slot: %w", err)
		}
		if data == nil {
			data = []byte{}
		}
		switch name {
		case SlotCurrent:
			slots.Current = data
		case SlotPrevious:
			slots.Previous = data
		case SlotInput:
			slots.Input = data
		}
	}
	if err := rows.Err(); err != nil {
		return Slots{}, false, fmt.Errorf("iterate slots: %w", err)
	}
	return slots, slots.Current != nil, nil
}

func (r *slotRepo) Save(ctx context.Context, slots Slots) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, s := range []struct {
		name string
		data []byte
	}{
		{SlotCurrent, slots.Current},
		{SlotPrevious, slots.Previous},
		{SlotInput, slots.Input},
	} {
		if s.data == nil {
			if _, err := tx.ExecContext(ctx, `DELETE FROM slots WHERE name = ?`, s.name); err != nil {
				return fmt.Errorf("delete slot %s: %w", s.name, err)
			}
			continue
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO slots (name, data, updated_at) VALUES (?, ?, ?)
			 ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
			s.name, s.data, now)
		if err != nil {
			return fmt.Errorf("write slot %s: %w", s.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit slots: %w", err)
	}
	return nil
}

func (r *slotRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM slots`); err != nil {
		return fmt.Errorf("clear slots: %w", err)
	}
	return nil
}

func (r *slotRepo) UpdatedAt(ctx context.Context) (time.Time, bool, error) {
	var t time.Time
	err := r.db.QueryRowContext(ctx,
		`SELECT updated_at FROM slots WHERE name = ?`, SlotCurrent).Scan(&t)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("query updated_at: %w", err)
	}
	return t, true, nil
}
