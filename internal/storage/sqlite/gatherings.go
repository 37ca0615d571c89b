package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gathersplit/internal/models"
	"gathersplit/internal/storage"
)

// CreateGathering persists a new gathering and its participant list.
func (s *SQLiteStore) CreateGathering(ctx context.Context, gathering *models.Gathering) error {
	if gathering.ID == "" {
		gathering.ID = uuid.New().String()
	}
	if gathering.CreatedAt == 0 {
		gathering.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var hostID any
	if gathering.HostID != "" {
		hostID = gathering.HostID
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO gatherings (id, title, date, host_id, created_at) VALUES (?, ?, ?, ?, ?)",
		gathering.ID, gathering.Title, gathering.Date, hostID, gathering.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert gathering: %w", err)
	}

	for _, userID := range gathering.Participants {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO gathering_participants (gathering_id, user_id) VALUES (?, ?)",
			gathering.ID, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetGathering retrieves a gathering by ID, including its participants.
func (s *SQLiteStore) GetGathering(ctx context.Context, id string) (*models.Gathering, error) {
	gathering := &models.Gathering{}
	var hostID sql.NullString

	err := s.db.QueryRowContext(ctx,
		"SELECT id, title, date, host_id, created_at FROM gatherings WHERE id = ?",
		id,
	).Scan(&gathering.ID, &gathering.Title, &gathering.Date, &hostID, &gathering.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("gathering %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get gathering: %w", err)
	}
	if hostID.Valid {
		gathering.HostID = hostID.String
	}

	participants, err := s.listParticipants(ctx, "gathering_participants", "gathering_id", id)
	if err != nil {
		return nil, err
	}
	gathering.Participants = participants

	return gathering, nil
}

// ListGatherings retrieves all gatherings ordered by date, newest first.
func (s *SQLiteStore) ListGatherings(ctx context.Context) ([]*models.Gathering, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, date, host_id, created_at FROM gatherings ORDER BY date DESC, created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list gatherings: %w", err)
	}
	defer rows.Close()

	var gatherings []*models.Gathering
	for rows.Next() {
		gathering := &models.Gathering{}
		var hostID sql.NullString
		if err := rows.Scan(&gathering.ID, &gathering.Title, &gathering.Date, &hostID, &gathering.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan gathering: %w", err)
		}
		if hostID.Valid {
			gathering.HostID = hostID.String
		}
		gatherings = append(gatherings, gathering)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate gatherings: %w", err)
	}

	for _, gathering := range gatherings {
		participants, err := s.listParticipants(ctx, "gathering_participants", "gathering_id", gathering.ID)
		if err != nil {
			return nil, err
		}
		gathering.Participants = participants
	}

	return gatherings, nil
}

// UpdateGathering replaces an existing gathering and its participant list.
func (s *SQLiteStore) UpdateGathering(ctx context.Context, gathering *models.Gathering) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var hostID any
	if gathering.HostID != "" {
		hostID = gathering.HostID
	}

	result, err := tx.ExecContext(ctx,
		"UPDATE gatherings SET title = ?, date = ?, host_id = ? WHERE id = ?",
		gathering.Title, gathering.Date, hostID, gathering.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update gathering: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("gathering %s: %w", gathering.ID, storage.ErrNotFound)
	}

	// Replace the participant list wholesale.
	_, err = tx.ExecContext(ctx,
		"DELETE FROM gathering_participants WHERE gathering_id = ?", gathering.ID)
	if err != nil {
		return fmt.Errorf("failed to clear participants: %w", err)
	}
	for _, userID := range gathering.Participants {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO gathering_participants (gathering_id, user_id) VALUES (?, ?)",
			gathering.ID, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteGathering removes a gathering; participant rows and expenses cascade.
func (s *SQLiteStore) DeleteGathering(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM gatherings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete gathering: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("gathering %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

// listParticipants loads the user IDs of a join table row set, ordered for
// stable output.
func (s *SQLiteStore) listParticipants(ctx context.Context, table, column, id string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id FROM "+table+" WHERE "+column+" = ? ORDER BY user_id", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	var participants []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}
	return participants, nil
}
