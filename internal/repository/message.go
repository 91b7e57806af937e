package repository

import (
	"context"
	"fmt"

	"github.com/campushub/campushub/internal/model"
)

// InsertMessage persists a chat message.
func (r *Repository) InsertMessage(ctx context.Context, msg *model.Message) error {
	query := `
		INSERT INTO messages (id, group_ref, sender_ref, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		msg.ID,
		msg.GroupRef,
		msg.SenderRef,
		msg.Body,
		msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

// ListMessagesByGroup retrieves the most recent messages for a group in
// ascending time order, with the sender's name expanded.
func (r *Repository) ListMessagesByGroup(ctx context.Context, groupRef string, limit int) ([]*model.Message, error) {
	query := `
		SELECT m.id, m.group_ref, g.group_id, m.sender_ref, u.username, m.body, m.created_at
		FROM (
			SELECT id, group_ref, sender_ref, body, created_at
			FROM messages
			WHERE group_ref = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2
		) m
		JOIN study_groups g ON g.id = m.group_ref
		JOIN users u ON u.id = m.sender_ref
		ORDER BY m.created_at, m.id
	`

	rows, err := r.pool.Query(ctx, query, groupRef, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []*model.Message
	for rows.Next() {
		var msg model.Message
		if err := rows.Scan(
			&msg.ID,
			&msg.GroupRef,
			&msg.GroupID,
			&msg.SenderRef,
			&msg.SenderName,
			&msg.Body,
			&msg.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}
	return messages, nil
}
