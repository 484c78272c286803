package store

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// Chat implements ChatRepo over chat_messages.
type Chat struct {
	db  *sql.DB
	b   *entsql.DialectBuilder
	seq *sequenceCounter
}

// Append stores msg and returns it with ID and CreatedAt filled in.
// A zero CreatedAt is stamped with the current time.
func (r *Chat) Append(ctx context.Context, msg ChatMessage) (ChatMessage, error) {
	id, err := r.seq.Next(ctx)
	if err != nil {
		return ChatMessage{}, fmt.Errorf("next sequence: %w", err)
	}
	msg.ID = id
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	query, args := r.b.Insert(tableChat).
		Columns("id", "conversation", "sender", "body", "created_at").
		Values(msg.ID, msg.Conversation, msg.Sender, msg.Body, msg.CreatedAt.UnixMilli()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return ChatMessage{}, fmt.Errorf("save chat message: %w", err)
	}
	return msg, nil
}

func (r *Chat) Recent(ctx context.Context, conversation string, limit int) ([]ChatMessage, error) {
	sel := r.b.Select("id", "conversation", "sender", "body", "created_at").
		From(r.b.Table(tableChat)).
		Where(entsql.EQ("conversation", conversation)).
		OrderBy(entsql.Desc("id"))
	if limit > 0 {
		sel.Limit(limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query chat messages: %w", err)
	}
	defer rows.Close()

	var msgs []ChatMessage
	for rows.Next() {
		var (
			m  ChatMessage
			ms int64
		)
		if err := rows.Scan(&m.ID, &m.Conversation, &m.Sender, &m.Body, &ms); err != nil {
			return nil, fmt.Errorf("scan chat message: %w", err)
		}
		m.CreatedAt = time.UnixMilli(ms).UTC()
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	slices.Reverse(msgs)
	return msgs, nil
}
