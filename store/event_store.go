// api/store/event_store.go
package store

import (
	"context"
	"fmt"
	"log"

	"brightfolio/api/analytics"
	"brightfolio/api/database"
	"brightfolio/api/models"
)

// EventStore adapts the externally owned interaction_events table in
// ClickHouse. The table is append-only: this store reads windows and writes
// single rows, nothing else.
type EventStore struct {
	DB *database.ClickHouseClient
}

func NewEventStore(chClient *database.ClickHouseClient) *EventStore {
	return &EventStore{DB: chClient}
}

// InsertEvents appends a batch of interaction events. Rows that fail to
// append are logged and skipped; the batch still ships.
func (s *EventStore) InsertEvents(ctx context.Context, events []models.Event) error {
	if len(events) == 0 {
		return nil
	}

	batch, err := s.DB.Conn.PrepareBatch(ctx, `
		INSERT INTO interaction_events (
			event_id, content_type, content_id, event_type, created_at,
			user_agent, referrer, ip_address, metadata
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare batch insert: %w", err)
	}

	for _, event := range events {
		err := batch.Append(
			event.EventID,
			event.ContentType,
			event.ContentID,
			event.EventType,
			event.CreatedAt,
			event.UserAgent,
			event.Referrer,
			event.IPAddress,
			event.Metadata.RawMap(),
		)
		if err != nil {
			log.Printf("Error appending event to batch (EventID: %s): %v", event.EventID, err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send batch: %w", err)
	}

	log.Printf("Successfully inserted %d interaction events.", len(events))
	return nil
}

// whereClause builds the filter predicate shared by QueryEvents and
// CountEvents. Zero filter fields are not applied.
func whereClause(filter analytics.EventFilter) (string, []interface{}) {
	clause := "WHERE 1 = 1"
	var args []interface{}

	if !filter.Start.IsZero() {
		clause += " AND created_at >= ?"
		args = append(args, filter.Start)
	}
	if !filter.End.IsZero() {
		clause += " AND created_at < ?"
		args = append(args, filter.End)
	}
	if filter.ContentType != "" {
		clause += " AND content_type = ?"
		args = append(args, filter.ContentType)
	}
	if filter.ContentID != "" {
		clause += " AND content_id = ?"
		args = append(args, filter.ContentID)
	}
	if filter.EventType != "" {
		clause += " AND event_type = ?"
		args = append(args, filter.EventType)
	}
	return clause, args
}

// QueryEvents fetches the raw events matching the filter, oldest first.
// Insertion order in the table is not guaranteed, so ordering happens here.
func (s *EventStore) QueryEvents(ctx context.Context, filter analytics.EventFilter) ([]models.Event, error) {
	clause, args := whereClause(filter)
	query := fmt.Sprintf(`
		SELECT event_id, content_type, content_id, event_type, created_at,
		       user_agent, referrer, ip_address, metadata
		FROM interaction_events
		%s
		ORDER BY created_at ASC
	`, clause)

	rows, err := s.DB.Conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query interaction events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var ev models.Event
		var rawMetadata map[string]string
		if err := rows.Scan(
			&ev.EventID,
			&ev.ContentType,
			&ev.ContentID,
			&ev.EventType,
			&ev.CreatedAt,
			&ev.UserAgent,
			&ev.Referrer,
			&ev.IPAddress,
			&rawMetadata,
		); err != nil {
			log.Printf("Error scanning interaction event row: %v", err)
			continue
		}
		ev.Metadata = models.ParseEventMetadata(rawMetadata)
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error during interaction events query: %w", err)
	}

	return events, nil
}

// CountEvents counts matching events without materializing them. Used by the
// period comparator, which only needs the previous window's view total.
func (s *EventStore) CountEvents(ctx context.Context, filter analytics.EventFilter) (int, error) {
	clause, args := whereClause(filter)
	query := fmt.Sprintf(`SELECT count() FROM interaction_events %s`, clause)

	var count uint64
	if err := s.DB.Conn.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count interaction events: %w", err)
	}
	return int(count), nil
}
