package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"loves-api/internal/domain"
	"loves-api/internal/repository/models"
	"loves-api/internal/util"

	"github.com/jmoiron/sqlx"
)

// EventFilter narrows List results. Zero-value fields are ignored.
type EventFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Type      domain.EventType
}

// EventStats is the by-owner partition of events relative to one instant.
type EventStats struct {
	Total    int
	Upcoming int
	Past     int
	ByType   map[string]int
}

// CalendarEventRepository defines persistence for calendar events and their
// embedded journal entries. Every write is a single-row statement; the last
// concurrent writer wins.
type CalendarEventRepository interface {
	Create(ctx context.Context, event *domain.CalendarEvent) error
	// GetOwned returns (nil, nil) when no event with that id belongs to userID.
	GetOwned(ctx context.Context, id, userID string) (*domain.CalendarEvent, error)
	// GetByID looks the event up regardless of owner; (nil, nil) when absent.
	GetByID(ctx context.Context, id string) (*domain.CalendarEvent, error)
	Update(ctx context.Context, event *domain.CalendarEvent) error
	// Delete reports whether a row owned by userID was removed.
	Delete(ctx context.Context, id, userID string) (bool, error)
	List(ctx context.Context, userID string, filter EventFilter) ([]*domain.CalendarEvent, error)
	ListUpcoming(ctx context.Context, userID string, from time.Time, limit int) ([]*domain.CalendarEvent, error)
	ListAll(ctx context.Context, userID string) ([]*domain.CalendarEvent, error)
	Stats(ctx context.Context, userID string, now time.Time) (*EventStats, error)
}

type sqlxCalendarRepository struct {
	db *sqlx.DB
}

// NewSQLXCalendarRepository creates a new instance of sqlxCalendarRepository.
func NewSQLXCalendarRepository(db *sqlx.DB) CalendarEventRepository {
	return &sqlxCalendarRepository{db: db}
}

const eventColumns = `id, user_id, title, type, date, recurring, description,
	reminder, participants, daily_entries, created_at, updated_at`

func (r *sqlxCalendarRepository) Create(ctx context.Context, event *domain.CalendarEvent) error {
	model, err := fromDomainEvent(event)
	if err != nil {
		return err
	}
	if model.ID == "" {
		model.ID = util.NewULID()
	}
	now := time.Now()
	model.CreatedAt = now
	model.UpdatedAt = now

	query := `INSERT INTO calendar_events (` + eventColumns + `)
	          VALUES (:id, :user_id, :title, :type, :date, :recurring, :description,
	                  :reminder, :participants, :daily_entries, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("failed to create calendar event: %w", err)
	}

	event.ID = model.ID
	event.CreatedAt = model.CreatedAt
	event.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *sqlxCalendarRepository) GetOwned(ctx context.Context, id, userID string) (*domain.CalendarEvent, error) {
	var model models.CalendarEvent
	query := `SELECT ` + eventColumns + ` FROM calendar_events WHERE id = ? AND user_id = ?`

	err := r.db.GetContext(ctx, &model, query, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get calendar event %s: %w", id, err)
	}
	return toDomainEvent(&model)
}

func (r *sqlxCalendarRepository) GetByID(ctx context.Context, id string) (*domain.CalendarEvent, error) {
	var model models.CalendarEvent
	query := `SELECT ` + eventColumns + ` FROM calendar_events WHERE id = ?`

	err := r.db.GetContext(ctx, &model, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get calendar event %s: %w", id, err)
	}
	return toDomainEvent(&model)
}

func (r *sqlxCalendarRepository) Update(ctx context.Context, event *domain.CalendarEvent) error {
	model, err := fromDomainEvent(event)
	if err != nil {
		return err
	}
	if model.ID == "" {
		return fmt.Errorf("cannot update event with empty ID")
	}
	model.UpdatedAt = time.Now()

	query := `UPDATE calendar_events SET
	            title = :title,
	            type = :type,
	            date = :date,
	            recurring = :recurring,
	            description = :description,
	            reminder = :reminder,
	            participants = :participants,
	            daily_entries = :daily_entries,
	            updated_at = :updated_at
	          WHERE id = :id AND user_id = :user_id`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update calendar event: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("calendar event %s not found or not updated", event.ID)
	}
	event.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *sqlxCalendarRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM calendar_events WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete calendar event %s: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

func (r *sqlxCalendarRepository) List(ctx context.Context, userID string, filter EventFilter) ([]*domain.CalendarEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM calendar_events WHERE user_id = ?`
	args := []interface{}{userID}

	if filter.StartDate != nil {
		query += ` AND date >= ?`
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		query += ` AND date <= ?`
		args = append(args, *filter.EndDate)
	}
	if filter.Type != "" {
		query += ` AND type = ?`
		args = append(args, string(filter.Type))
	}
	query += ` ORDER BY date ASC`

	var rows []models.CalendarEvent
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list calendar events for user %s: %w", userID, err)
	}
	return toDomainEvents(rows)
}

func (r *sqlxCalendarRepository) ListUpcoming(ctx context.Context, userID string, from time.Time, limit int) ([]*domain.CalendarEvent, error) {
	var rows []models.CalendarEvent
	query := `SELECT ` + eventColumns + ` FROM calendar_events
	          WHERE user_id = ? AND date >= ? ORDER BY date ASC LIMIT ?`

	if err := r.db.SelectContext(ctx, &rows, query, userID, from, limit); err != nil {
		return nil, fmt.Errorf("failed to list upcoming events for user %s: %w", userID, err)
	}
	return toDomainEvents(rows)
}

func (r *sqlxCalendarRepository) ListAll(ctx context.Context, userID string) ([]*domain.CalendarEvent, error) {
	return r.List(ctx, userID, EventFilter{})
}

func (r *sqlxCalendarRepository) Stats(ctx context.Context, userID string, now time.Time) (*EventStats, error) {
	stats := &EventStats{ByType: map[string]int{}}

	err := r.db.GetContext(ctx, &stats.Total,
		`SELECT COUNT(*) FROM calendar_events WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}

	err = r.db.GetContext(ctx, &stats.Upcoming,
		`SELECT COUNT(*) FROM calendar_events WHERE user_id = ? AND date >= ?`, userID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to count upcoming events: %w", err)
	}
	stats.Past = stats.Total - stats.Upcoming

	rows, err := r.db.QueryxContext(ctx,
		`SELECT type, COUNT(*) AS cnt FROM calendar_events WHERE user_id = ? GROUP BY type`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count events by type: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var eventType string
		var count int
		if err := rows.Scan(&eventType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan type count: %w", err)
		}
		stats.ByType[eventType] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate type counts: %w", err)
	}
	return stats, nil
}

func toDomainEvents(rows []models.CalendarEvent) ([]*domain.CalendarEvent, error) {
	events := make([]*domain.CalendarEvent, 0, len(rows))
	for i := range rows {
		event, err := toDomainEvent(&rows[i])
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

func toDomainEvent(m *models.CalendarEvent) (*domain.CalendarEvent, error) {
	if m == nil {
		return nil, nil
	}
	var recurring *domain.Recurrence
	if m.Recurring.Valid && m.Recurring.String != "" {
		recurring = &domain.Recurrence{}
		if err := json.Unmarshal([]byte(m.Recurring.String), recurring); err != nil {
			return nil, fmt.Errorf("failed to decode recurrence for event %s: %w", m.ID, err)
		}
	}
	entries := make([]domain.DailyEntry, 0, len(m.DailyEntries))
	for _, e := range m.DailyEntries {
		entries = append(entries, domain.DailyEntry{
			Date:   e.Date,
			Memory: e.Memory,
			Notes:  e.Notes,
			Mood:   domain.Mood(e.Mood),
			Photos: e.Photos,
		})
	}
	return &domain.CalendarEvent{
		ID:           m.ID,
		UserID:       m.UserID,
		Title:        m.Title,
		Type:         domain.EventType(m.Type),
		Date:         m.Date,
		Recurring:    recurring,
		Description:  m.Description.String,
		Reminder:     domain.Reminder(m.Reminder),
		Participants: []string(m.Participants),
		DailyEntries: entries,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}, nil
}

func fromDomainEvent(e *domain.CalendarEvent) (*models.CalendarEvent, error) {
	if e == nil {
		return nil, fmt.Errorf("cannot convert nil event")
	}
	var recurring sql.NullString
	if e.Recurring != nil {
		data, err := json.Marshal(e.Recurring)
		if err != nil {
			return nil, fmt.Errorf("failed to encode recurrence: %w", err)
		}
		recurring = sql.NullString{String: string(data), Valid: true}
	}
	entries := make(models.DailyEntryList, 0, len(e.DailyEntries))
	for _, entry := range e.DailyEntries {
		entries = append(entries, models.DailyEntry{
			Date:   entry.Date,
			Memory: entry.Memory,
			Notes:  entry.Notes,
			Mood:   string(entry.Mood),
			Photos: entry.Photos,
		})
	}
	return &models.CalendarEvent{
		ID:           e.ID,
		UserID:       e.UserID,
		Title:        e.Title,
		Type:         string(e.Type),
		Date:         e.Date,
		Recurring:    recurring,
		Description:  util.StringToNullString(e.Description),
		Reminder:     models.Reminder(e.Reminder),
		Participants: models.StringSlice(e.Participants),
		DailyEntries: entries,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}, nil
}
