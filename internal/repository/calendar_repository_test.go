package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"loves-api/internal/domain"
	"loves-api/internal/repository/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupCalendarTestDB creates a new sqlx.DB instance and sqlmock for calendar repository testing.
func setupCalendarTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	return sqlxDB, mock
}

// --- Tests for Converter Functions ---

func TestEventConverterRoundTrip(t *testing.T) {
	end := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	event := &domain.CalendarEvent{
		ID:          "evt1",
		UserID:      "user1",
		Title:       "Anniversary",
		Type:        domain.EventAnniversary,
		Date:        time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Recurring:   &domain.Recurrence{Frequency: domain.FreqYearly, EndDate: &end},
		Description: "Dinner reservation",
		Reminder:    domain.Reminder{Enabled: true, MinutesBefore: 120},
		Participants: []string{
			"user2",
		},
		DailyEntries: []domain.DailyEntry{
			{Date: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), Memory: "the day", Mood: domain.MoodHappy, Photos: []string{"a.jpg"}},
		},
	}

	model, err := fromDomainEvent(event)
	require.NoError(t, err)
	assert.True(t, model.Recurring.Valid)
	assert.True(t, model.Description.Valid)

	back, err := toDomainEvent(model)
	require.NoError(t, err)
	assert.Equal(t, event.Title, back.Title)
	assert.Equal(t, event.Type, back.Type)
	require.NotNil(t, back.Recurring)
	assert.Equal(t, domain.FreqYearly, back.Recurring.Frequency)
	require.NotNil(t, back.Recurring.EndDate)
	assert.True(t, end.Equal(*back.Recurring.EndDate))
	assert.Equal(t, event.Reminder, back.Reminder)
	require.Len(t, back.DailyEntries, 1)
	assert.Equal(t, domain.MoodHappy, back.DailyEntries[0].Mood)
}

func TestToDomainEventNullColumns(t *testing.T) {
	model := &models.CalendarEvent{
		ID:     "evt1",
		UserID: "user1",
		Title:  "Plain",
		Type:   "event",
		Date:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	}

	event, err := toDomainEvent(model)
	require.NoError(t, err)
	assert.Nil(t, event.Recurring)
	assert.Equal(t, "", event.Description)
	assert.Empty(t, event.DailyEntries)
}

// --- Tests for Adapter Methods ---

func eventRows(model models.CalendarEvent) *sqlmock.Rows {
	reminder, _ := model.Reminder.Value()
	participants, _ := model.Participants.Value()
	entries, _ := model.DailyEntries.Value()
	return sqlmock.NewRows([]string{
		"id", "user_id", "title", "type", "date", "recurring", "description",
		"reminder", "participants", "daily_entries", "created_at", "updated_at",
	}).AddRow(
		model.ID, model.UserID, model.Title, model.Type, model.Date, model.Recurring, model.Description,
		reminder, participants, entries, model.CreatedAt, model.UpdatedAt,
	)
}

func TestSQLXCalendarRepository_GetOwned_Success(t *testing.T) {
	db, mock := setupCalendarTestDB(t)
	repo := NewSQLXCalendarRepository(db)
	defer db.Close()

	now := time.Now()
	model := models.CalendarEvent{
		ID:           "evt-test-id",
		UserID:       "user1",
		Title:        "Dinner",
		Type:         "date",
		Date:         now,
		Participants: models.StringSlice{},
		DailyEntries: models.DailyEntryList{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	mock.ExpectQuery(`SELECT .+ FROM calendar_events WHERE id = \? AND user_id = \?`).
		WithArgs("evt-test-id", "user1").
		WillReturnRows(eventRows(model))

	event, err := repo.GetOwned(context.Background(), "evt-test-id", "user1")

	assert.NoError(t, err)
	assert.NotNil(t, event)
	assert.Equal(t, "Dinner", event.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXCalendarRepository_GetOwned_WrongOwner(t *testing.T) {
	db, mock := setupCalendarTestDB(t)
	repo := NewSQLXCalendarRepository(db)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM calendar_events WHERE id = \? AND user_id = \?`).
		WithArgs("evt-test-id", "intruder").
		WillReturnError(sql.ErrNoRows)

	event, err := repo.GetOwned(context.Background(), "evt-test-id", "intruder")

	assert.NoError(t, err)
	assert.Nil(t, event)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXCalendarRepository_GetByID_IgnoresOwner(t *testing.T) {
	db, mock := setupCalendarTestDB(t)
	repo := NewSQLXCalendarRepository(db)
	defer db.Close()

	now := time.Now()
	model := models.CalendarEvent{
		ID:           "evt-test-id",
		UserID:       "user1",
		Title:        "Dinner",
		Type:         "date",
		Date:         now,
		Participants: models.StringSlice{},
		DailyEntries: models.DailyEntryList{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	mock.ExpectQuery(`SELECT .+ FROM calendar_events WHERE id = \?$`).
		WithArgs("evt-test-id").
		WillReturnRows(eventRows(model))

	event, err := repo.GetByID(context.Background(), "evt-test-id")

	assert.NoError(t, err)
	assert.NotNil(t, event)
	assert.Equal(t, "user1", event.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXCalendarRepository_GetByID_Missing(t *testing.T) {
	db, mock := setupCalendarTestDB(t)
	repo := NewSQLXCalendarRepository(db)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM calendar_events WHERE id = \?$`).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	event, err := repo.GetByID(context.Background(), "nope")

	assert.NoError(t, err)
	assert.Nil(t, event)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXCalendarRepository_Create_AssignsID(t *testing.T) {
	db, mock := setupCalendarTestDB(t)
	repo := NewSQLXCalendarRepository(db)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO calendar_events`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	event := &domain.CalendarEvent{
		UserID: "user1",
		Title:  "Dinner",
		Type:   domain.EventDate,
		Date:   time.Now(),
	}

	err := repo.Create(context.Background(), event)

	assert.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXCalendarRepository_Delete_ReportsOutcome(t *testing.T) {
	db, mock := setupCalendarTestDB(t)
	repo := NewSQLXCalendarRepository(db)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM calendar_events WHERE id = \? AND user_id = \?`).
		WithArgs("evt1", "user1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM calendar_events WHERE id = \? AND user_id = \?`).
		WithArgs("missing", "user1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Delete(context.Background(), "evt1", "user1")
	assert.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(context.Background(), "missing", "user1")
	assert.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXCalendarRepository_List_AppliesFilters(t *testing.T) {
	db, mock := setupCalendarTestDB(t)
	repo := NewSQLXCalendarRepository(db)
	defer db.Close()

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .+ FROM calendar_events WHERE user_id = \? AND date >= \? AND date <= \? AND type = \? ORDER BY date ASC`).
		WithArgs("user1", start, end, "date").
		WillReturnRows(eventRows(models.CalendarEvent{
			ID: "evt1", UserID: "user1", Title: "Dinner", Type: "date", Date: start,
			Participants: models.StringSlice{}, DailyEntries: models.DailyEntryList{},
		}))

	events, err := repo.List(context.Background(), "user1", EventFilter{
		StartDate: &start,
		EndDate:   &end,
		Type:      domain.EventDate,
	})

	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXCalendarRepository_ListUpcoming_PassesLimit(t *testing.T) {
	db, mock := setupCalendarTestDB(t)
	repo := NewSQLXCalendarRepository(db)
	defer db.Close()

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT .+ FROM calendar_events\s+WHERE user_id = \? AND date >= \? ORDER BY date ASC LIMIT \?`).
		WithArgs("user1", from, 5).
		WillReturnRows(eventRows(models.CalendarEvent{
			ID: "evt1", UserID: "user1", Title: "Dinner", Type: "date", Date: from,
			Participants: models.StringSlice{}, DailyEntries: models.DailyEntryList{},
		}))

	events, err := repo.ListUpcoming(context.Background(), "user1", from, 5)

	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXCalendarRepository_Stats(t *testing.T) {
	db, mock := setupCalendarTestDB(t)
	repo := NewSQLXCalendarRepository(db)
	defer db.Close()

	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM calendar_events WHERE user_id = \?$`).
		WithArgs("user1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM calendar_events WHERE user_id = \? AND date >= \?`).
		WithArgs("user1", now).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT type, COUNT\(\*\) AS cnt FROM calendar_events WHERE user_id = \? GROUP BY type`).
		WithArgs("user1").
		WillReturnRows(sqlmock.NewRows([]string{"type", "cnt"}).
			AddRow("date", 3).
			AddRow("birthday", 2))

	stats, err := repo.Stats(context.Background(), "user1", now)

	require.NoError(t, err)
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 2, stats.Upcoming)
	assert.Equal(t, 3, stats.Past)
	assert.Equal(t, map[string]int{"date": 3, "birthday": 2}, stats.ByType)
	assert.NoError(t, mock.ExpectationsWereMet())
}
