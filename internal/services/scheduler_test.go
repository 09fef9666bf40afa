package services

import (
	"testing"
	"time"

	"tendertrack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduler(tenders map[string]*models.Tender, store *fakeReminderStore, now time.Time) *Scheduler {
	return &Scheduler{
		tenders:   &fakeTenderStore{tenders: tenders},
		reminders: store,
		now:       fixedClock(now),
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestScheduleCreatesDeadlineReminders(t *testing.T) {
	store := newFakeReminderStore()
	tenders := map[string]*models.Tender{
		"t1": {ID: "t1", Title: "Road works", DueDate: date(2025, 3, 10), Status: models.StatusPreparing},
	}
	scheduler := newTestScheduler(tenders, store, time.Date(2025, 2, 1, 10, 30, 0, 0, time.UTC))

	result, err := scheduler.Schedule("t1")
	require.NoError(t, err)
	assert.Equal(t, 3, result.Scheduled)

	var dates []time.Time
	for _, r := range result.Reminders {
		dates = append(dates, r.ScheduledDate)
	}
	assert.ElementsMatch(t, []time.Time{date(2025, 3, 3), date(2025, 3, 7), date(2025, 3, 9)}, dates)
}

func TestScheduleIsIdempotent(t *testing.T) {
	store := newFakeReminderStore()
	tenders := map[string]*models.Tender{
		"t1": {ID: "t1", DueDate: date(2025, 3, 10), Status: models.StatusPreparing},
	}
	scheduler := newTestScheduler(tenders, store, date(2025, 2, 1))

	first, err := scheduler.Schedule("t1")
	require.NoError(t, err)
	require.Equal(t, 3, first.Scheduled)

	second, err := scheduler.Schedule("t1")
	require.NoError(t, err)
	assert.Equal(t, 0, second.Scheduled)
	assert.Empty(t, second.Reminders)
	assert.Len(t, store.rows, 3)
}

func TestScheduleSkipsPastDates(t *testing.T) {
	store := newFakeReminderStore()
	tenders := map[string]*models.Tender{
		// Due tomorrow: every lead-time offset lands on or before today
		"t1": {ID: "t1", DueDate: date(2025, 2, 2), Status: models.StatusSubmitted},
	}
	scheduler := newTestScheduler(tenders, store, time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC))

	result, err := scheduler.Schedule("t1")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Scheduled)
	assert.Empty(t, store.rows)
}

func TestScheduleDueInTwoDaysKeepsOnlyOneDayReminder(t *testing.T) {
	store := newFakeReminderStore()
	tenders := map[string]*models.Tender{
		"t1": {ID: "t1", DueDate: date(2025, 2, 3), Status: models.StatusSubmitted},
	}
	scheduler := newTestScheduler(tenders, store, time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC))

	result, err := scheduler.Schedule("t1")
	require.NoError(t, err)
	require.Equal(t, 1, result.Scheduled)
	assert.Equal(t, models.ReminderDeadline1Day, result.Reminders[0].ReminderType)
	assert.Equal(t, date(2025, 2, 2), result.Reminders[0].ScheduledDate)
}

func TestScheduleRejectsTerminalTender(t *testing.T) {
	for _, status := range []models.TenderStatus{models.StatusWon, models.StatusLost, models.StatusAbandoned} {
		t.Run(string(status), func(t *testing.T) {
			store := newFakeReminderStore()
			tenders := map[string]*models.Tender{
				"t1": {ID: "t1", DueDate: date(2025, 3, 10), Status: status},
			}
			scheduler := newTestScheduler(tenders, store, date(2025, 2, 1))

			_, err := scheduler.Schedule("t1")
			assert.ErrorIs(t, err, models.ErrTenderFinalized)
			assert.Empty(t, store.rows)
		})
	}
}

func TestScheduleUnknownTender(t *testing.T) {
	scheduler := newTestScheduler(map[string]*models.Tender{}, newFakeReminderStore(), date(2025, 2, 1))

	_, err := scheduler.Schedule("missing")
	assert.ErrorIs(t, err, models.ErrTenderNotFound)
}

func TestScheduleNeverCreatesBidOpeningReminder(t *testing.T) {
	store := newFakeReminderStore()
	tenders := map[string]*models.Tender{
		"t1": {ID: "t1", DueDate: date(2025, 6, 1), Status: models.StatusIdentified},
	}
	scheduler := newTestScheduler(tenders, store, date(2025, 2, 1))

	result, err := scheduler.Schedule("t1")
	require.NoError(t, err)
	for _, r := range result.Reminders {
		assert.NotEqual(t, models.ReminderCheckBidOpening, r.ReminderType)
	}
}

// Mirrors a full tender lifecycle: initial scheduling, a later no-op
// re-schedule, and a clear-then-reschedule once two offsets have passed.
func TestScheduleClearAndRescheduleScenario(t *testing.T) {
	store := newFakeReminderStore()
	tenders := map[string]*models.Tender{
		"t1": {ID: "t1", Title: "Bridge tender", DueDate: date(2025, 3, 10), Status: models.StatusPreparing},
	}

	early := newTestScheduler(tenders, store, date(2025, 2, 1))
	result, err := early.Schedule("t1")
	require.NoError(t, err)
	require.Equal(t, 3, result.Scheduled)

	// Re-running later is a no-op while the rows still exist
	late := newTestScheduler(tenders, store, date(2025, 3, 8))
	result, err = late.Schedule("t1")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Scheduled)

	deleted, err := late.ClearPending("t1")
	require.NoError(t, err)
	assert.EqualValues(t, 3, deleted)

	// After clearing, only the offset still ahead of today comes back
	result, err = late.Schedule("t1")
	require.NoError(t, err)
	require.Equal(t, 1, result.Scheduled)
	assert.Equal(t, models.ReminderDeadline1Day, result.Reminders[0].ReminderType)
	assert.Equal(t, date(2025, 3, 9), result.Reminders[0].ScheduledDate)
}

func TestClearPendingKeepsSentReminders(t *testing.T) {
	store := newFakeReminderStore()
	tenders := map[string]*models.Tender{
		"t1": {ID: "t1", DueDate: date(2025, 3, 10), Status: models.StatusPreparing},
	}
	scheduler := newTestScheduler(tenders, store, date(2025, 2, 1))

	result, err := scheduler.Schedule("t1")
	require.NoError(t, err)
	require.Equal(t, 3, result.Scheduled)

	require.NoError(t, store.MarkSent(result.Reminders[0].ID))

	deleted, err := scheduler.ClearPending("t1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)
	require.Len(t, store.rows, 1)
	assert.True(t, store.rows[0].Sent)
}
