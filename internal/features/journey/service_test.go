package journey

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noctua-labs/arcana-bot/internal/common"
)

// fakeStore is an in-memory ProfileStore with fault injection.
type fakeStore struct {
	profiles map[int64]*Profile
	getErr   error
	saveErr  error
	saves    int
}

func newFakeStore(profiles ...*Profile) *fakeStore {
	s := &fakeStore{profiles: make(map[int64]*Profile)}
	for _, p := range profiles {
		s.profiles[p.UserID] = p
	}
	return s
}

func (s *fakeStore) Get(_ context.Context, userID int64) (*Profile, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	p, ok := s.profiles[userID]
	if !ok {
		return nil, common.ErrProfileNotFound
	}
	// Hand out a copy so a discarded update never leaks into the store.
	cp := *p
	return &cp, nil
}

func (s *fakeStore) Save(_ context.Context, p *Profile) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	if _, ok := s.profiles[p.UserID]; !ok {
		return common.ErrProfileNotFound
	}
	cp := *p
	s.profiles[p.UserID] = &cp
	s.saves++
	return nil
}

// fakeLookup answers HasReadOn from a set of (userID, day) pairs.
type fakeLookup struct {
	read map[int64]string
	err  error
}

func (l *fakeLookup) HasReadOn(_ context.Context, userID int64, day Day) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	return l.read[userID] == day.String(), nil
}

func freshProfile(userID int64) *Profile {
	return &Profile{UserID: userID, Level: BaseLevel}
}

func profileAt(t *testing.T, userID int64, total, streak int, last, level string) *Profile {
	t.Helper()
	return &Profile{
		UserID:          userID,
		TotalReadings:   total,
		CurrentStreak:   streak,
		LastReadingDate: dayPtr(t, last),
		Level:           level,
	}
}

func TestRecordReadingFirstEver(t *testing.T) {
	store := newFakeStore(freshProfile(7))
	svc := NewService(store, &fakeLookup{}, nil)

	p, err := svc.RecordReading(context.Background(), 7, "2024-03-11")
	require.NoError(t, err)

	assert.Equal(t, 1, p.CurrentStreak)
	assert.Equal(t, 1, p.TotalReadings)
	require.NotNil(t, p.LastReadingDate)
	assert.Equal(t, "2024-03-11", p.LastReadingDate.String())
	assert.Equal(t, BaseLevel, p.Level)
}

func TestRecordReadingConsecutiveDay(t *testing.T) {
	store := newFakeStore(profileAt(t, 7, 5, 3, "2024-03-10", "Novice"))
	svc := NewService(store, &fakeLookup{}, nil)

	p, err := svc.RecordReading(context.Background(), 7, "2024-03-11")
	require.NoError(t, err)

	assert.Equal(t, 4, p.CurrentStreak)
	assert.Equal(t, 6, p.TotalReadings)
	assert.Equal(t, "2024-03-11", p.LastReadingDate.String())
	assert.Equal(t, DefaultLevel(6), p.Level)
}

func TestRecordReadingAfterGap(t *testing.T) {
	store := newFakeStore(profileAt(t, 7, 5, 3, "2024-03-10", "Novice"))
	svc := NewService(store, &fakeLookup{}, nil)

	p, err := svc.RecordReading(context.Background(), 7, "2024-03-14")
	require.NoError(t, err)

	assert.Equal(t, 1, p.CurrentStreak)
	assert.Equal(t, 6, p.TotalReadings)
}

// The streak is same-day idempotent; the lifetime total is documented
// not to be.
func TestRecordReadingTwiceSameDay(t *testing.T) {
	store := newFakeStore(profileAt(t, 7, 5, 3, "2024-03-10", "Novice"))
	svc := NewService(store, &fakeLookup{}, nil)

	first, err := svc.RecordReading(context.Background(), 7, "2024-03-11")
	require.NoError(t, err)
	second, err := svc.RecordReading(context.Background(), 7, "2024-03-11")
	require.NoError(t, err)

	assert.Equal(t, first.CurrentStreak, second.CurrentStreak)
	assert.Equal(t, first.TotalReadings+1, second.TotalReadings)
}

func TestRecordReadingUsesInjectedLevelPolicy(t *testing.T) {
	store := newFakeStore(freshProfile(7))
	svc := NewService(store, &fakeLookup{}, func(total int) string {
		if total >= 1 {
			return "Initiate"
		}
		return "Nobody"
	})

	p, err := svc.RecordReading(context.Background(), 7, "2024-03-11")
	require.NoError(t, err)
	assert.Equal(t, "Initiate", p.Level)
}

func TestRecordReadingProfileNotFound(t *testing.T) {
	svc := NewService(newFakeStore(), &fakeLookup{}, nil)
	_, err := svc.RecordReading(context.Background(), 99, "2024-03-11")
	assert.ErrorIs(t, err, common.ErrProfileNotFound)
}

func TestRecordReadingInvalidDate(t *testing.T) {
	store := newFakeStore(freshProfile(7))
	svc := NewService(store, &fakeLookup{}, nil)
	_, err := svc.RecordReading(context.Background(), 7, "11.03.2024")
	assert.ErrorIs(t, err, common.ErrInvalidDate)
	assert.Zero(t, store.saves)
}

// A failed write discards the computed update: the stored profile is
// untouched and a retry recomputes the same target state.
func TestRecordReadingSaveFailureDiscardsUpdate(t *testing.T) {
	store := newFakeStore(profileAt(t, 7, 5, 3, "2024-03-10", "Novice"))
	store.saveErr = common.ErrStoreUnavailable
	svc := NewService(store, &fakeLookup{}, nil)

	_, err := svc.RecordReading(context.Background(), 7, "2024-03-11")
	assert.ErrorIs(t, err, common.ErrStoreUnavailable)

	kept := store.profiles[7]
	assert.Equal(t, 5, kept.TotalReadings)
	assert.Equal(t, 3, kept.CurrentStreak)
	assert.Equal(t, "2024-03-10", kept.LastReadingDate.String())

	store.saveErr = nil
	p, err := svc.RecordReading(context.Background(), 7, "2024-03-11")
	require.NoError(t, err)
	assert.Equal(t, 4, p.CurrentStreak)
	assert.Equal(t, 6, p.TotalReadings)
}

func TestReconcileRecordsUnprocessedReading(t *testing.T) {
	store := newFakeStore(profileAt(t, 7, 5, 3, "2024-03-10", "Novice"))
	lookup := &fakeLookup{read: map[int64]string{7: "2024-03-11"}}
	svc := NewService(store, lookup, nil)

	p, err := svc.Reconcile(context.Background(), 7, "2024-03-11")
	require.NoError(t, err)

	assert.Equal(t, 4, p.CurrentStreak)
	assert.Equal(t, 6, p.TotalReadings)
	assert.Equal(t, "2024-03-11", p.LastReadingDate.String())
}

// Re-opening the app after the reading was processed must not inflate
// the lifetime total.
func TestReconcileAlreadyProcessedIsNoop(t *testing.T) {
	store := newFakeStore(profileAt(t, 7, 6, 4, "2024-03-11", "Novice"))
	lookup := &fakeLookup{read: map[int64]string{7: "2024-03-11"}}
	svc := NewService(store, lookup, nil)

	p, err := svc.Reconcile(context.Background(), 7, "2024-03-11")
	require.NoError(t, err)

	assert.Equal(t, 6, p.TotalReadings)
	assert.Equal(t, 4, p.CurrentStreak)
	assert.Zero(t, store.saves)
}

func TestReconcileLapsedStreakResets(t *testing.T) {
	store := newFakeStore(profileAt(t, 7, 5, 3, "2024-03-10", "Novice"))
	svc := NewService(store, &fakeLookup{}, nil)

	p, err := svc.Reconcile(context.Background(), 7, "2024-03-13")
	require.NoError(t, err)

	assert.Equal(t, 0, p.CurrentStreak)
	// Total and level are untouched by decay.
	assert.Equal(t, 5, p.TotalReadings)
	assert.Equal(t, "Novice", p.Level)
	assert.Equal(t, 0, store.profiles[7].CurrentStreak)
}

func TestReconcileYesterdayStreakKept(t *testing.T) {
	store := newFakeStore(profileAt(t, 7, 5, 3, "2024-03-10", "Novice"))
	svc := NewService(store, &fakeLookup{}, nil)

	p, err := svc.Reconcile(context.Background(), 7, "2024-03-11")
	require.NoError(t, err)

	// One day since the last reading: at risk, but not yet lapsed.
	assert.Equal(t, 3, p.CurrentStreak)
	assert.Zero(t, store.saves)
}

func TestReconcileLookupError(t *testing.T) {
	store := newFakeStore(freshProfile(7))
	svc := NewService(store, &fakeLookup{err: common.ErrStoreUnavailable}, nil)

	_, err := svc.Reconcile(context.Background(), 7, "2024-03-11")
	assert.ErrorIs(t, err, common.ErrStoreUnavailable)
}

func TestStatus(t *testing.T) {
	store := newFakeStore(profileAt(t, 7, 5, 3, "2024-03-10", "Novice"))
	svc := NewService(store, &fakeLookup{}, nil)

	status, err := svc.Status(context.Background(), 7, "2024-03-11")
	require.NoError(t, err)

	assert.Equal(t, 3, status.CurrentStreak)
	assert.True(t, status.IsStreakAtRisk)
	assert.Equal(t, 1, status.DaysSinceLastReading)
	require.NotNil(t, status.LastReadingDate)
	assert.Equal(t, "2024-03-10", status.LastReadingDate.String())

	// Read-only: nothing persisted.
	assert.Zero(t, store.saves)
}

func TestStatusNeverRead(t *testing.T) {
	store := newFakeStore(freshProfile(7))
	svc := NewService(store, &fakeLookup{}, nil)

	status, err := svc.Status(context.Background(), 7, "2024-03-11")
	require.NoError(t, err)

	assert.Equal(t, 0, status.CurrentStreak)
	assert.False(t, status.IsStreakAtRisk)
	assert.Equal(t, 0, status.DaysSinceLastReading)
	assert.Nil(t, status.LastReadingDate)
}

func TestOverride(t *testing.T) {
	store := newFakeStore(profileAt(t, 7, 5, 3, "2024-03-10", "Novice"))
	svc := NewService(store, &fakeLookup{}, nil)

	err := svc.Override(context.Background(), 7, 100, 0, "Mystic")
	require.NoError(t, err)

	kept := store.profiles[7]
	assert.Equal(t, 100, kept.TotalReadings)
	assert.Equal(t, 0, kept.CurrentStreak)
	assert.Equal(t, "Mystic", kept.Level)
	// The override does not touch the reading date.
	assert.Equal(t, "2024-03-10", kept.LastReadingDate.String())
}

func TestOverrideRejectsNegatives(t *testing.T) {
	store := newFakeStore(profileAt(t, 7, 5, 3, "2024-03-10", "Novice"))
	svc := NewService(store, &fakeLookup{}, nil)

	assert.ErrorIs(t, svc.Override(context.Background(), 7, -1, 0, "Mystic"), common.ErrNegativeValue)
	assert.ErrorIs(t, svc.Override(context.Background(), 7, 0, -1, "Mystic"), common.ErrNegativeValue)
	assert.Zero(t, store.saves)
}

func TestOverrideProfileNotFound(t *testing.T) {
	svc := NewService(newFakeStore(), &fakeLookup{}, nil)
	err := svc.Override(context.Background(), 99, 1, 1, "Novice")
	assert.ErrorIs(t, err, common.ErrProfileNotFound)
}

// End-to-end scenario from the product sheet: a three-day streak
// continued on the next calendar day.
func TestScenarioContinuedStreak(t *testing.T) {
	store := newFakeStore(profileAt(t, 7, 5, 3, "2024-03-10", "Apprentice"))
	svc := NewService(store, &fakeLookup{}, nil)

	p, err := svc.RecordReading(context.Background(), 7, "2024-03-11")
	require.NoError(t, err)

	assert.Equal(t, 6, p.TotalReadings)
	assert.Equal(t, 4, p.CurrentStreak)
	assert.Equal(t, "2024-03-11", p.LastReadingDate.String())
	assert.Equal(t, DefaultLevel(6), p.Level)
}
