package workflow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booking-agent-server/internal/availability"
	"booking-agent-server/internal/booking"
	"booking-agent-server/internal/classifier"
	"booking-agent-server/internal/store"
)

// fixedNow is a Wednesday; the current week started Monday 2026-03-02.
func fixedNow() time.Time {
	return time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC)
}

func newTestEngine(t *testing.T, mutate func(*Config)) (*Engine, *store.MemStore) {
	t.Helper()
	st := store.NewSeededMemStore()
	cfg := Config{
		Checkpoints:  NewMemoryCheckpoints(),
		Classifier:   classifier.NewKeyword(),
		Availability: availability.NewService(st, fixedNow),
		Booking:      booking.NewService(st, fixedNow),
		Store:        st,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return NewEngine(cfg), st
}

func strptr(s string) *string { return &s }
func intptr(i int) *int       { return &i }

func TestRouteUserActionIsTotal(t *testing.T) {
	assert.Equal(t, actionBook, routeUserAction("book"))
	assert.Equal(t, actionBook, routeUserAction("  BOOK "))
	assert.Equal(t, actionQuit, routeUserAction("quit"))
	assert.Equal(t, actionContinue, routeUserAction("continue"))
	assert.Equal(t, actionContinue, routeUserAction(""))
	assert.Equal(t, actionContinue, routeUserAction("gibberish"))
}

func TestKnownProfessionalFlow(t *testing.T) {
	engine, _ := newTestEngine(t, nil)
	ctx := context.Background()

	// Start: classify resolves Ali, slot listing runs, then the engine
	// suspends after the listing node.
	state, err := engine.Start(ctx, "t1", "Book an appointment with Ali", "Malik")
	require.NoError(t, err)
	assert.Equal(t, string(classifier.LabelProfessionalExists), state.Classification)
	assert.Equal(t, "Ali", state.ProfessionalName)
	assert.Contains(t, state.TimeSlots, "Available appointments for Ali:")
	assert.Contains(t, state.TimeSlots, "Current Week")
	assert.Contains(t, state.TimeSlots, "Next Week")
	assert.Empty(t, state.FinalAnswer)

	// Continue browsing: the specific-week node self-loops with the
	// requested offset.
	state, err = engine.Resume(ctx, "t1", Patch{
		UserAction: strptr("continue"),
		WeekNumber: intptr(3),
	})
	require.NoError(t, err)
	assert.Contains(t, state.TimeSlots, "Week 3")
	assert.NotContains(t, state.TimeSlots, "Current Week")
	assert.Empty(t, state.FinalAnswer)

	// Book: runs the booking node and the formatter to completion.
	state, err = engine.Resume(ctx, "t1", Patch{
		UserAction: strptr("book"),
		DayOfWeek:  strptr("Monday"),
		StartTime:  strptr("09:00"),
		WeekNumber: intptr(2),
	})
	require.NoError(t, err)
	assert.False(t, state.BookingFailed)
	assert.Contains(t, state.Message, "Appointment booked successfully for Malik with Ali")
	assert.Contains(t, state.Message, "2026-03-09")
	assert.Contains(t, state.FinalAnswer, "QUERY: Book an appointment with Ali")
	assert.Contains(t, state.FinalAnswer, "Appointment booked successfully")
}

func TestResumingFinishedThreadIsIdempotent(t *testing.T) {
	engine, st := newTestEngine(t, nil)
	ctx := context.Background()

	_, err := engine.Start(ctx, "t1", "Book an appointment with Ali", "Malik")
	require.NoError(t, err)
	final, err := engine.Resume(ctx, "t1", Patch{
		UserAction: strptr("book"),
		DayOfWeek:  strptr("Monday"),
		StartTime:  strptr("09:00"),
		WeekNumber: intptr(2),
	})
	require.NoError(t, err)
	require.NotEmpty(t, final.FinalAnswer)
	countAfter, err := st.CountAppointments(ctx)
	require.NoError(t, err)

	// Resuming a done thread returns the final state and books nothing.
	again, err := engine.Resume(ctx, "t1", Patch{UserAction: strptr("book")})
	require.NoError(t, err)
	assert.Equal(t, final, again)
	count, err := st.CountAppointments(ctx)
	require.NoError(t, err)
	assert.Equal(t, countAfter, count)

	snapshot, err := engine.GetState(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, final, snapshot)
}

func TestQuitEndsConversation(t *testing.T) {
	engine, _ := newTestEngine(t, nil)
	ctx := context.Background()

	_, err := engine.Start(ctx, "t1", "Book an appointment with Ali", "Malik")
	require.NoError(t, err)

	state, err := engine.Resume(ctx, "t1", Patch{UserAction: strptr("quit")})
	require.NoError(t, err)
	assert.Contains(t, state.FinalAnswer, "QUERY:")
	assert.Contains(t, state.FinalAnswer, "Available appointments for Ali:")
}

func TestUnknownProfessionalPausesBeforeHumanInput(t *testing.T) {
	engine, _ := newTestEngine(t, nil)
	ctx := context.Background()

	// No known name in the query: the engine pauses before the
	// find-professional node without running it.
	state, err := engine.Start(ctx, "t1", "I need help with my heart", "Malik")
	require.NoError(t, err)
	assert.Equal(t, string(classifier.LabelProfessionalNotExists), state.Classification)
	assert.Empty(t, state.HumanQuestion)

	// First resume runs the question node, then pauses before the fetch.
	state, err = engine.Resume(ctx, "t1", Patch{})
	require.NoError(t, err)
	assert.Contains(t, state.HumanQuestion, "What are you looking for in a professional?")
	assert.Empty(t, state.ProfessionalList)

	// Supplying criteria runs the search; with no resolvable name the slot
	// listing degrades to a message instead of failing.
	state, err = engine.Resume(ctx, "t1", Patch{
		ProfessionalCriteria: strptr("somewhere in beirut under 60"),
	})
	require.NoError(t, err)
	assert.Contains(t, state.ProfessionalList, "Malik")
	assert.NotContains(t, state.ProfessionalList, "Sara")
	assert.Equal(t, "Professional name not set.", state.Message)

	// Picking a professional from the list resumes the slot browsing loop.
	state, err = engine.Resume(ctx, "t1", Patch{
		ProfessionalName: strptr("Malik"),
		WeekNumber:       intptr(2),
	})
	require.NoError(t, err)
	assert.Contains(t, state.TimeSlots, "Available appointments for Malik:")
}

func TestNoMatchingProfessionals(t *testing.T) {
	engine, _ := newTestEngine(t, nil)
	ctx := context.Background()

	_, err := engine.Start(ctx, "t1", "I need a professional", "Malik")
	require.NoError(t, err)
	_, err = engine.Resume(ctx, "t1", Patch{})
	require.NoError(t, err)

	state, err := engine.Resume(ctx, "t1", Patch{
		ProfessionalCriteria: strptr("tripoli under 10"),
	})
	require.NoError(t, err)
	assert.Empty(t, state.ProfessionalList)
	assert.Empty(t, state.TimeSlots)
	// The slot-listing node runs right after the empty search and reports
	// the still-unresolved name.
	assert.Equal(t, "Professional name not set.", state.Message)
}

func TestClassifierFailureDegradesToSearchPath(t *testing.T) {
	engine, _ := newTestEngine(t, func(cfg *Config) {
		cfg.Classifier = failingClassifier{}
	})
	ctx := context.Background()

	state, err := engine.Start(ctx, "t1", "Book an appointment with Ali", "Malik")
	require.NoError(t, err)
	assert.Equal(t, string(classifier.LabelProfessionalNotExists), state.Classification)
}

func TestMissingBookingDetailsSuspendsForRetry(t *testing.T) {
	engine, st := newTestEngine(t, nil)
	ctx := context.Background()
	seedCount, err := st.CountAppointments(ctx)
	require.NoError(t, err)

	_, err = engine.Start(ctx, "t1", "Book an appointment with Ali", "Malik")
	require.NoError(t, err)

	// Booking without day and time fails but does not terminate.
	state, err := engine.Resume(ctx, "t1", Patch{UserAction: strptr("book")})
	require.NoError(t, err)
	assert.True(t, state.BookingFailed)
	assert.Equal(t, "Missing booking details. Please provide professional name, day, and time.", state.Message)
	assert.Empty(t, state.FinalAnswer)
	count, err := st.CountAppointments(ctx)
	require.NoError(t, err)
	assert.Equal(t, seedCount, count)

	// Retrying with complete details books and terminates.
	state, err = engine.Resume(ctx, "t1", Patch{
		DayOfWeek:  strptr("Thursday"),
		StartTime:  strptr("11:00"),
		WeekNumber: intptr(1),
	})
	require.NoError(t, err)
	assert.False(t, state.BookingFailed)
	assert.Contains(t, state.FinalAnswer, "Appointment booked successfully")
	assert.Contains(t, state.FinalAnswer, "2026-03-05")
}

func TestQuitAfterFailedBooking(t *testing.T) {
	engine, _ := newTestEngine(t, nil)
	ctx := context.Background()

	_, err := engine.Start(ctx, "t1", "Book an appointment with Ali", "Malik")
	require.NoError(t, err)
	state, err := engine.Resume(ctx, "t1", Patch{
		UserAction: strptr("book"),
		DayOfWeek:  strptr("Friday"),
		StartTime:  strptr("09:00"),
		WeekNumber: intptr(2),
	})
	require.NoError(t, err)
	require.True(t, state.BookingFailed)
	assert.Contains(t, state.Message, "Time slot not available for Ali")

	state, err = engine.Resume(ctx, "t1", Patch{UserAction: strptr("quit")})
	require.NoError(t, err)
	assert.Contains(t, state.FinalAnswer, "Time slot not available for Ali")
}

func TestSpecialtyFlow(t *testing.T) {
	engine, _ := newTestEngine(t, func(cfg *Config) {
		cfg.SpecialtyFlow = true
	})
	ctx := context.Background()

	// With the specialty flow on, the engine pauses before classification
	// so the caller can amend the query first.
	state, err := engine.Start(ctx, "t1", "My heart has been racing", "Malik")
	require.NoError(t, err)
	assert.Empty(t, state.Classification)

	// Resume classifies, extracts Cardiology from the symptom, and narrows
	// the roster before pausing for criteria.
	state, err = engine.Resume(ctx, "t1", Patch{})
	require.NoError(t, err)
	assert.Equal(t, "Cardiology", state.Specialty)
	assert.Contains(t, state.ProfessionalList, "Ali")
	assert.Contains(t, state.ProfessionalList, "Mohamed")
	assert.NotContains(t, state.ProfessionalList, "Fatima")
}

func TestSpecialtyFlowFallsBackToFullRoster(t *testing.T) {
	engine, _ := newTestEngine(t, func(cfg *Config) {
		cfg.SpecialtyFlow = true
	})
	ctx := context.Background()

	_, err := engine.Start(ctx, "t1", "I just need an appointment", "Malik")
	require.NoError(t, err)
	state, err := engine.Resume(ctx, "t1", Patch{})
	require.NoError(t, err)

	assert.Empty(t, state.Specialty)
	assert.Contains(t, state.ProfessionalList, "Fatima")
	assert.Contains(t, state.Message, "Known specialties: Cardiology, Dermatology, Neurology, Pediatrics.")
}

func TestStepLimit(t *testing.T) {
	engine, _ := newTestEngine(t, func(cfg *Config) {
		cfg.StepLimit = 1
	})

	// Classification alone consumes the only step; the listing node never
	// gets to run.
	_, err := engine.Start(context.Background(), "t1", "Book an appointment with Ali", "Malik")
	assert.ErrorIs(t, err, ErrStepLimitExceeded)
}

func TestResumeUnknownThread(t *testing.T) {
	engine, _ := newTestEngine(t, nil)

	_, err := engine.Resume(context.Background(), "missing", Patch{})
	assert.ErrorIs(t, err, ErrThreadNotFound)

	_, err = engine.GetState(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrThreadNotFound)
}

// failingClassifier simulates an unreachable model service.
type failingClassifier struct{}

func (failingClassifier) ClassifyQuery(ctx context.Context, query string, knownNames []string) (classifier.Label, error) {
	return "", classifier.ErrUnavailable
}

func (failingClassifier) ExtractSpecialty(ctx context.Context, query string, knownSpecialties []string) (string, error) {
	return "", classifier.ErrUnavailable
}

func (failingClassifier) ExtractProfessionalName(ctx context.Context, query string, knownNames []string) (string, error) {
	return "", classifier.ErrUnavailable
}
