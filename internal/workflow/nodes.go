package workflow

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"booking-agent-server/internal/availability"
	"booking-agent-server/internal/booking"
	"booking-agent-server/internal/classifier"
	"booking-agent-server/internal/models"
	"booking-agent-server/internal/store"
)

// routeUserAction maps the caller-supplied action onto one of exactly three
// routes. It is total: empty or unrecognised input means "continue".
func routeUserAction(action string) string {
	switch strings.ToLower(strings.TrimSpace(action)) {
	case actionBook:
		return actionBook
	case actionQuit:
		return actionQuit
	default:
		return actionContinue
	}
}

// exec dispatches one node. Domain failures become user-facing text in
// state.Message; only infrastructure and contract violations return errors.
func (e *Engine) exec(ctx context.Context, node Node, state *State) error {
	switch node {
	case NodeClassify:
		return e.classify(ctx, state)
	case NodeGetSpecialist:
		return e.getSpecialist(ctx, state)
	case NodeValidateSpecialty:
		return e.validateSpecialty(ctx, state)
	case NodeFindProfessional:
		return e.findProfessional(ctx, state)
	case NodeFetchProfessionals:
		return e.fetchProfessionals(ctx, state)
	case NodeCurrentNextWeekSlots:
		return e.weekSlots(ctx, state, []int{1, 2})
	case NodeSpecificWeekSlots:
		week := state.WeekNumber
		if week < 1 {
			week = 1
		}
		return e.weekSlots(ctx, state, []int{week})
	case NodeBookAppointment:
		return e.bookAppointment(ctx, state)
	case NodeFormatResponse:
		state.FinalAnswer = fmt.Sprintf("QUERY: %s\n\nRESULT:\n%s", state.Query, state.Message)
		return nil
	default:
		return fmt.Errorf("unknown node %q", node)
	}
}

// classify labels the query. Classifier failures degrade to the safe
// default: the criteria-based search path still leads somewhere useful.
func (e *Engine) classify(ctx context.Context, state *State) error {
	names, err := e.professionalNames(ctx)
	if err != nil {
		return err
	}
	label, err := e.classifier.ClassifyQuery(ctx, state.Query, names)
	if err != nil {
		e.logger.Warn("classifier unavailable, using safe default", zap.Error(err))
		label = classifier.LabelProfessionalNotExists
	}
	state.Classification = string(label)
	return nil
}

func (e *Engine) getSpecialist(ctx context.Context, state *State) error {
	specialties, err := e.store.ListSpecialties(ctx)
	if err != nil {
		return err
	}
	specialty, err := e.classifier.ExtractSpecialty(ctx, state.Query, specialties)
	if err != nil {
		e.logger.Warn("specialty extraction unavailable", zap.Error(err))
		specialty = classifier.NoSpecialty
	}
	if specialty != classifier.NoSpecialty {
		state.Specialty = specialty
	}
	return nil
}

// validateSpecialty narrows the professional list to the extracted
// specialty, falling back to the full roster plus the known specialties when
// nothing matched.
func (e *Engine) validateSpecialty(ctx context.Context, state *State) error {
	if state.Specialty != "" {
		matches, err := e.store.SearchProfessionals(ctx, store.Criteria{Specialty: state.Specialty})
		if err != nil {
			return err
		}
		if len(matches) > 0 {
			state.ProfessionalList = renderProfessionals(matches)
			return nil
		}
	}

	all, err := e.store.ListProfessionals(ctx)
	if err != nil {
		return err
	}
	specialties, err := e.store.ListSpecialties(ctx)
	if err != nil {
		return err
	}
	state.ProfessionalList = renderProfessionals(all)
	state.Message = fmt.Sprintf(
		"No professionals matched a specific specialty. Known specialties: %s.",
		strings.Join(specialties, ", "),
	)
	return nil
}

// findProfessional is a pure suspension point: it only emits the question
// the UI should ask.
func (e *Engine) findProfessional(ctx context.Context, state *State) error {
	state.HumanQuestion = "What are you looking for in a professional? (e.g., location, max fee)"
	return nil
}

func (e *Engine) fetchProfessionals(ctx context.Context, state *State) error {
	criteria, err := e.parseCriteria(ctx, state.ProfessionalCriteria)
	if err != nil {
		return err
	}
	matches, err := e.store.SearchProfessionals(ctx, criteria)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		state.ProfessionalList = ""
		state.Message = "No professionals found matching criteria."
		return nil
	}
	state.ProfessionalList = renderProfessionals(matches)
	return nil
}

// weekSlots lists open slots for the given week offsets. When no
// professional has been resolved yet, a last-ditch extraction from the raw
// query runs first.
func (e *Engine) weekSlots(ctx context.Context, state *State, weeks []int) error {
	if state.ProfessionalName == "" {
		names, err := e.professionalNames(ctx)
		if err != nil {
			return err
		}
		name, err := e.classifier.ExtractProfessionalName(ctx, state.Query, names)
		if err != nil {
			e.logger.Warn("name extraction unavailable", zap.Error(err))
			name = classifier.NoSpecialty
		}
		if name != classifier.NoSpecialty {
			state.ProfessionalName = name
		}
	}
	if state.ProfessionalName == "" {
		state.TimeSlots = ""
		state.Message = "Professional name not set."
		return nil
	}

	listing, err := e.availability.SlotsForWeeks(ctx, state.ProfessionalName, weeks)
	switch {
	case errors.Is(err, availability.ErrProfessionalNotFound):
		state.TimeSlots = ""
		state.Message = fmt.Sprintf("Professional %s not found.", state.ProfessionalName)
	case errors.Is(err, availability.ErrNoTemplate):
		state.TimeSlots = ""
		state.Message = fmt.Sprintf("No timeslots configured for %s.", state.ProfessionalName)
	case errors.Is(err, availability.ErrNoAvailability):
		state.TimeSlots = ""
		state.Message = fmt.Sprintf("No available appointments for %s in the requested weeks.", state.ProfessionalName)
	case err != nil:
		return err
	default:
		rendered := listing.Render()
		state.TimeSlots = rendered
		state.Message = rendered
	}
	return nil
}

func (e *Engine) bookAppointment(ctx context.Context, state *State) error {
	if state.ProfessionalName == "" || state.ClientName == "" || state.DayOfWeek == "" || state.StartTime == "" {
		state.Message = "Missing booking details. Please provide professional name, day, and time."
		state.BookingFailed = true
		return nil
	}

	_, confirmation, err := e.booking.Book(ctx, booking.Request{
		ProfessionalName: state.ProfessionalName,
		ClientName:       state.ClientName,
		DayOfWeek:        state.DayOfWeek,
		StartTime:        state.StartTime,
		WeekNumber:       state.WeekNumber,
	})
	switch {
	case errors.Is(err, booking.ErrProfessionalNotFound):
		state.Message = fmt.Sprintf("Professional %s not found.", state.ProfessionalName)
	case errors.Is(err, booking.ErrClientNotFound):
		state.Message = fmt.Sprintf("Client %s not found.", state.ClientName)
	case errors.Is(err, booking.ErrInvalidDay):
		state.Message = fmt.Sprintf("%q is not a valid day of the week.", state.DayOfWeek)
	case errors.Is(err, booking.ErrSlotNotOffered):
		state.Message = fmt.Sprintf("Time slot not available for %s on %s at %s.",
			state.ProfessionalName, state.DayOfWeek, state.StartTime)
	case errors.Is(err, booking.ErrSlotAlreadyBooked):
		state.Message = fmt.Sprintf("This slot is already booked for %s on %s at %s.",
			state.ProfessionalName, state.DayOfWeek, state.StartTime)
	case err != nil:
		return err
	default:
		state.Message = confirmation
		state.BookingFailed = false
		return nil
	}
	state.BookingFailed = true
	return nil
}

func (e *Engine) professionalNames(ctx context.Context) ([]string, error) {
	professionals, err := e.store.ListProfessionals(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(professionals))
	for _, p := range professionals {
		names = append(names, p.Name)
	}
	return names, nil
}

// parseCriteria interprets the free-text search criteria: a fee ceiling
// (any number in the text), a location (matched against known locations)
// and a specialty (matched against known specialties).
func (e *Engine) parseCriteria(ctx context.Context, text string) (store.Criteria, error) {
	var criteria store.Criteria
	lowered := strings.ToLower(text)

	professionals, err := e.store.ListProfessionals(ctx)
	if err != nil {
		return criteria, err
	}
	for _, p := range professionals {
		if p.Location != "" && strings.Contains(lowered, strings.ToLower(p.Location)) {
			criteria.Location = p.Location
			break
		}
	}

	specialties, err := e.store.ListSpecialties(ctx)
	if err != nil {
		return criteria, err
	}
	for _, s := range specialties {
		if strings.Contains(lowered, strings.ToLower(s)) {
			criteria.Specialty = s
			break
		}
	}

	for _, field := range strings.FieldsFunc(lowered, func(r rune) bool {
		return !('0' <= r && r <= '9')
	}) {
		if fee, err := strconv.Atoi(field); err == nil && fee > 0 {
			criteria.MaxFee = fee
			break
		}
	}
	return criteria, nil
}

func renderProfessionals(professionals []models.Professional) string {
	var b strings.Builder
	b.WriteString("Matching professionals:\n")
	for _, p := range professionals {
		fmt.Fprintf(&b, "- %s: %s, $%d", p.Name, p.Location, p.Fee)
		if p.Specialty != "" {
			fmt.Fprintf(&b, " (%s)", p.Specialty)
		}
		b.WriteString("\n")
	}
	return b.String()
}
