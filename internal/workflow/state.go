package workflow

// State is the conversation state accumulated across one thread. It is
// plain serialisable data: checkpoints persist it after every step and any
// process can resume a thread from it.
type State struct {
	Query                string `json:"query"`
	ClientName           string `json:"clientName"`
	ProfessionalName     string `json:"professionalName,omitempty"`
	Specialty            string `json:"specialty,omitempty"`
	ProfessionalCriteria string `json:"professionalCriteria,omitempty"`
	ProfessionalList     string `json:"professionalList,omitempty"`
	DayOfWeek            string `json:"dayOfWeek,omitempty"`
	StartTime            string `json:"startTime,omitempty"`
	WeekNumber           int    `json:"weekNumber,omitempty"`
	UserAction           string `json:"userAction,omitempty"`
	Classification       string `json:"classification,omitempty"`
	TimeSlots            string `json:"timeslots,omitempty"`
	HumanQuestion        string `json:"humanQuestion,omitempty"`
	Message              string `json:"message,omitempty"`
	FinalAnswer          string `json:"finalAnswer,omitempty"`
	BookingFailed        bool   `json:"bookingFailed,omitempty"`
}

// Patch carries the fields a caller may update between suspensions. Nil
// pointers leave the corresponding state field untouched.
type Patch struct {
	ProfessionalName     *string `json:"professionalName,omitempty"`
	ProfessionalCriteria *string `json:"professionalCriteria,omitempty"`
	ClientName           *string `json:"clientName,omitempty"`
	DayOfWeek            *string `json:"dayOfWeek,omitempty"`
	StartTime            *string `json:"startTime,omitempty"`
	WeekNumber           *int    `json:"weekNumber,omitempty"`
	UserAction           *string `json:"userAction,omitempty"`
}

// Apply merges a patch into the state.
func (s *State) Apply(p Patch) {
	if p.ProfessionalName != nil {
		s.ProfessionalName = *p.ProfessionalName
	}
	if p.ProfessionalCriteria != nil {
		s.ProfessionalCriteria = *p.ProfessionalCriteria
	}
	if p.ClientName != nil {
		s.ClientName = *p.ClientName
	}
	if p.DayOfWeek != nil {
		s.DayOfWeek = *p.DayOfWeek
	}
	if p.StartTime != nil {
		s.StartTime = *p.StartTime
	}
	if p.WeekNumber != nil {
		s.WeekNumber = *p.WeekNumber
	}
	if p.UserAction != nil {
		s.UserAction = *p.UserAction
	}
}
