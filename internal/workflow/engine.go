// Package workflow drives the booking conversation as an explicit state
// machine: a graph of nodes with conditional routing, a checkpoint persisted
// after every step, and suspension points where control returns to the
// caller pending human input.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"booking-agent-server/internal/availability"
	"booking-agent-server/internal/booking"
	"booking-agent-server/internal/classifier"
	"booking-agent-server/internal/store"
)

// Node identifies one step of the conversation graph.
type Node string

const (
	NodeClassify             Node = "classify"
	NodeGetSpecialist        Node = "get_specialist"
	NodeValidateSpecialty    Node = "validate_specialty"
	NodeFindProfessional     Node = "find_professional"
	NodeFetchProfessionals   Node = "fetch_professionals"
	NodeCurrentNextWeekSlots Node = "get_current_next_week_slots"
	NodeSpecificWeekSlots    Node = "get_specific_week_slots"
	NodeBookAppointment      Node = "book_appointment"
	NodeFormatResponse       Node = "format_response"
	nodeEnd                  Node = "end"
)

// User actions recognised by the routing function. Anything else counts as
// actionContinue.
const (
	actionContinue = "continue"
	actionBook     = "book"
	actionQuit     = "quit"
)

// defaultStepLimit bounds the number of node executions per Start/Resume
// call. The self-loop on the specific-week node would otherwise run
// unbounded if routing ever miscomputed.
const defaultStepLimit = 20

// ErrStepLimitExceeded indicates a routing defect, not a user-correctable
// condition; the conversation is aborted.
var ErrStepLimitExceeded = errors.New("workflow: step limit exceeded")

// Config wires the engine's collaborators.
type Config struct {
	Checkpoints  CheckpointStore
	Classifier   classifier.Classifier
	Availability *availability.Service
	Booking      *booking.Service
	Store        store.Store
	Logger       *zap.Logger
	// StepLimit caps node executions per invocation; 0 means the default.
	StepLimit int
	// SpecialtyFlow enables the symptom-to-specialty sub-flow between
	// classification and the professional search.
	SpecialtyFlow bool
}

// Engine executes conversation threads. Safe for use from multiple
// goroutines as long as each thread ID is driven by one caller at a time.
type Engine struct {
	checkpoints     CheckpointStore
	classifier      classifier.Classifier
	availability    *availability.Service
	booking         *booking.Service
	store           store.Store
	logger          *zap.Logger
	stepLimit       int
	specialtyFlow   bool
	interruptBefore map[Node]bool
	interruptAfter  map[Node]bool
}

// NewEngine builds the conversation engine with the default interruption
// points: before the human-input nodes, after the slot-listing nodes.
func NewEngine(cfg Config) *Engine {
	stepLimit := cfg.StepLimit
	if stepLimit <= 0 {
		stepLimit = defaultStepLimit
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	before := map[Node]bool{
		NodeFindProfessional:   true,
		NodeFetchProfessionals: true,
	}
	if cfg.SpecialtyFlow {
		before[NodeClassify] = true
	}
	return &Engine{
		checkpoints:     cfg.Checkpoints,
		classifier:      cfg.Classifier,
		availability:    cfg.Availability,
		booking:         cfg.Booking,
		store:           cfg.Store,
		logger:          logger,
		stepLimit:       stepLimit,
		specialtyFlow:   cfg.SpecialtyFlow,
		interruptBefore: before,
		interruptAfter: map[Node]bool{
			NodeCurrentNextWeekSlots: true,
			NodeSpecificWeekSlots:    true,
		},
	}
}

// Start begins a new thread and runs it until the first suspension point or
// the terminal node.
func (e *Engine) Start(ctx context.Context, threadID, query, clientName string) (State, error) {
	cp := Checkpoint{State: State{Query: query, ClientName: clientName}}
	return e.run(ctx, threadID, cp)
}

// Resume merges the patch into the thread's persisted state and continues
// execution. Resuming a finished thread returns its final state unchanged.
func (e *Engine) Resume(ctx context.Context, threadID string, patch Patch) (State, error) {
	cp, err := e.checkpoints.Get(ctx, threadID)
	if err != nil {
		return State{}, err
	}
	if cp.Done {
		return cp.State, nil
	}
	cp.State.Apply(patch)
	return e.run(ctx, threadID, cp)
}

// GetState returns a read-only snapshot of the thread's state.
func (e *Engine) GetState(ctx context.Context, threadID string) (State, error) {
	cp, err := e.checkpoints.Get(ctx, threadID)
	if err != nil {
		return State{}, err
	}
	return cp.State, nil
}

// run executes nodes until a suspension point, the terminal node, or the
// step limit. The checkpoint is persisted after every step.
func (e *Engine) run(ctx context.Context, threadID string, cp Checkpoint) (State, error) {
	for steps := 0; steps < e.stepLimit; steps++ {
		var next Node
		if cp.Pending != "" {
			// Resuming into a node the engine paused in front of.
			next, cp.Pending = cp.Pending, ""
		} else {
			next = e.route(cp)
			if next == nodeEnd {
				cp.Done = true
				if err := e.checkpoints.Put(ctx, threadID, cp); err != nil {
					return State{}, err
				}
				return cp.State, nil
			}
			if e.interruptBefore[next] {
				cp.Pending = next
				if err := e.checkpoints.Put(ctx, threadID, cp); err != nil {
					return State{}, err
				}
				return cp.State, nil
			}
		}

		started := time.Now()
		if err := e.exec(ctx, next, &cp.State); err != nil {
			return State{}, fmt.Errorf("workflow: node %s: %w", next, err)
		}
		e.logger.Debug("node executed",
			zap.String("thread_id", threadID),
			zap.String("node", string(next)),
			zap.Duration("took", time.Since(started)),
		)

		cp.Current = next
		if err := e.checkpoints.Put(ctx, threadID, cp); err != nil {
			return State{}, err
		}

		if e.interruptAfter[next] {
			return cp.State, nil
		}
		// A failed booking suspends instead of terminating so the caller
		// can retry with corrected parameters or quit.
		if next == NodeBookAppointment && cp.State.BookingFailed {
			return cp.State, nil
		}
	}
	return State{}, ErrStepLimitExceeded
}

// route computes the next node from the last executed node and the current
// state. Conditional edges are evaluated here, at resume time, so caller
// patches to user_action and week_number take effect.
func (e *Engine) route(cp Checkpoint) Node {
	switch cp.Current {
	case "":
		return NodeClassify
	case NodeClassify:
		if classifier.Label(cp.State.Classification) == classifier.LabelProfessionalExists {
			return NodeCurrentNextWeekSlots
		}
		if e.specialtyFlow {
			return NodeGetSpecialist
		}
		return NodeFindProfessional
	case NodeGetSpecialist:
		return NodeValidateSpecialty
	case NodeValidateSpecialty:
		return NodeFindProfessional
	case NodeFindProfessional:
		return NodeFetchProfessionals
	case NodeFetchProfessionals:
		return NodeCurrentNextWeekSlots
	case NodeCurrentNextWeekSlots, NodeSpecificWeekSlots:
		switch routeUserAction(cp.State.UserAction) {
		case actionBook:
			return NodeBookAppointment
		case actionQuit:
			return NodeFormatResponse
		default:
			return NodeSpecificWeekSlots
		}
	case NodeBookAppointment:
		if cp.State.BookingFailed && routeUserAction(cp.State.UserAction) != actionQuit {
			return NodeBookAppointment
		}
		return NodeFormatResponse
	default: // NodeFormatResponse
		return nodeEnd
	}
}
