package model

import "fmt"

// Status is a single lifecycle field value
type Status string

// Booking statuses
const (
	BookingPending   Status = "pending"
	BookingConfirmed Status = "confirmed"
	BookingCompleted Status = "completed"
	BookingCancelled Status = "cancelled"
)

// Quote request statuses
const (
	QuotePending   Status = "pending"
	QuoteAnswered  Status = "answered"
	QuoteCancelled Status = "cancelled"
)

// Equipment proposal statuses
const (
	ProposalPending  Status = "pending"
	ProposalAccepted Status = "accepted"
	ProposalRejected Status = "rejected"
)

// StatusMachine describes the states of one lifecycle field.
//
// In permissive mode any known state may follow any other, including leaving
// a terminal state. Strict mode only accepts the edges listed in the table.
type StatusMachine struct {
	Name     string
	Initial  Status
	states   []Status
	terminal map[Status]bool
	edges    map[Status][]Status
}

func newStatusMachine(name string, initial Status, states []Status, terminal []Status, edges map[Status][]Status) *StatusMachine {
	m := &StatusMachine{
		Name:     name,
		Initial:  initial,
		states:   states,
		terminal: make(map[Status]bool, len(terminal)),
		edges:    edges,
	}
	for _, s := range terminal {
		m.terminal[s] = true
	}
	return m
}

var (
	BookingMachine = newStatusMachine("booking", BookingPending,
		[]Status{BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled},
		[]Status{BookingCompleted, BookingCancelled},
		map[Status][]Status{
			BookingPending:   {BookingConfirmed, BookingCancelled},
			BookingConfirmed: {BookingCompleted, BookingCancelled},
		},
	)

	QuoteRequestMachine = newStatusMachine("quote request", QuotePending,
		[]Status{QuotePending, QuoteAnswered, QuoteCancelled},
		[]Status{QuoteAnswered, QuoteCancelled},
		map[Status][]Status{
			QuotePending: {QuoteAnswered, QuoteCancelled},
		},
	)

	ProposalMachine = newStatusMachine("equipment proposal", ProposalPending,
		[]Status{ProposalPending, ProposalAccepted, ProposalRejected},
		[]Status{ProposalAccepted, ProposalRejected},
		map[Status][]Status{
			ProposalPending: {ProposalAccepted, ProposalRejected},
		},
	)
)

// States returns every state of the machine in declaration order
func (m *StatusMachine) States() []Status {
	out := make([]Status, len(m.states))
	copy(out, m.states)
	return out
}

// Known reports whether s is a state of this machine
func (m *StatusMachine) Known(s Status) bool {
	for _, state := range m.states {
		if state == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s is conventionally final
func (m *StatusMachine) IsTerminal(s Status) bool {
	return m.terminal[s]
}

// Check validates a transition. The target must be a known state; in strict
// mode the pair must also be an edge of the table.
func (m *StatusMachine) Check(from, to Status, strict bool) error {
	if !m.Known(to) {
		return fmt.Errorf("%w: %q is not a %s status", ErrUnknownStatus, to, m.Name)
	}
	if !strict {
		return nil
	}
	for _, next := range m.edges[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s %s -> %s", ErrInvalidTransition, m.Name, from, to)
}
