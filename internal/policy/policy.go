// Package policy decides whether an actor may read or change a resource.
//
// Every function here is pure: callers load the resource first (reporting
// not found on their own) and only then ask for a decision.
package policy

import (
	"fmt"

	"github.com/forgo/gigbook/internal/model"
)

// Decision is the outcome of a policy check
type Decision bool

const (
	Allow     Decision = true
	Forbidden Decision = false
)

// Allowed reports whether the decision permits the operation
func (d Decision) Allowed() bool {
	return bool(d)
}

// Err returns nil for Allow and a wrapped model.ErrForbidden otherwise
func (d Decision) Err(resource string) error {
	if d {
		return nil
	}
	return fmt.Errorf("%w: not allowed to access %s", model.ErrForbidden, resource)
}

func (d Decision) String() string {
	if d {
		return "allow"
	}
	return "forbidden"
}

// Operation is the kind of access being requested
type Operation string

const (
	OpCreate     Operation = "create"
	OpRead       Operation = "read"
	OpUpdate     Operation = "update"
	OpDelete     Operation = "delete"
	OpTransition Operation = "transition"
)

func (o Operation) valid() bool {
	switch o {
	case OpCreate, OpRead, OpUpdate, OpDelete, OpTransition:
		return true
	}
	return false
}

// Rule selects how owners are matched against the actor
type Rule int

const (
	// SingleOwner requires the actor to be the only owner
	SingleOwner Rule = iota
	// Bilateral requires the actor to be either counterpart. Counterparts may
	// only read or transition; other operations are forbidden.
	Bilateral
)

// Request describes one access check
type Request struct {
	Actor     string
	Owners    []string
	Operation Operation
	Rule      Rule
}

// Evaluate applies the rule of the request. An unknown operation is forbidden.
func Evaluate(req Request) Decision {
	if req.Actor == "" || len(req.Owners) == 0 || !req.Operation.valid() {
		return Forbidden
	}
	switch req.Rule {
	case SingleOwner:
		return decide(req.Owners[0] == req.Actor)
	case Bilateral:
		if req.Operation != OpRead && req.Operation != OpTransition {
			return Forbidden
		}
		for _, owner := range req.Owners {
			if owner == req.Actor {
				return Allow
			}
		}
	}
	return Forbidden
}

// CanCreate checks the owner id supplied with a create request
func CanCreate(actor, requestedOwner string) Decision {
	return Evaluate(Request{Actor: actor, Owners: []string{requestedOwner}, Operation: OpCreate, Rule: SingleOwner})
}

// CanModify checks the recorded owner of an existing single-owner resource
func CanModify(actor, recordedOwner string) Decision {
	return Evaluate(Request{Actor: actor, Owners: []string{recordedOwner}, Operation: OpUpdate, Rule: SingleOwner})
}

// CanDelete checks the recorded owner before a single-owner resource is removed
func CanDelete(actor, recordedOwner string) Decision {
	return Evaluate(Request{Actor: actor, Owners: []string{recordedOwner}, Operation: OpDelete, Rule: SingleOwner})
}

// CanAccessBilateral lets either counterpart read the resource
func CanAccessBilateral(actor, partyA, partyB string) Decision {
	return Evaluate(Request{Actor: actor, Owners: []string{partyA, partyB}, Operation: OpRead, Rule: Bilateral})
}

// CanTransitionBilateral lets either counterpart change the resource's status
func CanTransitionBilateral(actor, partyA, partyB string) Decision {
	return Evaluate(Request{Actor: actor, Owners: []string{partyA, partyB}, Operation: OpTransition, Rule: Bilateral})
}

// CanTransitionProposal gates proposal status writes. The seller may set any
// status; the buyer may only write pending.
func CanTransitionProposal(actor, buyer, seller string, next model.Status) Decision {
	if actor == "" {
		return Forbidden
	}
	if actor == seller {
		return Allow
	}
	if actor == buyer {
		return decide(next == model.ProposalPending)
	}
	return Forbidden
}

// CanUpdateProfile only lets an identity change its own profile
func CanUpdateProfile(actor, profileID string) Decision {
	return Evaluate(Request{Actor: actor, Owners: []string{profileID}, Operation: OpUpdate, Rule: SingleOwner})
}

func decide(ok bool) Decision {
	if ok {
		return Allow
	}
	return Forbidden
}
