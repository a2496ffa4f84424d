package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/forgo/gigbook/internal/model"
)

func TestCanCreate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Allow, CanCreate("user-1", "user-1"))
	assert.Equal(t, Forbidden, CanCreate("user-1", "user-2"))
	assert.Equal(t, Forbidden, CanCreate("", ""))
}

func TestCanModify(t *testing.T) {
	t.Parallel()

	assert.True(t, CanModify("owner", "owner").Allowed())
	assert.False(t, CanModify("intruder", "owner").Allowed())
}

func TestCanDelete(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Allow, CanDelete("owner", "owner"))
	assert.Equal(t, Forbidden, CanDelete("intruder", "owner"))
}

func TestBilateralAccess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		actor string
		want  Decision
	}{
		{"professional", "pro-1", Allow},
		{"client", "cli-1", Allow},
		{"stranger", "other", Forbidden},
		{"anonymous", "", Forbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAccessBilateral(tt.actor, "pro-1", "cli-1"))
			assert.Equal(t, tt.want, CanTransitionBilateral(tt.actor, "pro-1", "cli-1"))
		})
	}
}

func TestEvaluate_Operation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		op   Operation
		rule Rule
		want Decision
	}{
		{"bilateral read", OpRead, Bilateral, Allow},
		{"bilateral transition", OpTransition, Bilateral, Allow},
		{"bilateral update", OpUpdate, Bilateral, Forbidden},
		{"bilateral delete", OpDelete, Bilateral, Forbidden},
		{"single owner delete", OpDelete, SingleOwner, Allow},
		{"missing operation", "", SingleOwner, Forbidden},
		{"unknown operation", "archive", SingleOwner, Forbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Evaluate(Request{Actor: "pro-1", Owners: []string{"pro-1", "cli-1"}, Operation: tt.op, Rule: tt.rule})
			assert.Equal(t, tt.want, d)
		})
	}
}

func TestCanTransitionProposal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		actor string
		next  model.Status
		want  Decision
	}{
		{"seller accepts", "seller", model.ProposalAccepted, Allow},
		{"seller rejects", "seller", model.ProposalRejected, Allow},
		{"seller reopens", "seller", model.ProposalPending, Allow},
		{"buyer accepts", "buyer", model.ProposalAccepted, Forbidden},
		{"buyer rejects", "buyer", model.ProposalRejected, Forbidden},
		{"buyer writes pending", "buyer", model.ProposalPending, Allow},
		{"stranger", "other", model.ProposalPending, Forbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransitionProposal(tt.actor, "buyer", "seller", tt.next))
		})
	}
}

func TestCanUpdateProfile(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Allow, CanUpdateProfile("id-1", "id-1"))
	assert.Equal(t, Forbidden, CanUpdateProfile("id-2", "id-1"))
}

func TestEvaluate_SingleOwnerIgnoresExtraOwners(t *testing.T) {
	t.Parallel()

	d := Evaluate(Request{Actor: "b", Owners: []string{"a", "b"}, Operation: OpDelete, Rule: SingleOwner})

	assert.Equal(t, Forbidden, d)
}

func TestDecisionErr(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Allow.Err("booking"))

	err := Forbidden.Err("booking")
	assert.ErrorIs(t, err, model.ErrForbidden)
	assert.Contains(t, err.Error(), "booking")
	assert.Equal(t, "forbidden", Forbidden.String())
}
