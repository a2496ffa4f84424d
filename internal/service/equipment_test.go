package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/gigbook/internal/model"
)

type equipmentFixture struct {
	svc       *EquipmentService
	repo      *mockEquipmentRepo
	proposals *mockProposalRepo
}

func newEquipmentFixture(strict bool) *equipmentFixture {
	f := &equipmentFixture{
		repo:      newMockEquipmentRepo(),
		proposals: newMockProposalRepo(),
	}
	f.svc = NewEquipmentService(EquipmentServiceConfig{
		Repo:              f.repo,
		Proposals:         f.proposals,
		StrictTransitions: strict,
	})
	return f
}

func (f *equipmentFixture) listing(t *testing.T, owner string) *model.Equipment {
	t.Helper()
	price := 120.0
	e, err := f.svc.Create(context.Background(), owner, model.EquipmentProps{
		OwnerID:    owner,
		Name:       "Pioneer CDJ-3000",
		Category:   "players",
		DailyPrice: &price,
	})
	require.NoError(t, err)
	return e
}

func proposalProps(equipmentID, buyer string) model.EquipmentProposalProps {
	return model.EquipmentProposalProps{
		EquipmentID:  equipmentID,
		BuyerID:      buyer,
		BuyerName:    "Bruno",
		SellerID:     "whatever-the-client-sent",
		Message:      "Can I rent it for the weekend?",
		ContactPhone: "+55 81 99999-0000",
	}
}

func TestEquipmentCreate_Defaults(t *testing.T) {
	f := newEquipmentFixture(false)
	e := f.listing(t, "seller")

	assert.Equal(t, model.ConditionGood, e.Props.Condition)
	assert.True(t, e.Props.IsAvailable)

	_, err := f.svc.Create(context.Background(), "intruder", model.EquipmentProps{OwnerID: "seller", Name: "x", Category: "y"})
	assert.ErrorIs(t, err, model.ErrForbidden)
}

func TestEquipmentUpdateAndDelete_OwnerOnly(t *testing.T) {
	f := newEquipmentFixture(false)
	ctx := context.Background()
	e := f.listing(t, "seller")

	name := "Renamed"
	_, err := f.svc.Update(ctx, "intruder", e.ID, model.EquipmentPatch{Name: &name})
	assert.ErrorIs(t, err, model.ErrForbidden)
	assert.Equal(t, "Pioneer CDJ-3000", f.repo.items[e.ID].Props.Name)

	got, err := f.svc.Update(ctx, "seller", e.ID, model.EquipmentPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Props.Name)
	assert.NotNil(t, got.UpdatedAt)

	assert.ErrorIs(t, f.svc.Delete(ctx, "intruder", e.ID), model.ErrForbidden)
	require.NoError(t, f.svc.Delete(ctx, "seller", e.ID))
	assert.ErrorIs(t, f.svc.Delete(ctx, "seller", e.ID), ErrEquipmentNotFound)
}

func TestCreateProposal_SellerComesFromListing(t *testing.T) {
	f := newEquipmentFixture(false)
	e := f.listing(t, "seller")

	p, err := f.svc.CreateProposal(context.Background(), "buyer", proposalProps(e.ID, "buyer"))
	require.NoError(t, err)
	assert.Equal(t, "seller", p.Props.SellerID)
	assert.Equal(t, e.Props.Name, p.Props.EquipmentName)
	assert.Equal(t, model.ProposalPending, p.Props.Status)
}

func TestCreateProposal_Rejections(t *testing.T) {
	f := newEquipmentFixture(false)
	ctx := context.Background()
	e := f.listing(t, "seller")

	_, err := f.svc.CreateProposal(ctx, "seller", proposalProps(e.ID, "seller"))
	assert.ErrorIs(t, err, ErrOwnEquipment)
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = f.svc.CreateProposal(ctx, "buyer", proposalProps(e.ID, "someone-else"))
	assert.ErrorIs(t, err, model.ErrForbidden)

	_, err = f.svc.CreateProposal(ctx, "buyer", proposalProps("missing", "buyer"))
	assert.ErrorIs(t, err, ErrEquipmentNotFound)

	off := false
	_, err = f.svc.Update(ctx, "seller", e.ID, model.EquipmentPatch{IsAvailable: &off})
	require.NoError(t, err)
	_, err = f.svc.CreateProposal(ctx, "buyer", proposalProps(e.ID, "buyer"))
	assert.ErrorIs(t, err, ErrEquipmentNotOffered)

	assert.Empty(t, f.proposals.items)
}

func TestUpdateProposalStatus_Gate(t *testing.T) {
	f := newEquipmentFixture(false)
	ctx := context.Background()
	e := f.listing(t, "seller")
	p, err := f.svc.CreateProposal(ctx, "buyer", proposalProps(e.ID, "buyer"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		actor   string
		status  model.Status
		allowed bool
	}{
		{"buyer cannot accept", "buyer", model.ProposalAccepted, false},
		{"buyer cannot reject", "buyer", model.ProposalRejected, false},
		{"stranger cannot touch", "stranger", model.ProposalPending, false},
		{"seller accepts", "seller", model.ProposalAccepted, true},
		{"buyer reopens", "buyer", model.ProposalPending, true},
		{"seller rejects", "seller", model.ProposalRejected, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := f.proposals.items[p.ID].Props.Status
			got, err := f.svc.UpdateProposalStatus(ctx, tt.actor, p.ID, tt.status)
			if !tt.allowed {
				assert.ErrorIs(t, err, model.ErrForbidden)
				assert.Equal(t, before, f.proposals.items[p.ID].Props.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.status, got.Props.Status)
		})
	}
}

func TestUpdateProposalStatus_StrictRejectsReopen(t *testing.T) {
	f := newEquipmentFixture(true)
	ctx := context.Background()
	e := f.listing(t, "seller")
	p, err := f.svc.CreateProposal(ctx, "buyer", proposalProps(e.ID, "buyer"))
	require.NoError(t, err)

	_, err = f.svc.UpdateProposalStatus(ctx, "seller", p.ID, model.ProposalAccepted)
	require.NoError(t, err)

	_, err = f.svc.UpdateProposalStatus(ctx, "buyer", p.ID, model.ProposalPending)
	assert.ErrorIs(t, err, model.ErrInvalidTransition)
}

func TestProposalReadAndList(t *testing.T) {
	f := newEquipmentFixture(false)
	ctx := context.Background()
	e := f.listing(t, "seller")
	p, err := f.svc.CreateProposal(ctx, "buyer", proposalProps(e.ID, "buyer"))
	require.NoError(t, err)

	_, err = f.svc.GetProposal(ctx, "stranger", p.ID)
	assert.ErrorIs(t, err, model.ErrForbidden)
	_, err = f.svc.GetProposal(ctx, "seller", "missing")
	assert.ErrorIs(t, err, ErrProposalNotFound)

	page, err := f.svc.ListProposals(ctx, "seller", ListRequest{Role: model.RoleSeller})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)

	_, err = f.svc.ListProposals(ctx, "seller", ListRequest{Role: model.RoleClient})
	assert.ErrorIs(t, err, ErrInvalidPartyRole)
}
