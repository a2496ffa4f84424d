package service

import (
	"fmt"
	"time"

	"github.com/forgo/gigbook/internal/model"
)

// ListRequest selects one party's side of a bilateral listing
type ListRequest struct {
	Role   model.PartyRole
	Status *model.Status
	Dates  model.DateRange
	Page   model.Pagination
}

// partyFilter builds the repository filter for the acting identity. The actor
// is always the party; listings of other identities are not offered.
func partyFilter(actorID string, req ListRequest, machine *model.StatusMachine, roles ...model.PartyRole) (model.PartyFilter, error) {
	valid := false
	for _, r := range roles {
		if req.Role == r {
			valid = true
			break
		}
	}
	if !valid {
		return model.PartyFilter{}, ErrInvalidPartyRole
	}
	if req.Status != nil && !machine.Known(*req.Status) {
		return model.PartyFilter{}, fmt.Errorf("%w: %q", model.ErrUnknownStatus, *req.Status)
	}
	if err := validateDateRange(req.Dates); err != nil {
		return model.PartyFilter{}, err
	}
	return model.PartyFilter{
		PartyID: actorID,
		Role:    req.Role,
		Status:  req.Status,
		Dates:   req.Dates,
	}, nil
}

func validateDateRange(r model.DateRange) error {
	for name, v := range map[string]*string{"from": r.From, "to": r.To} {
		if v == nil {
			continue
		}
		if _, err := time.Parse(model.DateLayout, *v); err != nil {
			return fmt.Errorf("%w: %s must be a YYYY-MM-DD date", model.ErrValidation, name)
		}
	}
	if r.From != nil && r.To != nil && *r.To < *r.From {
		return fmt.Errorf("%w: to must not be before from", model.ErrValidation)
	}
	return nil
}
