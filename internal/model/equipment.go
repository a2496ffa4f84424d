package model

import "strings"

// EquipmentCondition grades a listed item
type EquipmentCondition string

const (
	ConditionNew  EquipmentCondition = "new"
	ConditionGood EquipmentCondition = "good"
	ConditionFair EquipmentCondition = "fair"
	ConditionUsed EquipmentCondition = "used"
)

func (c EquipmentCondition) valid() bool {
	switch c {
	case ConditionNew, ConditionGood, ConditionFair, ConditionUsed:
		return true
	}
	return false
}

// EquipmentProps describe an item offered by its owner
type EquipmentProps struct {
	OwnerID     string             `json:"owner_id"`
	Name        string             `json:"name"`
	Description *string            `json:"description"`
	Category    string             `json:"category"`
	DailyPrice  *float64           `json:"daily_price"`
	Condition   EquipmentCondition `json:"condition"`
	City        *string            `json:"city"`
	State       *string            `json:"state"`
	ImageURLs   []string           `json:"image_urls"`
	IsAvailable bool               `json:"is_available"`
}

func (p EquipmentProps) Validate() error {
	var c fieldChecker
	c.required("owner_id", p.OwnerID)
	c.required("name", p.Name)
	c.maxLen("name", p.Name, MaxNameLength)
	c.optionalMaxLen("description", p.Description, MaxLongTextLength)
	c.required("category", p.Category)
	c.nonNegative("daily_price", p.DailyPrice)
	if !p.Condition.valid() {
		c.add("condition", "must be one of new, good, fair, used")
	}
	if len(p.ImageURLs) > MaxImageURLs {
		c.add("image_urls", "has too many entries")
	}
	return invalidProps("equipment", c.errs)
}

func (p EquipmentProps) Record() map[string]interface{} {
	return map[string]interface{}{
		"owner_id":     p.OwnerID,
		"name":         p.Name,
		"description":  p.Description,
		"category":     p.Category,
		"daily_price":  p.DailyPrice,
		"condition":    string(p.Condition),
		"city":         p.City,
		"state":        p.State,
		"image_urls":   nonNilStrings(p.ImageURLs),
		"is_available": p.IsAvailable,
	}
}

// EquipmentPatch updates a listing
type EquipmentPatch struct {
	Name        *string             `json:"name,omitempty"`
	Description *string             `json:"description,omitempty"`
	Category    *string             `json:"category,omitempty"`
	DailyPrice  *float64            `json:"daily_price,omitempty"`
	Condition   *EquipmentCondition `json:"condition,omitempty"`
	City        *string             `json:"city,omitempty"`
	State       *string             `json:"state,omitempty"`
	ImageURLs   []string            `json:"image_urls,omitempty"`
	IsAvailable *bool               `json:"is_available,omitempty"`
}

func (ep EquipmentPatch) Apply(p *EquipmentProps) error {
	if ep.Name != nil {
		p.Name = strings.TrimSpace(*ep.Name)
	}
	setString(&p.Description, ep.Description)
	if ep.Category != nil {
		p.Category = *ep.Category
	}
	if ep.DailyPrice != nil {
		v := *ep.DailyPrice
		p.DailyPrice = &v
	}
	if ep.Condition != nil {
		p.Condition = *ep.Condition
	}
	setString(&p.City, ep.City)
	setString(&p.State, ep.State)
	if ep.ImageURLs != nil {
		p.ImageURLs = append([]string(nil), ep.ImageURLs...)
	}
	if ep.IsAvailable != nil {
		p.IsAvailable = *ep.IsAvailable
	}
	return nil
}

// Equipment is a listing owned by one identity
type Equipment struct {
	Entity[EquipmentProps]
}

// NewEquipment validates props and builds an available listing
func NewEquipment(props EquipmentProps, meta EntityMeta) (*Equipment, error) {
	props.Name = strings.TrimSpace(props.Name)
	if props.Condition == "" {
		props.Condition = ConditionGood
	}
	if err := props.Validate(); err != nil {
		return nil, err
	}
	return &Equipment{Entity: NewEntity(props, meta)}, nil
}

// OwnerID returns the listing owner
func (e *Equipment) OwnerID() string {
	return e.Props.OwnerID
}

// EquipmentProposalProps describe a buyer's offer on a listing. SellerID is
// always the listing owner.
type EquipmentProposalProps struct {
	EquipmentID   string   `json:"equipment_id"`
	EquipmentName string   `json:"equipment_name"`
	BuyerID       string   `json:"buyer_id"`
	BuyerName     string   `json:"buyer_name"`
	SellerID      string   `json:"seller_id"`
	Message       string   `json:"message"`
	ProposedPrice *float64 `json:"proposed_price"`
	StartDate     *string  `json:"start_date"`
	EndDate       *string  `json:"end_date"`
	ContactPhone  string   `json:"contact_phone"`
	Status        Status   `json:"status"`
}

func (p EquipmentProposalProps) Validate() error {
	var c fieldChecker
	c.required("equipment_id", p.EquipmentID)
	c.required("equipment_name", p.EquipmentName)
	c.required("buyer_id", p.BuyerID)
	c.required("buyer_name", p.BuyerName)
	c.required("seller_id", p.SellerID)
	if p.BuyerID != "" && p.BuyerID == p.SellerID {
		c.add("buyer_id", "cannot propose on own equipment")
	}
	c.required("message", p.Message)
	c.maxLen("message", p.Message, MaxProposalMsgLength)
	c.nonNegative("proposed_price", p.ProposedPrice)
	c.optionalDate("start_date", p.StartDate)
	c.optionalDate("end_date", p.EndDate)
	if p.StartDate != nil && p.EndDate != nil && *p.EndDate < *p.StartDate {
		c.add("end_date", "must not be before start_date")
	}
	c.required("contact_phone", p.ContactPhone)
	c.status("status", ProposalMachine, p.Status)
	return invalidProps("equipment proposal", c.errs)
}

func (p EquipmentProposalProps) Record() map[string]interface{} {
	return map[string]interface{}{
		"equipment_id":   p.EquipmentID,
		"equipment_name": p.EquipmentName,
		"buyer_id":       p.BuyerID,
		"buyer_name":     p.BuyerName,
		"seller_id":      p.SellerID,
		"message":        p.Message,
		"proposed_price": p.ProposedPrice,
		"start_date":     p.StartDate,
		"end_date":       p.EndDate,
		"contact_phone":  p.ContactPhone,
		"status":         string(p.Status),
	}
}

// EquipmentProposalPatch carries the mutable proposal fields
type EquipmentProposalPatch struct {
	Status *Status `json:"status,omitempty"`
}

func (pp EquipmentProposalPatch) Apply(p *EquipmentProposalProps) error {
	if pp.Status != nil {
		p.Status = *pp.Status
	}
	return nil
}

// EquipmentProposal is never deleted; it ends accepted or rejected
type EquipmentProposal struct {
	Entity[EquipmentProposalProps]
}

// NewEquipmentProposal validates props and builds a pending proposal
func NewEquipmentProposal(props EquipmentProposalProps, meta EntityMeta) (*EquipmentProposal, error) {
	if props.Status == "" {
		props.Status = ProposalMachine.Initial
	}
	if err := props.Validate(); err != nil {
		return nil, err
	}
	return &EquipmentProposal{Entity: NewEntity(props, meta)}, nil
}

// Parties returns the two counterparts of the proposal
func (p *EquipmentProposal) Parties() (buyerID, sellerID string) {
	return p.Props.BuyerID, p.Props.SellerID
}

// SetStatus moves the proposal to a new status and stamps UpdatedAt
func (p *EquipmentProposal) SetStatus(status Status, strict bool) error {
	if err := ProposalMachine.Check(p.Props.Status, status, strict); err != nil {
		return err
	}
	return p.Mutate(EquipmentProposalPatch{Status: &status})
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
