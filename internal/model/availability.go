package model

// AvailabilityKind marks a slot as open or blocked
type AvailabilityKind string

const (
	AvailabilityAvailable AvailabilityKind = "available"
	AvailabilityBlocked   AvailabilityKind = "blocked"
)

// AvailabilityProps describe one calendar slot of a professional
type AvailabilityProps struct {
	ProfessionalID string           `json:"professional_id"`
	Date           string           `json:"date"`
	StartTime      string           `json:"start_time"`
	EndTime        string           `json:"end_time"`
	Kind           AvailabilityKind `json:"kind"`
	Reason         *string          `json:"reason"`
}

func (p AvailabilityProps) Validate() error {
	var c fieldChecker
	c.required("professional_id", p.ProfessionalID)
	c.date("date", p.Date)
	c.timeOfDay("start_time", p.StartTime)
	c.timeOfDay("end_time", p.EndTime)
	if len(c.errs) == 0 && p.EndTime <= p.StartTime {
		c.add("end_time", "must be after start_time")
	}
	if p.Kind != AvailabilityAvailable && p.Kind != AvailabilityBlocked {
		c.add("kind", "must be available or blocked")
	}
	c.optionalMaxLen("reason", p.Reason, MaxShortTextLength)
	return invalidProps("availability", c.errs)
}

func (p AvailabilityProps) Record() map[string]interface{} {
	return map[string]interface{}{
		"professional_id": p.ProfessionalID,
		"date":            p.Date,
		"start_time":      p.StartTime,
		"end_time":        p.EndTime,
		"kind":            string(p.Kind),
		"reason":          p.Reason,
	}
}

// AvailabilityPatch updates a slot
type AvailabilityPatch struct {
	Date      *string           `json:"date,omitempty"`
	StartTime *string           `json:"start_time,omitempty"`
	EndTime   *string           `json:"end_time,omitempty"`
	Kind      *AvailabilityKind `json:"kind,omitempty"`
	Reason    *string           `json:"reason,omitempty"`
}

func (ap AvailabilityPatch) Apply(p *AvailabilityProps) error {
	if ap.Date != nil {
		p.Date = *ap.Date
	}
	if ap.StartTime != nil {
		p.StartTime = *ap.StartTime
	}
	if ap.EndTime != nil {
		p.EndTime = *ap.EndTime
	}
	if ap.Kind != nil {
		p.Kind = *ap.Kind
	}
	setString(&p.Reason, ap.Reason)
	return nil
}

// Availability is a professional's calendar slot
type Availability struct {
	Entity[AvailabilityProps]
}

// NewAvailability validates props and builds a slot. Kind defaults to available.
func NewAvailability(props AvailabilityProps, meta EntityMeta) (*Availability, error) {
	if props.Kind == "" {
		props.Kind = AvailabilityAvailable
	}
	if err := props.Validate(); err != nil {
		return nil, err
	}
	return &Availability{Entity: NewEntity(props, meta)}, nil
}

// OwnerID returns the professional the slot belongs to
func (a *Availability) OwnerID() string {
	return a.Props.ProfessionalID
}
