package model

import "strings"

// BookingProps describe an appointment between a client and a professional
type BookingProps struct {
	ProfessionalID   string  `json:"professional_id"`
	ProfessionalName string  `json:"professional_name"`
	ClientID         string  `json:"client_id"`
	ClientName       string  `json:"client_name"`
	ClientEmail      string  `json:"client_email"`
	ServiceType      string  `json:"service_type"`
	Location         string  `json:"location"`
	Notes            *string `json:"notes"`
	Date             string  `json:"date"`
	StartTime        string  `json:"start_time"`
	Status           Status  `json:"status"`
}

func (p BookingProps) Validate() error {
	var c fieldChecker
	c.required("professional_id", p.ProfessionalID)
	c.required("professional_name", p.ProfessionalName)
	c.required("client_id", p.ClientID)
	c.required("client_name", p.ClientName)
	c.required("client_email", p.ClientEmail)
	if p.ClientEmail != "" && !strings.Contains(p.ClientEmail, "@") {
		c.add("client_email", "must be an email address")
	}
	if p.ClientID != "" && p.ClientID == p.ProfessionalID {
		c.add("professional_id", "must differ from client_id")
	}
	c.required("service_type", p.ServiceType)
	c.maxLen("service_type", p.ServiceType, MaxShortTextLength)
	c.required("location", p.Location)
	c.maxLen("location", p.Location, MaxShortTextLength)
	c.optionalMaxLen("notes", p.Notes, MaxLongTextLength)
	c.date("date", p.Date)
	c.timeOfDay("start_time", p.StartTime)
	c.status("status", BookingMachine, p.Status)
	return invalidProps("booking", c.errs)
}

func (p BookingProps) Record() map[string]interface{} {
	return map[string]interface{}{
		"professional_id":   p.ProfessionalID,
		"professional_name": p.ProfessionalName,
		"client_id":         p.ClientID,
		"client_name":       p.ClientName,
		"client_email":      p.ClientEmail,
		"service_type":      p.ServiceType,
		"location":          p.Location,
		"notes":             p.Notes,
		"date":              p.Date,
		"start_time":        p.StartTime,
		"status":            string(p.Status),
	}
}

// BookingPatch carries the mutable booking fields
type BookingPatch struct {
	Status *Status `json:"status,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

func (bp BookingPatch) Apply(p *BookingProps) error {
	if bp.Status != nil {
		p.Status = *bp.Status
	}
	setString(&p.Notes, bp.Notes)
	return nil
}

// Booking is never deleted; it ends in a terminal status
type Booking struct {
	Entity[BookingProps]
}

// NewBooking validates props and builds a pending booking
func NewBooking(props BookingProps, meta EntityMeta) (*Booking, error) {
	if props.Status == "" {
		props.Status = BookingMachine.Initial
	}
	if err := props.Validate(); err != nil {
		return nil, err
	}
	return &Booking{Entity: NewEntity(props, meta)}, nil
}

// Parties returns the two counterparts of the booking
func (b *Booking) Parties() (professionalID, clientID string) {
	return b.Props.ProfessionalID, b.Props.ClientID
}

// SetStatus moves the booking to a new status and stamps UpdatedAt
func (b *Booking) SetStatus(status Status, strict bool) error {
	if err := BookingMachine.Check(b.Props.Status, status, strict); err != nil {
		return err
	}
	return b.Mutate(BookingPatch{Status: &status})
}
