package model

import "strings"

// QuoteRequestProps describe a client's request for a price estimate
type QuoteRequestProps struct {
	ProfessionalID   string   `json:"professional_id"`
	ProfessionalName string   `json:"professional_name"`
	ClientID         string   `json:"client_id"`
	ClientName       string   `json:"client_name"`
	ClientEmail      string   `json:"client_email"`
	ServiceType      string   `json:"service_type"`
	Location         string   `json:"location"`
	Description      string   `json:"description"`
	Budget           *float64 `json:"budget"`
	Date             string   `json:"date"`
	StartTime        *string  `json:"start_time"`
	Status           Status   `json:"status"`
}

func (p QuoteRequestProps) Validate() error {
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
	c.required("location", p.Location)
	c.required("description", p.Description)
	c.maxLen("description", p.Description, MaxLongTextLength)
	c.nonNegative("budget", p.Budget)
	c.date("date", p.Date)
	if p.StartTime != nil {
		c.timeOfDay("start_time", *p.StartTime)
	}
	c.status("status", QuoteRequestMachine, p.Status)
	return invalidProps("quote request", c.errs)
}

func (p QuoteRequestProps) Record() map[string]interface{} {
	return map[string]interface{}{
		"professional_id":   p.ProfessionalID,
		"professional_name": p.ProfessionalName,
		"client_id":         p.ClientID,
		"client_name":       p.ClientName,
		"client_email":      p.ClientEmail,
		"service_type":      p.ServiceType,
		"location":          p.Location,
		"description":       p.Description,
		"budget":            p.Budget,
		"date":              p.Date,
		"start_time":        p.StartTime,
		"status":            string(p.Status),
	}
}

// QuoteRequestPatch carries the mutable quote request fields
type QuoteRequestPatch struct {
	Status *Status `json:"status,omitempty"`
}

func (qp QuoteRequestPatch) Apply(p *QuoteRequestProps) error {
	if qp.Status != nil {
		p.Status = *qp.Status
	}
	return nil
}

// QuoteRequest is never deleted; it ends in a terminal status
type QuoteRequest struct {
	Entity[QuoteRequestProps]
}

// NewQuoteRequest validates props and builds a pending quote request
func NewQuoteRequest(props QuoteRequestProps, meta EntityMeta) (*QuoteRequest, error) {
	if props.Status == "" {
		props.Status = QuoteRequestMachine.Initial
	}
	if err := props.Validate(); err != nil {
		return nil, err
	}
	return &QuoteRequest{Entity: NewEntity(props, meta)}, nil
}

// Parties returns the two counterparts of the request
func (q *QuoteRequest) Parties() (professionalID, clientID string) {
	return q.Props.ProfessionalID, q.Props.ClientID
}

// SetStatus moves the request to a new status and stamps UpdatedAt
func (q *QuoteRequest) SetStatus(status Status, strict bool) error {
	if err := QuoteRequestMachine.Check(q.Props.Status, status, strict); err != nil {
		return err
	}
	return q.Mutate(QuoteRequestPatch{Status: &status})
}
