package model

// ReviewProps describe a client's rating of a completed booking. Reviews are
// immutable once created, so there is no patch type.
type ReviewProps struct {
	ProfessionalID string `json:"professional_id"`
	BookingID      string `json:"booking_id"`
	ClientID       string `json:"client_id"`
	ClientName     string `json:"client_name"`
	Rating         int    `json:"rating"`
	Comment        string `json:"comment"`
}

func (p ReviewProps) Validate() error {
	var c fieldChecker
	c.required("professional_id", p.ProfessionalID)
	c.required("booking_id", p.BookingID)
	c.required("client_id", p.ClientID)
	c.required("client_name", p.ClientName)
	if p.Rating < MinReviewRating || p.Rating > MaxReviewRating {
		c.add("rating", "must be between 1 and 5")
	}
	c.maxLen("comment", p.Comment, MaxLongTextLength)
	return invalidProps("review", c.errs)
}

func (p ReviewProps) Record() map[string]interface{} {
	return map[string]interface{}{
		"professional_id": p.ProfessionalID,
		"booking_id":      p.BookingID,
		"client_id":       p.ClientID,
		"client_name":     p.ClientName,
		"rating":          p.Rating,
		"comment":         p.Comment,
	}
}

// Review is one per booking
type Review struct {
	Entity[ReviewProps]
}

// NewReview validates props and builds a review
func NewReview(props ReviewProps, meta EntityMeta) (*Review, error) {
	if err := props.Validate(); err != nil {
		return nil, err
	}
	return &Review{Entity: NewEntity(props, meta)}, nil
}

// RatingSummary is the aggregate stored on a professional's profile
type RatingSummary struct {
	Average float64 `json:"rating"`
	Count   int     `json:"review_count"`
}
