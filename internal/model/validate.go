package model

import (
	"strings"
	"time"
)

// Date and time-of-day layouts used by calendar fields
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Validation constants
const (
	MaxNameLength        = 100
	MaxShortTextLength   = 200
	MaxLongTextLength    = 2000
	MaxImageURLs         = 20
	MinReviewRating      = 1
	MaxReviewRating      = 5
	MaxProposalMsgLength = 1000
)

type fieldChecker struct {
	errs []FieldError
}

func (c *fieldChecker) add(field, message string) {
	c.errs = append(c.errs, FieldError{Field: field, Message: message})
}

func (c *fieldChecker) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		c.add(field, "is required")
	}
}

func (c *fieldChecker) maxLen(field, value string, limit int) {
	if len(value) > limit {
		c.add(field, "is too long")
	}
}

func (c *fieldChecker) optionalMaxLen(field string, value *string, limit int) {
	if value != nil {
		c.maxLen(field, *value, limit)
	}
}

func (c *fieldChecker) date(field, value string) {
	if value == "" {
		c.add(field, "is required")
		return
	}
	if _, err := time.Parse(DateLayout, value); err != nil {
		c.add(field, "must be a date (YYYY-MM-DD)")
	}
}

func (c *fieldChecker) optionalDate(field string, value *string) {
	if value != nil {
		c.date(field, *value)
	}
}

func (c *fieldChecker) timeOfDay(field, value string) {
	if value == "" {
		c.add(field, "is required")
		return
	}
	if _, err := time.Parse(TimeLayout, value); err != nil {
		c.add(field, "must be a time of day (HH:MM)")
	}
}

func (c *fieldChecker) nonNegative(field string, value *float64) {
	if value != nil && *value < 0 {
		c.add(field, "must not be negative")
	}
}

func (c *fieldChecker) status(field string, machine *StatusMachine, value Status) {
	if !machine.Known(value) {
		c.add(field, "is not a valid status")
	}
}
