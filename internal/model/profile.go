package model

import (
	"fmt"
	"strings"
)

// UserType is the kind of actor a profile represents
type UserType string

const (
	UserTypeClient       UserType = "client"
	UserTypeProfessional UserType = "professional"
)

// Valid reports whether t is a known user type
func (t UserType) Valid() bool {
	return t == UserTypeClient || t == UserTypeProfessional
}

// ProfileProps are the fields of a marketplace profile. The profile id is the
// identity id it represents.
type ProfileProps struct {
	UserType     UserType `json:"user_type"`
	DisplayName  string   `json:"display_name"`
	ArtisticName *string  `json:"artistic_name"`
	Specialty    *string  `json:"specialty"`
	Description  *string  `json:"description"`
	City         *string  `json:"city"`
	State        *string  `json:"state"`
	Phone        *string  `json:"phone"`
	PortfolioURL *string  `json:"portfolio_url"`
	AvatarURL    *string  `json:"avatar_url"`
	Rating       *float64 `json:"rating"`
	ReviewCount  *int     `json:"review_count"`
	IsActive     bool     `json:"is_active"`
}

func (p ProfileProps) Validate() error {
	var c fieldChecker
	if !p.UserType.Valid() {
		c.add("user_type", "must be client or professional")
	}
	c.required("display_name", p.DisplayName)
	c.maxLen("display_name", p.DisplayName, MaxNameLength)
	c.optionalMaxLen("artistic_name", p.ArtisticName, MaxNameLength)
	c.optionalMaxLen("specialty", p.Specialty, MaxShortTextLength)
	c.optionalMaxLen("description", p.Description, MaxLongTextLength)
	c.optionalMaxLen("city", p.City, MaxNameLength)
	c.optionalMaxLen("state", p.State, MaxNameLength)
	c.optionalMaxLen("phone", p.Phone, 32)
	return invalidProps("profile", c.errs)
}

func (p ProfileProps) Record() map[string]interface{} {
	return map[string]interface{}{
		"user_type":     string(p.UserType),
		"display_name":  p.DisplayName,
		"artistic_name": p.ArtisticName,
		"specialty":     p.Specialty,
		"description":   p.Description,
		"city":          p.City,
		"state":         p.State,
		"phone":         p.Phone,
		"portfolio_url": p.PortfolioURL,
		"avatar_url":    p.AvatarURL,
		"rating":        p.Rating,
		"review_count":  p.ReviewCount,
		"is_active":     p.IsActive,
	}
}

// ProfilePatch updates a profile. UserType may be supplied by callers but any
// change to it is rejected.
type ProfilePatch struct {
	UserType     *UserType `json:"user_type,omitempty"`
	DisplayName  *string   `json:"display_name,omitempty"`
	ArtisticName *string   `json:"artistic_name,omitempty"`
	Specialty    *string   `json:"specialty,omitempty"`
	Description  *string   `json:"description,omitempty"`
	City         *string   `json:"city,omitempty"`
	State        *string   `json:"state,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	PortfolioURL *string   `json:"portfolio_url,omitempty"`
	AvatarURL    *string   `json:"avatar_url,omitempty"`
	IsActive     *bool     `json:"is_active,omitempty"`
}

func (pp ProfilePatch) Apply(p *ProfileProps) error {
	if pp.UserType != nil && *pp.UserType != p.UserType {
		return fmt.Errorf("%w: user_type", ErrImmutableField)
	}
	if pp.DisplayName != nil {
		p.DisplayName = strings.TrimSpace(*pp.DisplayName)
	}
	setString(&p.ArtisticName, pp.ArtisticName)
	setString(&p.Specialty, pp.Specialty)
	setString(&p.Description, pp.Description)
	setString(&p.City, pp.City)
	setString(&p.State, pp.State)
	setString(&p.Phone, pp.Phone)
	setString(&p.PortfolioURL, pp.PortfolioURL)
	setString(&p.AvatarURL, pp.AvatarURL)
	if pp.IsActive != nil {
		p.IsActive = *pp.IsActive
	}
	return nil
}

// Profile is one identity's marketplace presence
type Profile struct {
	Entity[ProfileProps]
}

// NewProfile validates props and builds a profile
func NewProfile(props ProfileProps, meta EntityMeta) (*Profile, error) {
	props.DisplayName = strings.TrimSpace(props.DisplayName)
	if err := props.Validate(); err != nil {
		return nil, err
	}
	return &Profile{Entity: NewEntity(props, meta)}, nil
}

// NewDefaultProfile builds the profile created at sign-up or on first sign-in:
// active, with every optional field empty.
func NewDefaultProfile(identityID string, userType UserType, displayName string) (*Profile, error) {
	if identityID == "" {
		return nil, invalidProps("profile", []FieldError{{Field: "id", Message: "is required"}})
	}
	return NewProfile(ProfileProps{
		UserType:    userType,
		DisplayName: displayName,
		IsActive:    true,
	}, EntityMeta{ID: identityID})
}

// Update applies a patch through the kernel
func (p *Profile) Update(patch ProfilePatch) error {
	return p.Mutate(patch)
}

// IsProfessional reports whether the profile belongs to a professional
func (p *Profile) IsProfessional() bool {
	return p.Props.UserType == UserTypeProfessional
}

// setString overwrites dst when src is set. An empty string clears the field.
func setString(dst **string, src *string) {
	if src == nil {
		return
	}
	v := strings.TrimSpace(*src)
	if v == "" {
		*dst = nil
		return
	}
	*dst = &v
}
