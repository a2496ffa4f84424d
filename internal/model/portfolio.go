package model

import "strings"

// PortfolioItemProps describe one showcased work of a professional
type PortfolioItemProps struct {
	ProfessionalID string   `json:"professional_id"`
	Title          string   `json:"title"`
	Description    *string  `json:"description"`
	Category       *string  `json:"category"`
	ImageURLs      []string `json:"image_urls"`
	SortOrder      int      `json:"sort_order"`
}

func (p PortfolioItemProps) Validate() error {
	var c fieldChecker
	c.required("professional_id", p.ProfessionalID)
	c.required("title", p.Title)
	c.maxLen("title", p.Title, MaxShortTextLength)
	c.optionalMaxLen("description", p.Description, MaxLongTextLength)
	c.optionalMaxLen("category", p.Category, MaxNameLength)
	if len(p.ImageURLs) > MaxImageURLs {
		c.add("image_urls", "has too many entries")
	}
	if p.SortOrder < 0 {
		c.add("sort_order", "must not be negative")
	}
	return invalidProps("portfolio item", c.errs)
}

func (p PortfolioItemProps) Record() map[string]interface{} {
	return map[string]interface{}{
		"professional_id": p.ProfessionalID,
		"title":           p.Title,
		"description":     p.Description,
		"category":        p.Category,
		"image_urls":      nonNilStrings(p.ImageURLs),
		"sort_order":      p.SortOrder,
	}
}

// PortfolioItemPatch updates a portfolio item
type PortfolioItemPatch struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	ImageURLs   []string `json:"image_urls,omitempty"`
	SortOrder   *int     `json:"sort_order,omitempty"`
}

func (pp PortfolioItemPatch) Apply(p *PortfolioItemProps) error {
	if pp.Title != nil {
		p.Title = strings.TrimSpace(*pp.Title)
	}
	setString(&p.Description, pp.Description)
	setString(&p.Category, pp.Category)
	if pp.ImageURLs != nil {
		p.ImageURLs = append([]string(nil), pp.ImageURLs...)
	}
	if pp.SortOrder != nil {
		p.SortOrder = *pp.SortOrder
	}
	return nil
}

// PortfolioItem belongs to a single professional
type PortfolioItem struct {
	Entity[PortfolioItemProps]
}

// NewPortfolioItem validates props and builds an item
func NewPortfolioItem(props PortfolioItemProps, meta EntityMeta) (*PortfolioItem, error) {
	props.Title = strings.TrimSpace(props.Title)
	if err := props.Validate(); err != nil {
		return nil, err
	}
	return &PortfolioItem{Entity: NewEntity(props, meta)}, nil
}

// OwnerID returns the professional the item belongs to
func (p *PortfolioItem) OwnerID() string {
	return p.Props.ProfessionalID
}
