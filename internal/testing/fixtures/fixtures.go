package fixtures

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/forgo/gigbook/internal/database"
	"github.com/forgo/gigbook/internal/identity"
	"github.com/forgo/gigbook/internal/model"
	"github.com/forgo/gigbook/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// DefaultPassword is the password of every account created by CreateAccount
const DefaultPassword = "testpass123"

// randomID generates a random hex ID
func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func ptr[T any](v T) *T {
	return &v
}

// ============================================================================
// Builders
// ============================================================================

// Profile builds a valid active client profile
func Profile(t *testing.T, opts ...func(*model.ProfileProps)) *model.Profile {
	t.Helper()
	props := model.ProfileProps{
		UserType:    model.UserTypeClient,
		DisplayName: "user_" + randomID(),
		IsActive:    true,
	}
	for _, fn := range opts {
		fn(&props)
	}
	p, err := model.NewProfile(props, model.EntityMeta{ID: randomID()})
	if err != nil {
		t.Fatalf("fixtures: profile: %v", err)
	}
	return p
}

// Professional builds an active professional profile with a specialty and city
func Professional(t *testing.T, opts ...func(*model.ProfileProps)) *model.Profile {
	t.Helper()
	return Profile(t, append([]func(*model.ProfileProps){func(p *model.ProfileProps) {
		p.UserType = model.UserTypeProfessional
		p.ArtisticName = ptr("DJ " + randomID()[:4])
		p.Specialty = ptr("dj")
		p.City = ptr("Recife")
		p.State = ptr("PE")
	}}, opts...)...)
}

// Booking builds a pending booking between pro and client
func Booking(t *testing.T, pro, client *model.Profile, opts ...func(*model.BookingProps)) *model.Booking {
	t.Helper()
	props := model.BookingProps{
		ProfessionalID:   pro.ID,
		ProfessionalName: pro.Props.DisplayName,
		ClientID:         client.ID,
		ClientName:       client.Props.DisplayName,
		ClientEmail:      client.ID + "@test.local",
		ServiceType:      "dj set",
		Location:         "Recife",
		Date:             time.Now().AddDate(0, 1, 0).Format(model.DateLayout),
		StartTime:        "21:00",
	}
	for _, fn := range opts {
		fn(&props)
	}
	b, err := model.NewBooking(props, model.EntityMeta{})
	if err != nil {
		t.Fatalf("fixtures: booking: %v", err)
	}
	return b
}

// WithBookingStatus sets the booking status
func WithBookingStatus(s model.Status) func(*model.BookingProps) {
	return func(p *model.BookingProps) {
		p.Status = s
	}
}

// QuoteRequest builds a pending quote request between pro and client
func QuoteRequest(t *testing.T, pro, client *model.Profile, opts ...func(*model.QuoteRequestProps)) *model.QuoteRequest {
	t.Helper()
	props := model.QuoteRequestProps{
		ProfessionalID:   pro.ID,
		ProfessionalName: pro.Props.DisplayName,
		ClientID:         client.ID,
		ClientName:       client.Props.DisplayName,
		ClientEmail:      client.ID + "@test.local",
		ServiceType:      "wedding",
		Location:         "Olinda",
		Description:      "four hour set",
		Budget:           ptr(1500.0),
		Date:             time.Now().AddDate(0, 2, 0).Format(model.DateLayout),
	}
	for _, fn := range opts {
		fn(&props)
	}
	q, err := model.NewQuoteRequest(props, model.EntityMeta{})
	if err != nil {
		t.Fatalf("fixtures: quote request: %v", err)
	}
	return q
}

// Equipment builds an available listing owned by owner
func Equipment(t *testing.T, owner *model.Profile, opts ...func(*model.EquipmentProps)) *model.Equipment {
	t.Helper()
	props := model.EquipmentProps{
		OwnerID:     owner.ID,
		Name:        "CDJ-3000",
		Category:    "dj",
		DailyPrice:  ptr(200.0),
		Condition:   model.ConditionGood,
		City:        ptr("Recife"),
		State:       ptr("PE"),
		IsAvailable: true,
	}
	for _, fn := range opts {
		fn(&props)
	}
	e, err := model.NewEquipment(props, model.EntityMeta{})
	if err != nil {
		t.Fatalf("fixtures: equipment: %v", err)
	}
	return e
}

// Proposal builds a pending proposal from buyer on equipment
func Proposal(t *testing.T, equipment *model.Equipment, buyer *model.Profile, opts ...func(*model.EquipmentProposalProps)) *model.EquipmentProposal {
	t.Helper()
	props := model.EquipmentProposalProps{
		EquipmentID:   equipment.ID,
		EquipmentName: equipment.Props.Name,
		BuyerID:       buyer.ID,
		BuyerName:     buyer.Props.DisplayName,
		SellerID:      equipment.Props.OwnerID,
		Message:       "available next weekend?",
		ProposedPrice: ptr(180.0),
		ContactPhone:  "+55 81 99999-0000",
	}
	for _, fn := range opts {
		fn(&props)
	}
	p, err := model.NewEquipmentProposal(props, model.EntityMeta{})
	if err != nil {
		t.Fatalf("fixtures: proposal: %v", err)
	}
	return p
}

// Review builds a review for a booking, written by its client
func Review(t *testing.T, booking *model.Booking, rating int) *model.Review {
	t.Helper()
	r, err := model.NewReview(model.ReviewProps{
		ProfessionalID: booking.Props.ProfessionalID,
		BookingID:      booking.ID,
		ClientID:       booking.Props.ClientID,
		ClientName:     booking.Props.ClientName,
		Rating:         rating,
		Comment:        fmt.Sprintf("rated %d", rating),
	}, model.EntityMeta{})
	if err != nil {
		t.Fatalf("fixtures: review: %v", err)
	}
	return r
}

// PortfolioItem builds a portfolio entry for a professional
func PortfolioItem(t *testing.T, pro *model.Profile, opts ...func(*model.PortfolioItemProps)) *model.PortfolioItem {
	t.Helper()
	props := model.PortfolioItemProps{
		ProfessionalID: pro.ID,
		Title:          "Festival set",
		ImageURLs:      []string{"https://cdn.test.local/" + randomID() + ".jpg"},
	}
	for _, fn := range opts {
		fn(&props)
	}
	item, err := model.NewPortfolioItem(props, model.EntityMeta{})
	if err != nil {
		t.Fatalf("fixtures: portfolio item: %v", err)
	}
	return item
}

// ============================================================================
// Factory
// ============================================================================

// Factory persists fixtures through the repositories
type Factory struct {
	db database.Database
}

// New creates a new fixture factory
func New(db database.Database) *Factory {
	return &Factory{db: db}
}

// ctx returns a context with timeout
func ctx(t *testing.T) context.Context {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return c
}

// CreateAccount stores an identity account with DefaultPassword
func (f *Factory) CreateAccount(t *testing.T, userType model.UserType) *identity.Account {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("fixtures: failed to hash password: %v", err)
	}

	account := &identity.Account{
		Email:        fmt.Sprintf("user_%s@test.local", randomID()),
		PasswordHash: string(hash),
		Metadata: identity.Metadata{
			UserType:    string(userType),
			DisplayName: "user_" + randomID(),
		},
	}
	if err := repository.NewAccountRepository(f.db).Create(ctx(t), account); err != nil {
		t.Fatalf("fixtures: create account: %v", err)
	}
	return account
}

// CreateProfile stores a profile built by Profile
func (f *Factory) CreateProfile(t *testing.T, opts ...func(*model.ProfileProps)) *model.Profile {
	t.Helper()
	p := Profile(t, opts...)
	if err := repository.NewProfileRepository(f.db).Create(ctx(t), p); err != nil {
		t.Fatalf("fixtures: create profile: %v", err)
	}
	return p
}

// CreateProfessional stores a profile built by Professional
func (f *Factory) CreateProfessional(t *testing.T, opts ...func(*model.ProfileProps)) *model.Profile {
	t.Helper()
	p := Professional(t, opts...)
	if err := repository.NewProfileRepository(f.db).Create(ctx(t), p); err != nil {
		t.Fatalf("fixtures: create professional: %v", err)
	}
	return p
}

// CreateBooking stores a booking built by Booking
func (f *Factory) CreateBooking(t *testing.T, pro, client *model.Profile, opts ...func(*model.BookingProps)) *model.Booking {
	t.Helper()
	b := Booking(t, pro, client, opts...)
	if err := repository.NewBookingRepository(f.db).Create(ctx(t), b); err != nil {
		t.Fatalf("fixtures: create booking: %v", err)
	}
	return b
}

// CreateEquipment stores a listing built by Equipment
func (f *Factory) CreateEquipment(t *testing.T, owner *model.Profile, opts ...func(*model.EquipmentProps)) *model.Equipment {
	t.Helper()
	e := Equipment(t, owner, opts...)
	if err := repository.NewEquipmentRepository(f.db).Create(ctx(t), e); err != nil {
		t.Fatalf("fixtures: create equipment: %v", err)
	}
	return e
}

// CreateReview stores a review and refreshes the professional's rating
func (f *Factory) CreateReview(t *testing.T, booking *model.Booking, rating int) *model.Review {
	t.Helper()
	r := Review(t, booking, rating)
	if err := repository.NewReviewRepository(f.db).Create(ctx(t), r); err != nil {
		t.Fatalf("fixtures: create review: %v", err)
	}
	return r
}
