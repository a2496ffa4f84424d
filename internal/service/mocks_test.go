package service

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/forgo/gigbook/internal/identity"
	"github.com/forgo/gigbook/internal/model"
	"github.com/forgo/gigbook/internal/reconcile"
)

// Mock implementations

type mockIdentity struct {
	accounts    map[string]*identity.Account
	passwords   map[string]string
	createErr   error
	authErr     error
	deleteErr   error
	createCalls int
	deleteCalls int
}

func newMockIdentity() *mockIdentity {
	return &mockIdentity{
		accounts:  make(map[string]*identity.Account),
		passwords: make(map[string]string),
	}
}

func (m *mockIdentity) CreateAccount(ctx context.Context, email, password string, meta identity.Metadata) (string, error) {
	m.createCalls++
	if m.createErr != nil {
		return "", m.createErr
	}
	for _, a := range m.accounts {
		if a.Email == email {
			return "", identity.ErrEmailTaken
		}
	}
	id := uuid.NewString()
	m.accounts[id] = &identity.Account{ID: id, Email: email, Metadata: meta}
	m.passwords[id] = password
	return id, nil
}

func (m *mockIdentity) Authenticate(ctx context.Context, email, password string) (*identity.Session, error) {
	if m.authErr != nil {
		return nil, m.authErr
	}
	for id, a := range m.accounts {
		if a.Email == strings.ToLower(email) && m.passwords[id] == password {
			return &identity.Session{
				IdentityID:   id,
				Email:        a.Email,
				Metadata:     a.Metadata,
				AccessToken:  "access-" + id,
				RefreshToken: "refresh-" + id,
				TokenType:    "Bearer",
				ExpiresIn:    900,
			}, nil
		}
	}
	return nil, identity.ErrInvalidCredentials
}

func (m *mockIdentity) DeleteAccount(ctx context.Context, id string) error {
	m.deleteCalls++
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.accounts, id)
	delete(m.passwords, id)
	return nil
}

func (m *mockIdentity) VerifyToken(ctx context.Context, token string) (string, error) {
	id := strings.TrimPrefix(token, "access-")
	if _, ok := m.accounts[id]; !ok {
		return "", identity.ErrInvalidAccessToken
	}
	return id, nil
}

func (m *mockIdentity) ListAccountsByEmail(ctx context.Context, email string) ([]*identity.Account, error) {
	var out []*identity.Account
	for _, a := range m.accounts {
		if a.Email == email {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockIdentity) RefreshSession(ctx context.Context, refreshToken string) (*identity.Session, error) {
	id := strings.TrimPrefix(refreshToken, "refresh-")
	a, ok := m.accounts[id]
	if !ok {
		return nil, identity.ErrInvalidRefreshToken
	}
	return &identity.Session{IdentityID: id, Email: a.Email, AccessToken: "access-" + id, RefreshToken: "refresh-" + id}, nil
}

func (m *mockIdentity) RevokeSessions(ctx context.Context, identityID string) error {
	return nil
}

type mockSink struct {
	events []reconcile.Event
}

func (m *mockSink) Publish(ctx context.Context, ev reconcile.Event) error {
	m.events = append(m.events, ev)
	return nil
}

type mockProfileRepo struct {
	profiles  map[string]*model.Profile
	createErr error
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{profiles: make(map[string]*model.Profile)}
}

func (m *mockProfileRepo) Create(ctx context.Context, p *model.Profile) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.profiles[p.ID] = p
	return nil
}

func (m *mockProfileRepo) GetByID(ctx context.Context, id string) (*model.Profile, error) {
	p, ok := m.profiles[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *mockProfileRepo) Update(ctx context.Context, p *model.Profile) error {
	m.profiles[p.ID] = p
	return nil
}

func (m *mockProfileRepo) Search(ctx context.Context, filter model.ProfileFilter, page model.Pagination) (*model.Page[*model.Profile], error) {
	var items []*model.Profile
	for _, p := range m.profiles {
		if filter.UserType != nil && p.Props.UserType != *filter.UserType {
			continue
		}
		items = append(items, p)
	}
	return &model.Page[*model.Profile]{Items: items, Total: len(items)}, nil
}

// add stores a profile directly, bypassing the service
func (m *mockProfileRepo) add(t model.UserType, name string) *model.Profile {
	p, err := model.NewDefaultProfile(uuid.NewString(), t, name)
	if err != nil {
		panic(err)
	}
	m.profiles[p.ID] = p
	return p
}

// store is a generic in-memory repository keyed by entity id. GetByID hands
// out copies so an unsaved mutation never leaks into the store.
type store[T any] struct {
	items map[string]*T
	id    func(*T) string
}

func newStore[T any](id func(*T) string) *store[T] {
	return &store[T]{items: make(map[string]*T), id: id}
}

func (s *store[T]) Create(ctx context.Context, v *T) error {
	s.items[s.id(v)] = v
	return nil
}

func (s *store[T]) GetByID(ctx context.Context, id string) (*T, error) {
	v, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (s *store[T]) Update(ctx context.Context, v *T) error {
	s.items[s.id(v)] = v
	return nil
}

func (s *store[T]) Delete(ctx context.Context, id string) error {
	delete(s.items, id)
	return nil
}

func (s *store[T]) all() []*T {
	out := make([]*T, 0, len(s.items))
	for _, v := range s.items {
		out = append(out, v)
	}
	return out
}

type mockBookingRepo struct {
	*store[model.Booking]
}

func newMockBookingRepo() *mockBookingRepo {
	return &mockBookingRepo{newStore(func(b *model.Booking) string { return b.ID })}
}

func (m *mockBookingRepo) List(ctx context.Context, filter model.PartyFilter, page model.Pagination) (*model.Page[*model.Booking], error) {
	var items []*model.Booking
	for _, b := range m.all() {
		party := b.Props.ClientID
		if filter.Role == model.RoleProfessional {
			party = b.Props.ProfessionalID
		}
		if party != filter.PartyID {
			continue
		}
		if filter.Status != nil && b.Props.Status != *filter.Status {
			continue
		}
		items = append(items, b)
	}
	return &model.Page[*model.Booking]{Items: items, Total: len(items)}, nil
}

type mockQuoteRepo struct {
	*store[model.QuoteRequest]
}

func newMockQuoteRepo() *mockQuoteRepo {
	return &mockQuoteRepo{newStore(func(q *model.QuoteRequest) string { return q.ID })}
}

func (m *mockQuoteRepo) List(ctx context.Context, filter model.PartyFilter, page model.Pagination) (*model.Page[*model.QuoteRequest], error) {
	var items []*model.QuoteRequest
	for _, q := range m.all() {
		if q.Props.ClientID == filter.PartyID || q.Props.ProfessionalID == filter.PartyID {
			items = append(items, q)
		}
	}
	return &model.Page[*model.QuoteRequest]{Items: items, Total: len(items)}, nil
}

type mockEquipmentRepo struct {
	*store[model.Equipment]
}

func newMockEquipmentRepo() *mockEquipmentRepo {
	return &mockEquipmentRepo{newStore(func(e *model.Equipment) string { return e.ID })}
}

func (m *mockEquipmentRepo) Search(ctx context.Context, filter model.EquipmentFilter, page model.Pagination) (*model.Page[*model.Equipment], error) {
	var items []*model.Equipment
	for _, e := range m.all() {
		if filter.AvailableOnly && !e.Props.IsAvailable {
			continue
		}
		items = append(items, e)
	}
	return &model.Page[*model.Equipment]{Items: items, Total: len(items)}, nil
}

type mockProposalRepo struct {
	*store[model.EquipmentProposal]
}

func newMockProposalRepo() *mockProposalRepo {
	return &mockProposalRepo{newStore(func(p *model.EquipmentProposal) string { return p.ID })}
}

func (m *mockProposalRepo) List(ctx context.Context, filter model.PartyFilter, page model.Pagination) (*model.Page[*model.EquipmentProposal], error) {
	var items []*model.EquipmentProposal
	for _, p := range m.all() {
		party := p.Props.BuyerID
		if filter.Role == model.RoleSeller {
			party = p.Props.SellerID
		}
		if party == filter.PartyID {
			items = append(items, p)
		}
	}
	return &model.Page[*model.EquipmentProposal]{Items: items, Total: len(items)}, nil
}

type mockReviewRepo struct {
	reviews  map[string]*model.Review
	profiles *mockProfileRepo
}

func newMockReviewRepo(profiles *mockProfileRepo) *mockReviewRepo {
	return &mockReviewRepo{reviews: make(map[string]*model.Review), profiles: profiles}
}

func (m *mockReviewRepo) Create(ctx context.Context, r *model.Review) error {
	for _, existing := range m.reviews {
		if existing.Props.BookingID == r.Props.BookingID {
			return model.ErrConflict
		}
	}
	m.reviews[r.ID] = r

	if p, ok := m.profiles.profiles[r.Props.ProfessionalID]; ok {
		var sum, n int
		for _, rv := range m.reviews {
			if rv.Props.ProfessionalID == r.Props.ProfessionalID {
				sum += rv.Props.Rating
				n++
			}
		}
		avg := float64(sum) / float64(n)
		p.Props.Rating = &avg
		p.Props.ReviewCount = &n
	}
	return nil
}

func (m *mockReviewRepo) GetByBooking(ctx context.Context, bookingID string) (*model.Review, error) {
	for _, r := range m.reviews {
		if r.Props.BookingID == bookingID {
			return r, nil
		}
	}
	return nil, nil
}

func (m *mockReviewRepo) ListByProfessional(ctx context.Context, professionalID string, page model.Pagination) (*model.Page[*model.Review], error) {
	var items []*model.Review
	for _, r := range m.reviews {
		if r.Props.ProfessionalID == professionalID {
			items = append(items, r)
		}
	}
	return &model.Page[*model.Review]{Items: items, Total: len(items)}, nil
}

type mockAvailabilityRepo struct {
	*store[model.Availability]
}

func newMockAvailabilityRepo() *mockAvailabilityRepo {
	return &mockAvailabilityRepo{newStore(func(a *model.Availability) string { return a.ID })}
}

func (m *mockAvailabilityRepo) ListByProfessional(ctx context.Context, professionalID string, dates model.DateRange) ([]*model.Availability, error) {
	var items []*model.Availability
	for _, a := range m.all() {
		if a.Props.ProfessionalID != professionalID {
			continue
		}
		if dates.From != nil && a.Props.Date < *dates.From {
			continue
		}
		if dates.To != nil && a.Props.Date > *dates.To {
			continue
		}
		items = append(items, a)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Props.Date < items[j].Props.Date })
	return items, nil
}

type mockPortfolioRepo struct {
	*store[model.PortfolioItem]
}

func newMockPortfolioRepo() *mockPortfolioRepo {
	return &mockPortfolioRepo{newStore(func(p *model.PortfolioItem) string { return p.ID })}
}

func (m *mockPortfolioRepo) ListByProfessional(ctx context.Context, professionalID string) ([]*model.PortfolioItem, error) {
	var items []*model.PortfolioItem
	for _, p := range m.all() {
		if p.Props.ProfessionalID == professionalID {
			items = append(items, p)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Props.SortOrder < items[j].Props.SortOrder })
	return items, nil
}
