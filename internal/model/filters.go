package model

// PartyRole selects which side of a bilateral resource a listing is for
type PartyRole string

const (
	RoleClient       PartyRole = "client"
	RoleProfessional PartyRole = "professional"
	RoleBuyer        PartyRole = "buyer"
	RoleSeller       PartyRole = "seller"
)

// PartyFilter lists bilateral resources (bookings, quote requests, proposals) of one party
type PartyFilter struct {
	PartyID string
	Role    PartyRole
	Status  *Status
	Dates   DateRange
}

// ProfileFilter searches active profiles
type ProfileFilter struct {
	Query    string
	UserType *UserType
	City     *string
	State    *string
}

// EquipmentFilter searches equipment listings
type EquipmentFilter struct {
	Query         string
	Category      *string
	City          *string
	State         *string
	OwnerID       *string
	AvailableOnly bool
}
