package models

import "time"

// Person is a record in the professional network: either a passive contact or
// the authenticated account owner. The credential fields (Username,
// PasswordHash) are populated only when IsAccount is true; a plain contact
// never carries a usable hash.
//
// PasswordHash must never leave the service boundary. Responses are built
// through [NewPersonResponse], which has no hash field at all.
type Person struct {
	// ID is the server-assigned unique identifier.
	ID int64

	FirstName string
	LastName  string

	Company *string
	Sector  *string

	// IsAccount distinguishes an authenticated account owner from a passive
	// contact with no login.
	IsAccount bool

	Email        *string
	Phone        *string
	LinkedInURL  *string
	HowIKnowThem *string
	WhenIMetThem *Date
	Notes        *string

	// Username is the unique login identifier. Nil for contacts.
	Username *string

	// PasswordHash is the Argon2id PHC-encoded credential. Nil for contacts.
	PasswordHash *string

	CreatedAt time.Time
	UpdatedAt *time.Time
}

// TableName returns the name of the database table backing the Person model.
func (p Person) TableName() string {
	return "users"
}

// PersonPatch carries a partial update of a Person record. Nil fields are
// left untouched; the repository layer translates set fields into an UPDATE
// with only the corresponding columns.
type PersonPatch struct {
	FirstName    *string `json:"first_name,omitempty"`
	LastName     *string `json:"last_name,omitempty"`
	Company      *string `json:"company,omitempty"`
	Sector       *string `json:"sector,omitempty"`
	Username     *string `json:"username,omitempty"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	LinkedInURL  *string `json:"linkedin_url,omitempty"`
	HowIKnowThem *string `json:"how_i_know_them,omitempty"`
	WhenIMetThem *Date   `json:"when_i_met_them,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// IsEmpty reports whether the patch sets no fields at all.
func (p PersonPatch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Company == nil &&
		p.Sector == nil && p.Username == nil && p.Email == nil &&
		p.Phone == nil && p.LinkedInURL == nil && p.HowIKnowThem == nil &&
		p.WhenIMetThem == nil && p.Notes == nil
}

// FilterOptions lists the distinct company and sector values present in the
// network, used by clients to populate filter dropdowns.
type FilterOptions struct {
	Companies []string `json:"companies"`
	Sectors   []string `json:"sectors"`
}
