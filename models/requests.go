package models

import "time"

// RegisterRequest is the payload for POST /auth/register. It creates the
// account-owner record: profile fields plus the login credential pair.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`

	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Company      *string `json:"company,omitempty"`
	Sector       *string `json:"sector,omitempty"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	LinkedInURL  *string `json:"linkedin_url,omitempty"`
	HowIKnowThem *string `json:"how_i_know_them,omitempty"`
	WhenIMetThem *Date   `json:"when_i_met_them,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// LoginRequest is the payload for POST /auth/login and POST /auth/service-token.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ChangePasswordRequest is the payload for PUT /users/me/password. The target
// account is always the resolved caller; no identifier field exists on purpose.
type ChangePasswordRequest struct {
	NewPassword string `json:"new_password"`
}

// CreatePersonRequest is the payload for POST /users. It creates a passive
// contact; credential fields are deliberately absent.
type CreatePersonRequest struct {
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Company      *string `json:"company,omitempty"`
	Sector       *string `json:"sector,omitempty"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	LinkedInURL  *string `json:"linkedin_url,omitempty"`
	HowIKnowThem *string `json:"how_i_know_them,omitempty"`
	WhenIMetThem *Date   `json:"when_i_met_them,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// Person converts the request into a contact record (IsAccount=false).
func (r CreatePersonRequest) Person() Person {
	return Person{
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Company:      r.Company,
		Sector:       r.Sector,
		Email:        r.Email,
		Phone:        r.Phone,
		LinkedInURL:  r.LinkedInURL,
		HowIKnowThem: r.HowIKnowThem,
		WhenIMetThem: r.WhenIMetThem,
		Notes:        r.Notes,
	}
}

// CreateConnectionRequest is the payload for POST /connections.
type CreateConnectionRequest struct {
	Person1ID       int64      `json:"person1_id"`
	Person2ID       int64      `json:"person2_id"`
	Relationship    *string    `json:"relationship,omitempty"`
	Strength        *int       `json:"strength,omitempty"`
	Context         *string    `json:"context,omitempty"`
	LastInteraction *time.Time `json:"last_interaction,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
}

// Connection converts the request into a Connection record.
func (r CreateConnectionRequest) Connection() Connection {
	return Connection{
		Person1ID:       r.Person1ID,
		Person2ID:       r.Person2ID,
		Relationship:    r.Relationship,
		Strength:        r.Strength,
		Context:         r.Context,
		LastInteraction: r.LastInteraction,
		Notes:           r.Notes,
	}
}

// CreateReferralRequest is the payload for POST /referrals.
type CreateReferralRequest struct {
	ReferrerID      int64   `json:"referrer_id"`
	Company         *string `json:"company,omitempty"`
	Position        *string `json:"position,omitempty"`
	ApplicationDate *Date   `json:"application_date,omitempty"`
	InterviewDate   *Date   `json:"interview_date,omitempty"`
	Status          *string `json:"status,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// Referral converts the request into a Referral record.
func (r CreateReferralRequest) Referral() Referral {
	return Referral{
		ReferrerID:      r.ReferrerID,
		Company:         r.Company,
		Position:        r.Position,
		ApplicationDate: r.ApplicationDate,
		InterviewDate:   r.InterviewDate,
		Status:          r.Status,
		Notes:           r.Notes,
	}
}
