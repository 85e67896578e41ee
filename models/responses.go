package models

import "time"

// TokenResponse is the wire shape returned by login and service-token
// endpoints: { "access_token": "...", "token_type": "bearer" }.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// NewTokenResponse wraps a signed token string in the bearer envelope.
func NewTokenResponse(signed string) TokenResponse {
	return TokenResponse{AccessToken: signed, TokenType: "bearer"}
}

// PersonResponse is the client-facing view of a Person. It carries no
// credential material; IsMe is computed per request against the resolved
// caller identity.
type PersonResponse struct {
	ID           int64   `json:"id"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Company      *string `json:"company,omitempty"`
	Sector       *string `json:"sector,omitempty"`
	IsAccount    bool    `json:"is_account"`
	IsMe         bool    `json:"is_me"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	LinkedInURL  *string `json:"linkedin_url,omitempty"`
	HowIKnowThem *string `json:"how_i_know_them,omitempty"`
	WhenIMetThem *Date   `json:"when_i_met_them,omitempty"`
	Notes        *string `json:"notes,omitempty"`
	Username     *string `json:"username,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// NewPersonResponse builds the response view of p. callerID is the resolved
// caller's account id and drives the IsMe flag; pass 0 when no caller is
// resolved (registration).
func NewPersonResponse(p Person, callerID int64) PersonResponse {
	return PersonResponse{
		ID:           p.ID,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Company:      p.Company,
		Sector:       p.Sector,
		IsAccount:    p.IsAccount,
		IsMe:         callerID != 0 && p.ID == callerID,
		Email:        p.Email,
		Phone:        p.Phone,
		LinkedInURL:  p.LinkedInURL,
		HowIKnowThem: p.HowIKnowThem,
		WhenIMetThem: p.WhenIMetThem,
		Notes:        p.Notes,
		Username:     p.Username,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// NewPersonResponses maps a page of records into response views.
func NewPersonResponses(people []Person, callerID int64) []PersonResponse {
	out := make([]PersonResponse, 0, len(people))
	for _, p := range people {
		out = append(out, NewPersonResponse(p, callerID))
	}
	return out
}

// ConnectionResponse is the client-facing view of a Connection.
type ConnectionResponse struct {
	ID              int64      `json:"id"`
	Person1ID       int64      `json:"person1_id"`
	Person2ID       int64      `json:"person2_id"`
	Relationship    *string    `json:"relationship,omitempty"`
	Strength        *int       `json:"strength,omitempty"`
	Context         *string    `json:"context,omitempty"`
	LastInteraction *time.Time `json:"last_interaction,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

// NewConnectionResponse builds the response view of c.
func NewConnectionResponse(c Connection) ConnectionResponse {
	return ConnectionResponse{
		ID:              c.ID,
		Person1ID:       c.Person1ID,
		Person2ID:       c.Person2ID,
		Relationship:    c.Relationship,
		Strength:        c.Strength,
		Context:         c.Context,
		LastInteraction: c.LastInteraction,
		Notes:           c.Notes,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// NewConnectionResponses maps records into response views.
func NewConnectionResponses(conns []Connection) []ConnectionResponse {
	out := make([]ConnectionResponse, 0, len(conns))
	for _, c := range conns {
		out = append(out, NewConnectionResponse(c))
	}
	return out
}

// ReferralResponse is the client-facing view of a Referral.
type ReferralResponse struct {
	ID              int64      `json:"id"`
	ReferrerID      int64      `json:"referrer_id"`
	Company         *string    `json:"company,omitempty"`
	Position        *string    `json:"position,omitempty"`
	ApplicationDate *Date      `json:"application_date,omitempty"`
	InterviewDate   *Date      `json:"interview_date,omitempty"`
	Status          *string    `json:"status,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

// NewReferralResponse builds the response view of r.
func NewReferralResponse(r Referral) ReferralResponse {
	return ReferralResponse{
		ID:              r.ID,
		ReferrerID:      r.ReferrerID,
		Company:         r.Company,
		Position:        r.Position,
		ApplicationDate: r.ApplicationDate,
		InterviewDate:   r.InterviewDate,
		Status:          r.Status,
		Notes:           r.Notes,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// NewReferralResponses maps records into response views.
func NewReferralResponses(refs []Referral) []ReferralResponse {
	out := make([]ReferralResponse, 0, len(refs))
	for _, r := range refs {
		out = append(out, NewReferralResponse(r))
	}
	return out
}

// MessageResponse is a simple acknowledgement payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse reports API and database health.
type HealthResponse struct {
	Status     string `json:"status"`
	Database   string `json:"database"`
	UsersCount int    `json:"users_count,omitempty"`
	Error      string `json:"error,omitempty"`
}
