package models

import "time"

// Referral tracks a job referral made through a contact in the network.
type Referral struct {
	ID int64

	// ReferrerID references the person who made the referral.
	ReferrerID int64

	Company         *string
	Position        *string
	ApplicationDate *Date
	InterviewDate   *Date

	// Status is free-form, e.g. "pending", "accepted", "rejected".
	Status *string

	Notes *string

	CreatedAt time.Time
	UpdatedAt *time.Time
}

// TableName returns the name of the database table backing the Referral model.
func (r Referral) TableName() string {
	return "referrals"
}

// ReferralPatch carries a partial update of a Referral record.
// Nil fields are left untouched.
type ReferralPatch struct {
	Company         *string `json:"company,omitempty"`
	Position        *string `json:"position,omitempty"`
	ApplicationDate *Date   `json:"application_date,omitempty"`
	InterviewDate   *Date   `json:"interview_date,omitempty"`
	Status          *string `json:"status,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// IsEmpty reports whether the patch sets no fields at all.
func (r ReferralPatch) IsEmpty() bool {
	return r.Company == nil && r.Position == nil && r.ApplicationDate == nil &&
		r.InterviewDate == nil && r.Status == nil && r.Notes == nil
}
