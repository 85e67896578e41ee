package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headerIndex(columns ...string) map[string]int {
	index := make(map[string]int, len(columns))
	for i, name := range columns {
		index[name] = i
	}
	return index
}

func TestConnectionFromRecord_ResolvesEmails(t *testing.T) {
	index := headerIndex("person1_email", "person2_email", "relationship", "strength")
	byEmail := map[string]int64{"ada@example.com": 1, "grace@example.com": 2}

	req, err := connectionFromRecord(
		[]string{"Ada@Example.com", "grace@example.com", "colleague", "4"},
		index, byEmail,
	)
	require.NoError(t, err)

	assert.Equal(t, int64(1), req.Person1ID)
	assert.Equal(t, int64(2), req.Person2ID)
	require.NotNil(t, req.Relationship)
	assert.Equal(t, "colleague", *req.Relationship)
	require.NotNil(t, req.Strength)
	assert.Equal(t, 4, *req.Strength)
}

func TestConnectionFromRecord_UnknownEmail(t *testing.T) {
	index := headerIndex("person1_email", "person2_email")
	byEmail := map[string]int64{"ada@example.com": 1}

	_, err := connectionFromRecord([]string{"ada@example.com", "ghost@example.com"}, index, byEmail)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost@example.com")
}

func TestConnectionFromRecord_InvalidStrength(t *testing.T) {
	index := headerIndex("person1_email", "person2_email", "strength")
	byEmail := map[string]int64{"ada@example.com": 1, "grace@example.com": 2}

	_, err := connectionFromRecord([]string{"ada@example.com", "grace@example.com", "high"}, index, byEmail)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strength")
}

func TestReferralFromRecord(t *testing.T) {
	index := headerIndex("company", "position", "application_date", "status")

	req, err := referralFromRecord([]string{"Acme", "SRE", "2026-03-14", "applied"}, index)
	require.NoError(t, err)

	assert.Zero(t, req.ReferrerID, "attribution is left to the server")
	require.NotNil(t, req.Company)
	assert.Equal(t, "Acme", *req.Company)
	require.NotNil(t, req.ApplicationDate)
	assert.Equal(t, "2026-03-14", req.ApplicationDate.String())
	assert.Nil(t, req.InterviewDate)
}

func TestReferralFromRecord_InvalidDate(t *testing.T) {
	index := headerIndex("company", "application_date")

	_, err := referralFromRecord([]string{"Acme", "14/03/2026"}, index)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "application_date")
}

func TestContactFromRecord_RequiresNames(t *testing.T) {
	index := headerIndex("first_name", "last_name")

	_, err := contactFromRecord([]string{"Ada", ""}, index)
	require.Error(t, err)
}
