package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetDecode_NumericIDsAndStringCost(t *testing.T) {
	var a Asset
	err := json.Unmarshal([]byte(`{"id":9,"name":"Laptop","category_id":"3","cost":"1200.50","created_by":null}`), &a)
	require.NoError(t, err)

	assert.Equal(t, ID("9"), a.ID)
	assert.Equal(t, ID("3"), a.CategoryID)
	assert.Equal(t, ID(""), a.CreatedBy)
	assert.InDelta(t, 1200.50, float64(a.Cost), 1e-9)
}

func TestAmountDecode_Invalid(t *testing.T) {
	var a Amount
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &a))
	assert.Error(t, json.Unmarshal([]byte(`true`), &a))
}

func TestNewMember(t *testing.T) {
	m := NewMember(User{ID: "4", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"})

	assert.Equal(t, "Ada Lovelace", m.FullName)
	assert.Equal(t, StatusActive, m.Status)
	assert.Equal(t, "4", m.RowID())

	m = NewMember(User{ID: "5", FirstName: "Bo", LastName: "Li", Status: "pending"})
	assert.Equal(t, "pending", m.Status)
}

func TestCatalogField_NullDescription(t *testing.T) {
	desc := "Laptops and monitors"
	withDesc := Category{ID: "1", Name: "IT", Description: &desc}
	without := Department{ID: "2", Name: "Ops"}

	assert.Equal(t, desc, withDesc.Field("description"))
	assert.Nil(t, without.Field("description"))
	assert.Nil(t, without.Field("unknown"))
}

func TestUserInputMember(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	in := UserInput{FirstName: "Grace", LastName: "Hopper", Email: "g@example.com", Role: RoleAdmin}

	m := in.Member("12", now)

	assert.Equal(t, ID("12"), m.ID)
	assert.Equal(t, "Grace Hopper", m.FullName)
	assert.Equal(t, StatusActive, m.Status)
	assert.Equal(t, "2026-03-01T10:00:00Z", m.CreatedAt)
}

func TestSessionExpired(t *testing.T) {
	now := time.Now()
	assert.False(t, Session{}.Expired(now))
	assert.False(t, Session{ExpiresAt: now.Add(time.Minute)}.Expired(now))
	assert.True(t, Session{ExpiresAt: now}.Expired(now))
}
