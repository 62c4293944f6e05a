package addressControllers

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sn0wstorm20202/blinkit-clone/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Address{}))
	return db
}

func fullInput(name string) CreateInput {
	return CreateInput{
		FullName:     name,
		PhoneNumber:  "9876543210",
		AddressLine1: "221B Baker Street",
		City:         "Delhi",
		State:        "Delhi",
		PostalCode:   "110001",
	}
}

func countDefaults(t *testing.T, db *gorm.DB, userID string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Count(&count).Error)
	return count
}

func TestMissingFields(t *testing.T) {
	input := CreateInput{FullName: "Rohit", City: "  "}
	missing := input.MissingFields()
	assert.Contains(t, missing, "phone_number")
	assert.Contains(t, missing, "address_line1")
	assert.Contains(t, missing, "city")
	assert.Contains(t, missing, "state")
	assert.Contains(t, missing, "postal_code")
	assert.NotContains(t, missing, "full_name")
}

func TestCreateTrimsAndCollapsesLine2(t *testing.T) {
	db := newTestDB(t)

	input := fullInput("  Rohit  ")
	input.AddressLine2 = "   "
	address, err := Create(db, "user-1", input)
	require.NoError(t, err)
	assert.Equal(t, "Rohit", address.FullName)
	assert.Nil(t, address.AddressLine2)
}

func TestCreateDefaultDisplacesPrevious(t *testing.T) {
	db := newTestDB(t)

	first := fullInput("Rohit")
	first.IsDefault = true
	a, err := Create(db, "user-1", first)
	require.NoError(t, err)
	assert.True(t, a.IsDefault)

	second := fullInput("Rohit Office")
	second.IsDefault = true
	b, err := Create(db, "user-1", second)
	require.NoError(t, err)
	assert.True(t, b.IsDefault)

	assert.EqualValues(t, 1, countDefaults(t, db, "user-1"))

	var reloaded models.Address
	require.NoError(t, db.First(&reloaded, a.ID).Error)
	assert.False(t, reloaded.IsDefault)
}

func TestSetDefaultKeepsSingleDefault(t *testing.T) {
	db := newTestDB(t)

	a, err := Create(db, "user-1", fullInput("Home"))
	require.NoError(t, err)
	b, err := Create(db, "user-1", fullInput("Office"))
	require.NoError(t, err)

	_, err = SetDefault(db, "user-1", a.ID)
	require.NoError(t, err)
	_, err = SetDefault(db, "user-1", b.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 1, countDefaults(t, db, "user-1"))

	list, err := List(db, "user-1")
	require.NoError(t, err)
	require.NotEmpty(t, list)
	assert.Equal(t, b.ID, list[0].ID) // default sorts first
}

func TestUpdatePatchIsPartial(t *testing.T) {
	db := newTestDB(t)

	a, err := Create(db, "user-1", fullInput("Rohit"))
	require.NoError(t, err)

	city := "Mumbai"
	updated, err := Update(db, "user-1", a.ID, UpdateInput{City: &city})
	require.NoError(t, err)
	assert.Equal(t, "Mumbai", updated.City)
	assert.Equal(t, "Rohit", updated.FullName)
	assert.Equal(t, "110001", updated.PostalCode)
}

func TestUpdateDefaultDisplacesPrevious(t *testing.T) {
	db := newTestDB(t)

	first := fullInput("Home")
	first.IsDefault = true
	a, err := Create(db, "user-1", first)
	require.NoError(t, err)

	b, err := Create(db, "user-1", fullInput("Office"))
	require.NoError(t, err)

	yes := true
	_, err = Update(db, "user-1", b.ID, UpdateInput{IsDefault: &yes})
	require.NoError(t, err)

	assert.EqualValues(t, 1, countDefaults(t, db, "user-1"))

	var reloaded models.Address
	require.NoError(t, db.First(&reloaded, a.ID).Error)
	assert.False(t, reloaded.IsDefault)
}

func TestOwnershipCollapsesToNotFound(t *testing.T) {
	db := newTestDB(t)

	a, err := Create(db, "user-1", fullInput("Home"))
	require.NoError(t, err)

	_, err = Update(db, "user-2", a.ID, UpdateInput{})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = SetDefault(db, "user-2", a.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, Delete(db, "user-2", a.ID), ErrNotFound)

	// Still there for the owner.
	require.NoError(t, Delete(db, "user-1", a.ID))
}
