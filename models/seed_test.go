package models

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSeedCatalog(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Category{}))

	require.NoError(t, SeedCatalog(db))

	var count int64
	require.NoError(t, db.Model(&Category{}).Count(&count).Error)
	assert.EqualValues(t, 20, count)

	// Seeding again is a no-op, not a duplicate-key failure.
	require.NoError(t, SeedCatalog(db))
	require.NoError(t, db.Model(&Category{}).Count(&count).Error)
	assert.EqualValues(t, 20, count)

	var dairy Category
	require.NoError(t, db.Where("name = ?", "Dairy, Bread & Eggs").First(&dairy).Error)
	assert.NotEmpty(t, dairy.ImageURL)
}
