package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-frontend/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	// every pooled connection would get its own empty :memory: database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Room{}, &models.StorageEntry{}, &models.ContactMessage{}))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func testCatalog() []models.Room {
	return []models.Room{
		{ID: "1", Name: "Deluxe Single", Type: models.RoomTypeSingle, Price: 150, Description: "Cozy room for one", Available: true},
		{ID: "2", Name: "Superior Single", Type: models.RoomTypeSingle, Price: 120, Description: "Quiet city view", Available: true},
		{ID: "3", Name: "Standard Double", Type: models.RoomTypeDouble, Price: 200, Description: "Two queen beds", Available: true},
		{ID: "4", Name: "Deluxe Double", Type: models.RoomTypeDouble, Price: 250, Description: "Balcony over the garden", Available: false},
		{ID: "5", Name: "Executive Suite", Type: models.RoomTypeSuite, Price: 400, Description: "Separate living area", Available: true},
		{ID: "6", Name: "Presidential Suite", Type: models.RoomTypeSuite, Price: 600, Description: "Top floor with panoramic view", Available: true},
	}
}

func roomIDs(rooms []models.Room) []string {
	ids := make([]string, 0, len(rooms))
	for _, r := range rooms {
		ids = append(ids, string(r.ID))
	}
	return ids
}
