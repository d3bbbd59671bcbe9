package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/skva/kasse/config"
	"github.com/skva/kasse/live"
	"github.com/skva/kasse/middlewares"
	"github.com/skva/kasse/models"
	"github.com/skva/kasse/router"
	"github.com/skva/kasse/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	utils.InitLogger()

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	autoMigrate(db)
	seedMemberStates(db)

	hub := live.NewHub()

	r := router.SetupRouter(db, hub, middlewares.NewRateLimiter(50, 1))

	port := os.Getenv("PORT")
	if port == "" {
		port = "3002"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.MemberState{},
		&models.Member{},
		&models.Category{},
		&models.Product{},
		&models.Transaction{},
		&models.TransactionItem{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}

// seedMemberStates writes the fixed lookup set once on an empty table.
func seedMemberStates(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.MemberState{}).Count(&count).Error; err != nil {
		utils.ErrorLogger.Printf("Error counting member states: %v", err)
		return
	}
	if count > 0 {
		return
	}
	for _, name := range models.SeedMemberStates {
		if err := db.Create(&models.MemberState{Name: name}).Error; err != nil {
			utils.ErrorLogger.Printf("Error seeding member state %q: %v", name, err)
		}
	}
	utils.InfoLogger.Println("Member states seeded.")
}
