package db

import (
	"os"

	"cimsel/internal/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=cimsel port=5432 sslmode=disable TimeZone=Asia/Jakarta"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	logrus.Info("database connection established")

	err = DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Blog{},
		&models.Comment{},
		&models.UserTrust{},
		&models.Bookmark{},
	)
	if err != nil {
		logrus.WithError(err).Fatal("failed to migrate database")
	}
	logrus.Info("database migration completed")

	seedAdmin()
	seedCategories()
}

// seedAdmin creates the initial admin account on an empty install. The
// password comes from ADMIN_PASSWORD and must be changed after first login.
func seedAdmin() {
	var count int64
	DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("failed to hash admin password")
		return
	}

	admin := models.User{
		Name:     "Administrator",
		Username: "admin",
		Email:    "admin@cimsel.org",
		Password: string(hashed),
		Role:     models.RoleAdmin,
	}
	if err := DB.Create(&admin).Error; err != nil {
		logrus.WithError(err).Error("failed to create admin user")
		return
	}
	logrus.Info("initial admin user created")
}

func seedCategories() {
	var count int64
	DB.Model(&models.Category{}).Count(&count)
	if count > 0 {
		return
	}

	categories := []models.Category{
		{Name: "Kajian", Description: "Ringkasan dan materi kajian rutin"},
		{Name: "Kegiatan", Description: "Laporan kegiatan dan acara jamaah"},
		{Name: "Artikel", Description: "Artikel dan tulisan umum"},
		{Name: "Pengumuman", Description: "Pengumuman resmi"},
	}
	for _, category := range categories {
		if err := DB.Create(&category).Error; err != nil {
			logrus.WithError(err).WithField("category", category.Name).Error("failed to seed category")
		}
	}
	logrus.Info("initial categories created")
}
