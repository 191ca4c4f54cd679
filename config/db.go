package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"resto-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "resto_db")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	)
	return dsn, nil
}

// SeedDatabase inserts the rows the site cannot render without: a default
// admin account, the singleton hero/contact rows, and a starter menu. Each
// block is idempotent (count, then insert).
func SeedDatabase() {
	var adminCount int64
	DB.Model(&models.Admin{}).Count(&adminCount)
	if adminCount == 0 {
		username := envOrDefault("ADMIN_USERNAME", "admin@baroesa.local")
		password := envOrDefault("ADMIN_PASSWORD", "admin123")
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.Admin{
				FullName: "Admin User",
				Username: username,
				Password: string(hash),
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	var heroCount int64
	DB.Model(&models.HeroContent{}).Count(&heroCount)
	if heroCount == 0 {
		hero := models.HeroContent{
			Title: "Watee Baroesa",
		}
		if err := DB.Create(&hero).Error; err != nil {
			log.Printf("warning: failed to seed hero content: %v", err)
		} else {
			log.Println("Hero content seeded")
		}
	}

	var contactCount int64
	DB.Model(&models.ContactInfo{}).Count(&contactCount)
	if contactCount == 0 {
		contact := models.ContactInfo{
			OpeningHours: "<p>Daily 11:00 - 22:00</p>",
		}
		if err := DB.Create(&contact).Error; err != nil {
			log.Printf("warning: failed to seed contact info: %v", err)
		} else {
			log.Println("Contact info seeded")
		}
	}

	var menuCount int64
	DB.Model(&models.MenuItem{}).Count(&menuCount)
	if menuCount == 0 {
		items := []models.MenuItem{
			{Name: "Mie Aceh", Description: "Spicy Acehnese noodles with beef", Price: "Rp 85.000", Category: "main", Type: "acehnese", SortOrder: 1},
			{Name: "Ayam Tangkap", Description: "Fried chicken with pandan and curry leaves", Price: "Rp 95.000", Category: "main", Type: "acehnese", SortOrder: 2},
			{Name: "Boeuf Bourguignon", Description: "Beef braised in red wine", Price: "Rp 185.000", Category: "main", Type: "french", SortOrder: 3},
			{Name: "Kopi Sanger", Description: "Acehnese pulled milk coffee", Price: "Rp 35.000", Category: "drink", Type: "acehnese", SortOrder: 4},
		}
		if err := DB.Create(&items).Error; err != nil {
			log.Printf("warning: failed to seed menu items: %v", err)
		} else {
			log.Println("Menu items seeded")
		}
	}
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	if err := DB.AutoMigrate(
		&models.Admin{},
		&models.ContactInfo{},
		&models.HeroContent{},
		&models.HeroImage{},
		&models.AboutSection{},
		&models.MenuItem{},
		&models.GalleryImage{},
		&models.SpecialOffer{},
		&models.Review{},
		&models.NewsletterSubscriber{},
		&models.Reservation{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
