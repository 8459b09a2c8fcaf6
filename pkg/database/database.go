package database

import (
	"elearn_backend/internal/config"
	"elearn_backend/internal/model"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Module{},
		&model.Lesson{},
		&model.Exam{},
		&model.Question{},
		&model.LessonProgress{},
		&model.ExamResult{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}

// BootstrapSuperuser creates the configured admin account once. It
// only runs in release mode with all bootstrap fields set, and is a
// no-op when the account already exists.
func BootstrapSuperuser(db *gorm.DB, cfg *config.Config) error {
	if cfg.Server.Mode != "release" {
		log.Println("Skipping superuser creation (not release mode)")
		return nil
	}

	b := cfg.Bootstrap
	if b.AdminName == "" || b.AdminEmail == "" || b.AdminPassword == "" {
		log.Println("Superuser bootstrap vars not set, skipping creation")
		return nil
	}

	var count int64
	if err := db.Model(&model.User{}).Where("email = ?", b.AdminEmail).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(b.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &model.User{
		Name:     b.AdminName,
		Email:    b.AdminEmail,
		Password: string(hashed),
		Role:     model.Admin,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("Superuser %q created", b.AdminEmail)
	return nil
}
