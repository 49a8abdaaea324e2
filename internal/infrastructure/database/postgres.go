package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sangkips/yuyitos-api/internal/config"
	"github.com/sangkips/yuyitos-api/internal/domain/entity"
	"github.com/sangkips/yuyitos-api/pkg/utils"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// gormWriter routes GORM's logger output through zerolog
type gormWriter struct{}

func (gormWriter) Printf(format string, args ...interface{}) {
	log.Info().Str("component", "gorm").Msgf(format, args...)
}

// NewPostgresDB creates a new PostgreSQL database connection. SQL statements
// are logged only when debug is on; slow queries are always reported.
func NewPostgresDB(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	level := logger.Warn
	if debug {
		level = logger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.New(gormWriter{}, logger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info().Str("host", cfg.Host).Str("database", cfg.Name).Msg("connected to PostgreSQL")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Info().Msg("running database migrations")

	err := db.AutoMigrate(
		&entity.Permission{},
		&entity.Role{},
		&entity.User{},

		&entity.Supplier{},
		&entity.Category{},
		&entity.Product{},
		&entity.Customer{},

		&entity.Sale{},
		&entity.SaleLine{},
		&entity.Payment{},
		&entity.PurchaseOrder{},
		&entity.PurchaseOrderLine{},
		&entity.Receipt{},
		&entity.ReceiptLine{},

		&entity.Counter{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info().Msg("database migrations completed")
	return nil
}

// SeedDefaultData creates the permissions, the admin and seller roles and,
// when credentials are configured, the first administrator. It is safe to
// run on every start.
func SeedDefaultData(ctx context.Context, db *gorm.DB, admin config.AdminConfig) error {
	db = db.WithContext(ctx)

	for role, names := range entity.RolePermissions {
		perms := make([]entity.Permission, 0, len(names))
		for _, name := range names {
			perm := entity.Permission{Name: name}
			if err := db.Where(entity.Permission{Name: name}).FirstOrCreate(&perm).Error; err != nil {
				return fmt.Errorf("seed permission %s: %w", name, err)
			}
			perms = append(perms, perm)
		}

		r := entity.Role{Name: role}
		if err := db.Where(entity.Role{Name: role}).FirstOrCreate(&r).Error; err != nil {
			return fmt.Errorf("seed role %s: %w", role, err)
		}
		if err := db.Model(&r).Association("Permissions").Replace(perms); err != nil {
			return fmt.Errorf("seed %s permissions: %w", role, err)
		}
	}

	if admin.Email == "" || admin.Password == "" {
		log.Debug().Msg("ADMIN_EMAIL not set, skipping administrator seed")
		return nil
	}
	return seedAdmin(db, admin)
}

func seedAdmin(db *gorm.DB, admin config.AdminConfig) error {
	email := strings.ToLower(strings.TrimSpace(admin.Email))

	var existing entity.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Debug().Str("email", email).Msg("administrator already exists")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := utils.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	var role entity.Role
	if err := db.Where("name = ?", entity.RoleAdmin).First(&role).Error; err != nil {
		return fmt.Errorf("load admin role: %w", err)
	}

	name := admin.Name
	if name == "" {
		name = "Administrador"
	}
	firstName, lastName, _ := strings.Cut(name, " ")
	username, _, _ := strings.Cut(email, "@")

	user := entity.User{
		ID:        uuid.New(),
		FirstName: firstName,
		LastName:  lastName,
		Username:  username,
		Email:     email,
		Password:  hashed,
		IsActive:  true,
		Roles:     []entity.Role{role},
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("create administrator: %w", err)
	}
	log.Info().Str("email", email).Msg("administrator created")
	return nil
}
