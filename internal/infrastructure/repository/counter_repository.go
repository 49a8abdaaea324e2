package repository

import (
	"context"

	"github.com/sangkips/yuyitos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/yuyitos-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type counterRepository struct {
	db *gorm.DB
}

// NewCounterRepository creates a new counter repository
func NewCounterRepository(db *gorm.DB) domainRepo.CounterRepository {
	return &counterRepository{db: db}
}

// Next inserts the counter row if missing, locks it, and advances it.
// Concurrent callers serialize on the row lock until the transaction ends.
func (r *counterRepository) Next(ctx context.Context, name string, floor int64) (int64, error) {
	db := conn(ctx, r.db)

	if err := db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entity.Counter{Name: name, Value: 0}).Error; err != nil {
		return 0, err
	}

	var counter entity.Counter
	if err := db.Clauses(forUpdate()).First(&counter, "name = ?", name).Error; err != nil {
		return 0, err
	}

	next := counter.Value
	if floor > next {
		next = floor
	}
	next++

	if err := db.Model(&entity.Counter{}).
		Where("name = ?", name).
		Update("value", next).Error; err != nil {
		return 0, err
	}
	return next, nil
}
