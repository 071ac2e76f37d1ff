package repositories

import (
	"context"

	"guest-checkin/models"

	"gorm.io/gorm"
)

type ImportLogRepository interface {
	Create(ctx context.Context, entry *models.ImportLog) error
	Recent(ctx context.Context, limit int) ([]models.ImportLog, error)
}

type gormImportLogRepository struct {
	db *gorm.DB
}

func NewImportLogRepository(db *gorm.DB) ImportLogRepository {
	return &gormImportLogRepository{db: db}
}

func (r *gormImportLogRepository) Create(ctx context.Context, entry *models.ImportLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *gormImportLogRepository) Recent(ctx context.Context, limit int) ([]models.ImportLog, error) {
	if limit <= 0 {
		limit = 20
	}
	var logs []models.ImportLog
	err := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
