package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopfront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRecordRepository 购物车持久化记录数据访问接口
type CartRecordRepository interface {
	Load(ctx context.Context, key string) (string, bool, error)
	Save(ctx context.Context, key, payload string) error
	Remove(ctx context.Context, key string) error
	DeleteUpdatedBefore(ctx context.Context, before time.Time) (int64, error)
	WithTx(tx *gorm.DB) *GormCartRecordRepository
}

// GormCartRecordRepository GORM 实现
type GormCartRecordRepository struct {
	db *gorm.DB
}

// NewCartRecordRepository 创建购物车记录仓库
func NewCartRecordRepository(db *gorm.DB) *GormCartRecordRepository {
	return &GormCartRecordRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRecordRepository) WithTx(tx *gorm.DB) *GormCartRecordRepository {
	if tx == nil {
		return r
	}
	return &GormCartRecordRepository{db: tx}
}

// Load 按键读取购物车记录，记录不存在时返回 false
func (r *GormCartRecordRepository) Load(ctx context.Context, key string) (string, bool, error) {
	var record models.CartRecord
	err := r.db.WithContext(ctx).Where("key = ?", strings.TrimSpace(key)).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return record.Payload, true, nil
}

// Save 写入或覆盖购物车记录
func (r *GormCartRecordRepository) Save(ctx context.Context, key, payload string) error {
	now := time.Now()
	record := models.CartRecord{
		Key:       strings.TrimSpace(key),
		Payload:   payload,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&record).Error
}

// Remove 删除购物车记录，记录不存在时不报错
func (r *GormCartRecordRepository) Remove(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("key = ?", strings.TrimSpace(key)).Delete(&models.CartRecord{}).Error
}

// DeleteUpdatedBefore 删除指定时间之前未更新的购物车记录
func (r *GormCartRecordRepository) DeleteUpdatedBefore(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("updated_at < ?", before).Delete(&models.CartRecord{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
