package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"referly/invitehub/internal/model"
)

type gormInviteRecordRepository struct {
	db *gorm.DB
}

func NewGormInviteRecordRepository(db *gorm.DB) InviteRecordRepository {
	return &gormInviteRecordRepository{db: db}
}

func (r *gormInviteRecordRepository) Create(ctx context.Context, record *model.InviteRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *gormInviteRecordRepository) GetByInvitee(ctx context.Context, inviteeID uuid.UUID) (*model.InviteRecord, error) {
	var record model.InviteRecord
	err := r.db.WithContext(ctx).Where("invitee_id = ?", inviteeID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *gormInviteRecordRepository) ListByInviter(ctx context.Context, inviterID uuid.UUID) ([]model.InviteRecord, error) {
	var records []model.InviteRecord
	if err := r.db.WithContext(ctx).
		Where("inviter_id = ?", inviterID).
		Order("created_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *gormInviteRecordRepository) CountByInviter(ctx context.Context, inviterID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.InviteRecord{}).
		Where("inviter_id = ?", inviterID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
