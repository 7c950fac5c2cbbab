package repository

import (
	"context"

	"zodiac/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AdminRepository interface {
	FindByAdminID(ctx context.Context, adminID string) (*model.AdminCredential, error)
	// Upsert creates or replaces the credential row — used by seed tooling.
	Upsert(ctx context.Context, cred *model.AdminCredential) error
}

type adminRepo struct{ db *gorm.DB }

func NewAdminRepository(db *gorm.DB) AdminRepository { return &adminRepo{db: db} }

func (r *adminRepo) FindByAdminID(ctx context.Context, adminID string) (*model.AdminCredential, error) {
	var cred model.AdminCredential
	err := r.db.WithContext(ctx).Where("admin_id = ?", adminID).First(&cred).Error
	return &cred, err
}

func (r *adminRepo) Upsert(ctx context.Context, cred *model.AdminCredential) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "admin_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"password_hash"}),
	}).Create(cred).Error
}
