package sqlite

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/campus-hub/registrar-service/internal/models"
	"github.com/campus-hub/registrar-service/internal/repositories"
)

type UserAccountSQLite struct {
	db *gorm.DB
}

func NewUserAccountSQLite(db *gorm.DB) repositories.UserAccountRepository {
	return &UserAccountSQLite{db: db}
}

func (u *UserAccountSQLite) Create(ctx context.Context, account *models.UserAccount) error {
	if err := u.db.WithContext(ctx).Create(account).Error; err != nil {
		return fmt.Errorf("failed to create user account: %w", err)
	}
	return nil
}

func (u *UserAccountSQLite) GetActiveByUsername(ctx context.Context, username string) (*models.UserAccount, error) {
	var account models.UserAccount
	if err := u.db.WithContext(ctx).
		Where("username = ? AND active = ?", username, true).
		First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (u *UserAccountSQLite) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := u.db.WithContext(ctx).Model(&models.UserAccount{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count user accounts: %w", err)
	}
	return count, nil
}
