// internals/features/users/auth/repository/auth_repository.go
package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	authModel "personel_backend/internals/features/users/auth/model"
	userModel "personel_backend/internals/features/users/user/model"
)

type AuthRepository struct {
	DB *gorm.DB
}

func NewAuthRepository(db *gorm.DB) *AuthRepository {
	return &AuthRepository{DB: db}
}

// HashToken is what gets stored in token_blacklist.token.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

/* ====================== USER ====================== */

// FindUserByIdentifier returns (nil, nil) when no user matches.
func (r *AuthRepository) FindUserByIdentifier(ctx context.Context, identifier string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	err := r.DB.WithContext(ctx).
		Where("email = ? OR user_name = ?", identifier, identifier).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *AuthRepository) FindUserByID(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	err := r.DB.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *AuthRepository) UpdateUserPassword(ctx context.Context, id uuid.UUID, hashed string) error {
	return r.DB.WithContext(ctx).
		Model(&userModel.UserModel{}).
		Where("id = ?", id).
		Update("password", hashed).Error
}

func (r *AuthRepository) IsUserActive(ctx context.Context, id uuid.UUID) (bool, error) {
	var row struct{ IsActive bool }
	err := r.DB.WithContext(ctx).
		Table("users").
		Select("is_active").
		Where("id = ? AND deleted_at IS NULL", id).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return row.IsActive, err
}

/* ====================== BLACKLIST TOKEN ====================== */

func (r *AuthRepository) BlacklistToken(ctx context.Context, rawToken string, expiresAt time.Time) error {
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&authModel.TokenBlacklist{
			Token:     HashToken(rawToken),
			ExpiredAt: expiresAt.UTC(),
		}).Error
}

func (r *AuthRepository) IsTokenBlacklisted(ctx context.Context, rawToken string) (bool, error) {
	var exists bool
	err := r.DB.WithContext(ctx).
		Raw(`SELECT EXISTS(SELECT 1 FROM token_blacklist WHERE token = ?)`, HashToken(rawToken)).
		Scan(&exists).Error
	return exists, err
}

// CleanupExpiredBlacklist hard-deletes rows that expired before the cutoff.
func (r *AuthRepository) CleanupExpiredBlacklist(ctx context.Context, before time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("expired_at < ?", before.UTC()).
		Delete(&authModel.TokenBlacklist{})
	return res.RowsAffected, res.Error
}
