package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/avoronin/shop_api/internal/models"
	pkghash "github.com/avoronin/shop_api/pkg/hash"
	jwthelp "github.com/avoronin/shop_api/pkg/jwt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserAlreadyExist = errors.New("user already exist")

func (r *GormRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) UserExist(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !pkghash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (r *GormRepo) CreateUserIfNotExists(ctx context.Context, u *models.User) error {
	tx := r.DB.WithContext(ctx).Where("username = ?", u.Username).FirstOrCreate(u)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrUserAlreadyExist
	}
	return nil
}

func (r *GormRepo) SaveRefreshToken(ctx context.Context, token string, userID uint, jti string, expiresAt int64) error {
	rec := models.RefreshToken{
		Token:     jwthelp.Sha256Hex(token),
		UserID:    userID,
		JTI:       jti,
		ExpiresAt: expiresAt,
	}
	return r.DB.WithContext(ctx).Create(&rec).Error
}

func (r *GormRepo) RefreshUsable(ctx context.Context, token string, now int64) (bool, error) {
	var rec models.RefreshToken
	if err := r.DB.WithContext(ctx).Where("token = ?", jwthelp.Sha256Hex(token)).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return !rec.Revoked && rec.ExpiresAt > now, nil
}

// RotateRefreshToken revokes the presented token and stores its replacement
// in one transaction: a storage failure rolls both back, so the user is never
// left with no usable refresh token.
func (r *GormRepo) RotateRefreshToken(ctx context.Context, oldToken, newToken string, userID uint, jti string, expiresAt int64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.RefreshToken{}).
			Where("token = ?", jwthelp.Sha256Hex(oldToken)).
			Update("revoked", true).Error; err != nil {
			return err
		}
		rec := models.RefreshToken{
			Token:     jwthelp.Sha256Hex(newToken),
			UserID:    userID,
			JTI:       jti,
			ExpiresAt: expiresAt,
		}
		return tx.Create(&rec).Error
	})
}

func (r *GormRepo) RevokeRefreshToken(ctx context.Context, token string) error {
	return r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token = ?", jwthelp.Sha256Hex(token)).
		Update("revoked", true).Error
}
