package mysql

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"staffpay/internal/domain/auth"
)

type UserStore struct {
	db *gorm.DB
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (auth.User, error) {
	var row userRow
	if err := s.db.WithContext(ctx).First(&row, "username = ?", username).Error; err != nil {
		if isNotFound(err) {
			return auth.User{}, auth.NotFoundError(username)
		}
		return auth.User{}, err
	}
	return row.toDomain(), nil
}

// Save upserts on username and keeps the original id.
func (s *UserStore) Save(ctx context.Context, u auth.User) (auth.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	row := userRow{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt.UTC(),
	}
	db := s.db.WithContext(ctx)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"password_hash", "role"}),
	}).Create(&row).Error
	if err != nil {
		return auth.User{}, err
	}
	if err := db.Model(&userRow{}).Select("id").Where("username = ?", u.Username).Scan(&u.ID).Error; err != nil {
		return auth.User{}, err
	}
	return u, nil
}
