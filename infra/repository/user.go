package repository

import (
	"context"

	"github.com/amirasaad/minibank/pkg/domain"
	"github.com/amirasaad/minibank/pkg/domain/user"
	"github.com/amirasaad/minibank/pkg/repository"
	"gorm.io/gorm"
)

type userRepository struct {
	db   *gorm.DB
	rows *rowCounter
}

// NewUserRepository creates a UserRepository on db.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Get(ctx context.Context, id string) (*user.User, error) {
	if !validID(id) {
		return nil, domain.NewNotFound(domain.KindUser, id)
	}
	var m User
	err := WrapError(domain.KindUser, id, func() error {
		return r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error
	})
	if err != nil {
		return nil, err
	}
	return mapUserModelToDomain(&m), nil
}

func (r *userRepository) List(ctx context.Context) ([]*user.User, error) {
	var models []User
	if err := r.db.WithContext(ctx).Order("created_at").Find(&models).Error; err != nil {
		return nil, err
	}
	result := make([]*user.User, 0, len(models))
	for i := range models {
		result = append(result, mapUserModelToDomain(&models[i]))
	}
	return result, nil
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	m := User{
		ID:        u.ID,
		Login:     u.Login,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	res := r.db.WithContext(ctx).Create(&m)
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error, domain.KindUser, u.ID)
	}
	r.rows.add(res.RowsAffected)
	return nil
}

func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	res := r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", u.ID).
		Updates(map[string]any{"login": u.Login, "email": u.Email, "updated_at": u.UpdatedAt})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NewNotFound(domain.KindUser, u.ID)
	}
	r.rows.add(res.RowsAffected)
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.NewNotFound(domain.KindUser, id)
	}
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NewNotFound(domain.KindUser, id)
	}
	r.rows.add(res.RowsAffected)
	return nil
}

func mapUserModelToDomain(m *User) *user.User {
	return user.NewUserFromData(m.ID, m.Login, m.Email, m.CreatedAt, m.UpdatedAt)
}
