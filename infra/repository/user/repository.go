package user

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domainuser "github.com/nfransec/twocents/pkg/domain/user"
	"github.com/nfransec/twocents/pkg/repository"
)

type userRepository struct {
	db *gorm.DB
}

// New creates a gorm-backed user repository.
func New(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Get(id uuid.UUID) (*domainuser.User, error) {
	var m User
	if err := r.db.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainuser.ErrUserNotFound
		}
		return nil, err
	}
	return mapModelToDomain(&m), nil
}

func (r *userRepository) GetByUsername(username string) (*domainuser.User, error) {
	var m User
	if err := r.db.Where("username = ?", username).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainuser.ErrUserNotFound
		}
		return nil, err
	}
	return mapModelToDomain(&m), nil
}

func (r *userRepository) GetByEmail(email string) (*domainuser.User, error) {
	var m User
	if err := r.db.Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainuser.ErrUserNotFound
		}
		return nil, err
	}
	return mapModelToDomain(&m), nil
}

func (r *userRepository) List() ([]*domainuser.User, error) {
	var models []User
	if err := r.db.Find(&models).Error; err != nil {
		return nil, err
	}
	users := make([]*domainuser.User, 0, len(models))
	for i := range models {
		users = append(users, mapModelToDomain(&models[i]))
	}
	return users, nil
}

func (r *userRepository) Create(u *domainuser.User) error {
	return r.db.Create(mapDomainToModel(u)).Error
}

func (r *userRepository) Update(u *domainuser.User) error {
	res := r.db.Model(&User{}).Where("id = ?", u.ID).Updates(map[string]any{
		"username":  u.Username,
		"email":     u.Email,
		"password":  u.Password,
		"full_name": u.FullName,
		"is_admin":  u.IsAdmin,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainuser.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) Delete(id uuid.UUID) error {
	res := r.db.Delete(&User{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainuser.ErrUserNotFound
	}
	return nil
}

func mapModelToDomain(m *User) *domainuser.User {
	return domainuser.NewFromData(
		m.ID,
		m.Username,
		m.Email,
		m.Password,
		m.FullName,
		m.IsAdmin,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func mapDomainToModel(u *domainuser.User) *User {
	return &User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Password:  u.Password,
		FullName:  u.FullName,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
