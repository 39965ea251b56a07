package service

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nfransec/twocents/pkg/domain/user"
	"github.com/nfransec/twocents/pkg/repository"
	"github.com/nfransec/twocents/pkg/utils"
)

// UserService provides user account management.
type UserService struct {
	uowFactory repository.UoWFactory
	logger     *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(uowFactory repository.UoWFactory, logger *slog.Logger) *UserService {
	return &UserService{uowFactory: uowFactory, logger: logger}
}

// CreateUser registers a new user with a hashed password.
func (s *UserService) CreateUser(username, email, password string) (u *user.User, err error) {
	log := s.logger.With("context", "CreateUser", "username", username)
	err = do(s.uowFactory, func(uow repository.UnitOfWork) error {
		u, err = user.New(username, email, password)
		if err != nil {
			return err
		}
		return uow.UserRepository().Create(u)
	})
	if err != nil {
		log.Error("create user failed", "error", err)
		return nil, err
	}
	log.Info("user created", "userID", u.ID)
	return u, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(id uuid.UUID) (u *user.User, err error) {
	err = do(s.uowFactory, func(uow repository.UnitOfWork) error {
		u, err = uow.UserRepository().Get(id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// ListUsers returns every registered user. Admin only at the API layer.
func (s *UserService) ListUsers() (users []*user.User, err error) {
	err = do(s.uowFactory, func(uow repository.UnitOfWork) error {
		users, err = uow.UserRepository().List()
		return err
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// UserUpdate carries the editable user fields. Nil pointers leave the
// corresponding field untouched.
type UserUpdate struct {
	FullName *string
	Password *string
}

// UpdateUser applies the given changes to the user's profile.
func (s *UserService) UpdateUser(id uuid.UUID, upd UserUpdate) (u *user.User, err error) {
	log := s.logger.With("context", "UpdateUser", "userID", id)
	err = do(s.uowFactory, func(uow repository.UnitOfWork) error {
		repo := uow.UserRepository()
		u, err = repo.Get(id)
		if err != nil {
			return err
		}
		if upd.FullName != nil {
			u.FullName = *upd.FullName
		}
		if upd.Password != nil {
			hashed, hashErr := utils.HashPassword(*upd.Password)
			if hashErr != nil {
				return hashErr
			}
			u.Password = hashed
		}
		u.UpdatedAt = time.Now().UTC()
		return repo.Update(u)
	})
	if err != nil {
		log.Error("update user failed", "error", err)
		return nil, err
	}
	log.Info("user updated")
	return u, nil
}

// DeleteUser removes the user and cascades to all their cards inside
// the same transaction, so no orphan cards remain.
func (s *UserService) DeleteUser(id uuid.UUID) error {
	log := s.logger.With("context", "DeleteUser", "userID", id)
	err := do(s.uowFactory, func(uow repository.UnitOfWork) error {
		if err := uow.CardRepository().DeleteByUser(id); err != nil {
			return err
		}
		return uow.UserRepository().Delete(id)
	})
	if err != nil {
		log.Error("delete user failed", "error", err)
		return err
	}
	log.Info("user deleted with cards")
	return nil
}
