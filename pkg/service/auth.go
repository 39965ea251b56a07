package service

import (
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/nfransec/twocents/pkg/config"
	"github.com/nfransec/twocents/pkg/domain/user"
	"github.com/nfransec/twocents/pkg/repository"
	"github.com/nfransec/twocents/pkg/utils"
)

// AuthService authenticates users and issues JWT tokens.
type AuthService struct {
	uowFactory repository.UoWFactory
	cfg        *config.Jwt
	logger     *slog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(uowFactory repository.UoWFactory, cfg *config.Jwt, logger *slog.Logger) *AuthService {
	return &AuthService{uowFactory: uowFactory, cfg: cfg, logger: logger}
}

// Login checks the identity (username or email) and password. A nil
// user with a nil error means the credentials did not match; callers
// must not learn whether the identity exists.
func (s *AuthService) Login(identity, password string) (*user.User, error) {
	log := s.logger.With("context", "Login")
	var u *user.User
	err := do(s.uowFactory, func(uow repository.UnitOfWork) error {
		repo := uow.UserRepository()
		var err error
		if utils.IsEmail(identity) {
			u, err = repo.GetByEmail(identity)
		} else {
			u, err = repo.GetByUsername(identity)
		}
		if errors.Is(err, user.ErrUserNotFound) {
			u = nil
			return nil
		}
		return err
	})
	if err != nil {
		log.Error("login lookup failed", "error", err)
		return nil, err
	}
	if u == nil || !utils.CheckPasswordHash(password, u.Password) {
		log.Warn("invalid credentials")
		return nil, nil
	}
	log.Info("login successful", "userID", u.ID)
	return u, nil
}

// GenerateToken issues a signed JWT for the user.
func (s *AuthService) GenerateToken(u *user.User) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = u.ID.String()
	claims["username"] = u.Username
	claims["email"] = u.Email
	claims["admin"] = u.IsAdmin
	claims["exp"] = time.Now().Add(s.cfg.Expiry).Unix()
	tokenString, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		s.logger.Error("token signing failed", "userID", u.ID, "error", err)
		return "", err
	}
	return tokenString, nil
}

// GetCurrentUserID extracts the authenticated user's ID from a verified
// token.
func (s *AuthService) GetCurrentUserID(token *jwt.Token) (uuid.UUID, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid token claims")
	}
	raw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, errors.New("user_id claim missing")
	}
	return uuid.Parse(raw)
}

// IsAdmin reports whether the verified token carries the admin claim.
func (s *AuthService) IsAdmin(token *jwt.Token) bool {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}
	admin, _ := claims["admin"].(bool)
	return admin
}
