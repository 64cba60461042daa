package services

import (
	"errors"
	"time"

	"github.com/c14220110/poliklinik-frontdesk/config"
	"github.com/c14220110/poliklinik-frontdesk/pkg/utils"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService checks the single front-desk operator account configured in
// the environment and issues session tokens.
type AuthService struct {
	Username     string
	PasswordHash string
	Secret       []byte
	TTL          time.Duration
	now          func() time.Time
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{
		Username:     cfg.DeskUsername,
		PasswordHash: cfg.DeskPasswordHash,
		Secret:       []byte(cfg.JWTSecret),
		TTL:          cfg.TokenTTL,
		now:          time.Now,
	}
}

// Login returns a signed token and its expiry.
func (s *AuthService) Login(username, password string) (string, time.Time, error) {
	if username != s.Username || !utils.CheckPassword(s.PasswordHash, password) {
		return "", time.Time{}, ErrInvalidCredentials
	}

	exp := s.now().Add(s.TTL)
	token, err := utils.GenerateJWTToken(s.Secret, username, utils.RoleFrontDesk, exp)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, exp, nil
}
