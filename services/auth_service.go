package services

import (
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"guest-checkin/config"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// AuthService is the reception staff gate: one shared credential plus a
// security answer. It is a door latch for a one-day event, not an account system.
type AuthService struct {
	cfg config.AuthConfig
	now func() time.Time
}

func NewAuthService(cfg config.AuthConfig) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 12 * time.Hour
	}
	return &AuthService{cfg: cfg, now: time.Now}
}

func (s *AuthService) Enabled() bool { return s.cfg.Enabled }

func unauthorized(msg string, err error) error {
	return &Error{Kind: KindUnauthorized, Message: msg, Err: err}
}

// Login returns a signed session token when all three answers match.
func (s *AuthService) Login(username, password, securityAnswer string) (string, time.Time, error) {
	if s.cfg.PasswordHash == "" || s.cfg.JWTSecret == "" {
		return "", time.Time{}, unauthorized(MsgBadCredentials, errors.New("staff gate is not configured"))
	}

	userOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(username)), []byte(s.cfg.Username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(password))
	answerOK := s.cfg.SecurityAnswer == "" ||
		subtle.ConstantTimeCompare([]byte(strings.TrimSpace(securityAnswer)), []byte(s.cfg.SecurityAnswer)) == 1

	if !userOK || passErr != nil || !answerOK {
		return "", time.Time{}, unauthorized(MsgBadCredentials, nil)
	}

	now := s.now()
	exp := now.Add(s.cfg.TokenTTL)
	claims := jwt.RegisteredClaims{
		Subject:   s.cfg.Username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, storeError(err)
	}
	return token, exp, nil
}

// Verify checks a token issued by Login.
func (s *AuthService) Verify(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return unauthorized(MsgUnauthorized, nil)
	}

	parser := jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}
	var claims jwt.RegisteredClaims
	_, err := parser.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return unauthorized(MsgUnauthorized, err)
	}
	if claims.Subject != s.cfg.Username {
		return unauthorized(MsgUnauthorized, errors.New("unexpected subject"))
	}
	return nil
}
