package authenticating

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/captive-portal-api/infrastructure/repository"
	"github.com/vfg2006/captive-portal-api/internal/config"
	"github.com/vfg2006/captive-portal-api/internal/domain"
	"github.com/vfg2006/captive-portal-api/internal/metrics"
	"github.com/vfg2006/captive-portal-api/pkg/apiErrors"
	"github.com/vfg2006/captive-portal-api/pkg/middleware"
	"github.com/vfg2006/captive-portal-api/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

const userIDRandomSize = 9

type Authenticator interface {
	Login(ctx context.Context, name, email string) (*domain.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*domain.User, error)
	Session(ctx context.Context) (*domain.Session, error)
	AdminLogin(email, password string) (string, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	userRepo repository.UserRepository
	cfg      *config.Config
	now      func() time.Time
	sleep    func(ctx context.Context, d time.Duration) error
}

func NewService(userRepo repository.UserRepository, cfg *config.Config) *Service {
	return &Service{
		userRepo: userRepo,
		cfg:      cfg,
		now:      time.Now,
		sleep:    sleepContext,
	}
}

// Login creates a new portal visitor and makes it the current user. Every
// login creates a fresh record, even for a known email.
func (s *Service) Login(ctx context.Context, name, email string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = handleEmail(email)

	if name == "" || email == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "name and email are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, NewAuthError(ErrInvalidFormat, apiErrors.ErrInvalidFormat, "email is not valid")
	}

	if err := s.sleep(ctx, s.cfg.Portal.LoginDelay); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	userID, err := utils.PrefixedID("user", now, userIDRandomSize)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrInternalServer, "could not generate user id")
	}

	user := domain.User{
		ID:              userID,
		Email:           email,
		Name:            name,
		Authenticated:   true,
		AuthenticatedAt: &now,
		TotalClicks:     0,
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "could not save user")
	}
	if err := s.userRepo.SetCurrentUserID(ctx, user.ID); err != nil {
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "could not start session")
	}

	metrics.LoginsTotal.Inc()
	logrus.WithFields(logrus.Fields{"user_id": user.ID, "email": user.Email}).Info("Portal login")

	return &user, nil
}

// Logout clears the current user. The user record is kept.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.userRepo.ClearCurrentUserID(ctx); err != nil {
		return NewAuthError(err, apiErrors.ErrDatabaseOperation, "could not end session")
	}
	return nil
}

// CurrentUser returns nil when nobody is logged in.
func (s *Service) CurrentUser(ctx context.Context) (*domain.User, error) {
	user, err := repository.ResolveCurrentUser(ctx, s.userRepo)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "could not read session")
	}
	return user, nil
}

func (s *Service) Session(ctx context.Context) (*domain.Session, error) {
	user, err := s.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Authenticated {
		return nil, NewAuthError(ErrNoSession, apiErrors.ErrNoSession, "")
	}
	return domain.NewSession(user, s.now()), nil
}

func (s *Service) AdminLogin(email, password string) (string, error) {
	if email == "" || password == "" {
		return "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "email and password are required")
	}

	if s.cfg.Auth.AdminPasswordHash == "" {
		return "", NewAuthError(ErrAdminDisabled, apiErrors.ErrInvalidCredentials, "")
	}

	email = handleEmail(email)
	if email != handleEmail(s.cfg.Auth.AdminEmail) {
		return "", NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.Auth.AdminPasswordHash), []byte(password)); err != nil {
		logrus.WithField("email", email).Warn("Admin login with wrong password")
		return "", NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "")
	}

	token, err := s.generateJWT(email)
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "could not sign token")
	}

	return token, nil
}

func (s *Service) generateJWT(email string) (string, error) {
	now := s.now()
	claims := domain.Claims{
		UserEmail:  email,
		UserRoleID: middleware.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.Auth.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Auth.Secret))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Auth.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}

	return claims, nil
}

func handleEmail(s string) string {
	email := strings.ToLower(s)
	email = strings.TrimSpace(email)
	email = strings.ReplaceAll(email, " ", "")
	return email
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
