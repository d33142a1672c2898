package services

import (
	"context"
	"fmt"
	"time"

	"lablink/internal/models"
	"lablink/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// PartnerAuthenticator exchanges partner credentials for a session.
type PartnerAuthenticator interface {
	Login(ctx context.Context, username, password string) (*models.B2BUser, error)
}

// AuthService authenticates partners against the offline partner directory
// and issues HS256 session tokens.
type AuthService struct {
	partnerRepo repositories.PartnerRepository
	jwtSecret   []byte
	tokenTTL    time.Duration
	logger      *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(partnerRepo repositories.PartnerRepository, jwtSecret string, logger *zap.Logger) *AuthService {
	return &AuthService{
		partnerRepo: partnerRepo,
		jwtSecret:   []byte(jwtSecret),
		tokenTTL:    24 * time.Hour,
		logger:      logger.Named("auth"),
	}
}

// RegisterPartner hashes the partner's password and saves them to the directory.
func (s *AuthService) RegisterPartner(partner *models.Partner) error {
	if existing, err := s.partnerRepo.GetByEmail(partner.Email); err == nil && existing != nil {
		return fmt.Errorf("email '%s' already registered", partner.Email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(partner.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	partner.Password = string(hashedPassword)

	if err := s.partnerRepo.Create(partner); err != nil {
		return fmt.Errorf("failed to register partner: %w", err)
	}
	return nil
}

// Login authenticates a partner by email and password and returns a session
// carrying a signed token.
func (s *AuthService) Login(_ context.Context, email, password string) (*models.B2BUser, error) {
	partner, err := s.partnerRepo.GetByEmail(email)
	if err != nil {
		// Do not reveal whether the email exists.
		return nil, fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(partner.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"partner_id": partner.ID,
		"email":      partner.Email,
		"exp":        time.Now().Add(s.tokenTTL).Unix(),
		"iat":        time.Now().Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.B2BUser{
		ID:           partner.ID,
		Name:         partner.Name,
		Email:        partner.Email,
		Token:        tokenString,
		Role:         models.RolePartner,
		Organization: partner.Organization,
	}, nil
}

// ValidateToken parses and validates a session token, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// RestoreSession drops a persisted partner session whose token no longer
// validates or whose partner has left the directory. It reports whether a
// session survived.
func (s *AuthService) RestoreSession(ctx context.Context, store *Store) bool {
	session := store.Partner()
	if session == nil {
		return false
	}
	claims, err := s.ValidateToken(session.Token)
	if err != nil {
		s.logger.Info("persisted partner session expired", zap.String("partner_id", session.ID), zap.Error(err))
		store.LogoutB2B(ctx)
		return false
	}
	partnerID, _ := claims["partner_id"].(string)
	if _, err := s.partnerRepo.GetByID(partnerID); err != nil {
		s.logger.Info("persisted partner no longer registered", zap.String("partner_id", partnerID), zap.Error(err))
		store.LogoutB2B(ctx)
		return false
	}
	return true
}
