package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ipatlas/geotrace/internal/config"
	"github.com/ipatlas/geotrace/internal/dto"
	"github.com/ipatlas/geotrace/internal/models"
	"github.com/ipatlas/geotrace/internal/principal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrInvalidCredentials is returned for unknown email and wrong password
	// alike, so a caller cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnknownSubject means a token's subject no longer resolves to a user.
	ErrUnknownSubject = errors.New("token subject no longer exists")
)

// dummyHash absorbs a bcrypt comparison on the unknown-email path so both
// login failures take the same effort.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("geotrace.dummy"), bcrypt.DefaultCost)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// Login verifies an email+password pair and returns a signed token. Read-only.
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.IssueToken(&user)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &dto.LoginResponse{Token: token}, nil
}

// IssueToken mints a stateless HS256 token for the user, valid for the
// configured window (1h by default) from issuance.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.cfg.JWTExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ResolvePrincipal re-checks the backing store for the token subject. It runs
// on every authenticated request, so an account deleted after token issuance
// is rejected from then on.
func (s *AuthService) ResolvePrincipal(userID uuid.UUID) (principal.Principal, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return principal.Principal{}, ErrUnknownSubject
	}
	return principal.Principal{ID: user.ID, Email: user.Email}, nil
}
