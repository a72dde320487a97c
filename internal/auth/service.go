package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/edurede/school-registry/internal"
	userDatamodel "github.com/edurede/school-registry/internal/core/datamodel/user"
)

// UserRepository is the credential-store surface the auth service needs.
type UserRepository interface {
	GetByEmail(email string) (*userDatamodel.User, error)
	Create(user *userDatamodel.User) error
}

type Service struct {
	userRepo   UserRepository
	tokenGen   TokenGenerator
	bcryptCost int
	logger     *slog.Logger
}

func NewService(userRepo UserRepository, tokenGen TokenGenerator, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		userRepo:   userRepo,
		tokenGen:   tokenGen,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register validates the payload, enforces email uniqueness and persists a
// new user. Self-registered users always start with the view role.
func (s *Service) Register(dto RegisterDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	existing, err := s.userRepo.GetByEmail(dto.Email)
	if err != nil {
		return internal.NewInternalError("failed to check existing email", err)
	}
	if existing != nil {
		return internal.ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return internal.NewInternalError("failed to hash password", err)
	}

	now := time.Now()
	u := &userDatamodel.User{
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: string(hash),
		Role:         string(RoleView),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(u); err != nil {
		return internal.NewInternalError("failed to create user", err)
	}

	s.logger.Info("user registered", "user_id", u.ID, "email", u.Email)
	return nil
}

// Authenticate verifies credentials and issues a signed token carrying the
// user's id and role.
func (s *Service) Authenticate(dto LoginDTO) (TokenResponse, error) {
	if err := dto.Validate(); err != nil {
		return TokenResponse{}, err
	}

	u, err := s.userRepo.GetByEmail(dto.Email)
	if err != nil {
		return TokenResponse{}, internal.NewInternalError("failed to look up user", err)
	}
	if u == nil {
		return TokenResponse{}, internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.Password)); err != nil {
		return TokenResponse{}, internal.ErrInvalidCredentials
	}

	role := Role(u.Role)
	if role == "" {
		// a missing role is never granted anything by the policy engine,
		// so issue the weakest role rather than an empty claim
		role = RoleView
	}

	token, err := s.tokenGen.GenerateToken(u.ID, role)
	if err != nil {
		return TokenResponse{}, internal.NewInternalError("failed to sign token", err)
	}

	s.logger.Info("user authenticated", "user_id", u.ID)
	return TokenResponse{Token: token}, nil
}

// ValidateAccessToken verifies a token and returns its claims.
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGen.ValidateToken(tokenString)
}

// HashPassword creates a bcrypt hash with the service's configured cost.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// JWTTokenGenerator signs HS256 tokens with a single process-wide secret.
type JWTTokenGenerator struct {
	Secret   []byte
	TokenTTL time.Duration
}

func NewJWTTokenGenerator(secret string, ttl time.Duration) *JWTTokenGenerator {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &JWTTokenGenerator{
		Secret:   []byte(secret),
		TokenTTL: ttl,
	}
}

func (j *JWTTokenGenerator) GenerateToken(userID int64, role Role) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: fmt.Sprintf("%d", userID),
		Role:   string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   fmt.Sprintf("%d", userID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, internal.ErrInvalidToken
}
