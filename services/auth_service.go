package services

import (
	"errors"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/taskboard-api/dto"
	"github.com/taskboard-api/events"
	"github.com/taskboard-api/models"
	"golang.org/x/crypto/bcrypt"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService handles signup and signin
type AuthService struct {
	users UserStore
	bus   events.Bus
}

// NewAuthService creates a new auth service instance
func NewAuthService(users UserStore, bus events.Bus) *AuthService {
	return &AuthService{users: users, bus: bus}
}

// SignUp creates a new account and returns a signed token with the user
func (s *AuthService) SignUp(input dto.SignUpInput, correlationID string) (*dto.AuthPayload, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.New("Name cannot be empty")
	}
	if !emailRegex.MatchString(input.Email) {
		return nil, errors.New("Invalid email format")
	}
	if len(input.Password) < 6 {
		return nil, errors.New("Password must be at least 6 characters long")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	exists, err := s.users.ExistsByEmail(email, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.New("User already exists with this email")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = models.RoleUser
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
		Role:     role,
	}
	created, err := s.users.Create(user)
	if err != nil {
		return nil, translateWriteError(err, "User already exists with this email")
	}

	token, err := GenerateToken(created.ID, created.Email, string(created.Role))
	if err != nil {
		return nil, err
	}

	s.bus.Publish(events.Event{
		Topic:         events.TopicUserCreated,
		Payload:       created,
		CorrelationID: correlationID,
	})

	created.Password = ""
	return &dto.AuthPayload{Token: token, User: created}, nil
}

// SignIn authenticates a user and returns a signed token with the user.
// Unknown email and wrong password fail with the same message.
func (s *AuthService) SignIn(input dto.SignInInput) (*dto.AuthPayload, error) {
	if !emailRegex.MatchString(input.Email) {
		return nil, errors.New("Invalid email format")
	}
	if len(input.Password) < 6 {
		return nil, errors.New("Password must be at least 6 characters long")
	}

	user, err := s.users.FindByEmail(strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if isNotFound(err) {
			return nil, errors.New(msgInvalidCredentials)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, errors.New(msgInvalidCredentials)
	}

	token, err := GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	user.Password = ""
	return &dto.AuthPayload{Token: token, User: user}, nil
}

// GenerateToken generates a new JWT token for a user
func GenerateToken(userID, email, role string) (string, error) {
	secretKey := os.Getenv("JWT_SECRET")
	if secretKey == "" {
		return "", errors.New("JWT_SECRET not set in environment")
	}

	// Token expires in 24 hours
	now := time.Now()
	claims := dto.TokenClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}

// ValidateToken validates a JWT token and returns claims if valid
func ValidateToken(tokenString string) (*dto.TokenClaims, error) {
	secretKey := os.Getenv("JWT_SECRET")
	if secretKey == "" {
		return nil, errors.New("JWT_SECRET not set in environment")
	}

	token, err := jwt.ParseWithClaims(tokenString, &dto.TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(*dto.TokenClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
