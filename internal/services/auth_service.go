package services

import (
	"fmt"
	"log"
	"time"

	"simak/internal/models"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService authenticates against the static two-user credential table
// (admin/user) and issues JWT session tokens carrying the resolved role.
type AuthService struct {
	users      map[string]models.User
	jwtSecret  []byte
	tokenDurat time.Duration
}

// NewAuthService builds the credential table from the configured plaintext
// passwords, hashing them with bcrypt so the plaintext is not kept around.
func NewAuthService(adminPassword, userPassword, jwtSecret string) (*AuthService, error) {
	users := make(map[string]models.User, 2)
	for username, entry := range map[string]struct {
		password string
		role     string
	}{
		"admin": {adminPassword, models.RoleAdmin},
		"user":  {userPassword, models.RoleUser},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte(entry.password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for %s: %w", username, err)
		}
		users[username] = models.User{
			Username:     username,
			PasswordHash: string(hash),
			Role:         entry.role,
		}
	}

	return &AuthService{
		users:      users,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour,
	}, nil
}

// Login checks the credentials and returns a signed token plus the user's
// role. Unknown usernames and wrong passwords both yield the same error.
func (s *AuthService) Login(username, password string) (string, string, error) {
	user, ok := s.users[username]
	if !ok {
		return "", "", fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(s.tokenDurat).Unix(),
		"iat":      time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, user.Role, nil
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
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}
