package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/devanr/downloadgate/internal/models"
)

// AuthService manages purchaser accounts and session tokens. The session
// secret is injected at construction; it is separate from the download
// signing secret so rotating one does not invalidate the other.
type AuthService struct {
	users  *mongo.Collection
	secret []byte
}

func NewAuthService(db *mongo.Database, secret []byte) *AuthService {
	return &AuthService{users: db.Collection("users"), secret: secret}
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// VerifyPassword compares a plain password with a hashed password
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateJWT generates a session token with user ID and role
func (s *AuthService) GenerateJWT(userID string, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(time.Hour * 4).Unix(), // Session expires in 4 hours
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Register creates a new purchaser account
func (s *AuthService) Register(ctx context.Context, email, password string) (models.User, error) {
	var existingUser models.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&existingUser)
	if err == nil {
		return models.User{}, errors.New("email already in use")
	}

	hashedPassword, err := HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Password:  hashedPassword,
		Role:      "user",
		CreatedAt: time.Now(),
	}
	_, err = s.users.InsertOne(ctx, user)
	return user, err
}

// Login authenticates a user and returns a session token with role info
func (s *AuthService) Login(ctx context.Context, email, password string) (string, string, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return "", "", errors.New("invalid credentials")
	}

	if !VerifyPassword(password, user.Password) {
		return "", "", errors.New("invalid credentials")
	}

	token, err := s.GenerateJWT(user.ID.Hex(), user.Role)
	if err != nil {
		return "", "", err
	}

	return token, user.Role, nil
}
