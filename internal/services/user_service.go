package services

import (
	"context"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"diraBack/internal/models"
	"diraBack/utils"
)

const (
	accessTokenTTL  = 12 * time.Hour
	refreshTokenTTL = 60 * 24 * time.Hour
)

// UserStore is the persistence collaborator for accounts and refresh
// sessions.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	SetSession(ctx context.Context, session models.Session) error
	GetSessionByToken(ctx context.Context, refreshToken string) (models.Session, error)
}

type UserService struct {
	UserRepo     UserStore
	TokenManager *utils.Manager
	SigningKey   string
}

// SignUp creates an account with a bcrypt-hashed password.
func (s *UserService) SignUp(ctx context.Context, req models.SignUpRequest) (models.User, error) {
	existing, err := s.UserRepo.GetUserByEmail(ctx, req.Email)
	if err != nil && err != models.ErrUserNotFound {
		return models.User{}, err
	}
	if existing.Email != "" {
		return models.User{}, models.ErrDuplicateEmail
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hashed),
		Role:      models.RoleUser,
		CreatedAt: time.Now(),
	}
	created, err := s.UserRepo.CreateUser(ctx, user)
	if err != nil {
		return models.User{}, err
	}
	created.Password = ""
	return created, nil
}

// SignIn verifies credentials and issues an access JWT plus a refresh
// session.
func (s *UserService) SignIn(ctx context.Context, req models.SignInRequest) (models.SignInResponse, error) {
	user, err := s.UserRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return models.SignInResponse{}, models.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return models.SignInResponse{}, models.ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(ctx, user.ID, user.Role)
	if err != nil {
		return models.SignInResponse{}, err
	}
	user.Password = ""
	return models.SignInResponse{User: user, Tokens: tokens}, nil
}

// Guest issues a generated identity so unauthenticated users can still like
// listings and register for open houses. Guests get no refresh session.
func (s *UserService) Guest(ctx context.Context) (models.SignInResponse, error) {
	user := models.User{
		ID:        uuid.New().String(),
		Name:      "Guest",
		Role:      models.RoleGuest,
		CreatedAt: time.Now(),
	}
	accessToken, err := s.newAccessToken(user.ID, user.Role)
	if err != nil {
		return models.SignInResponse{}, err
	}
	return models.SignInResponse{User: user, Tokens: models.Tokens{AccessToken: accessToken}}, nil
}

func (s *UserService) issueTokens(ctx context.Context, userID, role string) (models.Tokens, error) {
	accessToken, err := s.newAccessToken(userID, role)
	if err != nil {
		return models.Tokens{}, err
	}

	refreshToken := uuid.New().String()
	if s.TokenManager != nil {
		refreshToken, err = s.TokenManager.NewRefreshToken()
		if err != nil {
			return models.Tokens{}, err
		}
	}

	session := models.Session{
		UserID:       userID,
		Role:         role,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(refreshTokenTTL),
	}
	if err := s.UserRepo.SetSession(ctx, session); err != nil {
		return models.Tokens{}, err
	}

	return models.Tokens{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *UserService) newAccessToken(userID, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.Claims{
		UserID: userID,
		Role:   role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(accessTokenTTL).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	})
	return token.SignedString([]byte(s.SigningKey))
}
