package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/campuslink-dev/campuslink/internal/domain"
	apperrors "github.com/campuslink-dev/campuslink/internal/errors"
	"github.com/campuslink-dev/campuslink/internal/logger"
)

type AuthService interface {
	Register(data RegisterData) (*domain.User, error)
	Login(email, password string) (string, *domain.User, error)
	GetUser(id string) (*domain.User, error)
}

type UserStorage interface {
	CreateUser(u *domain.User) error
	GetUser(id string) (*domain.User, error)
	GetUserByEmail(email string) (*domain.User, error)
}

type TokenIssuer interface {
	NewToken(user domain.User) (string, error)
}

type RegisterData struct {
	Name       string
	Email      string
	Password   string
	Role       domain.UserRole
	Department string
	Skills     []string
}

type Auth struct {
	users UserStorage
	jwt   TokenIssuer
}

func NewAuth(users UserStorage, jwt TokenIssuer) *Auth {
	return &Auth{users, jwt}
}

func (a *Auth) Register(data RegisterData) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(data.Email))

	if _, err := a.users.GetUserByEmail(email); err == nil {
		return nil, apperrors.Conflict("Email already registered")
	} else if apperrors.KindOf(err) != apperrors.KindNotFound {
		return nil, err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return nil, err
	}

	role := data.Role
	if role == "" {
		role = domain.RoleStudent
	}

	user := &domain.User{
		Id:         uuid.NewString(),
		Name:       data.Name,
		Email:      email,
		PassHash:   string(passHash),
		Role:       role,
		Department: data.Department,
		Skills:     data.Skills,
		CreatedAt:  time.Now().UTC(),
	}
	if err := a.users.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (a *Auth) Login(email, password string) (string, *domain.User, error) {
	user, err := a.users.GetUserByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return "", nil, apperrors.Forbidden("Wrong email or password")
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(password)); err != nil {
		return "", nil, apperrors.Forbidden("Wrong email or password")
	}

	token, err := a.jwt.NewToken(*user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (a *Auth) GetUser(id string) (*domain.User, error) {
	return a.users.GetUser(id)
}
