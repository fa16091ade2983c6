package application

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/msaleh/formgate/internal/domain/user"
	"github.com/msaleh/formgate/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type UserService struct {
	repos *repository.Repos
}

func NewUserService(repos *repository.Repos) *UserService {
	return &UserService{repos: repos}
}

func (s *UserService) Register(input user.RegisterDTO) (*user.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &user.User{
		Username: input.Username,
		Password: string(hashed),
	}
	if err := s.repos.User.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate checks the credentials and returns the account. Callers
// issue the JWT; the service does not know about tokens.
func (s *UserService) Authenticate(input user.LoginDTO) (*user.User, error) {
	u, err := s.repos.User.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}
