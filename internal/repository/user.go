package repository

import (
	"gorm.io/gorm"

	"github.com/msaleh/formgate/internal/domain/user"
)

type UserRepo interface {
	WithTx(tx *gorm.DB) UserRepo
	Create(u *user.User) error
	FindByUsername(username string) (*user.User, error)
	FindByID(id uint) (*user.User, error)
}

type DBUserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &DBUserRepo{db: db}
}

func (r *DBUserRepo) WithTx(tx *gorm.DB) UserRepo {
	return &DBUserRepo{db: tx}
}

func (r *DBUserRepo) Create(u *user.User) error {
	return r.db.Create(u).Error
}

func (r *DBUserRepo) FindByUsername(username string) (*user.User, error) {
	var u user.User
	if err := r.db.Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *DBUserRepo) FindByID(id uint) (*user.User, error) {
	var u user.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
