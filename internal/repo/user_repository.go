package repo

import (
	"errors"

	"github.com/rlourenco/catalog-admin/internal/models"
)

type UserRepository interface {
	GetByEmail(email string) (models.User, error)
	CreateUser(u models.User) (models.User, error)
}

var ErrUserNotFound = errors.New("user not found")
