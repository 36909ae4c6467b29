package repositories

import (
	"errors"

	"kahera/internal/models"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrPinNotSet      = errors.New("pin not set")
)

// UserRepository handles user accounts and the PIN singleton.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	List() ([]models.User, error)

	GetPinSetting() (*models.PinSetting, error)
	SavePinSetting(pin *models.PinSetting) error
}
