package dao

import (
	"fmt"
	"time"

	"github.com/Bumblebig/UniSupport/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserDAO handles user-related database operations
type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{db: db}
}

// CreateUser creates a new user and its profile document
func (d *UserDAO) CreateUser(name, mail, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		UID:      uuid.NewString(),
		Mail:     mail,
		Name:     name,
		Password: string(hashedPassword),
	}

	err = d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile := &models.Profile{
			UID:       user.UID,
			Mail:      mail,
			Name:      name,
			CreatedAt: time.Now().UTC(),
		}
		return tx.Create(profile).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// GetUserByMail retrieves a user by mail address
func (d *UserDAO) GetUserByMail(mail string) (*models.User, error) {
	var user models.User
	if err := d.db.Where("mail = ?", mail).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUID retrieves a user by its opaque identifier
func (d *UserDAO) GetUserByUID(uid string) (*models.User, error) {
	var user models.User
	if err := d.db.Where("uid = ?", uid).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetProfileByUID retrieves the profile document for an owner
func (d *UserDAO) GetProfileByUID(uid string) (*models.Profile, error) {
	var profile models.Profile
	if err := d.db.Where("uid = ?", uid).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}
