package models

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User is an administrator account. Regular submitters never get a User row;
// they are tracked through SubmitterSession instead.
type User struct {
	BaseUUIDModel
	FirstName   string  `gorm:"type:varchar(100)"                  json:"firstName"`
	LastName    string  `gorm:"type:varchar(100)"                  json:"lastName"`
	DisplayName string  `gorm:"type:varchar(100)"                  json:"displayName"`
	Email       *string `gorm:"type:varchar(255);uniqueIndex"      json:"email"`
	Password    string  `gorm:"type:varchar(255)"                  json:"-"`
	IsAdmin     bool    `gorm:"default:false"                      json:"isAdmin"`
}

func (u *User) BeforeSave(tx *gorm.DB) error {
	if err := u.BaseUUIDModel.BeforeSave(tx); err != nil {
		return err
	}

	if u.Password != "" && !strings.HasPrefix(u.Password, "$2a$") &&
		!strings.HasPrefix(u.Password, "$2b$") {
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.Password = string(hashed)
	}

	return nil
}

func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	return Validator().Struct(r)
}

// AdminSession is the cache-backed record behind an admin auth token.
type AdminSession struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}
