package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type Service struct {
	DB  *gorm.DB
	JWT *JWT
}

// Register creates the user and runs provision in the same transaction, so a
// user never exists without the data provision sets up.
func (s *Service) Register(ctx context.Context, username, passcode string, provision func(tx *gorm.DB, u *User) error) (*User, string, error) {
	username, err := ValidateCredentials(username, passcode)
	if err != nil {
		return nil, "", err
	}

	hash, err := HashPassword(passcode)
	if err != nil {
		return nil, "", fmt.Errorf("hash passcode: %w", err)
	}

	u := User{Username: username, PasscodeHash: hash}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&User{}).Where("username = ?", username).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrUsernameTaken
		}
		if err := tx.Create(&u).Error; err != nil {
			return err
		}
		if provision != nil {
			return provision(tx, &u)
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.JWT.Sign(u.ID, u.Username)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return &u, token, nil
}

func (s *Service) Login(ctx context.Context, username, passcode string) (*User, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || passcode == "" {
		return nil, "", ErrMissingCredentials
	}

	var u User
	if err := s.DB.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !ComparePassword(u.PasscodeHash, passcode) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.JWT.Sign(u.ID, u.Username)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return &u, token, nil
}
