package store

import (
	"fmt"

	"github.com/jinzhu/gorm"
	"github.com/lib/pq"
	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/schisto-api/schema"
)

const uniqueViolationCode = "23505"

var (
	ErrProfileNotFound      = fmt.Errorf("profile not found")
	ErrProfileAlreadyExists = fmt.Errorf("profile already exists")
	ErrInvalidPlan          = fmt.Errorf("invalid subscription plan")
	ErrPromptQuotaExceeded  = fmt.Errorf("prompt quota exceeded")
)

// GetProfile returns the profile of a user id
func (s *SchistoStore) GetProfile(id string) (*schema.Profile, error) {
	var p schema.Profile
	if err := s.ormDB.Where("id = ?", id).First(&p).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

// CreateProfile registers a new free profile
func (s *SchistoStore) CreateProfile(id, email string) (*schema.Profile, error) {
	p := schema.Profile{
		ID:    id,
		Email: email,
	}

	if err := s.ormDB.Create(&p).Error; err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolationCode {
			return nil, ErrProfileAlreadyExists
		}
		return nil, err
	}

	return &p, nil
}

// EnsureProfile returns the profile of a user and creates one if it is
// the first time the user shows up
func (s *SchistoStore) EnsureProfile(id, email string) (*schema.Profile, error) {
	p, err := s.GetProfile(id)
	if err != ErrProfileNotFound {
		return p, err
	}

	log.WithField("prefix", "store").WithField("id", id).Info("create profile")

	p, err = s.CreateProfile(id, email)
	if err == ErrProfileAlreadyExists {
		// created by a concurrent request
		return s.GetProfile(id)
	}
	return p, err
}

// ReservePrompt takes one prompt of a profile. The count is only raised
// while the profile is premium or still below the free limit, so concurrent
// requests can not go over the limit.
func (s *SchistoStore) ReservePrompt(id string, freeLimit int) error {
	result := s.ormDB.Model(&schema.Profile{}).
		Where("id = ? AND (is_premium OR prompt_count < ?)", id, freeLimit).
		UpdateColumn("prompt_count", gorm.Expr("prompt_count + ?", 1))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrPromptQuotaExceeded
	}

	return nil
}

// ReleasePrompt gives back a prompt reserved for a request which failed
func (s *SchistoStore) ReleasePrompt(id string) error {
	return s.ormDB.Model(&schema.Profile{}).
		Where("id = ? AND prompt_count > 0", id).
		UpdateColumn("prompt_count", gorm.Expr("prompt_count - ?", 1)).Error
}

// UpgradeProfile marks a profile as premium with a subscription plan
func (s *SchistoStore) UpgradeProfile(id, plan string) (*schema.Profile, error) {
	if !schema.ValidPlan(plan) {
		return nil, ErrInvalidPlan
	}

	result := s.ormDB.Model(&schema.Profile{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_premium":        true,
			"subscription_plan": plan,
		})
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, ErrProfileNotFound
	}

	return s.GetProfile(id)
}
