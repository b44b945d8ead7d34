package store

import (
	"github.com/jinzhu/gorm"

	"github.com/bitmark-inc/schisto-api/schema"
)

// SchistoCore is the main datastore of user profiles
type SchistoCore interface {
	Ping() error

	// Profile
	GetProfile(id string) (*schema.Profile, error)
	CreateProfile(id, email string) (*schema.Profile, error)
	EnsureProfile(id, email string) (*schema.Profile, error)
	ReservePrompt(id string, freeLimit int) error
	ReleasePrompt(id string) error
	UpgradeProfile(id, plan string) (*schema.Profile, error)
}

// SchistoStore is an implementation of SchistoCore
type SchistoStore struct {
	ormDB *gorm.DB
}

func NewSchistoStore(ormDB *gorm.DB) *SchistoStore {
	return &SchistoStore{
		ormDB: ormDB,
	}
}

// Ping is to check the storage health status
func (s *SchistoStore) Ping() error {
	return s.ormDB.DB().Ping()
}
