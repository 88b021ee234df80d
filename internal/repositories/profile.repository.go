package repositories

import (
	"context"
	"errors"
	"registry/internal/database"
	"registry/internal/logger"
	. "registry/internal/models"
	"registry/internal/services"
	"time"

	"gorm.io/gorm"
)

const (
	PROFILE_LIST_CACHE_KEY    = "profiles:all"
	PROFILE_LIST_CACHE_EXPIRY = 5 * time.Minute
)

type ProfileRepository interface {
	GetByID(ctx context.Context, id int) (*Profile, error)
	GetAll(ctx context.Context) ([]Profile, error)
	Create(ctx context.Context, profile *Profile) error
	Update(ctx context.Context, profile *Profile) error
	Delete(ctx context.Context, id int) error
	GetBySubmitterMobile(ctx context.Context, mobile string) ([]Profile, error)
	GetAllWithSubmitterMobile(ctx context.Context) ([]Profile, error)
	// GetLatestBySubmitterIdentity returns the newest profile submitted under
	// the exact (name, mobile) pair, or (nil, nil) when none exists.
	GetLatestBySubmitterIdentity(ctx context.Context, name, mobile string) (*Profile, error)
}

type profileRepository struct {
	db  database.DB
	log logger.Logger
}

func NewProfile(db database.DB) ProfileRepository {
	return &profileRepository{
		db:  db,
		log: logger.New("profileRepository"),
	}
}

func (r *profileRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *profileRepository) GetByID(ctx context.Context, id int) (*Profile, error) {
	log := r.log.Function("GetByID")

	var profile Profile
	if err := r.getDB(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, log.Err("failed to get profile by id", err, "id", id)
	}

	return &profile, nil
}

func (r *profileRepository) GetAll(ctx context.Context) ([]Profile, error) {
	log := r.log.Function("GetAll")

	var profiles []Profile
	if found, err := database.NewCacheBuilder(r.db.Cache.Profile, PROFILE_LIST_CACHE_KEY).
		WithContext(ctx).
		Get(&profiles); err == nil && found {
		return profiles, nil
	}

	if err := r.getDB(ctx).Order("id ASC").Find(&profiles).Error; err != nil {
		return nil, log.Err("failed to get all profiles", err)
	}

	if err := database.NewCacheBuilder(r.db.Cache.Profile, PROFILE_LIST_CACHE_KEY).
		WithStruct(profiles).
		WithTTL(PROFILE_LIST_CACHE_EXPIRY).
		WithContext(ctx).
		Set(); err != nil {
		log.Warn("failed to cache profile list", "error", err)
	}

	return profiles, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *Profile) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(profile).Error; err != nil {
		return log.Err("failed to create profile", err, "profile", profile)
	}

	r.invalidateListCache(ctx)

	return nil
}

func (r *profileRepository) Update(ctx context.Context, profile *Profile) error {
	log := r.log.Function("Update")

	if err := r.getDB(ctx).Save(profile).Error; err != nil {
		return log.Err("failed to update profile", err, "profileID", profile.ID)
	}

	r.invalidateListCache(ctx)

	return nil
}

func (r *profileRepository) Delete(ctx context.Context, id int) error {
	log := r.log.Function("Delete")

	if err := r.getDB(ctx).Delete(&Profile{}, "id = ?", id).Error; err != nil {
		return log.Err("failed to delete profile", err, "id", id)
	}

	r.invalidateListCache(ctx)

	return nil
}

func (r *profileRepository) GetBySubmitterMobile(
	ctx context.Context,
	mobile string,
) ([]Profile, error) {
	log := r.log.Function("GetBySubmitterMobile")

	var profiles []Profile
	if err := r.getDB(ctx).
		Where("submitter_mobile = ?", mobile).
		Order("id ASC").
		Find(&profiles).Error; err != nil {
		return nil, log.Err("failed to get profiles by submitter mobile", err, "mobile", mobile)
	}

	return profiles, nil
}

func (r *profileRepository) GetAllWithSubmitterMobile(ctx context.Context) ([]Profile, error) {
	log := r.log.Function("GetAllWithSubmitterMobile")

	var profiles []Profile
	if err := r.getDB(ctx).
		Where("submitter_mobile IS NOT NULL AND submitter_mobile != ''").
		Order("id ASC").
		Find(&profiles).Error; err != nil {
		return nil, log.Err("failed to get profiles with submitter mobile", err)
	}

	return profiles, nil
}

func (r *profileRepository) GetLatestBySubmitterIdentity(
	ctx context.Context,
	name, mobile string,
) (*Profile, error) {
	log := r.log.Function("GetLatestBySubmitterIdentity")

	var profile Profile
	err := r.getDB(ctx).
		Where("submitter_name = ? AND submitter_mobile = ?", name, mobile).
		Order("id DESC").
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, log.Err("failed to get latest profile by submitter identity", err,
			"name", name, "mobile", mobile)
	}

	return &profile, nil
}

func (r *profileRepository) invalidateListCache(ctx context.Context) {
	if err := database.NewCacheBuilder(r.db.Cache.Profile, PROFILE_LIST_CACHE_KEY).
		WithContext(ctx).
		Delete(); err != nil {
		r.log.Function("invalidateListCache").
			Warn("failed to invalidate profile list cache", "error", err)
	}
}
