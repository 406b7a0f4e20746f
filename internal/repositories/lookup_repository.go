package repositories

import (
	"context"
	"errors"
	"strings"

	"zipbang_backend/internal/models"
	"zipbang_backend/internal/query"

	"gorm.io/gorm"
)

// LookupRepository resolves human-readable category labels against the small
// reference tables. Lookups are request-scoped; no cross-request cache.
type LookupRepository interface {
	PropertyTypeID(db *gorm.DB, name string) (uint, bool, error)
	TransactionTypeID(db *gorm.DB, name string) (uint, bool, error)
	RoomOptionIDs(db *gorm.DB, label string) ([]uint, error)
	BathroomOptionIDs(db *gorm.DB, label string) ([]uint, error)
	SearchOptions(db *gorm.DB) (*models.SearchOptions, error)
}

type LookupRepositoryImpl struct{}

func NewLookupRepository() LookupRepository {
	return &LookupRepositoryImpl{}
}

func (r *LookupRepositoryImpl) PropertyTypeID(db *gorm.DB, name string) (uint, bool, error) {
	return idByName(db, &models.PropertyType{}, name)
}

func (r *LookupRepositoryImpl) TransactionTypeID(db *gorm.DB, name string) (uint, bool, error) {
	return idByName(db, &models.TransactionType{}, name)
}

// RoomOptionIDs matches option labels by prefix, so "2" finds "2개" and a
// full label still finds itself. An empty result is not an error; the
// compiler degrades it to a matches-nothing predicate.
func (r *LookupRepositoryImpl) RoomOptionIDs(db *gorm.DB, label string) ([]uint, error) {
	return idsByPrefix(db, &models.RoomOption{}, label)
}

func (r *LookupRepositoryImpl) BathroomOptionIDs(db *gorm.DB, label string) ([]uint, error) {
	return idsByPrefix(db, &models.BathroomOption{}, label)
}

// SearchOptions loads every reference table for the search-form dropdowns.
func (r *LookupRepositoryImpl) SearchOptions(db *gorm.DB) (*models.SearchOptions, error) {
	var opts models.SearchOptions

	if err := db.Order("id").Find(&opts.PropertyTypes).Error; err != nil {
		return nil, err
	}
	if err := db.Order("id").Find(&opts.TransactionTypes).Error; err != nil {
		return nil, err
	}
	if err := db.Order("id").Find(&opts.RoomOptions).Error; err != nil {
		return nil, err
	}
	if err := db.Order("id").Find(&opts.BathroomOptions).Error; err != nil {
		return nil, err
	}
	if err := db.Order("id").Find(&opts.Themes).Error; err != nil {
		return nil, err
	}

	return &opts, nil
}

func idByName(db *gorm.DB, model interface{}, name string) (uint, bool, error) {
	row := struct{ ID uint }{}
	err := db.Model(model).Select("id").Where("name = ?", strings.TrimSpace(name)).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return row.ID, true, nil
}

func idsByPrefix(db *gorm.DB, model interface{}, label string) ([]uint, error) {
	var ids []uint
	err := db.Model(model).
		Where("name LIKE ?", strings.TrimSpace(label)+"%").
		Order("id").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// boundResolver binds a request's DB handle to the lookup repository so it
// satisfies query.Resolver.
type boundResolver struct {
	db      *gorm.DB
	lookups LookupRepository
}

// NewResolver adapts the lookup repository to the compiler's Resolver
// interface for one request.
func NewResolver(db *gorm.DB, lookups LookupRepository) query.Resolver {
	return &boundResolver{db: db, lookups: lookups}
}

func (r *boundResolver) PropertyTypeID(ctx context.Context, name string) (uint, bool, error) {
	return r.lookups.PropertyTypeID(r.db.WithContext(ctx), name)
}

func (r *boundResolver) TransactionTypeID(ctx context.Context, name string) (uint, bool, error) {
	return r.lookups.TransactionTypeID(r.db.WithContext(ctx), name)
}

func (r *boundResolver) RoomOptionIDs(ctx context.Context, label string) ([]uint, error) {
	return r.lookups.RoomOptionIDs(r.db.WithContext(ctx), label)
}

func (r *boundResolver) BathroomOptionIDs(ctx context.Context, label string) ([]uint, error) {
	return r.lookups.BathroomOptionIDs(r.db.WithContext(ctx), label)
}
