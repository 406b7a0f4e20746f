package repositories

import (
	"errors"

	"zipbang_backend/internal/models"
	"zipbang_backend/internal/query"

	"gorm.io/gorm"
)

var ErrListingNotFound = errors.New("listing not found")

// ListingRepository executes compiled query plans against the listings
// table. Methods take the request's *gorm.DB so tests can hand in a
// transaction.
type ListingRepository interface {
	Search(db *gorm.DB, plan query.Plan) ([]models.Listing, int64, error)
	FindByID(db *gorm.DB, id uint, pol query.Policy) (*models.Listing, error)
	AddViews(db *gorm.DB, counts map[uint]int64) error
}

type ListingRepositoryImpl struct{}

func NewListingRepository() ListingRepository {
	return &ListingRepositoryImpl{}
}

// Search runs the count and the windowed select for one plan. The count uses
// the same predicate set, so totals stay consistent with the rows.
func (r *ListingRepositoryImpl) Search(db *gorm.DB, plan query.Plan) ([]models.Listing, int64, error) {
	base := query.ApplyFilters(db.Model(&models.Listing{}), plan.Filters)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var listings []models.Listing
	err := base.
		Order(plan.Sort.OrderClause()).
		Offset(plan.Offset).
		Limit(plan.Limit).
		Preload("PropertyType").
		Preload("TransactionType").
		Preload("RoomOption").
		Preload("BathroomOption").
		Find(&listings).Error
	if err != nil {
		return nil, 0, err
	}

	return listings, total, nil
}

// FindByID loads one listing under the given policy's baseline predicates.
func (r *ListingRepositoryImpl) FindByID(db *gorm.DB, id uint, pol query.Policy) (*models.Listing, error) {
	base := query.ApplyFilters(db.Model(&models.Listing{}), pol.Filters)

	var listing models.Listing
	err := base.
		Preload("PropertyType").
		Preload("TransactionType").
		Preload("RoomOption").
		Preload("BathroomOption").
		First(&listing, "listings.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}

	return &listing, nil
}

// AddViews applies batched view-count increments. Missing rows are skipped
// silently; a deleted listing losing a few counted views is fine.
func (r *ListingRepositoryImpl) AddViews(db *gorm.DB, counts map[uint]int64) error {
	for id, n := range counts {
		err := db.Model(&models.Listing{}).
			Where("id = ?", id).
			UpdateColumn("views", gorm.Expr("COALESCE(views, 0) + ?", n)).Error
		if err != nil {
			return err
		}
	}
	return nil
}
