package services

import (
	"context"
	"testing"

	"zipbang_backend/internal/models"
	"zipbang_backend/internal/query"
	"zipbang_backend/internal/repositories"
	"zipbang_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeListingRepo records the plan it was asked to execute and serves canned
// rows back.
type fakeListingRepo struct {
	lastPlan   query.Plan
	lastPolicy query.Policy
	listings   []models.Listing
	total      int64
	byID       *models.Listing
	err        error
}

func (f *fakeListingRepo) Search(_ *gorm.DB, plan query.Plan) ([]models.Listing, int64, error) {
	f.lastPlan = plan
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.listings, f.total, nil
}

func (f *fakeListingRepo) FindByID(_ *gorm.DB, id uint, pol query.Policy) (*models.Listing, error) {
	f.lastPolicy = pol
	if f.err != nil {
		return nil, f.err
	}
	if f.byID == nil || f.byID.ID != id {
		return nil, repositories.ErrListingNotFound
	}
	return f.byID, nil
}

func (f *fakeListingRepo) AddViews(_ *gorm.DB, _ map[uint]int64) error {
	return f.err
}

type fakeLookupRepo struct{}

func (f *fakeLookupRepo) PropertyTypeID(_ *gorm.DB, name string) (uint, bool, error) {
	if name == "아파트" {
		return 1, true, nil
	}
	return 0, false, nil
}

func (f *fakeLookupRepo) TransactionTypeID(_ *gorm.DB, name string) (uint, bool, error) {
	if name == "매매" {
		return 1, true, nil
	}
	return 0, false, nil
}

func (f *fakeLookupRepo) RoomOptionIDs(_ *gorm.DB, label string) ([]uint, error) {
	if label == "2" {
		return []uint{2}, nil
	}
	return nil, nil
}

func (f *fakeLookupRepo) BathroomOptionIDs(_ *gorm.DB, _ string) ([]uint, error) {
	return nil, nil
}

func (f *fakeLookupRepo) SearchOptions(_ *gorm.DB) (*models.SearchOptions, error) {
	return &models.SearchOptions{}, nil
}

type fakeViewRecorder struct {
	recorded []uint
}

func (f *fakeViewRecorder) Record(listingID uint) {
	f.recorded = append(f.recorded, listingID)
}

func fixtureListing(id uint) models.Listing {
	return models.Listing{
		ID:                id,
		Address:           "서울시 강남구 역삼동 123-4",
		AddressDisclosure: models.DisclosurePublic,
		Visible:           true,
		PropertyType:      &models.PropertyType{ID: 1, Name: "아파트"},
		TransactionType:   &models.TransactionType{ID: 1, Name: "매매"},
	}
}

// stubDB is a detached handle for fakes that never touch the store. The
// statement must be non-nil so WithContext can clone it.
func stubDB() *gorm.DB {
	db := &gorm.DB{Config: &gorm.Config{}}
	db.Statement = &gorm.Statement{DB: db}
	return db
}

func TestSearch_PublicEnvelope(t *testing.T) {
	t.Parallel()

	repo := &fakeListingRepo{
		listings: []models.Listing{fixtureListing(1), fixtureListing(2)},
		total:    25,
	}
	svc := NewListingService(repo, &fakeLookupRepo{}, nil)

	resp, err := svc.Search(context.Background(), stubDB(), &models.ListingSearchRequest{})
	require.NoError(t, err)

	assert.Len(t, resp.Listings, 2)
	assert.Equal(t, 3, resp.TotalPages, "25 items at 12 per page")
	assert.Equal(t, 1, resp.CurrentPage)
	assert.Equal(t, "아파트", resp.Listings[0].PropertyType)
	assert.Equal(t, "매매", resp.Listings[0].BuyType)

	// the public policy's visibility predicate leads the plan
	require.NotEmpty(t, repo.lastPlan.Filters)
	assert.Equal(t, query.Eq("visible", true), repo.lastPlan.Filters[0])
	assert.Equal(t, DefaultPublicLimit, repo.lastPlan.Limit)
}

func TestSearchMap_DropsUndisclosedAddresses(t *testing.T) {
	t.Parallel()

	repo := &fakeListingRepo{}
	svc := NewListingService(repo, &fakeLookupRepo{}, nil)

	_, err := svc.SearchMap(context.Background(), stubDB(), &models.ListingSearchRequest{})
	require.NoError(t, err)

	require.Len(t, repo.lastPlan.Filters, 2)
	assert.Equal(t, query.FilterNotIn, repo.lastPlan.Filters[1].Kind)
	assert.Equal(t, "address_disclosure", repo.lastPlan.Filters[1].Column)
	assert.Equal(t, DefaultMapLimit, repo.lastPlan.Limit)
}

func TestSearchAdmin_EnvelopeAndTrash(t *testing.T) {
	t.Parallel()

	repo := &fakeListingRepo{
		listings: []models.Listing{fixtureListing(1)},
		total:    1,
	}
	svc := NewListingService(repo, &fakeLookupRepo{}, nil)

	resp, err := svc.SearchAdmin(context.Background(), stubDB(), &models.ListingSearchRequest{}, false)
	require.NoError(t, err)

	assert.True(t, resp.Ok)
	assert.Equal(t, int64(1), resp.TotalItems)
	assert.Equal(t, 1, resp.TotalPages)
	assert.Equal(t, 1, resp.CurrentPage)
	assert.Empty(t, repo.lastPlan.Filters, "admin list has no baseline predicates")

	_, err = svc.SearchAdmin(context.Background(), stubDB(), &models.ListingSearchRequest{}, true)
	require.NoError(t, err)
	require.Len(t, repo.lastPlan.Filters, 1)
	assert.Equal(t, query.FilterDeletedOnly, repo.lastPlan.Filters[0].Kind)
}

func TestSearch_EmptyResultSet(t *testing.T) {
	t.Parallel()

	repo := &fakeListingRepo{}
	svc := NewListingService(repo, &fakeLookupRepo{}, nil)

	resp, err := svc.Search(context.Background(), stubDB(), &models.ListingSearchRequest{Page: 99})
	require.NoError(t, err)

	assert.Empty(t, resp.Listings)
	assert.Equal(t, 0, resp.TotalPages)
	assert.Equal(t, 99, resp.CurrentPage, "the requested page is echoed even past the end")
}

func TestSearch_StoreErrorBecomesQueryError(t *testing.T) {
	t.Parallel()

	repo := &fakeListingRepo{err: assert.AnError}
	svc := NewListingService(repo, &fakeLookupRepo{}, nil)

	_, err := svc.Search(context.Background(), stubDB(), &models.ListingSearchRequest{})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeQueryError, appErr.Code)
}

func TestGetByID_RecordsViewAndRedacts(t *testing.T) {
	t.Parallel()

	private := fixtureListing(7)
	private.AddressDisclosure = models.DisclosurePrivate
	repo := &fakeListingRepo{byID: &private}
	views := &fakeViewRecorder{}
	svc := NewListingService(repo, &fakeLookupRepo{}, views)

	resp, err := svc.GetByID(context.Background(), stubDB(), 7)
	require.NoError(t, err)

	assert.Equal(t, []uint{7}, views.recorded)
	assert.Equal(t, private.RedactedAddress(), resp.Address)
	assert.NotEqual(t, private.Address, resp.Address)
	assert.Equal(t, "public", repo.lastPolicy.Name)
}

func TestGetByID_PublicAddressStays(t *testing.T) {
	t.Parallel()

	listing := fixtureListing(3)
	repo := &fakeListingRepo{byID: &listing}
	svc := NewListingService(repo, &fakeLookupRepo{}, nil)

	resp, err := svc.GetByID(context.Background(), stubDB(), 3)
	require.NoError(t, err)
	assert.Equal(t, listing.Address, resp.Address)
}

func TestGetByID_NotFound(t *testing.T) {
	t.Parallel()

	repo := &fakeListingRepo{}
	svc := NewListingService(repo, &fakeLookupRepo{}, nil)

	_, err := svc.GetByID(context.Background(), stubDB(), 42)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 404, appErr.HTTPCode)
}
