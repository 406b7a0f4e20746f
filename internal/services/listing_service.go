package services

import (
	"context"

	"zipbang_backend/internal/models"
	"zipbang_backend/internal/query"
	"zipbang_backend/internal/repositories"
	"zipbang_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// Per-endpoint default page sizes. The cap stays query.MaxPageSize.
const (
	DefaultPublicLimit = 12
	DefaultMapLimit    = 100
	DefaultAdminLimit  = 10
)

// ViewRecorder receives detail-page hits for deferred counting.
type ViewRecorder interface {
	Record(listingID uint)
}

// ListingService is the read side of the listing catalogue: one compiler,
// consumed with different visibility policies and projections.
type ListingService interface {
	Search(ctx context.Context, db *gorm.DB, req *models.ListingSearchRequest) (*models.ListingListResponse, error)
	SearchMap(ctx context.Context, db *gorm.DB, req *models.ListingSearchRequest) (*models.ListingListResponse, error)
	SearchAdmin(ctx context.Context, db *gorm.DB, req *models.ListingSearchRequest, trash bool) (*models.AdminListingListResponse, error)
	GetByID(ctx context.Context, db *gorm.DB, id uint) (*models.ListingResponse, error)
	SearchOptions(ctx context.Context, db *gorm.DB) (*models.SearchOptions, error)
}

type ListingServiceImpl struct {
	listingRepo repositories.ListingRepository
	lookupRepo  repositories.LookupRepository
	views       ViewRecorder
}

func NewListingService(
	listingRepo repositories.ListingRepository,
	lookupRepo repositories.LookupRepository,
	views ViewRecorder,
) ListingService {
	return &ListingServiceImpl{
		listingRepo: listingRepo,
		lookupRepo:  lookupRepo,
		views:       views,
	}
}

func (s *ListingServiceImpl) Search(ctx context.Context, db *gorm.DB, req *models.ListingSearchRequest) (*models.ListingListResponse, error) {
	return s.publicSearch(ctx, db, req, query.PublicPolicy(), DefaultPublicLimit)
}

func (s *ListingServiceImpl) SearchMap(ctx context.Context, db *gorm.DB, req *models.ListingSearchRequest) (*models.ListingListResponse, error) {
	return s.publicSearch(ctx, db, req, query.MapPolicy(), DefaultMapLimit)
}

func (s *ListingServiceImpl) publicSearch(ctx context.Context, db *gorm.DB, req *models.ListingSearchRequest, pol query.Policy, defaultLimit int) (*models.ListingListResponse, error) {
	listings, _, page, err := s.run(ctx, db, req, pol, defaultLimit)
	if err != nil {
		return nil, err
	}

	rows := make([]models.ListingResponse, 0, len(listings))
	for i := range listings {
		rows = append(rows, projectListing(&listings[i], false))
	}

	return &models.ListingListResponse{
		Listings:    rows,
		TotalPages:  page.TotalPages,
		CurrentPage: page.Page,
	}, nil
}

func (s *ListingServiceImpl) SearchAdmin(ctx context.Context, db *gorm.DB, req *models.ListingSearchRequest, trash bool) (*models.AdminListingListResponse, error) {
	pol := query.AdminPolicy()
	if trash {
		pol = query.TrashPolicy()
	}

	listings, total, page, err := s.run(ctx, db, req, pol, DefaultAdminLimit)
	if err != nil {
		return nil, err
	}

	rows := make([]models.ListingResponse, 0, len(listings))
	for i := range listings {
		rows = append(rows, projectListing(&listings[i], false))
	}

	return &models.AdminListingListResponse{
		Ok:          true,
		Data:        rows,
		TotalItems:  total,
		TotalPages:  page.TotalPages,
		CurrentPage: page.Page,
	}, nil
}

// runResult carries the page arithmetic alongside the compiled plan.
type runResult struct {
	Page       int
	TotalPages int
}

func (s *ListingServiceImpl) run(ctx context.Context, db *gorm.DB, req *models.ListingSearchRequest, pol query.Policy, defaultLimit int) ([]models.Listing, int64, runResult, error) {
	compiler := query.NewCompiler(repositories.NewResolver(db, s.lookupRepo))

	plan, err := compiler.Compile(ctx, criteriaFromRequest(req), pol, defaultLimit)
	if err != nil {
		return nil, 0, runResult{}, apperrors.QueryError(err)
	}

	listings, total, err := s.listingRepo.Search(db.WithContext(ctx), plan)
	if err != nil {
		return nil, 0, runResult{}, apperrors.QueryError(err)
	}

	return listings, total, runResult{
		Page:       plan.Page,
		TotalPages: query.TotalPages(total, plan.Limit),
	}, nil
}

// GetByID loads a visible listing for the detail view. Private or excluded
// addresses come back redacted rather than dropping the row; the hit is
// recorded for deferred view counting.
func (s *ListingServiceImpl) GetByID(ctx context.Context, db *gorm.DB, id uint) (*models.ListingResponse, error) {
	listing, err := s.listingRepo.FindByID(db.WithContext(ctx), id, query.PublicPolicy())
	if err != nil {
		if apperrors.Is(err, repositories.ErrListingNotFound) {
			return nil, apperrors.ErrListingNotFound
		}
		return nil, apperrors.QueryError(err)
	}

	if s.views != nil {
		s.views.Record(listing.ID)
	}

	redact := listing.AddressDisclosure != models.DisclosurePublic
	resp := projectListing(listing, redact)
	return &resp, nil
}

func (s *ListingServiceImpl) SearchOptions(ctx context.Context, db *gorm.DB) (*models.SearchOptions, error) {
	opts, err := s.lookupRepo.SearchOptions(db.WithContext(ctx))
	if err != nil {
		return nil, apperrors.QueryError(err)
	}
	return opts, nil
}

func criteriaFromRequest(req *models.ListingSearchRequest) query.Criteria {
	return query.Criteria{
		Page:         req.Page,
		Limit:        req.Limit,
		Keyword:      req.Keyword,
		Theme:        req.Theme,
		PropertyType: req.PropertyType,
		BuyType:      req.BuyType,
		Rooms:        req.Rooms,
		Bathrooms:    req.Bathrooms,
		Floor:        req.Floor,
		PriceRange:   req.PriceRange,
		AreaRange:    req.AreaRange,
		Popularity:   req.Popularity,
		SortKey:      req.SortBy,
	}
}

// projectListing flattens reference joins to plain names and applies address
// redaction where required.
func projectListing(l *models.Listing, redact bool) models.ListingResponse {
	resp := models.ListingResponse{
		ID:                l.ID,
		Address:           l.Address,
		AddressDisclosure: l.AddressDisclosure,
		Description:       l.Description,
		Floor:             l.Floor,
		Views:             l.Views,
		Popularity:        l.Popularity,
		Themes:            l.ThemeList(),
		ActualArea:        l.ActualArea,
		SupplyArea:        l.SupplyArea,
		LandArea:          l.LandArea,
		BuildingArea:      l.BuildingArea,
		TotalArea:         l.TotalArea,
		NetLeasableArea:   l.NetLeasableArea,
		SalePrice:         l.SalePrice,
		LumpSumPrice:      l.LumpSumPrice,
		RentalPrice:       l.RentalPrice,
		Deposit:           l.Deposit,
		CreatedAt:         l.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}

	if redact {
		resp.Address = l.RedactedAddress()
	}

	if l.PropertyType != nil {
		resp.PropertyType = l.PropertyType.Name
	}
	if l.TransactionType != nil {
		resp.BuyType = l.TransactionType.Name
	}
	if l.RoomOption != nil {
		resp.Rooms = l.RoomOption.Name
	}
	if l.BathroomOption != nil {
		resp.Bathrooms = l.BathroomOption.Name
	}

	return resp
}
