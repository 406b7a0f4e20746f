package models

// ListingSearchRequest is the flat query-parameter shape shared by every
// listing read endpoint. All filter fields are optional; an absent field
// means "no constraint", never "exclude everything". The struct is bound
// once per request and not mutated afterwards.
type ListingSearchRequest struct {
	// Page and limit are clamped downstream, never rejected.
	Page         int    `form:"page"`
	Limit        int    `form:"limit"`
	Keyword      string `form:"keyword"`
	Theme        string `form:"theme"`
	PropertyType string `form:"propertyType"`
	BuyType      string `form:"buyType"`
	Rooms        string `form:"rooms"`
	Bathrooms    string `form:"bathrooms"`
	Floor        string `form:"floor"`
	PriceRange   string `form:"priceRange"`
	AreaRange    string `form:"areaRange"`
	Popularity   string `form:"popularity"`
	SortBy       string `form:"sortBy"`
}

// ListingResponse is the public projection of a listing row with its
// reference-table joins flattened to plain names.
type ListingResponse struct {
	ID                uint     `json:"id"`
	Address           string   `json:"address"`
	AddressDisclosure string   `json:"addressDisclosure"`
	Description       string   `json:"description,omitempty"`
	PropertyType      string   `json:"propertyType,omitempty"`
	BuyType           string   `json:"buyType,omitempty"`
	Rooms             string   `json:"rooms,omitempty"`
	Bathrooms         string   `json:"bathrooms,omitempty"`
	Floor             *int     `json:"floor"`
	Views             *int64   `json:"views"`
	Popularity        *string  `json:"popularity"`
	Themes            []string `json:"themes"`
	ActualArea        *float64 `json:"actualArea"`
	SupplyArea        *float64 `json:"supplyArea"`
	LandArea          *float64 `json:"landArea"`
	BuildingArea      *float64 `json:"buildingArea"`
	TotalArea         *float64 `json:"totalArea"`
	NetLeasableArea   *float64 `json:"netLeasableArea"`
	SalePrice         *int64   `json:"salePrice"`
	LumpSumPrice      *int64   `json:"lumpSumPrice"`
	RentalPrice       *int64   `json:"rentalPrice"`
	Deposit           *int64   `json:"deposit"`
	CreatedAt         string   `json:"createdAt"`
}

// ListingListResponse is the public search envelope.
type ListingListResponse struct {
	Listings    []ListingResponse `json:"listings"`
	TotalPages  int               `json:"totalPages"`
	CurrentPage int               `json:"currentPage"`
}

// AdminListingListResponse is the back-office search envelope.
type AdminListingListResponse struct {
	Ok          bool              `json:"ok"`
	Data        []ListingResponse `json:"data"`
	TotalItems  int64             `json:"totalItems"`
	TotalPages  int               `json:"totalPages"`
	CurrentPage int               `json:"currentPage"`
}

// SearchOptions feeds the search-form dropdowns.
type SearchOptions struct {
	PropertyTypes    []PropertyType    `json:"propertyTypes"`
	TransactionTypes []TransactionType `json:"transactionTypes"`
	RoomOptions      []RoomOption      `json:"roomOptions"`
	BathroomOptions  []BathroomOption  `json:"bathroomOptions"`
	Themes           []Theme           `json:"themes"`
}
