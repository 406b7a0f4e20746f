package handlers

// AppHandlers holds every wired handler of the application.
type AppHandlers struct {
	ListingHandler      *ListingHandler
	AdminListingHandler *AdminListingHandler
	AuthHandler         *AuthHandler
}
