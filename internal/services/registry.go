package services

// ServiceContainer holds every wired service of the application.
type ServiceContainer struct {
	ListingService ListingService
	AuthService    AuthService
}
