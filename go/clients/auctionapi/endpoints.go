package auctionapi

const (
	// API Endpoints
	TournamentsEndpoint   = "/api/tournaments"
	AuctionAssignEndpoint = "/api/auction/assign"
	HealthEndpoint        = "/api/health"

	// Headers
	AuthorizationHeader = "Authorization"
)
