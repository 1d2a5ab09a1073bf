package httpapi

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"jobportal-api/internal/images"
	"jobportal-api/internal/listing"
	"jobportal-api/internal/models"
	"jobportal-api/internal/users"
)

// ListingService is the CRUD surface over company+roles documents.
type ListingService interface {
	Create(ctx context.Context, company models.Company, roles []models.Role) (string, error)
	CheckName(ctx context.Context, name string, aliases []string) (listing.NameCheck, error)
	Summaries(ctx context.Context) ([]listing.SummaryRow, error)
	Get(ctx context.Context, id string) (bson.M, error)
	Patch(ctx context.Context, id string, p listing.Patch) error
	Replace(ctx context.Context, id string, company models.Company, roles *[]models.Role) error
	Delete(ctx context.Context, id string) error
}

// UserService is the username/password account surface.
type UserService interface {
	Signup(ctx context.Context, username, password string) (users.Identity, error)
	Login(ctx context.Context, username, password string) (users.Identity, error)
	List(ctx context.Context) ([]users.Entry, error)
	SetAdmin(ctx context.Context, username string, isAdmin bool) error
	SetTempAdmin(ctx context.Context, username string, isTempAdmin bool) error
}

// ImageService resolves a company name to its banner/logo pair.
type ImageService interface {
	GetOrFetch(ctx context.Context, companyName string) (images.Entry, error)
}

type Deps struct {
	Listings ListingService
	Users    UserService
	Images   ImageService

	// SearchKeyAccount is the keychain slot the search-key admin routes
	// write to.
	SearchKeyAccount string

	Logger *zap.Logger
}
