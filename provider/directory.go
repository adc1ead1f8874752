package provider

import (
	"context"

	"github.com/google/uuid"
	"github.com/uploadhub/uploadhub/provider/dto"
)

// DirectoryProvider is the user-lookup capability backing the identity
// middleware and the user endpoints. Lookups that find nothing return
// (nil, nil); callers check before use.
type DirectoryProvider interface {
	GetUser(ctx context.Context, samAccountName string) (*dto.DirectoryUser, error)
	GetUserByGuid(ctx context.Context, guid uuid.UUID) (*dto.DirectoryUser, error)
	GetDomainUsers(ctx context.Context) ([]*dto.DirectoryUser, error)
	FindDomainUser(ctx context.Context, search string) ([]*dto.DirectoryUser, error)
	IsMemberOf(ctx context.Context, samAccountName, group string) (bool, error)
}
