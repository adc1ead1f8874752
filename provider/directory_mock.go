package provider

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/uploadhub/uploadhub/provider/dto"
)

// MockDirectoryProvider serves a static user fixture for development, so the
// application can run without a reachable directory service.
type MockDirectoryProvider struct {
	users []*dto.DirectoryUser
}

func NewMockDirectoryProvider() *MockDirectoryProvider {
	return &MockDirectoryProvider{users: mockUsers()}
}

func (p *MockDirectoryProvider) GetUser(ctx context.Context, samAccountName string) (*dto.DirectoryUser, error) {
	for _, user := range p.users {
		if strings.EqualFold(user.SamAccountName, samAccountName) {
			return user, nil
		}
	}
	return nil, nil
}

func (p *MockDirectoryProvider) GetUserByGuid(ctx context.Context, guid uuid.UUID) (*dto.DirectoryUser, error) {
	for _, user := range p.users {
		if user.Guid == guid {
			return user, nil
		}
	}
	return nil, nil
}

func (p *MockDirectoryProvider) GetDomainUsers(ctx context.Context) ([]*dto.DirectoryUser, error) {
	users := make([]*dto.DirectoryUser, len(p.users))
	copy(users, p.users)
	return users, nil
}

func (p *MockDirectoryProvider) FindDomainUser(ctx context.Context, search string) ([]*dto.DirectoryUser, error) {
	search = strings.ToLower(search)

	var users []*dto.DirectoryUser
	for _, user := range p.users {
		if strings.Contains(strings.ToLower(user.SamAccountName), search) ||
			strings.Contains(strings.ToLower(user.UserPrincipalName), search) ||
			strings.Contains(strings.ToLower(user.DisplayName), search) {
			users = append(users, user)
		}
	}
	return users, nil
}

func (p *MockDirectoryProvider) IsMemberOf(ctx context.Context, samAccountName, group string) (bool, error) {
	user, err := p.GetUser(ctx, samAccountName)
	if err != nil {
		return false, err
	}
	// The fixture treats every known, enabled user as a member of any group.
	return user != nil && user.Enabled, nil
}

func mockUsers() []*dto.DirectoryUser {
	return []*dto.DirectoryUser{
		{
			DisplayName:       "Shaw, Leigh",
			GivenName:         "Leigh",
			Surname:           "Shaw",
			EmailAddress:      "lshaw@uploadhub.local",
			SamAccountName:    "lshaw",
			UserPrincipalName: "lshaw@uploadhub.local",
			DistinguishedName: "CN=Shaw\\, Leigh,OU=Users,DC=uploadhub,DC=local",
			Guid:              uuid.MustParse("5f8a1f8e-6f4f-4f64-9a5e-3ba11a2f8f01"),
			Enabled:           true,
		},
		{
			DisplayName:       "Okafor, Chidi",
			GivenName:         "Chidi",
			Surname:           "Okafor",
			EmailAddress:      "cokafor@uploadhub.local",
			SamAccountName:    "cokafor",
			UserPrincipalName: "cokafor@uploadhub.local",
			DistinguishedName: "CN=Okafor\\, Chidi,OU=Users,DC=uploadhub,DC=local",
			Guid:              uuid.MustParse("8c2b4d10-20cd-4a53-8e3f-52f3a9f0be02"),
			Enabled:           true,
		},
		{
			DisplayName:       "Marsh, Dana",
			GivenName:         "Dana",
			Surname:           "Marsh",
			EmailAddress:      "dmarsh@uploadhub.local",
			SamAccountName:    "dmarsh",
			UserPrincipalName: "dmarsh@uploadhub.local",
			DistinguishedName: "CN=Marsh\\, Dana,OU=Users,DC=uploadhub,DC=local",
			Guid:              uuid.MustParse("c1a4e0d7-93a2-4f0e-b7c8-fd29c3a4de03"),
			Enabled:           true,
		},
		{
			DisplayName:       "Reyes, Marco",
			GivenName:         "Marco",
			Surname:           "Reyes",
			EmailAddress:      "mreyes@uploadhub.local",
			SamAccountName:    "mreyes",
			UserPrincipalName: "mreyes@uploadhub.local",
			DistinguishedName: "CN=Reyes\\, Marco,OU=Users,DC=uploadhub,DC=local",
			Guid:              uuid.MustParse("e7f2b9c4-08d1-4f27-9b3a-6cc0f1d2aa04"),
			Enabled:           false,
			Description:       "Disabled contractor account",
		},
	}
}
