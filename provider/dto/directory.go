package dto

import "github.com/google/uuid"

// DirectoryUser is the normalized profile record every directory
// implementation returns.
type DirectoryUser struct {
	DisplayName       string    `json:"display_name"`
	GivenName         string    `json:"given_name"`
	Surname           string    `json:"surname"`
	EmailAddress      string    `json:"email_address"`
	SamAccountName    string    `json:"sam_account_name"`
	UserPrincipalName string    `json:"user_principal_name"`
	DistinguishedName string    `json:"distinguished_name"`
	Guid              uuid.UUID `json:"guid"`
	Enabled           bool      `json:"enabled"`
	Description       string    `json:"description,omitempty"`
}
