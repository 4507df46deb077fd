package partner

import (
	"context"

	"github.com/motodms/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Client represents a dealership customer. The financing core only needs
// identity and a few display fields; client lifecycle management lives
// elsewhere.
type Client struct {
	shared.OrgAggregateRoot
	Name           string `json:"name"`
	Phone          string `json:"phone,omitempty"`
	Email          string `json:"email,omitempty"`
	DocumentNumber string `json:"document_number,omitempty"`
}

// NewClient creates a new client
func NewClient(orgID uuid.UUID, name string) (*Client, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CLIENT_NAME", "Client name cannot be empty")
	}
	return &Client{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		Name:             name,
	}, nil
}

// ClientRepository defines the read-side lookups account origination depends on
type ClientRepository interface {
	FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*Client, error)
	ExistsForOrg(ctx context.Context, orgID, id uuid.UUID) (bool, error)
	Save(ctx context.Context, client *Client) error
}
