package client

import "context"

type Repository interface {
	Create(ctx context.Context, c *Client) error
	FindByID(ctx context.Context, id int64) (*Client, error)
	FindByEmail(ctx context.Context, email string) (*Client, error)
	FindByLicense(ctx context.Context, licenseNumber string) (*Client, error)
	List(ctx context.Context) ([]*Client, error)
	Update(ctx context.Context, c *Client) error

	// Delete fails with ErrInUse when the client still has reservations.
	Delete(ctx context.Context, id int64) error
}
