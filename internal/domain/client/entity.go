package client

import "time"

// Client is an end customer. Clients carry no credential: bookings are made
// through the public request endpoint and managed by staff.
type Client struct {
	ID                  int64     `json:"id" db:"id"`
	FirstName           string    `json:"first_name" db:"first_name"`
	LastName            string    `json:"last_name" db:"last_name"`
	Email               string    `json:"email" db:"email"`
	Phone               string    `json:"phone" db:"phone"`
	Address             string    `json:"address" db:"address"`
	DriverLicenseNumber string    `json:"driver_license_number" db:"driver_license_number"`
	BirthDate           time.Time `json:"birth_date" db:"birth_date"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
}

func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}
