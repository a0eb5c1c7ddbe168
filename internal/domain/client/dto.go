package client

import "time"

type RegisterClientRequest struct {
	FirstName           string    `json:"first_name" binding:"required,max=100"`
	LastName            string    `json:"last_name" binding:"required,max=100"`
	Email               string    `json:"email" binding:"required,email,max=255"`
	Phone               string    `json:"phone" binding:"max=50"`
	Address             string    `json:"address"`
	DriverLicenseNumber string    `json:"driver_license_number" binding:"required,max=50"`
	BirthDate           time.Time `json:"birth_date" binding:"required"`
}

type UpdateClientRequest struct {
	FirstName           *string    `json:"first_name,omitempty"`
	LastName            *string    `json:"last_name,omitempty"`
	Email               *string    `json:"email,omitempty"`
	Phone               *string    `json:"phone,omitempty"`
	Address             *string    `json:"address,omitempty"`
	DriverLicenseNumber *string    `json:"driver_license_number,omitempty"`
	BirthDate           *time.Time `json:"birth_date,omitempty"`
}
