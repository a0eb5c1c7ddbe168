package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"carrental-service/internal/domain/client"
	xerrors "carrental-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ClientRepository struct {
	db *pgxpool.Pool
}

func NewClientRepository(db *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{db: db}
}

const clientColumns = `id, first_name, last_name, email, phone, address, driver_license_number, birth_date, created_at`

func scanClient(row pgx.Row) (*client.Client, error) {
	var c client.Client
	err := row.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
		&c.Address, &c.DriverLicenseNumber, &c.BirthDate, &c.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan client: %w", err)
	}
	return &c, nil
}

func (r *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO clients (first_name, last_name, email, phone, address, driver_license_number, birth_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		c.FirstName, c.LastName, c.Email, c.Phone, c.Address, c.DriverLicenseNumber, c.BirthDate,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return mapClientConstraint(err)
	}
	return nil
}

func mapClientConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		if strings.Contains(pgErr.ConstraintName, "license") {
			return xerrors.ErrDuplicateLicense
		}
		return xerrors.ErrDuplicateEmail
	}
	return fmt.Errorf("failed to write client: %w", err)
}

func (r *ClientRepository) FindByID(ctx context.Context, id int64) (*client.Client, error) {
	return scanClient(r.db.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = $1`, id))
}

func (r *ClientRepository) FindByEmail(ctx context.Context, email string) (*client.Client, error) {
	return scanClient(r.db.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE LOWER(email) = LOWER($1)`, email))
}

func (r *ClientRepository) FindByLicense(ctx context.Context, licenseNumber string) (*client.Client, error) {
	return scanClient(r.db.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE LOWER(driver_license_number) = LOWER($1)`, licenseNumber))
}

func (r *ClientRepository) List(ctx context.Context) ([]*client.Client, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+clientColumns+` FROM clients ORDER BY last_name, first_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []*client.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *ClientRepository) Update(ctx context.Context, c *client.Client) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE clients SET
			first_name = $1, last_name = $2, email = $3, phone = $4,
			address = $5, driver_license_number = $6, birth_date = $7
		 WHERE id = $8`,
		c.FirstName, c.LastName, c.Email, c.Phone,
		c.Address, c.DriverLicenseNumber, c.BirthDate, c.ID,
	)
	if err != nil {
		return mapClientConstraint(err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// Delete removes a client. Reservations reference clients with RESTRICT, so
// deleting a client with booking history fails and both records stay intact.
func (r *ClientRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if isForeignKeyViolation(err) {
		return xerrors.ErrInUse
	}
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
