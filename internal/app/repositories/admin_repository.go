package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bucodel/registration-backend/internal/app/models"
	"github.com/bucodel/registration-backend/internal/pkg/apperrors"
	"github.com/bucodel/registration-backend/internal/pkg/dberrors"
)

// IAdminRepository defines the admin persistence operations the service layer
// depends on.
type IAdminRepository interface {
	Insert(ctx context.Context, admin *models.Admin) (int64, error)
	GetActiveByEmail(ctx context.Context, email string) (*models.Admin, error)
}

// AdminRepository handles admin database operations
type AdminRepository struct {
	db *pgxpool.Pool
}

// NewAdminRepository creates a new AdminRepository
func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{db: db}
}

// Insert creates a new admin row and returns its id.
func (r *AdminRepository) Insert(ctx context.Context, admin *models.Admin) (int64, error) {
	now := time.Now()

	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO admins (first_name, last_name, email, password, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		admin.FirstName, admin.LastName, admin.Email, admin.Password,
		admin.Role, admin.IsActive, now, now).Scan(&id)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		return 0, fmt.Errorf("error creating admin: %w", err)
	}

	admin.ID = id
	admin.CreatedAt = now
	admin.UpdatedAt = now
	return id, nil
}

// GetActiveByEmail retrieves an active admin by email. Inactive accounts are
// indistinguishable from missing ones, which keeps login errors generic.
func (r *AdminRepository) GetActiveByEmail(ctx context.Context, email string) (*models.Admin, error) {
	admin := &models.Admin{}
	err := r.db.QueryRow(ctx, `
		SELECT id, first_name, last_name, email, password, role, is_active, created_at, updated_at
		FROM admins
		WHERE email = $1 AND is_active = TRUE`,
		email).Scan(
		&admin.ID, &admin.FirstName, &admin.LastName, &admin.Email, &admin.Password,
		&admin.Role, &admin.IsActive, &admin.CreatedAt, &admin.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAdminNotFound
		}
		return nil, fmt.Errorf("error getting admin: %w", err)
	}

	return admin, nil
}
