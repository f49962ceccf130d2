package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/bucodel/registration-backend/internal/app/models"
	appRepos "github.com/bucodel/registration-backend/internal/app/repositories"
	"github.com/bucodel/registration-backend/internal/config"
	"github.com/bucodel/registration-backend/internal/pkg/apperrors"
	pkgAuth "github.com/bucodel/registration-backend/internal/pkg/auth"
)

// CreateDefaultAdmin creates a bootstrap superadmin account from the
// DEFAULT_ADMIN_EMAIL and DEFAULT_ADMIN_PASSWORD environment variables.
// When either variable is unset, nothing is seeded; an already existing
// account is left untouched.
func CreateDefaultAdmin(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	email := config.GetEnv("DEFAULT_ADMIN_EMAIL", "")
	password := config.GetEnv("DEFAULT_ADMIN_PASSWORD", "")
	if email == "" || password == "" {
		lgr.Debug().Msg("No default admin configured, skipping seed")
		return nil
	}

	adminRepo := appRepos.NewAdminRepository(dbPool)

	hashed, err := pkgAuth.HashPassword(password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default admin password")
		return err
	}

	admin := &appModels.Admin{
		FirstName: "System",
		LastName:  "Administrator",
		Email:     email,
		Password:  hashed,
		Role:      appModels.RoleSuperAdmin,
		IsActive:  true,
	}

	id, err := adminRepo.Insert(ctx, admin)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			lgr.Info().Str("email", email).Msg("Default admin already exists, skipping creation")
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating default admin")
		return err
	}

	lgr.Info().Int64("adminId", id).Str("email", email).Msg("Default admin created")
	return nil
}
