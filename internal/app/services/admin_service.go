package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/bucodel/registration-backend/internal/app/models"
	"github.com/bucodel/registration-backend/internal/app/models/dto"
	"github.com/bucodel/registration-backend/internal/app/repositories"
	"github.com/bucodel/registration-backend/internal/pkg/apperrors"
	pkgAuth "github.com/bucodel/registration-backend/internal/pkg/auth"
)

// AdminService handles admin account creation and authentication.
type AdminService struct {
	adminRepo  repositories.IAdminRepository
	jwtService *pkgAuth.JWTService
	logger     zerolog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(adminRepo repositories.IAdminRepository, jwtService *pkgAuth.JWTService, logger zerolog.Logger) *AdminService {
	return &AdminService{
		adminRepo:  adminRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates a new admin account. The role falls back to "admin" when
// the request leaves it empty.
func (s *AdminService) Register(ctx context.Context, req *dto.RegisterAdminRequest) (*dto.RegisterAdminResponse, error) {
	role := models.AdminRole(req.Role)
	if role == "" {
		role = models.RoleAdmin
	}

	hashed, err := pkgAuth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	admin := &models.Admin{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  hashed,
		Role:      role,
		IsActive:  true,
	}

	id, err := s.adminRepo.Insert(ctx, admin)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("adminId", id).Str("email", admin.Email).Msg("Admin registered")

	return &dto.RegisterAdminResponse{
		Success: true,
		Message: "Admin registered successfully",
		AdminID: id,
		Data: dto.RegisteredAdminData{
			FirstName: admin.FirstName,
			LastName:  admin.LastName,
			Email:     admin.Email,
			Role:      string(admin.Role),
		},
	}, nil
}

// Login authenticates an admin by email and password. Unknown, inactive and
// wrong-password accounts all produce the same error so the response leaks
// nothing about which accounts exist.
func (s *AdminService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AdminLoginResponse, error) {
	admin, err := s.adminRepo.GetActiveByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !pkgAuth.CheckPassword(admin.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.IssueToken(&pkgAuth.Principal{
		ID:    admin.ID,
		Email: admin.Email,
		Kind:  pkgAuth.PrincipalAdmin,
		Role:  string(admin.Role),
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("adminId", admin.ID).Msg("Failed to issue admin token")
		return nil, err
	}

	return &dto.AdminLoginResponse{
		Success: true,
		Message: "Login successful",
		Admin:   admin,
		Token:   token,
	}, nil
}
