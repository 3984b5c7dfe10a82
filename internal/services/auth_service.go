// internal/services/auth_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/remoteestate/backend/internal/config"
	"github.com/remoteestate/backend/internal/database"
	"github.com/remoteestate/backend/internal/models"
	"github.com/remoteestate/backend/internal/search"
	"github.com/remoteestate/backend/internal/utils"
)

type AuthService struct {
	db      *gorm.DB
	cfg     *config.Config
	storage *StorageService
	index   search.Index
}

type SignupRequest struct {
	Name     string          `json:"name" validate:"required,min=2,max=255"`
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,min=8"`
	UserType models.UserRole `json:"userType" validate:"required"`

	// Required when userType is lawyer
	LicenseNumber  string `json:"licenseNumber,omitempty"`
	BarAssociation string `json:"barAssociation,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"` // in seconds
}

func NewAuthService(db *gorm.DB, cfg *config.Config, storage *StorageService, index search.Index) *AuthService {
	return &AuthService{
		db:      db,
		cfg:     cfg,
		storage: storage,
		index:   index,
	}
}

func (s *AuthService) Signup(req *SignupRequest) (*AuthResponse, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if !req.UserType.Valid() {
		return nil, errors.New("invalid user type")
	}

	// Lawyer accounts carry bar credentials
	if req.UserType == models.UserRoleLawyer {
		if req.LicenseNumber == "" || req.BarAssociation == "" {
			return nil, errors.New("license number and bar association are required for lawyer accounts")
		}
	}

	// Check if user already exists
	var existingUser models.User
	if err := s.db.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		return nil, errors.New("a user with this email address has already been registered")
	}

	// Create new user
	user := &models.User{
		Name:           req.Name,
		Email:          req.Email,
		Role:           req.UserType,
		LicenseNumber:  req.LicenseNumber,
		BarAssociation: req.BarAssociation,
	}

	// Set password
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Save user
	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Generate token
	accessToken, err := utils.GenerateJWT(user.ID, user.Name, string(user.Role), s.cfg.JWT.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &AuthResponse{
		User:        user,
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   s.cfg.JWT.AccessTokenTTL * 3600, // Convert hours to seconds
	}, nil
}

func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// Find user by email
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("invalid email or password")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	// Verify password
	if err := user.CheckPassword(req.Password); err != nil {
		return nil, errors.New("invalid email or password")
	}

	// Generate token
	accessToken, err := utils.GenerateJWT(user.ID, user.Name, string(user.Role), s.cfg.JWT.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &AuthResponse{
		User:        &user,
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   s.cfg.JWT.AccessTokenTTL * 3600,
	}, nil
}

func (s *AuthService) GetUserByID(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

// GetLawyer resolves a user id and verifies the account holds the lawyer
// role.
func (s *AuthService) GetLawyer(lawyerID uuid.UUID) (*models.User, error) {
	var lawyer models.User
	if err := s.db.First(&lawyer, lawyerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("lawyer not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if lawyer.Role != models.UserRoleLawyer {
		return nil, errors.New("selected user is not a lawyer")
	}

	return &lawyer, nil
}

func (s *AuthService) GetLawyers() ([]models.LawyerProfile, error) {
	var lawyers []models.User
	if err := s.db.Where("role = ?", models.UserRoleLawyer).
		Order("created_at ASC").Find(&lawyers).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch lawyers: %w", err)
	}

	profiles := make([]models.LawyerProfile, 0, len(lawyers))
	for i := range lawyers {
		profiles = append(profiles, lawyers[i].LawyerProfile())
	}

	return profiles, nil
}

// DeleteAccount removes the user together with every listing they own.
// Owning zero listings is not an error. Blob and search-index cleanup is
// best-effort; orphaned offers and contracts referencing the removed
// listings are left in place.
func (s *AuthService) DeleteAccount(userID uuid.UUID) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("user not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	var listings []models.Listing
	if err := s.db.Where("seller_id = ?", userID).Find(&listings).Error; err != nil {
		return fmt.Errorf("failed to fetch user listings: %w", err)
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if len(listings) > 0 {
			if err := tx.Where("seller_id = ?", userID).Delete(&models.Listing{}).Error; err != nil {
				return fmt.Errorf("failed to delete listings: %w", err)
			}
		}
		if err := tx.Delete(&user).Error; err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// De-index removed listings
	if s.index != nil {
		for i := range listings {
			if err := s.index.DeleteDocument(listings[i].ID.String()); err != nil {
				logrus.WithError(err).WithField("listing_id", listings[i].ID).
					Warn("Failed to remove listing from search index")
			}
		}
	}

	// Remove uploaded files
	if s.storage != nil {
		if err := s.storage.DeleteUserFiles(userID.String()); err != nil {
			logrus.WithError(err).WithField("user_id", userID).
				Warn("Failed to delete user files from storage")
		}
	}

	return nil
}
