package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Iwakk225/SIP-FAS-sub000/internal/apperr"
	"github.com/Iwakk225/SIP-FAS-sub000/internal/models"
)

// OfficerService manages the field-officer directory.
type OfficerService interface {
	CreateOfficer(ctx context.Context, req *models.OfficerRequest) (*models.Officer, error)
	GetOfficer(ctx context.Context, id string) (*models.Officer, error)
	ListOfficers(ctx context.Context) ([]models.Officer, error)
	// SetAccountStatus activates or deactivates an officer. Deactivation is
	// refused while the officer holds an active assignment.
	SetAccountStatus(ctx context.Context, id string, status models.OfficerStatus) (*models.Officer, error)
}

// officerService is the concrete implementation of OfficerService.
type officerService struct {
	db *gorm.DB
}

// NewOfficerService injects the *gorm.DB dependency and returns an
// OfficerService instance ready for use.
func NewOfficerService(db *gorm.DB) OfficerService {
	return &officerService{db: db}
}

func (s *officerService) CreateOfficer(ctx context.Context, req *models.OfficerRequest) (*models.Officer, error) {
	if req == nil || strings.TrimSpace(req.Name) == "" {
		return nil, apperr.New(apperr.CodeValidation, "officer name must not be empty")
	}

	officer := &models.Officer{
		OfficerID:     uuid.NewString(),
		Name:          strings.TrimSpace(req.Name),
		Address:       req.Address,
		Phone:         req.Phone,
		AccountStatus: models.OfficerActive,
	}
	if err := s.db.WithContext(ctx).Create(officer).Error; err != nil {
		return nil, err
	}
	return officer, nil
}

func (s *officerService) GetOfficer(ctx context.Context, id string) (*models.Officer, error) {
	var officer models.Officer
	err := s.db.WithContext(ctx).First(&officer, "officer_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.CodeNotFound, "officer %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &officer, nil
}

func (s *officerService) ListOfficers(ctx context.Context) ([]models.Officer, error) {
	var officers []models.Officer
	if err := s.db.WithContext(ctx).Order("name").Find(&officers).Error; err != nil {
		return nil, err
	}
	return officers, nil
}

func (s *officerService) SetAccountStatus(ctx context.Context, id string, status models.OfficerStatus) (*models.Officer, error) {
	if status != models.OfficerActive && status != models.OfficerInactive {
		return nil, apperr.New(apperr.CodeValidation, "unknown account status %q", status)
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var officer models.Officer
	err := lockForUpdate(tx).First(&officer, "officer_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		tx.Rollback()
		return nil, apperr.New(apperr.CodeNotFound, "officer %s not found", id)
	}
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	// An inactive officer may hold no active assignment.
	if status == models.OfficerInactive {
		var active models.Assignment
		err := tx.Where("officer_id = ? AND active = ?", id, true).First(&active).Error
		if err == nil {
			tx.Rollback()
			return nil, apperr.New(apperr.CodeOfficerUnavailable,
				"officer %s holds active assignment %s, release it first", id, active.AssignmentID)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Model(&officer).Update("account_status", status).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	officer.AccountStatus = status

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &officer, nil
}
