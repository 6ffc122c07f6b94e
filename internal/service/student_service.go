package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/arts-admin-api/internal/dto"
	"github.com/noah-isme/arts-admin-api/internal/formatter"
	"github.com/noah-isme/arts-admin-api/internal/models"
	appErrors "github.com/noah-isme/arts-admin-api/pkg/errors"
)

type studentRepository interface {
	FindStatus(ctx context.Context, id int64) (models.StudentStatus, error)
	UpdateCulturalGroup(ctx context.Context, id int64, group *string) (int64, error)
	Profile(ctx context.Context, id int64) (*models.StudentProfile, error)
}

type distributionInvalidator interface {
	InvalidateDistributions(ctx context.Context)
}

// StudentService exposes student profiles and cultural group assignment.
type StudentService struct {
	repo        studentRepository
	invalidator distributionInvalidator
	groups      []string
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewStudentService constructs a StudentService. groups is the closed set of assignable cultural groups.
func NewStudentService(repo studentRepository, invalidator distributionInvalidator, groups []string, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, invalidator: invalidator, groups: groups, validator: validate, logger: logger}
}

// Profile returns the student with the desired group parsed from their latest application.
func (s *StudentService) Profile(ctx context.Context, req dto.StudentProfileRequest) (*dto.StudentProfileView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Student ID is required")
	}

	profile, err := s.repo.Profile(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Student not found")
		}
		return nil, appErrors.Internal(err, "Failed to load student profile")
	}

	performanceType := formatter.OrDefault(profile.PerformanceType, "")
	view := &dto.StudentProfileView{
		ID:                   profile.ID,
		SRCode:               profile.SRCode,
		FirstName:            profile.FirstName,
		MiddleName:           formatter.OrDefault(profile.MiddleName, ""),
		LastName:             profile.LastName,
		FullName:             formatter.FullName(profile.FirstName, profile.MiddleName, profile.LastName),
		Email:                profile.Email,
		Campus:               formatter.OrDefault(profile.Campus, ""),
		College:              formatter.OrDefault(profile.College, ""),
		Program:              formatter.OrDefault(profile.Program, ""),
		YearLevel:            formatter.OrDefault(profile.YearLevel, ""),
		CulturalGroup:        formatter.OrDefault(profile.CulturalGroup, ""),
		Status:               string(profile.Status),
		PerformanceType:      performanceType,
		DesiredCulturalGroup: formatter.DesiredCulturalGroup(performanceType),
		ApplicationDate:      formatter.Date(profile.ApplicationDate),
		MemberSince:          formatter.Date(&profile.CreatedAt),
	}
	return view, nil
}

// UpdateCulturalGroup assigns or clears the cultural group of an active student and returns the outcome message.
// Suspended students are refused; repeating the same assignment succeeds again.
func (s *StudentService) UpdateCulturalGroup(ctx context.Context, req dto.UpdateCulturalGroupRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Student ID and cultural group are required")
	}

	var group *string
	if requested := strings.TrimSpace(*req.CulturalGroup); requested != "" {
		canonical, ok := s.lookupGroup(requested)
		if !ok {
			return "", appErrors.Clone(appErrors.ErrValidation, "Invalid cultural group selected")
		}
		group = &canonical
	}

	status, err := s.repo.FindStatus(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.Clone(appErrors.ErrNotFound, "Student not found")
		}
		return "", appErrors.Internal(err, "Failed to update cultural group")
	}
	if status == models.StudentStatusSuspended {
		return "", appErrors.Clone(appErrors.ErrConflict, "Cannot update cultural group for a suspended student")
	}

	affected, err := s.repo.UpdateCulturalGroup(ctx, req.StudentID, group)
	if err != nil {
		return "", appErrors.Internal(err, "Failed to update cultural group")
	}
	if affected == 0 {
		return "", appErrors.Clone(appErrors.ErrNotFound, "Student not found or no changes made")
	}

	if s.invalidator != nil {
		s.invalidator.InvalidateDistributions(ctx)
	}
	s.logger.Info("cultural group updated", zap.Int64("student_id", req.StudentID), zap.Bool("unassigned", group == nil))

	if group == nil {
		return "Cultural group unassigned successfully", nil
	}
	return "Cultural group updated successfully", nil
}

// Groups returns the assignable cultural groups.
func (s *StudentService) Groups() []string {
	return append([]string(nil), s.groups...)
}

func (s *StudentService) lookupGroup(name string) (string, bool) {
	for _, g := range s.groups {
		if strings.EqualFold(g, name) {
			return g, true
		}
	}
	return "", false
}
