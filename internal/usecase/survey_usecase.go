package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-griefcare-backend/internal/domain"
	"go-griefcare-backend/pkg/apperror"
	"go-griefcare-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type surveyUsecase struct {
	repo     domain.ProfileRepository
	cache    RecommendationCache
	validate *validator.Validate
}

// NewSurveyUsecase creates the survey usecase. The cache may be nil; when
// present, survey changes invalidate the person's cached recommendations.
func NewSurveyUsecase(repo domain.ProfileRepository, cache RecommendationCache, validate *validator.Validate) domain.SurveyUsecase {
	validation.RegisterValidators(validate)
	return &surveyUsecase{
		repo:     repo,
		cache:    cache,
		validate: validate,
	}
}

func (u *surveyUsecase) SubmitSurvey(ctx context.Context, profile *domain.Profile) error {
	ctxUserID, ok := ctx.Value(domain.KeyUserID).(string)
	if !ok || ctxUserID == "" {
		return apperror.Unauthorized("User not authenticated")
	}
	// Force ownership from the authenticated identity
	profile.UserID = ctxUserID

	if !profile.PrivacyAgreement {
		return apperror.BadRequest("Privacy agreement is required to submit the survey")
	}
	if err := u.validateProfile(profile); err != nil {
		return err
	}

	existing, err := u.repo.GetByUserID(ctx, ctxUserID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return apperror.Internal(err)
	}
	if existing != nil {
		return apperror.Conflict("Survey already submitted; use update instead")
	}

	profile.SurveyCompleted = true
	if err := u.repo.Create(ctx, profile); err != nil {
		return apperror.Internal(err)
	}

	if u.cache != nil {
		u.cache.Invalidate(ctx, ctxUserID)
	}
	return nil
}

func (u *surveyUsecase) GetMySurvey(ctx context.Context, userID string) (*domain.Profile, error) {
	ctxUserID, ok := ctx.Value(domain.KeyUserID).(string)
	if !ok || ctxUserID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if ctxUserID != userID {
		return nil, apperror.Forbidden("You can only view your own survey")
	}

	profile, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Survey not found")
		}
		return nil, apperror.Internal(err)
	}
	return profile, nil
}

func (u *surveyUsecase) UpdateMySurvey(ctx context.Context, profile *domain.Profile) error {
	ctxUserID, ok := ctx.Value(domain.KeyUserID).(string)
	if !ok || ctxUserID == "" {
		return apperror.Unauthorized("User not authenticated")
	}
	profile.UserID = ctxUserID

	if err := u.validateProfile(profile); err != nil {
		return err
	}

	existing, err := u.repo.GetByUserID(ctx, ctxUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Survey not found")
		}
		return apperror.Internal(err)
	}

	profile.ID = existing.ID
	// An update never un-completes a submitted survey
	profile.SurveyCompleted = existing.SurveyCompleted
	if err := u.repo.Update(ctx, profile); err != nil {
		return apperror.Internal(err)
	}

	if u.cache != nil {
		u.cache.Invalidate(ctx, ctxUserID)
	}
	return nil
}

func (u *surveyUsecase) DeleteMySurvey(ctx context.Context, userID string) error {
	ctxUserID, ok := ctx.Value(domain.KeyUserID).(string)
	if !ok || ctxUserID == "" {
		return apperror.Unauthorized("User not authenticated")
	}
	if ctxUserID != userID {
		return apperror.Forbidden("You can only delete your own survey")
	}

	if err := u.repo.Delete(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Survey not found")
		}
		return apperror.Internal(err)
	}

	if u.cache != nil {
		u.cache.Invalidate(ctx, userID)
	}
	return nil
}

// ListSurveys is an admin-only listing.
func (u *surveyUsecase) ListSurveys(ctx context.Context, page, pageSize int) ([]domain.Profile, int64, error) {
	isAdmin, _ := ctx.Value(domain.KeyIsAdmin).(bool)
	if !isAdmin {
		return nil, 0, apperror.Forbidden("Only administrators can list surveys")
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	profiles, total, err := u.repo.Fetch(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return profiles, total, nil
}

// validateProfile checks the stored shape. Handlers already bind-validate
// the wire DTO; this is the last line before persistence.
func (u *surveyUsecase) validateProfile(p *domain.Profile) error {
	type fields struct {
		Relationship            *string   `validate:"omitempty,oneof=SPOUSE CHILD PARENT SIBLING OTHER"`
		SupportLevel            *string   `validate:"omitempty,oneof=HIGH MEDIUM LOW NONE"`
		BirthDate               time.Time `validate:"past_date"`
		RelationshipDescription string    `validate:"max=500,no_emoji"`
		PersonalNotes           string    `validate:"max=2000"`
		MainConcerns            []string  `validate:"max=10,dive,min=1,max=100"`
	}
	v := fields{MainConcerns: p.MainConcerns}
	if p.Relationship != nil {
		s := string(*p.Relationship)
		v.Relationship = &s
	}
	if p.SupportLevel != nil {
		s := string(*p.SupportLevel)
		v.SupportLevel = &s
	}
	if p.BirthDate != nil {
		v.BirthDate = *p.BirthDate
	}
	if p.RelationshipDescription != nil {
		v.RelationshipDescription = *p.RelationshipDescription
	}
	if p.PersonalNotes != nil {
		v.PersonalNotes = *p.PersonalNotes
	}
	if err := u.validate.Struct(v); err != nil {
		return apperror.BadRequest(strings.Join(validation.FormatValidationErrors(err), "; "))
	}
	return nil
}
