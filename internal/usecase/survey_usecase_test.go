package usecase_test

import (
	"context"
	"testing"
	"time"

	"go-griefcare-backend/internal/domain"
	"go-griefcare-backend/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func authedCtx(userID string) context.Context {
	return context.WithValue(context.Background(), domain.KeyUserID, userID)
}

func TestSurveyOwnership(t *testing.T) {
	mockRepo := new(MockProfileRepo)
	validate := validator.New()
	uc := usecase.NewSurveyUsecase(mockRepo, nil, validate)

	t.Run("Should fail when Context UserID does not match Argument UserID", func(t *testing.T) {
		_, err := uc.GetMySurvey(authedCtx("user1"), "user2")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "only view your own survey")
	})

	t.Run("Should fail safely when Context UserID is missing", func(t *testing.T) {
		ctx := context.Background() // keys missing
		_, err := uc.GetMySurvey(ctx, "user1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "User not authenticated")
	})

	t.Run("Delete is owner-only too", func(t *testing.T) {
		err := uc.DeleteMySurvey(authedCtx("user1"), "user2")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "only delete your own survey")
	})
}

func TestSubmitSurvey(t *testing.T) {
	validate := validator.New()

	t.Run("Should force UserID from context", func(t *testing.T) {
		mockRepo := new(MockProfileRepo)
		uc := usecase.NewSurveyUsecase(mockRepo, nil, validate)

		ctx := authedCtx("user1")
		mockRepo.On("GetByUserID", ctx, "user1").Return(nil, domain.ErrNotFound)
		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Profile")).Return(nil)

		profile := &domain.Profile{
			UserID:           "hacker_try",
			PrivacyAgreement: true,
		}
		err := uc.SubmitSurvey(ctx, profile)

		assert.NoError(t, err)
		assert.Equal(t, "user1", profile.UserID)
		assert.True(t, profile.SurveyCompleted)
	})

	t.Run("Should require the privacy agreement", func(t *testing.T) {
		mockRepo := new(MockProfileRepo)
		uc := usecase.NewSurveyUsecase(mockRepo, nil, validate)

		err := uc.SubmitSurvey(authedCtx("user1"), &domain.Profile{PrivacyAgreement: false})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Privacy agreement is required")
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should conflict when a survey already exists", func(t *testing.T) {
		mockRepo := new(MockProfileRepo)
		uc := usecase.NewSurveyUsecase(mockRepo, nil, validate)

		ctx := authedCtx("user1")
		mockRepo.On("GetByUserID", ctx, "user1").Return(&domain.Profile{ID: 1, UserID: "user1"}, nil)

		err := uc.SubmitSurvey(ctx, &domain.Profile{PrivacyAgreement: true})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already submitted")
	})

	t.Run("Should reject a future birth date", func(t *testing.T) {
		mockRepo := new(MockProfileRepo)
		uc := usecase.NewSurveyUsecase(mockRepo, nil, validate)

		future := time.Now().Add(24 * time.Hour)
		err := uc.SubmitSurvey(authedCtx("user1"), &domain.Profile{
			PrivacyAgreement: true,
			BirthDate:        &future,
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "must be in the past")
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should reject unknown enum values", func(t *testing.T) {
		mockRepo := new(MockProfileRepo)
		uc := usecase.NewSurveyUsecase(mockRepo, nil, validate)

		bogus := domain.RelationshipToDeceased("ACQUAINTANCE")
		err := uc.SubmitSurvey(authedCtx("user1"), &domain.Profile{
			PrivacyAgreement: true,
			Relationship:     &bogus,
		})

		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestListSurveysPrivilege(t *testing.T) {
	validate := validator.New()

	t.Run("Should fail if caller is not admin", func(t *testing.T) {
		mockRepo := new(MockProfileRepo)
		uc := usecase.NewSurveyUsecase(mockRepo, nil, validate)

		ctx := context.WithValue(authedCtx("user1"), domain.KeyIsAdmin, false)
		_, _, err := uc.ListSurveys(ctx, 1, 20)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Only administrators")
	})

	t.Run("Should fail safe if admin flag is missing", func(t *testing.T) {
		mockRepo := new(MockProfileRepo)
		uc := usecase.NewSurveyUsecase(mockRepo, nil, validate)

		_, _, err := uc.ListSurveys(authedCtx("user1"), 1, 20)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Only administrators")
	})

	t.Run("Should clamp pagination inputs", func(t *testing.T) {
		mockRepo := new(MockProfileRepo)
		uc := usecase.NewSurveyUsecase(mockRepo, nil, validate)

		ctx := context.WithValue(authedCtx("admin"), domain.KeyIsAdmin, true)
		mockRepo.On("Fetch", ctx, 20, 0).Return([]domain.Profile{}, int64(0), nil)

		_, _, err := uc.ListSurveys(ctx, -3, 1000)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}
