package v1

import (
	"net/http"
	"strconv"
	"time"

	"go-griefcare-backend/internal/delivery/http/response"
	"go-griefcare-backend/internal/domain"
	"go-griefcare-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type SurveyHandler struct {
	surveyUC domain.SurveyUsecase
}

// NewSurveyHandler registers family survey routes
func NewSurveyHandler(r *gin.RouterGroup, surveyUC domain.SurveyUsecase) {
	handler := &SurveyHandler{surveyUC: surveyUC}

	surveys := r.Group("/surveys")
	{
		surveys.POST("", handler.SubmitSurvey)
		surveys.GET("/my-survey", handler.GetMySurvey)
		surveys.PATCH("/my-survey", handler.UpdateMySurvey)
		surveys.DELETE("/my-survey", handler.DeleteMySurvey)
		surveys.GET("/all", handler.ListSurveys)
	}
}

// SurveyRequest is the wire payload for submitting or updating the survey
type SurveyRequest struct {
	BirthDate               *string  `json:"birth_date" binding:"omitempty,datetime=2006-01-02"`
	RelationshipToDeceased  *string  `json:"relationship_to_deceased" binding:"omitempty,oneof=SPOUSE CHILD PARENT SIBLING OTHER"`
	RelationshipDescription *string  `json:"relationship_description"`
	PsychologicalSupport    *string  `json:"psychological_support_level" binding:"omitempty,oneof=HIGH MEDIUM LOW NONE"`
	MainConcerns            []string `json:"main_concerns"`
	MeetingParticipation    bool     `json:"meeting_participation_desire"`
	PersonalNotes           *string  `json:"personal_notes"`
	PrivacyAgreement        bool     `json:"privacy_agreement"`
}

func (req *SurveyRequest) toProfile() (*domain.Profile, error) {
	profile := &domain.Profile{
		RelationshipDescription: req.RelationshipDescription,
		MainConcerns:            req.MainConcerns,
		MeetingParticipation:    req.MeetingParticipation,
		PersonalNotes:           req.PersonalNotes,
		PrivacyAgreement:        req.PrivacyAgreement,
	}
	if req.BirthDate != nil {
		birthDate, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			return nil, apperror.BadRequest("Invalid birth_date, expected YYYY-MM-DD")
		}
		profile.BirthDate = &birthDate
	}
	if req.RelationshipToDeceased != nil {
		rel := domain.RelationshipToDeceased(*req.RelationshipToDeceased)
		profile.Relationship = &rel
	}
	if req.PsychologicalSupport != nil {
		level := domain.SupportLevel(*req.PsychologicalSupport)
		profile.SupportLevel = &level
	}
	return profile, nil
}

// SubmitSurvey godoc
// @Summary      Submit family survey
// @Description  Stores the caller's survey; feeds the matching engine
// @Tags         surveys
// @Accept       json
// @Produce      json
// @Param        body  body      SurveyRequest  true  "Survey data"
// @Success      201   {object}  response.Response{data=domain.Profile}
// @Failure      400   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /surveys [post]
// @Security     BearerAuth
func (h *SurveyHandler) SubmitSurvey(c *gin.Context) {
	var req SurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	profile, err := req.toProfile()
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.surveyUC.SubmitSurvey(c.Request.Context(), profile); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Survey submitted", profile)
}

// GetMySurvey godoc
// @Summary      Get my survey
// @Tags         surveys
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.Profile}
// @Failure      404  {object}  response.Response
// @Router       /surveys/my-survey [get]
// @Security     BearerAuth
func (h *SurveyHandler) GetMySurvey(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	profile, err := h.surveyUC.GetMySurvey(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Survey retrieved", profile)
}

// UpdateMySurvey godoc
// @Summary      Update my survey
// @Tags         surveys
// @Accept       json
// @Produce      json
// @Param        body  body      SurveyRequest  true  "Survey data"
// @Success      200   {object}  response.Response{data=domain.Profile}
// @Failure      404   {object}  response.Response
// @Router       /surveys/my-survey [patch]
// @Security     BearerAuth
func (h *SurveyHandler) UpdateMySurvey(c *gin.Context) {
	var req SurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	profile, err := req.toProfile()
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.surveyUC.UpdateMySurvey(c.Request.Context(), profile); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Survey updated", profile)
}

// DeleteMySurvey godoc
// @Summary      Delete my survey
// @Tags         surveys
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /surveys/my-survey [delete]
// @Security     BearerAuth
func (h *SurveyHandler) DeleteMySurvey(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if err := h.surveyUC.DeleteMySurvey(c.Request.Context(), userID); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Survey deleted", nil)
}

// ListSurveys godoc
// @Summary      List all surveys (admin)
// @Tags         surveys
// @Produce      json
// @Param        page       query     int  false  "Page"
// @Param        page_size  query     int  false  "Page size"
// @Success      200  {object}  response.Response{data=[]domain.Profile}
// @Failure      403  {object}  response.Response
// @Router       /surveys/all [get]
// @Security     BearerAuth
func (h *SurveyHandler) ListSurveys(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	profiles, total, err := h.surveyUC.ListSurveys(c.Request.Context(), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Paginated(c, http.StatusOK, "Surveys retrieved", profiles, total, page, pageSize)
}
