package v1

import (
	"net/http"
	"strconv"

	"go-griefcare-backend/internal/delivery/http/response"
	"go-griefcare-backend/internal/domain"
	"go-griefcare-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type MatchingHandler struct {
	matchingUC domain.MatchingUsecase
}

// NewMatchingHandler registers counselor/family-group matching routes
func NewMatchingHandler(r *gin.RouterGroup, matchingUC domain.MatchingUsecase) {
	handler := &MatchingHandler{matchingUC: matchingUC}

	matching := r.Group("/matching")
	{
		// Counselors
		matching.GET("/counselors", handler.ListCounselors)
		matching.GET("/counselors/recommended", handler.RecommendCounselors)
		matching.GET("/counselors/:id", handler.GetCounselor)
		matching.POST("", handler.CreateMatching)
		matching.GET("/my-matchings", handler.GetMyMatchings)
		matching.PUT("/:id", handler.UpdateMatching)

		// Family groups
		matching.GET("/family-groups", handler.ListFamilyGroups)
		matching.GET("/family-groups/recommended", handler.RecommendFamilyGroups)
		matching.GET("/family-groups/:id", handler.GetFamilyGroup)
		matching.POST("/family-groups", handler.CreateFamilyMatching)
		matching.GET("/my-family-matchings", handler.GetMyFamilyMatchings)
	}
}

// ListCounselors godoc
// @Summary      List counselors
// @Description  Get the full counselor catalog, best rated first
// @Tags         matching
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Counselor}
// @Router       /matching/counselors [get]
// @Security     BearerAuth
func (h *MatchingHandler) ListCounselors(c *gin.Context) {
	counselors, err := h.matchingUC.ListCounselors(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Counselors retrieved", counselors)
}

// RecommendCounselors godoc
// @Summary      Recommended counselors
// @Description  Top 10 counselors scored against the caller's survey
// @Tags         matching
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.ScoredCounselor}
// @Failure      404  {object}  response.Response
// @Router       /matching/counselors/recommended [get]
// @Security     BearerAuth
func (h *MatchingHandler) RecommendCounselors(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	scored, err := h.matchingUC.RecommendCounselors(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Recommended counselors retrieved", scored)
}

// GetCounselor godoc
// @Summary      Get counselor
// @Tags         matching
// @Produce      json
// @Param        id  path      int  true  "Counselor ID"
// @Success      200 {object}  response.Response{data=domain.Counselor}
// @Failure      404 {object}  response.Response
// @Router       /matching/counselors/{id} [get]
// @Security     BearerAuth
func (h *MatchingHandler) GetCounselor(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid counselor ID"))
		return
	}

	counselor, err := h.matchingUC.GetCounselor(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Counselor retrieved", counselor)
}

// CreateMatchingRequest is the payload for requesting a counselor match
type CreateMatchingRequest struct {
	CounselorID int64 `json:"counselor_id" binding:"required"`
}

// CreateMatching godoc
// @Summary      Request a counselor match
// @Description  Creates a PENDING matching between the caller and a counselor
// @Tags         matching
// @Accept       json
// @Produce      json
// @Param        body  body      CreateMatchingRequest  true  "Matching data"
// @Success      201   {object}  response.Response{data=domain.Matching}
// @Failure      404   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /matching [post]
// @Security     BearerAuth
func (h *MatchingHandler) CreateMatching(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req CreateMatchingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	m, err := h.matchingUC.CreateCounselorMatching(c.Request.Context(), userID, req.CounselorID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Matching request created", m)
}

// GetMyMatchings godoc
// @Summary      My matchings
// @Description  All matching requests of the caller, newest first. Optional ?type=COUNSELOR|FAMILY_GROUP filter.
// @Tags         matching
// @Produce      json
// @Param        type  query     string  false  "Filter by matching type"
// @Success      200   {object}  response.Response{data=[]domain.Matching}
// @Router       /matching/my-matchings [get]
// @Security     BearerAuth
func (h *MatchingHandler) GetMyMatchings(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var typeFilter *domain.MatchType
	switch c.Query("type") {
	case "":
	case string(domain.MatchTypeCounselor):
		t := domain.MatchTypeCounselor
		typeFilter = &t
	case string(domain.MatchTypeFamilyGroup):
		t := domain.MatchTypeFamilyGroup
		typeFilter = &t
	default:
		c.Error(apperror.BadRequest("Invalid type filter. Must be COUNSELOR or FAMILY_GROUP"))
		return
	}

	matchings, err := h.matchingUC.GetUserMatchings(c.Request.Context(), userID, typeFilter)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Matchings retrieved", matchings)
}

// UpdateMatchingRequest is the payload for a status transition
type UpdateMatchingRequest struct {
	Status          string  `json:"status" binding:"required,oneof=ACCEPTED REJECTED CANCELLED COMPLETED"`
	Notes           *string `json:"notes"`
	RejectionReason *string `json:"rejection_reason"`
}

// UpdateMatching godoc
// @Summary      Update matching status
// @Description  Applies an explicit status transition to a matching record
// @Tags         matching
// @Accept       json
// @Produce      json
// @Param        id    path      int                     true  "Matching ID"
// @Param        body  body      UpdateMatchingRequest   true  "Status update"
// @Success      200   {object}  response.Response{data=domain.Matching}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /matching/{id} [put]
// @Security     BearerAuth
func (h *MatchingHandler) UpdateMatching(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid matching ID"))
		return
	}

	var req UpdateMatchingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	m, err := h.matchingUC.UpdateMatchingStatus(c.Request.Context(), id, domain.MatchStatus(req.Status), req.Notes, req.RejectionReason)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Matching status updated", m)
}

// ListFamilyGroups godoc
// @Summary      List family groups
// @Description  All active peer support groups, newest first
// @Tags         matching
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.FamilyGroup}
// @Router       /matching/family-groups [get]
// @Security     BearerAuth
func (h *MatchingHandler) ListFamilyGroups(c *gin.Context) {
	groups, err := h.matchingUC.ListFamilyGroups(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Family groups retrieved", groups)
}

// RecommendFamilyGroups godoc
// @Summary      Recommended family groups
// @Description  Top 10 open groups scored against the caller's survey
// @Tags         matching
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.ScoredFamilyGroup}
// @Failure      404  {object}  response.Response
// @Router       /matching/family-groups/recommended [get]
// @Security     BearerAuth
func (h *MatchingHandler) RecommendFamilyGroups(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	scored, err := h.matchingUC.RecommendFamilyGroups(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Recommended family groups retrieved", scored)
}

// GetFamilyGroup godoc
// @Summary      Get family group
// @Tags         matching
// @Produce      json
// @Param        id  path      int  true  "Family group ID"
// @Success      200 {object}  response.Response{data=domain.FamilyGroup}
// @Failure      404 {object}  response.Response
// @Router       /matching/family-groups/{id} [get]
// @Security     BearerAuth
func (h *MatchingHandler) GetFamilyGroup(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid family group ID"))
		return
	}

	group, err := h.matchingUC.GetFamilyGroup(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Family group retrieved", group)
}

// CreateFamilyMatchingRequest is the payload for a group join request
type CreateFamilyMatchingRequest struct {
	FamilyGroupID int64 `json:"family_group_id" binding:"required"`
}

// CreateFamilyMatching godoc
// @Summary      Request to join a family group
// @Description  Creates a PENDING join request for an open group
// @Tags         matching
// @Accept       json
// @Produce      json
// @Param        body  body      CreateFamilyMatchingRequest  true  "Join request data"
// @Success      201   {object}  response.Response{data=domain.Matching}
// @Failure      404   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /matching/family-groups [post]
// @Security     BearerAuth
func (h *MatchingHandler) CreateFamilyMatching(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req CreateFamilyMatchingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	m, err := h.matchingUC.CreateFamilyGroupMatching(c.Request.Context(), userID, req.FamilyGroupID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Join request created", m)
}

// GetMyFamilyMatchings godoc
// @Summary      My family group matchings
// @Description  The caller's group join requests, newest first
// @Tags         matching
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Matching}
// @Router       /matching/my-family-matchings [get]
// @Security     BearerAuth
func (h *MatchingHandler) GetMyFamilyMatchings(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	t := domain.MatchTypeFamilyGroup
	matchings, err := h.matchingUC.GetUserMatchings(c.Request.Context(), userID, &t)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Family group matchings retrieved", matchings)
}
