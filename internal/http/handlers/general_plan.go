package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/regula-backend/internal/http/response"
	"github.com/yungbote/regula-backend/internal/services"
)

type GeneralPlanHandler struct {
	plans services.PlanService
}

func NewGeneralPlanHandler(plans services.PlanService) *GeneralPlanHandler {
	return &GeneralPlanHandler{plans: plans}
}

type ensureGeneralPlanRequest struct {
	Name      string `json:"name"`
	GradeGoal string `json:"gradeGoal"`
}

// GET /api/regula/general-plan
func (h *GeneralPlanHandler) GetGeneralPlan(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	plan, err := h.plans.GetGeneralPlan(requestDBC(c), userID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"generalPlan": plan})
}

// POST /api/regula/general-plan
func (h *GeneralPlanHandler) EnsureGeneralPlan(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req ensureGeneralPlanRequest
	if !bindBody(c, &req) {
		return
	}
	plan, err := h.plans.EnsureGeneralPlan(requestDBC(c), userID, req.Name, req.GradeGoal)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"generalPlan": plan})
}

// PATCH /api/regula/general-plan
func (h *GeneralPlanHandler) UpdateGeneralPlan(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var patch services.GeneralPlanPatch
	if !bindBody(c, &patch) {
		return
	}
	n, err := h.plans.UpdateGeneralPlan(requestDBC(c), userID, patch)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}
