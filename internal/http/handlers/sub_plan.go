package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/regula-backend/internal/domain"
	"github.com/yungbote/regula-backend/internal/http/response"
	"github.com/yungbote/regula-backend/internal/services"
)

type SubPlanHandler struct {
	plans services.PlanService
}

func NewSubPlanHandler(plans services.PlanService) *SubPlanHandler {
	return &SubPlanHandler{plans: plans}
}

type editSubPlanRequest struct {
	Updates    services.SubPlanPatch `json:"updates"`
	Reflection types.ReflectionInput `json:"reflection"`
}

// GET /api/regula/sub-plans
func (h *SubPlanHandler) ListSubPlans(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	subPlans, err := h.plans.ListSubPlans(requestDBC(c), userID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subPlans": subPlans})
}

// POST /api/regula/sub-plans
func (h *SubPlanHandler) CreateSubPlan(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var in services.SubPlanInput
	if !bindBody(c, &in) {
		return
	}
	sp, err := h.plans.CreateSubPlan(requestDBC(c), userID, in)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"subPlan": sp})
}

// GET /api/regula/sub-plans/:id
func (h *SubPlanHandler) GetSubPlan(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	detail, err := h.plans.GetSubPlanDetail(requestDBC(c), userID, id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// PATCH /api/regula/sub-plans/:id
func (h *SubPlanHandler) UpdateSubPlan(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var patch services.SubPlanPatch
	if !bindBody(c, &patch) {
		return
	}
	sp, err := h.plans.UpdateSubPlan(requestDBC(c), userID, id, patch)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subPlan": sp})
}

// DELETE /api/regula/sub-plans/:id
func (h *SubPlanHandler) DeleteSubPlan(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.plans.DeleteSubPlan(requestDBC(c), userID, id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/regula/sub-plans/:id/edit
func (h *SubPlanHandler) EditSubPlan(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req editSubPlanRequest
	if !bindBody(c, &req) {
		return
	}
	res, err := h.plans.EditSubPlanWithReflection(requestDBC(c), userID, id, req.Updates, req.Reflection)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/regula/sub-plans/:id/complete
func (h *SubPlanHandler) CompleteSubPlan(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var in types.ReflectionInput
	if !bindBody(c, &in) {
		return
	}
	res, err := h.plans.CompleteSubPlan(requestDBC(c), userID, id, in)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
