package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/regula-backend/internal/domain"
	"github.com/yungbote/regula-backend/internal/http/response"
	"github.com/yungbote/regula-backend/internal/services"
)

type ReflectionHandler struct {
	plans services.PlanService
}

func NewReflectionHandler(plans services.PlanService) *ReflectionHandler {
	return &ReflectionHandler{plans: plans}
}

// GET /api/regula/sub-plans/:id/reflections
func (h *ReflectionHandler) ListForSubPlan(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	subPlanID, ok := idParam(c, "id")
	if !ok {
		return
	}
	refs, err := h.plans.ListReflectionsForSubPlan(requestDBC(c), userID, subPlanID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reflections": refs})
}

// POST /api/regula/sub-plans/:id/reflections
func (h *ReflectionHandler) CreateReflection(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	subPlanID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var in types.ReflectionInput
	if !bindBody(c, &in) {
		return
	}
	ref, err := h.plans.CreateReflection(requestDBC(c), userID, subPlanID, in)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"reflection": ref})
}

// GET /api/regula/reflections
func (h *ReflectionHandler) ListForUser(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	refs, err := h.plans.ListAllReflectionsForUser(requestDBC(c), userID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reflections": refs})
}

// PATCH /api/regula/reflections/:id
func (h *ReflectionHandler) UpdateReflection(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var patch types.ReflectionPatch
	if !bindBody(c, &patch) {
		return
	}
	ref, err := h.plans.UpdateReflection(requestDBC(c), userID, id, patch)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reflection": ref})
}
