package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/regula-backend/internal/modules/regula/strategy"
)

type StrategyHandler struct{}

func NewStrategyHandler() *StrategyHandler { return &StrategyHandler{} }

// GET /api/regula/strategies
func (h *StrategyHandler) ListStrategies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"strategies": strategy.ListDefaultStrategies()})
}
