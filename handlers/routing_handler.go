package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"flight-route-server/models"
	"flight-route-server/services"
)

type RoutingHandler struct {
	routingService *services.RoutingService
}

func NewRoutingHandler(routingService *services.RoutingService) *RoutingHandler {
	return &RoutingHandler{
		routingService: routingService,
	}
}

func (h *RoutingHandler) RegisterRoutes(router gin.IRouter) {
	api := router.Group("/api")
	api.GET("/graph", h.GetGraph)
	api.POST("/find-path", h.FindPath)
	api.GET("/nearest", h.Nearest)
}

func (h *RoutingHandler) GetGraph(c *gin.Context) {
	c.JSON(http.StatusOK, h.routingService.Snapshot())
}

func (h *RoutingHandler) FindPath(c *gin.Context) {
	var req models.PathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := h.routingService.FindPath(c.Request.Context(), req)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, result)
	case errors.Is(err, services.ErrUnknownNode):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start or end node"})
	case errors.Is(err, services.ErrUnknownAlgorithm):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid algorithm specified"})
	default:
		log.Printf("find-path failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (h *RoutingHandler) Nearest(c *gin.Context) {
	var req models.NearestRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.routingService.Nearest(c.Request.Context(), req)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, resp)
	case errors.Is(err, services.ErrNoNearbyNode):
		c.JSON(http.StatusNotFound, gin.H{"error": "No node within radius"})
	case errors.Is(err, services.ErrUnknownKind):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid node kind"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
