package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/workhive/workhive_backend/internal/core/ports/services"
	"github.com/workhive/workhive_backend/internal/dto"
)

// listingHandler handles HTTP requests for service listings.
type listingHandler struct {
	listingService portssvc.ListingSvcFacade
}

func newListingHandler(ls portssvc.ListingSvcFacade) *listingHandler {
	return &listingHandler{listingService: ls}
}

// registerListingRoutes registers service listing routes.
func registerListingRoutes(rg *gin.RouterGroup, listingService portssvc.ListingSvcFacade) {
	h := newListingHandler(listingService)

	services := rg.Group("/services")
	{
		services.POST("", h.createListing)
		services.GET("/:id", h.getListing)
	}
}

// createListing godoc
// @Summary Publish a service listing
// @Description Creates a service listing owned by the authenticated user.
// @Tags services
// @Accept json
// @Produce json
// @Param listing body dto.CreateListingRequest true "Listing details"
// @Success 201 {object} dto.ListingResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /services [post]
func (h *listingHandler) createListing(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	listing, err := h.listingService.CreateListing(c.Request.Context(), req, actorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToListingResponse(listing))
}

// getListing godoc
// @Summary Get a service listing
// @Tags services
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} dto.ListingResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /services/{id} [get]
func (h *listingHandler) getListing(c *gin.Context) {
	if _, ok := mustUserID(c); !ok {
		return
	}
	listing, err := h.listingService.GetListingByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListingResponse(listing))
}
