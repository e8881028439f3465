package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"swingclub/server/internal/errcode"
	"swingclub/server/internal/services"
)

// RestListingHandler handles REST requests for listings.
type RestListingHandler struct {
	listingService services.IListingService
}

// NewRestListingHandler creates a new RestListingHandler.
func NewRestListingHandler(listingService services.IListingService) *RestListingHandler {
	return &RestListingHandler{listingService: listingService}
}

// GetListingByID handles GET /v1/listing/:id
func (h *RestListingHandler) GetListingByID(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	listing, err := h.listingService.FindListingByID(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if listing == nil {
		abortWithError(c, errcode.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, listing)
}

type createListingRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body"`
	Image string `json:"image"`
	Price int64  `json:"price"`
}

// CreateListing handles POST /v1/listing (authenticated)
func (h *RestListingHandler) CreateListing(c *gin.Context) {
	actor := actorFromContext(c)
	if actor == nil {
		abortWithError(c, errcode.ErrAuthenticationRequired)
		return
	}

	var req createListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errcode.ErrInvalidParam)
		return
	}

	listing, err := h.listingService.CreateListing(c.Request.Context(), actor.ID, req.Title, req.Body, req.Image, req.Price)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, listing)
}

// GetMyListings handles GET /v1/user/me/listing (authenticated)
func (h *RestListingHandler) GetMyListings(c *gin.Context) {
	actor := actorFromContext(c)
	if actor == nil {
		abortWithError(c, errcode.ErrAuthenticationRequired)
		return
	}

	listings, err := h.listingService.FindListingsByUserID(c.Request.Context(), actor.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, listings)
}
