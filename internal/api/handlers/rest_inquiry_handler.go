package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"swingclub/server/internal/errcode"
	"swingclub/server/internal/models"
	"swingclub/server/internal/services"
)

// RestInquiryHandler exposes the inquiry operations over REST. All routes
// sit behind the auth middleware; the service re-checks identity and role
// itself, so a missing actor still fails closed.
type RestInquiryHandler struct {
	inquiryService services.IInquiryService
}

// NewRestInquiryHandler creates a new RestInquiryHandler.
func NewRestInquiryHandler(inquiryService services.IInquiryService) *RestInquiryHandler {
	return &RestInquiryHandler{inquiryService: inquiryService}
}

type createInquiryRequest struct {
	ItemID  string `json:"item_id" binding:"required"`
	Message string `json:"message"`
}

// CreateInquiry handles POST /v1/inquiry
func (h *RestInquiryHandler) CreateInquiry(c *gin.Context) {
	var req createInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errcode.ErrInvalidParam)
		return
	}
	itemID, err := parseHexID(req.ItemID)
	if err != nil {
		abortWithError(c, errcode.ErrInvalidParam)
		return
	}

	inquiryID, err := h.inquiryService.CreateInquiry(c.Request.Context(), actorFromContext(c), itemID, req.Message)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"inquiry_id": inquiryID.Hex()})
}

type sendMessageRequest struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// SendMessage handles POST /v1/inquiry/:id/message
func (h *RestInquiryHandler) SendMessage(c *gin.Context) {
	inquiryID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errcode.ErrInvalidParam)
		return
	}

	messageID, err := h.inquiryService.SendMessage(c.Request.Context(), actorFromContext(c), inquiryID, models.MessageType(req.Type), req.Content)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message_id": messageID.Hex()})
}

// GetInquiry handles GET /v1/inquiry/:id
func (h *RestInquiryHandler) GetInquiry(c *gin.Context) {
	inquiryID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	inquiry, err := h.inquiryService.GetInquiry(c.Request.Context(), actorFromContext(c), inquiryID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, inquiry)
}

// GetInquiryMessages handles GET /v1/inquiry/:id/message
func (h *RestInquiryHandler) GetInquiryMessages(c *gin.Context) {
	inquiryID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	messages, err := h.inquiryService.GetInquiryMessages(c.Request.Context(), actorFromContext(c), inquiryID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// GetUserInquiries handles GET /v1/inquiry
func (h *RestInquiryHandler) GetUserInquiries(c *gin.Context) {
	inquiries, err := h.inquiryService.GetUserInquiries(c.Request.Context(), actorFromContext(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, inquiries)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

// UpdateInquiryStatus handles PUT /v1/inquiry/:id/status
func (h *RestInquiryHandler) UpdateInquiryStatus(c *gin.Context) {
	inquiryID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errcode.ErrInvalidParam)
		return
	}

	err := h.inquiryService.UpdateInquiryStatus(c.Request.Context(), actorFromContext(c), inquiryID, models.InquiryStatus(req.Status), req.Reason)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// MarkInquiryAsRead handles PUT /v1/inquiry/:id/read
func (h *RestInquiryHandler) MarkInquiryAsRead(c *gin.Context) {
	inquiryID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.inquiryService.MarkInquiryAsRead(c.Request.Context(), actorFromContext(c), inquiryID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
