package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"swingclub/server/internal/api/middleware"
	"swingclub/server/internal/errcode"
	"swingclub/server/internal/services"
)

// statusFor maps a business error code onto an HTTP status.
func statusFor(code string) int {
	switch code {
	case errcode.ErrAuthenticationRequired.Code, errcode.ErrLoginFailed.Code:
		return http.StatusUnauthorized
	case errcode.ErrPermissionDenied.Code, errcode.ErrListingNotOwned.Code:
		return http.StatusForbidden
	case errcode.ErrNotFound.Code:
		return http.StatusNotFound
	case errcode.ErrEmptyContent.Code, errcode.ErrContentTooLong.Code, errcode.ErrInvalidParam.Code:
		return http.StatusBadRequest
	case errcode.ErrSelfInquiry.Code, errcode.ErrInvalidState.Code,
		errcode.ErrInvalidStateTransition.Code, errcode.ErrEmailTaken.Code:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// abortWithError renders a business error as {"error": {code, message}}.
// Anything that is not an *errcode.Error is reported as a storage failure
// without leaking its details to the client.
func abortWithError(c *gin.Context, err error) {
	var bizErr *errcode.Error
	if !errors.As(err, &bizErr) {
		bizErr = errcode.ErrStorageFailure
	}
	c.AbortWithStatusJSON(statusFor(bizErr.Code), gin.H{"error": gin.H{
		"code":    bizErr.Code,
		"message": bizErr.Message,
	}})
}

// actorFromContext rebuilds the authenticated actor placed in the Gin context
// by the auth middleware. Returns nil when the request is unauthenticated.
func actorFromContext(c *gin.Context) *services.Actor {
	idHex := c.GetString(middleware.ContextKeyUserID)
	if idHex == "" {
		return nil
	}
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil
	}
	return &services.Actor{
		ID:   id,
		Name: c.GetString(middleware.ContextKeyUserName),
	}
}

// parseHexID parses a request-body hex string as an ObjectID.
func parseHexID(hex string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(hex)
}

// parseObjectID parses a path parameter as an ObjectID.
func parseObjectID(c *gin.Context, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		abortWithError(c, errcode.ErrInvalidParam)
		return primitive.NilObjectID, false
	}
	return id, true
}
