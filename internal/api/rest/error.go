package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campuschain/access-layer/internal/api/apierrors"
	"github.com/campuschain/access-layer/internal/domain"
	"github.com/campuschain/access-layer/internal/logger"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, apierrors.NewBadRequestError(message, details...))
}

// respondNotFound responds with a not found error
func respondNotFound(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusNotFound, apierrors.NewNotFoundError(message, details...))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, message string) {
	c.JSON(http.StatusUnprocessableEntity, apierrors.NewValidationError(message))
}

// respondForbidden responds with a forbidden error
func respondForbidden(c *gin.Context, message string) {
	c.JSON(http.StatusForbidden, apierrors.NewForbiddenError(message))
}

// respondInternalError responds with an internal server error and logs it
func respondInternalError(c *gin.Context, err error, message string, fields ...zap.Field) {
	logger.ErrorCtx(c.Request.Context(), err, fields...)
	c.JSON(http.StatusInternalServerError, apierrors.NewInternalError(message))
}

// respondDomainError maps a domain error to its HTTP representation
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, apierrors.NewUnauthorizedError("Authentication required"))
	case errors.Is(err, domain.ErrIdentifierNotFound):
		respondValidationError(c, err.Error())
	case errors.Is(err, domain.ErrAccountNotReady):
		c.JSON(http.StatusConflict, apierrors.NewConflictError("Sponsored account is not ready yet, retry shortly"))
	case errors.Is(err, domain.ErrActionInFlight):
		c.JSON(http.StatusConflict, apierrors.NewConflictError("A write for this entity is already in flight"))
	case errors.Is(err, domain.ErrLedgerUnavailable):
		c.JSON(http.StatusServiceUnavailable, apierrors.NewServiceError("Ledger is temporarily unavailable"))
	case errors.Is(err, domain.ErrTransactionRejected):
		c.JSON(http.StatusBadGateway, apierrors.NewServiceError("Transaction was rejected"))
	case errors.Is(err, domain.ErrDatabaseSyncFailure):
		logger.ErrorCtx(c.Request.Context(), err)
		c.JSON(http.StatusInternalServerError, &apierrors.APIError{
			Code:    apierrors.ErrCodeDatabaseError,
			Message: "Database write failed",
		})
	default:
		respondInternalError(c, err, "Internal server error")
	}
}
