package handler

import (
	"errors"
	"net/http"

	"github.com/rl1809/quantum-bookstore/internal/core/domain"
	"github.com/rl1809/quantum-bookstore/internal/core/service"
)

// failure codes shared by the HTTP and gRPC surfaces
const (
	codeNotFound          = "not_found"
	codeInsufficientStock = "insufficient_stock"
	codeNotForSale        = "not_for_sale"
	codeDuplicate         = "duplicate_request"
	codeInvalid           = "invalid_request"
	codeUnavailable       = "unavailable"
	codeInternal          = "internal"
)

type failure struct {
	status  int
	code    string
	message string
}

func classify(err error) failure {
	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		return failure{http.StatusNotFound, codeNotFound, err.Error()}
	case errors.Is(err, domain.ErrInsufficientStock):
		return failure{http.StatusConflict, codeInsufficientStock, err.Error()}
	case errors.Is(err, domain.ErrNotForSale):
		return failure{http.StatusConflict, codeNotForSale, err.Error()}
	case errors.Is(err, service.ErrDuplicateRequest):
		return failure{http.StatusConflict, codeDuplicate, "duplicate request"}
	case errors.Is(err, domain.ErrInvalidQuantity), errors.Is(err, domain.ErrMissingRecipient),
		errors.Is(err, service.ErrInvalidPolicy):
		return failure{http.StatusBadRequest, codeInvalid, err.Error()}
	case errors.Is(err, service.ErrServiceClosed):
		return failure{http.StatusServiceUnavailable, codeUnavailable, "service shutting down"}
	default:
		return failure{http.StatusInternalServerError, codeInternal, "internal error"}
	}
}
