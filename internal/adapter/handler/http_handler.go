package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/rl1809/quantum-bookstore/internal/core/domain"
	"github.com/rl1809/quantum-bookstore/internal/core/service"
)

type HTTPHandler struct {
	bookstore *service.BookstoreService
	eviction  service.EvictionPolicy
	logger    *zap.Logger
}

type PurchaseHTTPRequest struct {
	RequestID string `json:"request_id"`
	ISBN      string `json:"isbn"`
	Quantity  int    `json:"quantity"`
	Email     string `json:"email"`
	Address   string `json:"address"`
}

type PurchaseHTTPResponse struct {
	Success bool             `json:"success"`
	Code    string           `json:"code,omitempty"`
	Message string           `json:"message"`
	Result  *PurchaseSummary `json:"result,omitempty"`
}

type PurchaseSummary struct {
	ISBN           string `json:"isbn"`
	Kind           string `json:"kind"`
	Quantity       int    `json:"quantity"`
	Total          string `json:"total"`
	RemainingStock *int   `json:"remaining_stock,omitempty"`
	DeliveredTo    string `json:"delivered_to,omitempty"`
}

// EvictHTTPRequest fields left out fall back to the configured policy.
type EvictHTTPRequest struct {
	ReferenceYear *int `json:"reference_year,omitempty"`
	MaxAgeYears   *int `json:"max_age_years,omitempty"`
}

type EvictHTTPResponse struct {
	Evicted []string `json:"evicted"`
}

func NewHTTPHandler(bookstore *service.BookstoreService, eviction service.EvictionPolicy, logger *zap.Logger) *HTTPHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPHandler{bookstore: bookstore, eviction: eviction, logger: logger}
}

func (h *HTTPHandler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.HealthCheck)
	r.Route("/api", func(r chi.Router) {
		r.Get("/books", h.ListBooks)
		r.Get("/books/{isbn}", h.GetBook)
		r.Post("/purchase", h.Purchase)
		r.Post("/evictions", h.Evict)
	})
	return r
}

func (h *HTTPHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.bookstore.List(r.Context()))
}

func (h *HTTPHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	view, err := h.bookstore.Get(r.Context(), chi.URLParam(r, "isbn"))
	if err != nil {
		f := classify(err)
		writeJSON(w, f.status, map[string]string{"code": f.code, "message": f.message})
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *HTTPHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	var req PurchaseHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, PurchaseHTTPResponse{
			Success: false,
			Code:    codeInvalid,
			Message: "invalid request body",
		})
		return
	}

	if req.ISBN == "" || req.Quantity <= 0 {
		writeJSON(w, http.StatusBadRequest, PurchaseHTTPResponse{
			Success: false,
			Code:    codeInvalid,
			Message: "missing required fields",
		})
		return
	}

	res, err := h.bookstore.Purchase(r.Context(), service.PurchaseRequest{
		RequestID: req.RequestID,
		ISBN:      req.ISBN,
		Quantity:  req.Quantity,
		Email:     req.Email,
		Address:   req.Address,
	})
	if err != nil {
		f := classify(err)
		if f.status == http.StatusInternalServerError {
			h.logger.Error("purchase failed", zap.String("isbn", req.ISBN), zap.Error(err))
		}
		writeJSON(w, f.status, PurchaseHTTPResponse{
			Success: false,
			Code:    f.code,
			Message: f.message,
		})
		return
	}

	writeJSON(w, http.StatusOK, PurchaseHTTPResponse{
		Success: true,
		Message: strings.Join(res.Messages, "\n"),
		Result:  summarize(res),
	})
}

func (h *HTTPHandler) Evict(w http.ResponseWriter, r *http.Request) {
	var req EvictHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"code": codeInvalid, "message": "invalid request body"})
		return
	}

	policy := h.eviction
	if req.ReferenceYear != nil {
		policy.ReferenceYear = *req.ReferenceYear
	}
	if req.MaxAgeYears != nil {
		policy.MaxAgeYears = *req.MaxAgeYears
	}

	evicted, err := h.bookstore.Evict(r.Context(), policy)
	if err != nil {
		f := classify(err)
		writeJSON(w, f.status, map[string]string{"code": f.code, "message": f.message})
		return
	}
	writeJSON(w, http.StatusOK, EvictHTTPResponse{Evicted: evicted})
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func summarize(res domain.PurchaseResult) *PurchaseSummary {
	s := &PurchaseSummary{
		ISBN:        res.ISBN,
		Kind:        string(res.Kind),
		Quantity:    res.Quantity,
		Total:       res.Total.StringFixed(2),
		DeliveredTo: res.DeliveredTo,
	}
	if res.Kind == domain.KindPhysical {
		remaining := res.RemainingStock
		s.RemainingStock = &remaining
	}
	return s
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
