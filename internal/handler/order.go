package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"orderdesk/internal/domain"
	"orderdesk/internal/service"
)

// maxListLimit caps the page size for GET /orders. Larger values are
// silently reduced, never rejected.
const maxListLimit = 100

// Fixed 500 bodies. Storage failure details are logged server-side and
// never echoed to the client.
const (
	createErrDetail = "An error occurred while creating the order."
	listErrDetail   = "An error occurred while fetching orders."
)

// OrderHandler handles HTTP requests for order endpoints.
type OrderHandler struct {
	orderSvc *service.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderSvc *service.OrderService) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc}
}

// createOrderRequest is the JSON request body for POST /orders.
// Required fields are pointers so their absence is detectable.
type createOrderRequest struct {
	Symbol    string   `json:"symbol"`
	Price     *float64 `json:"price"`
	Quantity  *int64   `json:"quantity"`
	OrderType string   `json:"orderType"`
}

// orderResponse is the JSON representation of a stored order.
type orderResponse struct {
	ID        int64   `json:"id"`
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	Quantity  int64   `json:"quantity"`
	OrderType string  `json:"orderType"`
}

func buildOrderResponse(o *domain.Order) orderResponse {
	return orderResponse{
		ID:        o.ID,
		Symbol:    o.Symbol,
		Price:     o.Price,
		Quantity:  o.Quantity,
		OrderType: o.OrderType,
	}
}

// Create handles POST /orders.
//
// A type-mismatched field (e.g. price sent as a JSON string) is reported
// as the fixed 500 body rather than a 422. This mirrors the behavior of
// the service this one replaced; clients depend on it.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			WriteError(w, http.StatusInternalServerError, createErrDetail)
			return
		}
		WriteError(w, http.StatusUnprocessableEntity, "Request body must be valid JSON")
		return
	}

	if err := validateCreateRequest(&req); err != nil {
		WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	order, err := h.orderSvc.Create(r.Context(), &domain.Order{
		Symbol:    req.Symbol,
		Price:     *req.Price,
		Quantity:  *req.Quantity,
		OrderType: req.OrderType,
	})
	if err != nil {
		WriteError(w, http.StatusInternalServerError, createErrDetail)
		return
	}

	WriteJSON(w, http.StatusCreated, buildOrderResponse(order))
}

// validateCreateRequest checks the shape of a decoded create request.
// Returns nil when the request is valid.
func validateCreateRequest(req *createOrderRequest) *domain.ValidationError {
	if req.Price == nil {
		return &domain.ValidationError{Message: "price is required"}
	}
	if req.Quantity == nil {
		return &domain.ValidationError{Message: "quantity is required"}
	}
	return nil
}

// List handles GET /orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	offset := queryInt(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}
	limit := queryInt(r, "limit", maxListLimit)
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if limit < 0 {
		limit = 0
	}

	orders, err := h.orderSvc.List(r.Context(), offset, limit)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, listErrDetail)
		return
	}

	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		resp[i] = buildOrderResponse(o)
	}
	WriteJSON(w, http.StatusOK, resp)
}

// queryInt parses an integer query parameter, falling back to def when
// the parameter is absent or malformed.
func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
