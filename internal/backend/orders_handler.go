package backend

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-sync/internal/domain"
	"github.com/nikolayk812/storefront-sync/internal/port"
	"github.com/nikolayk812/storefront-sync/internal/wire"
)

const msgOrderNotFound = "Order not found."

type OrdersHandler struct {
	repo port.OrderRepository
}

func NewOrdersHandler(repo port.OrderRepository) *OrdersHandler {
	return &OrdersHandler{repo: repo}
}

func (h *OrdersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req wire.CreateOrderRequest
	if !decodeBody(w, r, &req) {
		return
	}

	order, err := h.repo.CreateOrder(r.Context(), ownerFrom(r.Context()), port.NewOrder{
		Lines:           req.Lines(),
		ShippingAddress: domain.ShippingAddress(req.ShippingAddress),
		PaymentMethod:   domain.PaymentMethod(req.PaymentMethod),
	})
	if errors.Is(err, port.ErrNotFound) {
		respondError(w, r, http.StatusUnprocessableEntity, "The selected product is invalid.",
			fieldError("items", "The selected product is invalid."))
		return
	}
	if err != nil {
		handleError(w, r, err, msgOrderNotFound)
		return
	}

	respondJSON(w, r, http.StatusCreated, wire.OrderFromDomain(order))
}

func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.repo.ListOrders(r.Context(), ownerFrom(r.Context()))
	if err != nil {
		handleError(w, r, err, msgOrderNotFound)
		return
	}

	out := make([]wire.Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, wire.OrderFromDomain(o))
	}

	respondJSON(w, r, http.StatusOK, out)
}

func (h *OrdersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, http.StatusNotFound, msgOrderNotFound, nil)
		return
	}

	order, err := h.repo.GetOrder(r.Context(), ownerFrom(r.Context()), id)
	if err != nil {
		handleError(w, r, err, msgOrderNotFound)
		return
	}

	respondJSON(w, r, http.StatusOK, wire.OrderFromDomain(order))
}
