package backend

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nikolayk812/storefront-sync/internal/port"
	"github.com/nikolayk812/storefront-sync/internal/wire"
)

const msgCartItemNotFound = "Item not found in cart."

type CartHandler struct {
	repo port.CartRepository
}

func NewCartHandler(repo port.CartRepository) *CartHandler {
	return &CartHandler{repo: repo}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.repo.GetCart(r.Context(), ownerFrom(r.Context()))
	if err != nil {
		handleError(w, r, err, msgCartItemNotFound)
		return
	}

	respondJSON(w, r, http.StatusOK, wire.CartFromDomain(cart))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req wire.AddCartItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	err := h.repo.AddItem(r.Context(), ownerFrom(r.Context()), req.ProductID, req.Quantity)
	if err != nil {
		handleError(w, r, err, "Product not found.")
		return
	}

	respondJSON(w, r, http.StatusCreated, ack())
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req wire.UpdateCartItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	updated, err := h.repo.UpdateItem(r.Context(), ownerFrom(r.Context()), chi.URLParam(r, "productId"), req.Quantity)
	if err != nil {
		handleError(w, r, err, msgCartItemNotFound)
		return
	}
	if !updated {
		respondError(w, r, http.StatusNotFound, msgCartItemNotFound, nil)
		return
	}

	respondJSON(w, r, http.StatusOK, ack())
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.repo.DeleteItem(r.Context(), ownerFrom(r.Context()), chi.URLParam(r, "productId"))
	if err != nil {
		handleError(w, r, err, msgCartItemNotFound)
		return
	}
	if !deleted {
		respondError(w, r, http.StatusNotFound, msgCartItemNotFound, nil)
		return
	}

	respondJSON(w, r, http.StatusOK, ack())
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.ClearCart(r.Context(), ownerFrom(r.Context())); err != nil {
		handleError(w, r, err, msgCartItemNotFound)
		return
	}

	respondJSON(w, r, http.StatusOK, ack())
}
