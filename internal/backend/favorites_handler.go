package backend

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nikolayk812/storefront-sync/internal/port"
	"github.com/nikolayk812/storefront-sync/internal/wire"
)

const msgNotInFavorites = "Product is not in favorites."

type FavoritesHandler struct {
	repo port.FavoriteRepository
}

func NewFavoritesHandler(repo port.FavoriteRepository) *FavoritesHandler {
	return &FavoritesHandler{repo: repo}
}

func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.ListFavorites(r.Context(), ownerFrom(r.Context()))
	if err != nil {
		handleError(w, r, err, msgNotInFavorites)
		return
	}

	out, err := wire.ProductsFromDomain(products)
	if err != nil {
		handleError(w, r, err, msgNotInFavorites)
		return
	}

	respondJSON(w, r, http.StatusOK, out)
}

func (h *FavoritesHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req wire.AddFavoriteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.repo.AddFavorite(r.Context(), ownerFrom(r.Context()), req.ProductID); err != nil {
		handleError(w, r, err, "Product not found.")
		return
	}

	respondJSON(w, r, http.StatusCreated, ack())
}

func (h *FavoritesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.repo.DeleteFavorite(r.Context(), ownerFrom(r.Context()), chi.URLParam(r, "productId"))
	if err != nil {
		handleError(w, r, err, msgNotInFavorites)
		return
	}
	if !deleted {
		respondError(w, r, http.StatusNotFound, msgNotInFavorites, nil)
		return
	}

	respondJSON(w, r, http.StatusOK, ack())
}

func (h *FavoritesHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.ClearFavorites(r.Context(), ownerFrom(r.Context())); err != nil {
		handleError(w, r, err, msgNotInFavorites)
		return
	}

	respondJSON(w, r, http.StatusOK, ack())
}
