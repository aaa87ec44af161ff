package wire

type AddFavoriteRequest struct {
	ProductID string `json:"productId" validate:"required"`
}
