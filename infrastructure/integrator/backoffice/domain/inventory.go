package domain

type WireInventoryItem struct {
	ProductID         string `json:"product_id"`
	AvailableQuantity int    `json:"available_quantity"`
}
