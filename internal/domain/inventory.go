package domain

import "time"

type InventoryItem struct {
	ProductID         string `json:"product_id"`
	AvailableQuantity int    `json:"available_quantity"`
}

// InventorySnapshot é a foto do estoque de uma filial usada na validação de
// devoluções. Renovada quando o evento inventoryChanged da filial chega ou
// quando o TTL do cache expira.
type InventorySnapshot struct {
	BranchID  string          `json:"branch_id"`
	Items     []InventoryItem `json:"items"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// Find localiza um produto na foto de estoque
func (s *InventorySnapshot) Find(productID string) (InventoryItem, bool) {
	for _, item := range s.Items {
		if item.ProductID == productID {
			return item, true
		}
	}
	return InventoryItem{}, false
}
