package domain

// Nomes dos eventos entregues pelo canal realtime do backoffice
const (
	EventReturnCreated       = "returnCreated"
	EventReturnStatusUpdated = "returnStatusUpdated"
	EventInventoryChanged    = "inventoryChanged"
)

type ReturnCreatedEvent struct {
	BranchID     string `mapstructure:"branchId"`
	ReturnNumber string `mapstructure:"returnNumber"`
}

type ReturnStatusUpdatedEvent struct {
	BranchID string `mapstructure:"branchId"`
	Status   string `mapstructure:"status"`
}

type InventoryChangedEvent struct {
	BranchID  string `mapstructure:"branchId"`
	ProductID string `mapstructure:"productId"`
}
