package models

// PurchaseRequest is posted to /products/{id}/purchase.
type PurchaseRequest struct {
	ID     ProductID `json:"id"`
	Amount int       `json:"amount"`
}

// PurchaseResult is the acknowledgement returned by a purchase.
type PurchaseResult struct {
	ID     ProductID `json:"id"`
	Amount *int      `json:"amount"`
}
