package entity

import "time"

// Bill represents a persisted expense record submitted by an employee.
type Bill struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Type         string    `json:"type"`
	Name         string    `json:"name"`
	Amount       int64     `json:"amount"`
	Date         string    `json:"date"`
	VAT          float64   `json:"vat"`
	Pct          int       `json:"pct"`
	Commentary   string    `json:"commentary"`
	FileURL      string    `json:"fileUrl"`
	FileName     string    `json:"fileName"`
	Status       string    `json:"status"`
	CommentAdmin string    `json:"commentAdmin"`
	CreatedAt    time.Time `json:"created_at"`
}

// DisplayBill is a Bill with date and status rendered for presentation.
// It is derived from a Bill and never written back to the store.
type DisplayBill struct {
	Bill
	DisplayDate   string `json:"displayDate"`
	DisplayStatus string `json:"displayStatus"`
}

// HasReceipt reports whether both receipt fields are set. A bill is never
// persisted with only one of them.
func (b *Bill) HasReceipt() bool {
	return b.FileURL != "" && b.FileName != ""
}
