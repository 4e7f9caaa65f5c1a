package models

import "time"

type Prescription struct {
	ID               string    `json:"_id"`
	UserID           UserRef   `json:"userId"`
	PrescriptionFile string    `json:"prescriptionFile"`
	Notes            string    `json:"notes,omitempty"`
	UploadedAt       time.Time `json:"uploadedAt"`
}

type Transaction struct {
	ID            string    `json:"_id"`
	UserID        UserRef   `json:"userId"`
	Amount        float64   `json:"amount"`
	Type          string    `json:"type"`
	Status        string    `json:"status"`
	TransactionID string    `json:"transactionId"`
	Description   string    `json:"description,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}
