package request

// CustomerRequest represents a customer creation or update request
type CustomerRequest struct {
	TaxID             string `json:"tax_id" binding:"required,max=12"`
	FirstName         string `json:"first_name" binding:"required,max=30"`
	LastName          string `json:"last_name" binding:"required,max=50"`
	Type              string `json:"type" binding:"omitempty,oneof=PERSON COMPANY"`
	Address           string `json:"address" binding:"omitempty,max=100"`
	Country           string `json:"country" binding:"omitempty,max=50"`
	Region            string `json:"region" binding:"omitempty,max=50"`
	City              string `json:"city" binding:"omitempty,max=50"`
	Phone             string `json:"phone" binding:"omitempty,max=14"`
	Email             string `json:"email" binding:"required,email"`
	PreferredLanguage string `json:"preferred_language" binding:"omitempty,max=5"`
	PreferredDocument string `json:"preferred_document" binding:"omitempty,oneof=RECEIPT INVOICE"`
	SendReceiptEmail  *bool  `json:"send_receipt_email"`
	AcceptsPromos     bool   `json:"accepts_promos"`
}
