package entity

// TicketHeader holds the store header printed at the top of a ticket.
type TicketHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	TaxID     string `json:"tax_id,omitempty"`
}

// TicketItem represents a single line on a printed sale ticket.
type TicketItem struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Total     string `json:"total"`
}

// Ticket is a printable sale document composed at print time. It is not persisted.
type Ticket struct {
	Header       TicketHeader `json:"header"`
	BoletaNumber string       `json:"boleta_number"`
	Date         string       `json:"date"`
	Seller       string       `json:"seller,omitempty"`
	Customer     string       `json:"customer,omitempty"`
	PaymentType  string       `json:"payment_type"`
	Items        []TicketItem `json:"items"`
	Total        string       `json:"total"`
}

// ProductLabel is a printable barcode label for a product.
type ProductLabel struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Price string `json:"price"`
}
