package repository

// Page bounds a listing query
type Page struct {
	Offset int
	Limit  int
}

// InquiryFilter narrows an inquiry listing. A nil SupplierID lists every
// supplier; an empty Status lists every status.
type InquiryFilter struct {
	Page
	SupplierID *uint
	Status     string
}

// QuoteFilter narrows a quote listing
type QuoteFilter struct {
	Page
	SupplierID *uint
	Status     string
}

// OrderFilter narrows an order listing. SupplierUserID matches orders whose
// supplier profile belongs to that account.
type OrderFilter struct {
	Page
	SupplierUserID *uint
	Status         string
}
