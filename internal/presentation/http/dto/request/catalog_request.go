package request

// SupplierRequest creates or updates a supplier. On update a code, when
// present, must match the stored one.
type SupplierRequest struct {
	Code    string `json:"code"`
	Name    string `json:"name" binding:"required,max=200"`
	TaxID   string `json:"tax_id" binding:"required,max=12"`
	Contact string `json:"contact" binding:"max=200"`
	Phone   string `json:"phone" binding:"max=20"`
	Address string `json:"address"`
	Sector  string `json:"sector" binding:"max=100"`
}

// CreateCategoryRequest represents a category creation request
type CreateCategoryRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required,max=100"`
}

// RenameCategoryRequest represents a category rename request
type RenameCategoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}
