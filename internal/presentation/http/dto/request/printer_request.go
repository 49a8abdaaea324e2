package request

// PrintLabelRequest is the request body for printing product labels
type PrintLabelRequest struct {
	Copies int `json:"copies" binding:"omitempty,min=1,max=100"`
}
