package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/yuyitos-api/internal/application/service"
	"github.com/sangkips/yuyitos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/yuyitos-api/internal/presentation/http/dto/response"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.printerService.GetStatus(c.Request.Context()))
}

// PrintSale prints the ticket of a sale. When the printer fails the ticket
// is still returned with a warning.
func (h *PrinterHandler) PrintSale(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	ticket, err := h.printerService.PrintSale(c.Request.Context(), actor, id)
	if err != nil {
		if ticket != nil {
			response.OK(c, "Ticket generated but printing failed", gin.H{
				"ticket":  ticket,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}
	response.OK(c, "Ticket printed successfully", gin.H{"ticket": ticket})
}

// PrintLabel prints barcode labels for a product.
func (h *PrinterHandler) PrintLabel(c *gin.Context) {
	id, err := paramUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	req := request.PrintLabelRequest{Copies: 1}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BindError(c, err)
			return
		}
		if req.Copies == 0 {
			req.Copies = 1
		}
	}

	label, err := h.printerService.PrintProductLabel(c.Request.Context(), id, req.Copies)
	if err != nil {
		if label != nil {
			response.OK(c, "Label generated but printing failed", gin.H{
				"label":   label,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}
	response.OK(c, "Label printed successfully", gin.H{"label": label, "copies": req.Copies})
}
