package handlers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"kasir/internal/services"
)

// SaleHandler handles HTTP requests for the sale workflow.
type SaleHandler struct {
	service *services.SaleService
}

// NewSaleHandler creates a new SaleHandler.
func NewSaleHandler(service *services.SaleService) *SaleHandler {
	return &SaleHandler{
		service: service,
	}
}

// RegisterRoutes registers the sale routes with the Fiber app.
func (h *SaleHandler) RegisterRoutes(router fiber.Router) {
	saleRoutes := router.Group("/sales")
	saleRoutes.Get("/", h.HandleListSales)
	saleRoutes.Post("/", h.HandleCreateSale)
	saleRoutes.Get("/:id", h.HandleGetSale)
	saleRoutes.Post("/:id/items", h.HandleAddItem)
	saleRoutes.Post("/:id/close", h.HandleCloseSale)
	saleRoutes.Get("/:id/receipt", h.HandleGetReceiptText)
}

type addItemRequest struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// HandleListSales retrieves all receipts.
func (h *SaleHandler) HandleListSales(c *fiber.Ctx) error {
	receipts, err := h.service.ListReceipts()
	if err != nil {
		log.Printf("Error listing receipts: %v", err)
		return writeError(c, "Could not retrieve receipts", err)
	}
	return c.JSON(receipts)
}

// HandleCreateSale opens a new empty receipt.
func (h *SaleHandler) HandleCreateSale(c *fiber.Ctx) error {
	receipt, err := h.service.CreateSale()
	if err != nil {
		log.Printf("Error creating sale: %v", err)
		return writeError(c, "Could not create sale", err)
	}
	return c.Status(fiber.StatusCreated).JSON(receipt)
}

// HandleGetSale retrieves a receipt by its ID.
func (h *SaleHandler) HandleGetSale(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Receipt ID must be an integer",
		})
	}

	receipt, err := h.service.GetReceipt(id)
	if err != nil {
		log.Printf("Error getting receipt %d: %v", id, err)
		return writeError(c, fmt.Sprintf("Could not retrieve receipt %d", id), err)
	}
	return c.JSON(receipt)
}

// HandleAddItem sells a quantity of one product on an open receipt.
func (h *SaleHandler) HandleAddItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Receipt ID must be an integer",
		})
	}

	var req addItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add item request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	receipt, err := h.service.AddItem(id, req.ProductID, req.Quantity)
	if err != nil {
		log.Printf("Error adding item to receipt %d: %v", id, err)
		return writeError(c, fmt.Sprintf("Could not add item to receipt %d", id), err)
	}
	return c.JSON(receipt)
}

// HandleCloseSale finalizes a receipt. The response includes the rendered
// text and, when configured, the path of the written receipt file.
func (h *SaleHandler) HandleCloseSale(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Receipt ID must be an integer",
		})
	}

	receipt, path, err := h.service.CloseSale(id)
	if err != nil {
		log.Printf("Error closing receipt %d: %v", id, err)
		return writeError(c, fmt.Sprintf("Could not close receipt %d", id), err)
	}

	response := fiber.Map{"receipt": receipt}
	if path != "" {
		response["file"] = path
	}
	return c.JSON(response)
}

// HandleGetReceiptText returns the printable text form of a receipt.
func (h *SaleHandler) HandleGetReceiptText(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Receipt ID must be an integer",
		})
	}

	text, err := h.service.RenderReceipt(id)
	if err != nil {
		log.Printf("Error rendering receipt %d: %v", id, err)
		return writeError(c, fmt.Sprintf("Could not render receipt %d", id), err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(text)
}
