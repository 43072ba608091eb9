// internal/handlers/verification.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/provenance-backend/internal/i18n"
	"github.com/javajoker/provenance-backend/internal/services"
	"github.com/javajoker/provenance-backend/internal/utils"
)

type VerificationHandler struct {
	productService *services.ProductService
}

func NewVerificationHandler(productService *services.ProductService) *VerificationHandler {
	return &VerificationHandler{
		productService: productService,
	}
}

// verifyRequest keeps productId untyped so a non-string value is rejected
// with the same message as an empty one.
type verifyRequest struct {
	ProductID interface{} `json:"productId"`
}

// GET /api/verify?productId=
func (h *VerificationHandler) LookupProduct(c *gin.Context) {
	details, err := h.productService.Lookup(c.Request.Context(), c.Query("productId"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, details)
}

// POST /api/verify
func (h *VerificationHandler) VerifyProduct(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyProductInvalidID))
		return
	}

	productID, _ := req.ProductID.(string)
	details, err := h.productService.VerifyAndRecord(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, details)
}
