// internal/handlers/purchase.go
package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/provenance-backend/internal/i18n"
	"github.com/javajoker/provenance-backend/internal/services"
	"github.com/javajoker/provenance-backend/internal/utils"
)

const purchaseFileField = "file"

type PurchaseHandler struct {
	purchaseService *services.PurchaseService
}

func NewPurchaseHandler(purchaseService *services.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
	}
}

// POST /api/upload-purchase
func (h *PurchaseHandler) UploadPurchase(c *gin.Context) {
	req := &services.PurchaseUploadRequest{
		DealerID:  c.PostForm("dealerId"),
		ProductID: c.PostForm("productId"),
	}

	if header, err := c.FormFile(purchaseFileField); err == nil {
		file, err := header.Open()
		if err != nil {
			respondError(c, &services.Error{Kind: services.ErrorKindInternal, Key: i18n.KeyUploadFailed, Err: err})
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			respondError(c, &services.Error{Kind: services.ErrorKindInternal, Key: i18n.KeyUploadFailed, Err: err})
			return
		}

		req.Attachment = &services.Attachment{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		}
	}

	result, err := h.purchaseService.RecordPurchaseUpload(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, utils.MessageBody{
		Message: i18n.T(utils.GetLangFromContext(c), i18n.KeyUploadSuccess),
		FileURL: result.FileURL,
	})
}
