package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/quicksplit/internal/models"
	"github.com/mmynk/quicksplit/internal/service"
)

// ReceiptHandlers serves the receipt, item, participant and claim routes.
type ReceiptHandlers struct {
	svc *service.ReceiptService
}

// NewReceiptHandlers creates the receipt handler set.
func NewReceiptHandlers(svc *service.ReceiptService) *ReceiptHandlers {
	return &ReceiptHandlers{svc: svc}
}

// Create makes a new, empty receipt.
func (h *ReceiptHandlers) Create(c *gin.Context) {
	var req createReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	var cfg *models.SplitConfig
	if req.Config != nil {
		parsed, err := req.Config.toSplitConfig()
		if err != nil {
			respondBindError(c, err)
			return
		}
		cfg = &parsed
	}

	receipt, err := h.svc.CreateReceipt(c.Request.Context(), currentUserID(c), req.Label, cfg)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toReceiptResponse(receipt))
}

// List returns the caller's receipts, newest first.
func (h *ReceiptHandlers) List(c *gin.Context) {
	receipts, err := h.svc.ListReceipts(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]receiptResponse, 0, len(receipts))
	for _, r := range receipts {
		out = append(out, toReceiptResponse(r))
	}
	c.JSON(http.StatusOK, gin.H{"receipts": out})
}

// Get returns one receipt with totals, remaining quantities and statuses.
func (h *ReceiptHandlers) Get(c *gin.Context) {
	receipt, err := h.svc.GetReceipt(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReceiptResponse(receipt))
}

// Delete removes a receipt.
func (h *ReceiptHandlers) Delete(c *gin.Context) {
	if err := h.svc.DeleteReceipt(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateConfig replaces the receipt's tax/tip policy.
func (h *ReceiptHandlers) UpdateConfig(c *gin.Context) {
	var req splitConfigPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	cfg, err := req.toSplitConfig()
	if err != nil {
		respondBindError(c, err)
		return
	}

	receipt, err := h.svc.UpdateConfig(c.Request.Context(), currentUserID(c), c.Param("id"), cfg)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReceiptResponse(receipt))
}

// AddItem appends one line item.
func (h *ReceiptHandlers) AddItem(c *gin.Context) {
	var req itemPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondBindError(c, err)
		return
	}

	receipt, err := h.svc.AddItem(c.Request.Context(), currentUserID(c), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toReceiptResponse(receipt))
}

// ImportItems appends a batch of already-parsed items from the capture
// collaborator. All-or-nothing: one bad tuple rejects the whole batch.
func (h *ReceiptHandlers) ImportItems(c *gin.Context) {
	var req importItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	inputs := make([]service.ItemInput, 0, len(req.Items))
	for _, p := range req.Items {
		input, err := p.toInput()
		if err != nil {
			respondBindError(c, err)
			return
		}
		inputs = append(inputs, input)
	}

	receipt, err := h.svc.ImportItems(c.Request.Context(), currentUserID(c), c.Param("id"), inputs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toReceiptResponse(receipt))
}

// RemoveItem deletes a line item and its claims.
func (h *ReceiptHandlers) RemoveItem(c *gin.Context) {
	receipt, err := h.svc.RemoveItem(c.Request.Context(), currentUserID(c), c.Param("id"), c.Param("itemID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReceiptResponse(receipt))
}

// AddParticipant adds a person to the receipt.
func (h *ReceiptHandlers) AddParticipant(c *gin.Context) {
	var req participantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	receipt, err := h.svc.AddParticipant(c.Request.Context(), currentUserID(c), c.Param("id"), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toReceiptResponse(receipt))
}

// RenameParticipant changes a participant's display name.
func (h *ReceiptHandlers) RenameParticipant(c *gin.Context) {
	var req participantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	receipt, err := h.svc.RenameParticipant(c.Request.Context(), currentUserID(c), c.Param("id"), c.Param("participantID"), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReceiptResponse(receipt))
}

// RemoveParticipant removes a person and all their claims.
func (h *ReceiptHandlers) RemoveParticipant(c *gin.Context) {
	receipt, err := h.svc.RemoveParticipant(c.Request.Context(), currentUserID(c), c.Param("id"), c.Param("participantID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReceiptResponse(receipt))
}

// ShareItem records (or replaces) a participant's claim on an item.
func (h *ReceiptHandlers) ShareItem(c *gin.Context) {
	var req shareItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	receipt, err := h.svc.ShareItem(
		c.Request.Context(), currentUserID(c),
		c.Param("id"), c.Param("itemID"),
		req.ParticipantID, req.Portions, req.Shared,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReceiptResponse(receipt))
}

// RemoveClaim deletes a claim by ID.
func (h *ReceiptHandlers) RemoveClaim(c *gin.Context) {
	receipt, err := h.svc.RemoveClaim(c.Request.Context(), currentUserID(c), c.Param("id"), c.Param("claimID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReceiptResponse(receipt))
}

// Splits returns every participant's breakdown for the receipt.
func (h *ReceiptHandlers) Splits(c *gin.Context) {
	receipt, splits, err := h.svc.Splits(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSplitsResponse(receipt, splits))
}

// ParticipantTotal returns one participant's breakdown.
func (h *ReceiptHandlers) ParticipantTotal(c *gin.Context) {
	receiptID := c.Param("id")
	participantID := c.Param("participantID")

	breakdown, err := h.svc.ParticipantTotal(c.Request.Context(), currentUserID(c), receiptID, participantID)
	if err != nil {
		respondError(c, err)
		return
	}

	receipt, err := h.svc.GetReceipt(c.Request.Context(), currentUserID(c), receiptID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBreakdownResponse(receipt, participantID, breakdown))
}
