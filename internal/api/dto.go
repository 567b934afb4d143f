package api

import (
	"fmt"

	"github.com/mmynk/quicksplit/internal/engine"
	"github.com/mmynk/quicksplit/internal/models"
	"github.com/mmynk/quicksplit/internal/service"
	"github.com/mmynk/quicksplit/pkg/money"
)

// Monetary amounts and rates travel as decimal strings ("12.50", "0.08") in
// both directions so values never pass through binary floats.

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

type splitConfigPayload struct {
	TaxEnabled *bool  `json:"tax_enabled" binding:"required"`
	TaxRate    string `json:"tax_rate" binding:"required"`
	TipRate    string `json:"tip_rate" binding:"required"`
}

func (p splitConfigPayload) toSplitConfig() (models.SplitConfig, error) {
	taxRate, err := money.FromString(p.TaxRate)
	if err != nil {
		return models.SplitConfig{}, fmt.Errorf("invalid tax_rate %q: %w", p.TaxRate, err)
	}
	tipRate, err := money.FromString(p.TipRate)
	if err != nil {
		return models.SplitConfig{}, fmt.Errorf("invalid tip_rate %q: %w", p.TipRate, err)
	}
	return models.SplitConfig{
		TaxEnabled: *p.TaxEnabled,
		TaxRate:    taxRate,
		TipRate:    tipRate,
	}, nil
}

type createReceiptRequest struct {
	Label  string              `json:"label"`
	Config *splitConfigPayload `json:"config"`
}

type itemPayload struct {
	Name      string `json:"name" binding:"required"`
	UnitPrice string `json:"unit_price" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

func (p itemPayload) toInput() (service.ItemInput, error) {
	price, err := money.FromString(p.UnitPrice)
	if err != nil {
		return service.ItemInput{}, fmt.Errorf("invalid unit_price %q: %w", p.UnitPrice, err)
	}
	return service.ItemInput{
		Name:      p.Name,
		UnitPrice: price,
		Quantity:  p.Quantity,
	}, nil
}

type importItemsRequest struct {
	Items []itemPayload `json:"items" binding:"required,min=1,dive"`
}

type participantRequest struct {
	Name string `json:"name" binding:"required"`
}

type shareItemRequest struct {
	ParticipantID string `json:"participant_id" binding:"required"`
	// Portions is units taken for exclusive claims, group size for shared
	// claims.
	Portions int  `json:"portions" binding:"required"`
	Shared   bool `json:"shared"`
}

type claimResponse struct {
	ID              string `json:"id"`
	ParticipantID   string `json:"participant_id"`
	ParticipantName string `json:"participant_name"`
	Kind            string `json:"kind"`
	Portions        int    `json:"portions"`
	ClaimedAt       int64  `json:"claimed_at"`
}

type itemResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	UnitPrice         string          `json:"unit_price"`
	Quantity          int             `json:"quantity"`
	TotalPrice        string          `json:"total_price"`
	RemainingQuantity int             `json:"remaining_quantity"`
	SharingStatus     string          `json:"sharing_status,omitempty"`
	Claims            []claimResponse `json:"claims"`
}

type participantResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type receiptResponse struct {
	ID           string                `json:"id"`
	Label        string                `json:"label"`
	CreatedAt    int64                 `json:"created_at"`
	TaxEnabled   bool                  `json:"tax_enabled"`
	TaxRate      string                `json:"tax_rate"`
	TipRate      string                `json:"tip_rate"`
	Subtotal     string                `json:"subtotal"`
	TaxAmount    string                `json:"tax_amount"`
	TipAmount    string                `json:"tip_amount"`
	GrandTotal   string                `json:"grand_total"`
	Items        []itemResponse        `json:"items"`
	Participants []participantResponse `json:"participants"`
}

type breakdownResponse struct {
	ParticipantID   string `json:"participant_id"`
	ParticipantName string `json:"participant_name"`
	Subtotal        string `json:"subtotal"`
	TaxShare        string `json:"tax_share"`
	TipShare        string `json:"tip_share"`
	Total           string `json:"total"`
}

type splitsResponse struct {
	ReceiptID  string              `json:"receipt_id"`
	GrandTotal string              `json:"grand_total"`
	Splits     []breakdownResponse `json:"splits"`
}

// participantName resolves a claim's display name through the receipt's
// participant list. Claims store IDs only, so renames are always reflected.
func participantName(r *models.Receipt, participantID string) string {
	if p, ok := r.Participant(participantID); ok {
		return p.Name
	}
	return ""
}

func toReceiptResponse(r *models.Receipt) receiptResponse {
	items := make([]itemResponse, 0, len(r.Items))
	for _, item := range r.Items {
		claims := make([]claimResponse, 0, len(item.Claims))
		for _, c := range item.Claims {
			claims = append(claims, claimResponse{
				ID:              c.ID,
				ParticipantID:   c.ParticipantID,
				ParticipantName: participantName(r, c.ParticipantID),
				Kind:            string(c.Kind),
				Portions:        c.Portions,
				ClaimedAt:       c.ClaimedAt,
			})
		}
		items = append(items, itemResponse{
			ID:                item.ID,
			Name:              item.Name,
			UnitPrice:         money.Display(item.UnitPrice),
			Quantity:          item.Quantity,
			TotalPrice:        money.Display(item.TotalPrice()),
			RemainingQuantity: engine.RemainingQuantity(item),
			SharingStatus:     engine.SharingStatus(item),
			Claims:            claims,
		})
	}

	participants := make([]participantResponse, 0, len(r.Participants))
	for _, p := range r.Participants {
		participants = append(participants, participantResponse{ID: p.ID, Name: p.Name})
	}

	return receiptResponse{
		ID:           r.ID,
		Label:        r.Label,
		CreatedAt:    r.CreatedAt,
		TaxEnabled:   r.TaxEnabled,
		TaxRate:      r.TaxRate.String(),
		TipRate:      r.TipRate.String(),
		Subtotal:     money.Display(r.Subtotal),
		TaxAmount:    money.Display(r.TaxAmount),
		TipAmount:    money.Display(r.TipAmount),
		GrandTotal:   money.Display(r.GrandTotal),
		Items:        items,
		Participants: participants,
	}
}

func toBreakdownResponse(r *models.Receipt, participantID string, b engine.Breakdown) breakdownResponse {
	return breakdownResponse{
		ParticipantID:   participantID,
		ParticipantName: participantName(r, participantID),
		Subtotal:        money.Display(b.Subtotal),
		TaxShare:        money.Display(b.TaxShare),
		TipShare:        money.Display(b.TipShare),
		Total:           money.Display(b.Total),
	}
}

func toSplitsResponse(r *models.Receipt, splits map[string]engine.Breakdown) splitsResponse {
	out := splitsResponse{
		ReceiptID:  r.ID,
		GrandTotal: money.Display(r.GrandTotal),
		Splits:     make([]breakdownResponse, 0, len(splits)),
	}
	// Participant order, not map order.
	for _, p := range r.Participants {
		if b, ok := splits[p.ID]; ok {
			out.Splits = append(out.Splits, toBreakdownResponse(r, p.ID, b))
		}
	}
	return out
}
