package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"
)

type statusSelectionRequest struct {
	Status string `json:"status"`
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

type warehouseFulfillmentRequest struct {
	Note           string `json:"note"`
	TrackingNumber string `json:"trackingNumber"`
}

type reassignmentRequest struct {
	VendorID string `json:"vendorId"`
	Reason   string `json:"reason"`
}

type selectionResponse struct {
	Status   string `json:"status"`
	IsRevert bool   `json:"isRevert"`
}

type gracePeriodResponse struct {
	IsActive             bool       `json:"isActive"`
	PreviousStatus       string     `json:"previousStatus,omitempty"`
	ExpiresAt            *time.Time `json:"expiresAt,omitempty"`
	TimeRemainingSeconds int64      `json:"timeRemainingSeconds"`
}

type escalationResponse struct {
	IsEscalated             bool   `json:"isEscalated"`
	Reason                  string `json:"reason,omitempty"`
	CanEscalate             bool   `json:"canEscalate"`
	CanReassign             bool   `json:"canReassign"`
	CanFulfillFromWarehouse bool   `json:"canFulfillFromWarehouse"`
	CanRevertToVendor       bool   `json:"canRevertToVendor"`
}

type orderActionsResponse struct {
	ID                  string              `json:"id"`
	Status              string              `json:"status"`
	RawStatus           string              `json:"rawStatus"`
	PaymentPreference   string              `json:"paymentPreference"`
	PaymentStatus       string              `json:"paymentStatus"`
	AssignedVendorID    string              `json:"assignedVendorId"`
	Region              string              `json:"region,omitempty"`
	Notes               []string            `json:"notes,omitempty"`
	TrackingNumber      string              `json:"trackingNumber,omitempty"`
	Version             int64               `json:"version"`
	AvailableSelections []selectionResponse `json:"availableSelections"`
	WorkflowCompleted   bool                `json:"workflowCompleted"`
	GracePeriod         gracePeriodResponse `json:"gracePeriod"`
	Escalation          escalationResponse  `json:"escalation"`
}

func newOrderActionsResponse(a queries.OrderActions) orderActionsResponse {
	selections := make([]selectionResponse, 0, len(a.AvailableSelections))
	for _, s := range a.AvailableSelections {
		selections = append(selections, selectionResponse{Status: s.Status.String(), IsRevert: s.IsRevert})
	}

	gp := gracePeriodResponse{
		IsActive:             a.IsGracePeriodActive,
		ExpiresAt:            a.ExpiresAt,
		TimeRemainingSeconds: int64(a.TimeRemaining / time.Second),
	}
	if a.PreviousStatus != nil {
		gp.PreviousStatus = a.PreviousStatus.String()
	}

	return orderActionsResponse{
		ID:                  a.OrderID.String(),
		Status:              a.CurrentStatus.String(),
		RawStatus:           a.RawStatus,
		PaymentPreference:   a.PaymentPreference.String(),
		PaymentStatus:       a.PaymentStatus.String(),
		AssignedVendorID:    a.AssignedVendorID.String(),
		Region:              a.Region,
		Notes:               a.Notes,
		TrackingNumber:      a.TrackingNumber,
		Version:             a.Version,
		AvailableSelections: selections,
		WorkflowCompleted:   a.WorkflowCompleted,
		GracePeriod:         gp,
		Escalation: escalationResponse{
			IsEscalated:             a.Escalated,
			Reason:                  a.EscalationReason,
			CanEscalate:             a.CanEscalate,
			CanReassign:             a.CanReassign,
			CanFulfillFromWarehouse: a.CanEscalateFulfill,
			CanRevertToVendor:       a.CanEscalateRevert,
		},
	}
}

type vendorResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Regions         []string `json:"regions"`
	EscalationCount int64    `json:"escalationCount"`
}

func newVendorResponses(vendors []queries.AlternateVendor) []vendorResponse {
	response := make([]vendorResponse, 0, len(vendors))
	for _, v := range vendors {
		regions := v.Regions
		if regions == nil {
			regions = []string{}
		}
		response = append(response, vendorResponse{
			ID:              v.ID.String(),
			Name:            v.Name,
			Regions:         regions,
			EscalationCount: v.EscalationCount,
		})
	}
	return response
}

type timelineEntryResponse struct {
	ID             string    `json:"id"`
	Kind           string    `json:"kind"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previousStatus"`
	IsRevert       bool      `json:"isRevert"`
	Note           string    `json:"note,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

func newTimelineResponse(entries []order.TimelineEntry) []timelineEntryResponse {
	response := make([]timelineEntryResponse, 0, len(entries))
	for _, e := range entries {
		response = append(response, timelineEntryResponse{
			ID:             e.ID.String(),
			Kind:           string(e.Kind),
			Status:         e.Status.String(),
			PreviousStatus: e.PreviousStatus.String(),
			IsRevert:       e.IsRevert,
			Note:           e.Note,
			OccurredAt:     e.OccurredAt.UTC(),
		})
	}
	return response
}

type escalatedOrderResponse struct {
	ID                      string     `json:"id"`
	Status                  string     `json:"status"`
	PaymentStatus           string     `json:"paymentStatus"`
	AssignedVendorID        string     `json:"assignedVendorId"`
	Region                  string     `json:"region,omitempty"`
	Reason                  string     `json:"reason,omitempty"`
	EscalatedAt             *time.Time `json:"escalatedAt,omitempty"`
	Version                 int64      `json:"version"`
	CanReassign             bool       `json:"canReassign"`
	CanFulfillFromWarehouse bool       `json:"canFulfillFromWarehouse"`
	CanRevertToVendor       bool       `json:"canRevertToVendor"`
}

type escalatedOrderPageResponse struct {
	Items []escalatedOrderResponse `json:"items"`
	Total int64                    `json:"total"`
	Page  int                      `json:"page"`
	Limit int                      `json:"limit"`
}

func newEscalatedOrderPageResponse(q queries.EscalatedOrderQueue) escalatedOrderPageResponse {
	items := make([]escalatedOrderResponse, 0, len(q.Items))
	for _, item := range q.Items {
		r := escalatedOrderResponse{
			ID:                      item.OrderID.String(),
			Status:                  item.Status.String(),
			PaymentStatus:           item.PaymentStatus.String(),
			AssignedVendorID:        item.AssignedVendorID.String(),
			Region:                  item.Region,
			Reason:                  item.EscalationReason,
			Version:                 item.Version,
			CanReassign:             item.CanReassign,
			CanFulfillFromWarehouse: item.CanEscalateFulfill,
			CanRevertToVendor:       item.CanEscalateRevert,
		}
		if !item.EscalatedAt.IsZero() {
			at := item.EscalatedAt.UTC()
			r.EscalatedAt = &at
		}
		items = append(items, r)
	}
	return escalatedOrderPageResponse{Items: items, Total: q.Total, Page: q.PageNumber, Limit: q.PageSize}
}
