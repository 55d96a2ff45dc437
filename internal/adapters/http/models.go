package http

import "github.com/hsdfat8/kitcheck/internal/domain/models"

// ProblemDetails represents an error response following RFC 7807
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title,omitempty"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// ValidateRequest is the body of POST /validate. When Catalog is present it
// replaces the stored catalog for this pass.
type ValidateRequest struct {
	Entries []models.InventoryEntry `json:"entries" binding:"required"`
	Catalog []models.EquipmentSpec  `json:"catalog,omitempty"`
}

// ValidateResponse carries the warnings of an ad-hoc validation pass
type ValidateResponse struct {
	Warnings     []models.CompatibilityWarning `json:"warnings"`
	ErrorCount   int                           `json:"errorCount"`
	WarningCount int                           `json:"warningCount"`
}

// SuggestionResponse is one ranked accessory suggestion
type SuggestionResponse struct {
	Item      models.EquipmentSpec `json:"item"`
	Layer     int                  `json:"layer"`
	LayerName string               `json:"layerName"`
	Reason    string               `json:"reason"`
}

// DismissalsResponse lists the dismissed warnings of a kit
type DismissalsResponse struct {
	KitID      string                `json:"kitId"`
	Dismissals []models.DismissalKey `json:"dismissals"`
}
