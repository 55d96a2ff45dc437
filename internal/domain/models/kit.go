package models

import (
	"errors"
	"strings"
	"time"
)

// InventoryEntry is one line in a kit
type InventoryEntry struct {
	ID           string `json:"id" yaml:"id" bson:"id" db:"id"`
	EquipmentID  string `json:"equipmentId" yaml:"equipmentId" bson:"equipment_id" db:"equipment_id"`
	AssignedUnit string `json:"assignedUnit" yaml:"assignedUnit" bson:"assigned_unit" db:"assigned_unit"`
	Quantity     int    `json:"quantity" yaml:"quantity" bson:"quantity" db:"quantity"`
}

// Kit groups inventory entries under a name
type Kit struct {
	ID        string           `json:"id" yaml:"id" bson:"_id" db:"id"`
	Name      string           `json:"name" yaml:"name" bson:"name" db:"name"`
	Entries   []InventoryEntry `json:"entries" yaml:"entries" bson:"entries" db:"-"`
	CreatedAt time.Time        `json:"createdAt" yaml:"-" bson:"created_at" db:"created_at"`
	UpdatedAt time.Time        `json:"updatedAt" yaml:"-" bson:"updated_at" db:"updated_at"`
}

var (
	ErrMissingEntryID     = errors.New("missing inventory entry id")
	ErrMissingEquipmentID = errors.New("missing equipment id on inventory entry")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrDuplicateEntryID   = errors.New("duplicate inventory entry id")
	ErrMissingKitID       = errors.New("missing kit id")
)

// ValidateInventoryEntry checks a single kit line
func ValidateInventoryEntry(entry InventoryEntry) error {
	if strings.TrimSpace(entry.ID) == "" {
		return ErrMissingEntryID
	}
	if strings.TrimSpace(entry.EquipmentID) == "" {
		return ErrMissingEquipmentID
	}
	if entry.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// ValidateKit checks the kit id and every entry, rejecting duplicate entry ids
func ValidateKit(kit *Kit) error {
	if kit == nil || strings.TrimSpace(kit.ID) == "" {
		return ErrMissingKitID
	}
	seen := make(map[string]struct{}, len(kit.Entries))
	for _, entry := range kit.Entries {
		if err := ValidateInventoryEntry(entry); err != nil {
			return err
		}
		if _, dup := seen[entry.ID]; dup {
			return ErrDuplicateEntryID
		}
		seen[entry.ID] = struct{}{}
	}
	return nil
}

// Clone returns a copy of the kit that shares no entries with the original
func (k *Kit) Clone() *Kit {
	if k == nil {
		return nil
	}
	c := *k
	if k.Entries != nil {
		c.Entries = append([]InventoryEntry(nil), k.Entries...)
	}
	return &c
}
