// Package queue defines message payloads exchanged over the message broker.
package queue

import (
	"time"

	"github.com/csemotors/motors/internal/repository"
)

// Actions carried by InventoryEvent.
const (
	ActionClassificationCreated = "classification.created"
	ActionVehicleCreated        = "vehicle.created"
	ActionVehicleUpdated        = "vehicle.updated"
	ActionVehicleDeleted        = "vehicle.deleted"
)

// InventoryEvent is published after a successful inventory mutation. It
// carries enough information for downstream consumers to log or trigger
// analytics without querying the primary database.
type InventoryEvent struct {
	Action             string `json:"action"`
	InvID              uint64 `json:"inv_id,omitempty"`
	Make               string `json:"inv_make,omitempty"`
	Model              string `json:"inv_model,omitempty"`
	ClassificationID   uint64 `json:"classification_id,omitempty"`
	ClassificationName string `json:"classification_name,omitempty"`
	OccurredAt         string `json:"occurred_at"`
}

// NewVehicleEvent builds an event for a vehicle mutation.
func NewVehicleEvent(action string, v *repository.Vehicle) InventoryEvent {
	return InventoryEvent{
		Action:           action,
		InvID:            v.ID,
		Make:             v.Make,
		Model:            v.Model,
		ClassificationID: v.ClassificationID,
		OccurredAt:       time.Now().UTC().Format(time.RFC3339),
	}
}

// NewClassificationCreated builds an event for a new classification.
func NewClassificationCreated(id uint64, name string) InventoryEvent {
	return InventoryEvent{
		Action:             ActionClassificationCreated,
		ClassificationID:   id,
		ClassificationName: name,
		OccurredAt:         time.Now().UTC().Format(time.RFC3339),
	}
}
