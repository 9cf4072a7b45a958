package domain

import (
	"fmt"
	"time"
)

// EditState is the presentation state of an editable entity.
type EditState string

const (
	StateViewing EditState = "viewing"
	StateEditing EditState = "editing"
)

// DraftKind names the entity a draft belongs to.
type DraftKind string

const (
	DraftCompany DraftKind = "company"
	DraftProfile DraftKind = "profile"
)

// ItemKind names a nested collection of a company.
type ItemKind string

const (
	ItemService ItemKind = "service"
	ItemProject ItemKind = "project"
)

// ParseItemKind accepts the form values "service" and "project".
func ParseItemKind(s string) (ItemKind, error) {
	switch ItemKind(s) {
	case ItemService, ItemProject:
		return ItemKind(s), nil
	}
	return "", &ValidationError{Message: fmt.Sprintf("unknown item kind %q", s)}
}

// PendingDeletion is the removal of a persisted item waiting for the user
// to confirm it.
type PendingDeletion struct {
	Kind  ItemKind `json:"kind"`
	Index int      `json:"index"`
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
}

// Draft is the Editing state of one entity for one user. A draft exists
// only while the entity is being edited; Viewing is the absence of a draft.
type Draft struct {
	Key       string           `json:"key"`
	Kind      DraftKind        `json:"kind"`
	UserID    int64            `json:"user_id"`
	EntityID  int64            `json:"entity_id"`
	State     EditState        `json:"state"`
	Company   *Company         `json:"company,omitempty"`
	Profile   *ProfileUpdate   `json:"profile,omitempty"`
	Pending   *PendingDeletion `json:"pending,omitempty"`
	LastError string           `json:"last_error,omitempty"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// DraftKey is the store key of the draft of entityID edited by userID.
func DraftKey(kind DraftKind, userID, entityID int64) string {
	return fmt.Sprintf("draft:%s:%d:%d", kind, userID, entityID)
}

// Editing reports whether the draft is in the Editing state.
func (d *Draft) Editing() bool {
	return d != nil && d.State == StateEditing
}
