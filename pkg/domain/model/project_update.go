package model

import (
	"time"

	"github.com/athelas-portal/athelas/pkg/domain/types"
)

// SystemActor is recorded when no person triggered a history entry.
const SystemActor = "System"

// ImportActor is recorded for changes made by a bulk import.
const ImportActor = "Bulk Import"

// ProjectUpdate is one entry of a project's history. Entries are never edited.
type ProjectUpdate struct {
	ID        int64 `json:"id"`
	ProjectID int64 `json:"project_id"`
	ProjectUpdateFields
	CreatedAt time.Time `json:"created_at"`
}

type ProjectUpdateFields struct {
	Type     types.UpdateType `json:"update_type"`
	UserName string           `json:"user_name"`
	Text     string           `json:"update_text"`
	OldValue string           `json:"old_value"`
	NewValue string           `json:"new_value"`
}
