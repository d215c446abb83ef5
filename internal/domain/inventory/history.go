package inventory

import "time"

// History actions (closed set). Entries are append-only: never updated
// or deleted once written.
const (
	ActionCreated         = "created"
	ActionStatusChange    = "status_change"
	ActionLocationChange  = "location_change"
	ActionSold            = "sold"
	ActionConsigned       = "consigned"
	ActionReturned        = "returned"
	ActionConditionUpdate = "condition_update"
	ActionFileAdded       = "file_added"
	ActionFileDeleted     = "file_deleted"
	ActionNumberAssigned  = "number_assigned"
)

var HistoryActions = []string{
	ActionCreated,
	ActionStatusChange,
	ActionLocationChange,
	ActionSold,
	ActionConsigned,
	ActionReturned,
	ActionConditionUpdate,
	ActionFileAdded,
	ActionFileDeleted,
	ActionNumberAssigned,
}

func ValidAction(a string) bool {
	for _, v := range HistoryActions {
		if v == a {
			return true
		}
	}
	return false
}

type EditionHistory struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	EditionID string `gorm:"type:uuid;not null;index" json:"edition_id"`

	Action       string `gorm:"not null;index" json:"action"`
	RelatedParty string `gorm:"column:related_party" json:"related_party,omitempty"`
	Note         string `json:"note,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
