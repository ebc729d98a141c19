package trello

import (
	"fmt"
	"time"
)

// Action represents one entry of the Trello action log.
type Action struct {
	ID              string     `json:"id"`
	Type            string     `json:"type"`
	Date            string     `json:"date"`
	Data            ActionData `json:"data"`
	MemberCreatorID string     `json:"idMemberCreator"`
}

// ActionData carries the type-specific payload of an action.
type ActionData struct {
	Text       string      `json:"text,omitempty"`
	ListBefore *ActionList `json:"listBefore,omitempty"`
	ListAfter  *ActionList `json:"listAfter,omitempty"`
}

// ActionList is the minimal list representation embedded in action payloads.
type ActionList struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Badges summarizes card counters as reported by the API.
type Badges struct {
	Comments          int    `json:"comments"`
	Attachments       int    `json:"attachments"`
	CheckItems        int    `json:"checkItems"`
	CheckItemsChecked int    `json:"checkItemsChecked"`
	Description       bool   `json:"description"`
	Due               string `json:"due,omitempty"`
}

// CheckItemState records the completion state of one checklist item on a
// card.
type CheckItemState struct {
	IDCheckItem string `json:"idCheckItem"`
	State       string `json:"state"`
}

// CardMove describes one transition of a card from one list to another, as
// reconstructed from the action log. The most recent move comes first.
type CardMove struct {
	FromList string
	ToList   string
	Date     time.Time
}

// actionTimeLayout is the wire format of action dates once the trailing
// millisecond/zone suffix has been trimmed.
const actionTimeLayout = "2006-01-02T15:04:05"

// parseActionDate parses an action-log timestamp. The last five characters
// (".000Z") are dropped before parsing, matching the documented date contract.
func parseActionDate(value string) (time.Time, error) {
	if len(value) > 5 {
		value = value[:len(value)-5]
	}

	parsed, err := time.Parse(actionTimeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing action date %q: %w", value, err)
	}

	return parsed, nil
}
