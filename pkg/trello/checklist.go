package trello

import (
	"context"
	"encoding/json"
	"fmt"
)

// Checklist represents a checklist on a card.
type Checklist struct {
	client *Client

	// CardID is the id of the card the checklist was loaded from. Item
	// mutations route through the card sub-resource, so it must be set.
	CardID string `json:"-"`

	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Items []CheckItem `json:"checkItems"`
}

// CheckItem is a single entry in a checklist. Checked is reconciled from the
// parent card's checkItemStates, not from the checklist payload.
type CheckItem struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Checked bool   `json:"-"`
}

// AddItem appends a new item to the checklist and mirrors it locally.
func (cl *Checklist) AddItem(ctx context.Context, name string, checked bool) error {
	args := map[string]interface{}{"name": name, "checked": checked}

	resp, err := cl.client.transport.Post(ctx, "/checklists/"+cl.ID+"/checkItems", args)
	if err != nil {
		return fmt.Errorf("adding checklist item: %w", err)
	}

	var item CheckItem
	if err := json.Unmarshal(resp.Body, &item); err != nil {
		return fmt.Errorf("parsing checklist item response: %w", err)
	}

	item.Checked = checked
	cl.Items = append(cl.Items, item)

	return nil
}

// SetItemState checks or unchecks the item with the given name. When the name
// matches no item, or more than one, the call is a no-op with no network
// activity.
func (cl *Checklist) SetItemState(ctx context.Context, name string, checked bool) error {
	index, ok := cl.findItem(name)
	if !ok {
		return nil
	}

	state := "incomplete"
	if checked {
		state = "complete"
	}

	path := "/cards/" + cl.CardID + "/checklist/" + cl.ID + "/checkItem/" + cl.Items[index].ID

	_, err := cl.client.transport.Put(ctx, path, map[string]string{"state": state})
	if err != nil {
		return fmt.Errorf("updating checklist item state: %w", err)
	}

	cl.Items[index].Checked = checked

	return nil
}

// RenameItem renames the item with the given name. When the name matches no
// item, or more than one, the call is a no-op with no network activity.
func (cl *Checklist) RenameItem(ctx context.Context, name, newName string) error {
	index, ok := cl.findItem(name)
	if !ok {
		return nil
	}

	path := "/cards/" + cl.CardID + "/checklist/" + cl.ID + "/checkItem/" + cl.Items[index].ID

	_, err := cl.client.transport.Put(ctx, path, map[string]string{"name": newName})
	if err != nil {
		return fmt.Errorf("renaming checklist item: %w", err)
	}

	cl.Items[index].Name = newName

	return nil
}

// Rename updates the checklist title remotely, then mirrors it locally.
func (cl *Checklist) Rename(ctx context.Context, name string) error {
	_, err := cl.client.transport.Put(ctx, "/checklists/"+cl.ID+"/name/", map[string]string{"value": name})
	if err != nil {
		return fmt.Errorf("renaming checklist: %w", err)
	}

	cl.Name = name

	return nil
}

// Delete permanently deletes the checklist.
func (cl *Checklist) Delete(ctx context.Context) error {
	_, err := cl.client.transport.Delete(ctx, "/checklists/"+cl.ID)
	if err != nil {
		return fmt.Errorf("deleting checklist: %w", err)
	}

	return nil
}

// findItem locates an item by exact name. It reports success only when
// exactly one item carries the name.
func (cl *Checklist) findItem(name string) (int, bool) {
	index := -1
	count := 0

	for i, item := range cl.Items {
		if item.Name == name {
			index = i
			count++
		}
	}

	return index, count == 1
}
