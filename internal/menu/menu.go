// Package menu describes the "Solo AI" selection context menu and turns
// clicks on it into invocations.
package menu

import (
	"strings"

	"github.com/samber/lo"

	"github.com/solo-ai/solo/internal/model"
)

const (
	// ItemPrefix marks every menu item owned by Solo AI.
	ItemPrefix = "solo_"
	// RootID is the parent entry; it carries no action.
	RootID = ItemPrefix + "root"
	// RootTitle is the label of the parent entry.
	RootTitle = "Solo AI"
	// ContextSelection restricts items to pages with selected text.
	ContextSelection = "selection"
)

// Item is one context-menu registration.
type Item struct {
	ID       string   `json:"id"`
	ParentID string   `json:"parentId,omitempty"`
	Title    string   `json:"title"`
	Contexts []string `json:"contexts"`
}

// ItemID returns the menu item identifier for action.
func ItemID(action model.ActionTag) string {
	return ItemPrefix + string(action)
}

// Items returns the registrations in creation order: the root entry first,
// then one child per preset action.
func Items() []Item {
	root := Item{
		ID:       RootID,
		Title:    RootTitle,
		Contexts: []string{ContextSelection},
	}
	children := lo.Map(model.PresetActions, func(a model.ActionTag, _ int) Item {
		return Item{
			ID:       ItemID(a),
			ParentID: RootID,
			Title:    a.Label(),
			Contexts: []string{ContextSelection},
		}
	})
	return append([]Item{root}, children...)
}

// ActionFromItemID strips the Solo AI prefix from id. It reports false for
// items Solo AI does not own and for the root entry.
func ActionFromItemID(id string) (model.ActionTag, bool) {
	if !strings.HasPrefix(id, ItemPrefix) || id == RootID {
		return "", false
	}
	action := strings.TrimPrefix(id, ItemPrefix)
	if action == "" {
		return "", false
	}
	return model.ActionTag(action), true
}

// Click is a context-menu activation on a page selection.
type Click struct {
	MenuItemID    string `json:"menuItemId"`
	SelectionText string `json:"selectionText"`
}

// Invocation converts the click into a context-menu invocation. It reports
// false when the clicked item does not belong to Solo AI.
func (c Click) Invocation() (model.Invocation, bool) {
	action, ok := ActionFromItemID(c.MenuItemID)
	if !ok {
		return model.Invocation{}, false
	}
	return model.NewInvocation(model.OriginContextMenu, action, c.SelectionText), true
}
