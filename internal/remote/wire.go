package remote

import (
	"strings"
	"time"

	"github.com/JonMunkholm/homestock/internal/inventory"
)

// Messages the item API uses to tag mutation outcomes.
const (
	msgDeleted     = "Item deleted successfully"
	msgDecremented = "Item quantity decreased"
)

// wireItem is an item as the API encodes it.
type wireItem struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	DateAdded time.Time `json:"dateAdded"`
	Address   string    `json:"address,omitempty"`
}

func (w wireItem) toItem() inventory.Item {
	return inventory.Item{
		ID:       w.ID,
		Name:     w.Name,
		Quantity: w.Quantity,
		ImageRef: w.ImageURL,
		AddedAt:  w.DateAdded,
	}
}

func toItems(in []wireItem) []inventory.Item {
	out := make([]inventory.Item, len(in))
	for i, w := range in {
		out[i] = w.toItem()
	}
	return out
}

// wireDraft is the body of bulk and update requests.
type wireDraft struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

func toWireDrafts(in []inventory.ItemDraft) []wireDraft {
	out := make([]wireDraft, len(in))
	for i, d := range in {
		out[i] = wireDraft{Name: d.Name, Quantity: d.Quantity}
	}
	return out
}

// wireMutation is the body of delete and update responses. Status is an
// explicit outcome some deployments send alongside the message.
type wireMutation struct {
	Message string    `json:"message"`
	Status  string    `json:"status,omitempty"`
	Item    *wireItem `json:"item,omitempty"`
}

// toResponse tags the mutation with an outcome. An explicit status wins;
// otherwise the message decides. For updates any message other than the
// deletion tag means the item was replaced.
func (m wireMutation) toResponse(replaced inventory.Outcome) inventory.MutationResponse {
	resp := inventory.MutationResponse{Message: m.Message}
	if m.Item != nil {
		it := m.Item.toItem()
		resp.Item = &it
	}

	switch {
	case m.Status != "":
		resp.Outcome = inventory.Outcome(strings.ToLower(strings.TrimSpace(m.Status)))
	case m.Message == msgDeleted:
		resp.Outcome = inventory.OutcomeDeleted
	case m.Message == msgDecremented:
		resp.Outcome = inventory.OutcomeDecremented
	case replaced == inventory.OutcomeUpdated && m.Item != nil:
		resp.Outcome = inventory.OutcomeUpdated
	default:
		resp.Outcome = inventory.Outcome(m.Message)
	}
	return resp
}
