package model

import (
	"time"

	"github.com/google/uuid"
)

// BayTemplate is a reusable starting point: a bay size, wall colours and a
// list of shapes to place into it. It stores orders, not positions, so every
// application runs placement afresh.
type BayTemplate struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	CreatedAt   string       `json:"created_at"`
	UpdatedAt   string       `json:"updated_at"`
	Dimensions  Dimensions   `json:"dimensions"`
	Walls       WallColors   `json:"walls"`
	Orders      []ShapeOrder `json:"orders"`
}

// NewBayTemplate creates a template with a fresh ID.
func NewBayTemplate(name, description string, dims Dimensions, walls WallColors, orders []ShapeOrder) BayTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return BayTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Dimensions:  dims,
		Walls:       walls,
		Orders:      copyOrders(orders),
	}
}

// OrdersFromShapes turns placed shapes back into one order per shape.
func OrdersFromShapes(shapes []PlacedShape) []ShapeOrder {
	orders := make([]ShapeOrder, len(shapes))
	for i, s := range shapes {
		c := s.Color
		orders[i] = ShapeOrder{Type: s.Type, Quantity: 1, Rotation: s.Rotation, Color: &c}
	}
	return orders
}

// ShapeCount returns the number of shapes the template asks for.
func (t BayTemplate) ShapeCount() int {
	n := 0
	for _, o := range t.Orders {
		if o.Quantity < 1 {
			n++
			continue
		}
		n += o.Quantity
	}
	return n
}

// TemplateStore holds a collection of bay templates.
type TemplateStore struct {
	Templates []BayTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []BayTemplate{},
	}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t BayTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *BayTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns the template names for UI dropdowns.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}

func copyOrders(orders []ShapeOrder) []ShapeOrder {
	if orders == nil {
		return []ShapeOrder{}
	}
	cp := make([]ShapeOrder, len(orders))
	copy(cp, orders)
	return cp
}
