package model

// ShapeOrder asks for Quantity shapes of one type, optionally turned and
// coloured. Orders come from imported lists.
type ShapeOrder struct {
	Type     ShapeType `json:"type"`
	Quantity int       `json:"quantity"`
	Rotation int       `json:"rotation"`
	Color    *Color    `json:"color,omitempty"` // nil keeps the default colour
}
