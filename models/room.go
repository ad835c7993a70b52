package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// Room categories. The category decides the guest cap of a room.
const (
	RoomTypeSingle = "single"
	RoomTypeDouble = "double"
	RoomTypeSuite  = "suite"
)

// FlexID accepts both JSON strings and JSON numbers, since the backend
// sends numeric ids while the catalog treats them as opaque strings.
type FlexID string

func (id *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = FlexID(n.String())
	return nil
}

func (id FlexID) String() string { return string(id) }

// Room is one entry of the catalog snapshot. The snapshot is only ever
// replaced as a whole collection.
type Room struct {
	ID          FlexID                      `gorm:"primaryKey;size:64" json:"id"`
	Name        string                      `gorm:"size:255" json:"name"`
	Type        string                      `gorm:"size:32;index" json:"type"`
	Price       float64                     `json:"price"`
	Description string                      `gorm:"type:text" json:"description"`
	Amenities   datatypes.JSONSlice[string] `json:"amenities"`
	Image       string                      `gorm:"size:512" json:"image"`
	Images      datatypes.JSONSlice[string] `json:"images"`
	Available   bool                        `json:"available"`

	// Position keeps the upstream order when the snapshot is read back.
	Position  int       `json:"-"`
	CreatedAt time.Time `json:"-"`
}
