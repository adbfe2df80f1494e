package reservation

import (
	"fmt"

	"aus-site-backend/internal/model"
)

// DefaultRooms is the bookable room catalog of the society.
func DefaultRooms() []model.Room {
	return []model.Room{
		{ID: "1", Name: "Study Room 101", Building: "Leacock", Capacity: 4, Type: model.RoomTypeStudy},
		{ID: "2", Name: "Study Room 102", Building: "Leacock", Capacity: 6, Type: model.RoomTypeStudy},
		{ID: "3", Name: "Study Room 201", Building: "Burnside", Capacity: 4, Type: model.RoomTypeStudy},
		{ID: "4", Name: "Meeting Room A", Building: "Leacock", Capacity: 8, Type: model.RoomTypeMeeting},
		{ID: "5", Name: "Meeting Room B", Building: "Burnside", Capacity: 10, Type: model.RoomTypeMeeting},
		{ID: "6", Name: "Arts Lounge", Building: "Leacock", Capacity: 45, Type: model.RoomTypeEvent},
		{ID: "7", Name: "Conference Room", Building: "Ferrier", Capacity: 20, Type: model.RoomTypeEvent},
	}
}

// Catalog is an immutable, validated set of rooms.
type Catalog struct {
	rooms []model.Room
	byID  map[string]int
}

// NewCatalog validates rooms and freezes them into a catalog.
func NewCatalog(rooms []model.Room) (*Catalog, error) {
	c := &Catalog{
		rooms: make([]model.Room, 0, len(rooms)),
		byID:  make(map[string]int, len(rooms)),
	}
	for _, r := range rooms {
		if r.ID == "" {
			return nil, fmt.Errorf("room %q has no id", r.Name)
		}
		if _, dup := c.byID[r.ID]; dup {
			return nil, fmt.Errorf("duplicate room id %q", r.ID)
		}
		if r.Capacity <= 0 {
			return nil, fmt.Errorf("room %q has non-positive capacity %d", r.ID, r.Capacity)
		}
		if !r.Type.Valid() {
			return nil, fmt.Errorf("room %q has unknown type %q", r.ID, r.Type)
		}
		c.byID[r.ID] = len(c.rooms)
		c.rooms = append(c.rooms, r)
	}
	return c, nil
}

// Rooms returns a copy of every room in catalog order.
func (c *Catalog) Rooms() []model.Room {
	out := make([]model.Room, len(c.rooms))
	copy(out, c.rooms)
	return out
}

// Lookup finds a room by id.
func (c *Catalog) Lookup(id string) (model.Room, bool) {
	i, ok := c.byID[id]
	if !ok {
		return model.Room{}, false
	}
	return c.rooms[i], true
}

// ByType returns the rooms of one type in catalog order.
func (c *Catalog) ByType(t model.RoomType) []model.Room {
	var out []model.Room
	for _, r := range c.rooms {
		if r.Type == t {
			out = append(out, r)
		}
	}
	return out
}

// Grouped returns the rooms keyed by type.
func (c *Catalog) Grouped() map[model.RoomType][]model.Room {
	out := make(map[model.RoomType][]model.Room)
	for _, r := range c.rooms {
		out[r.Type] = append(out[r.Type], r)
	}
	return out
}
