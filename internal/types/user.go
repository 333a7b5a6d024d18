package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// User owns an ordered collection of places. Places holds the JSON array
// of owned place ids; it is only ever mutated inside the place/user
// aggregate's transaction boundary so that every id in it references a
// Place whose creator is this user, and vice versa.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"not null;column:name" json:"name"`
	Email     string         `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password  string         `gorm:"not null;column:password" json:"-"`
	ImageKey  string         `gorm:"column:image_key" json:"-"`
	ImageURL  string         `gorm:"column:image_url" json:"image"`
	Places    datatypes.JSON `gorm:"not null;default:'[]';column:places" json:"places"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string {
	return "user"
}

// PlaceIDs decodes the stored places array. A missing or corrupt column
// decodes to an empty slice.
func (u *User) PlaceIDs() []uuid.UUID {
	if len(u.Places) == 0 {
		return nil
	}
	var raw []string
	if err := json.Unmarshal(u.Places, &raw); err != nil {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func (u *User) SetPlaceIDs(ids []uuid.UUID) {
	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.String())
	}
	buf, err := json.Marshal(raw)
	if err != nil {
		buf = []byte(`[]`)
	}
	u.Places = datatypes.JSON(buf)
}

// AppendPlaceID adds id to the end of the places array, keeping order.
func (u *User) AppendPlaceID(id uuid.UUID) {
	u.SetPlaceIDs(append(u.PlaceIDs(), id))
}

// RemovePlaceID removes id from the places array. Reports whether the id
// was present.
func (u *User) RemovePlaceID(id uuid.UUID) bool {
	ids := u.PlaceIDs()
	kept := make([]uuid.UUID, 0, len(ids))
	found := false
	for _, existing := range ids {
		if existing == id {
			found = true
			continue
		}
		kept = append(kept, existing)
	}
	u.SetPlaceIDs(kept)
	return found
}

// HasPlaceID reports whether id appears in the places array.
func (u *User) HasPlaceID(id uuid.UUID) bool {
	for _, existing := range u.PlaceIDs() {
		if existing == id {
			return true
		}
	}
	return false
}
