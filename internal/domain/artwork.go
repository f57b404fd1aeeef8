package domain

import (
	"time"
)

// Status describes the sale state of an artwork.
type Status string

const (
	StatusAvailable  Status = "available"
	StatusSold       Status = "sold"
	StatusReserved   Status = "reserved"
	StatusCommission Status = "commission"
)

// Valid reports whether s is one of the four recognized sale states.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusSold, StatusReserved, StatusCommission:
		return true
	}
	return false
}

// Artwork represents one painting offered for sale, localized across
// Ukrainian, English and German.
type Artwork struct {
	ID            string     `json:"id"`
	TitleUK       string     `json:"title_uk"`
	TitleEN       string     `json:"title_en"`
	TitleDE       string     `json:"title_de"`
	DescriptionUK string     `json:"description_uk"`
	DescriptionEN string     `json:"description_en"`
	DescriptionDE string     `json:"description_de"`
	Price         *float64   `json:"price"`
	Currency      string     `json:"currency"`
	Size          string     `json:"size"`
	TechniqueUK   string     `json:"technique_uk"`
	TechniqueEN   string     `json:"technique_en"`
	TechniqueDE   string     `json:"technique_de"`
	CloudinaryID  string     `json:"cloudinary_id"`
	WidthCM       *float64   `json:"width_cm"`
	HeightCM      *float64   `json:"height_cm"`
	Segments      []string   `json:"segments"`
	Mood          string     `json:"mood"`
	Status        Status     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Collection is the entire persisted document: the ordered list of artworks
// (newest first) plus a collection-level modification timestamp, which is
// null until the first write.
type Collection struct {
	Artworks  []Artwork  `json:"artworks"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// NewCollection returns an empty collection. Artworks is non-nil so the
// document always serializes as [] rather than null.
func NewCollection() *Collection {
	return &Collection{Artworks: []Artwork{}}
}

// Find returns a pointer to the artwork with the given id, or nil.
func (c *Collection) Find(id string) *Artwork {
	for i := range c.Artworks {
		if c.Artworks[i].ID == id {
			return &c.Artworks[i]
		}
	}
	return nil
}
