package model

import "time"

// Category is the closed set of catalog categories. Anything else is rejected
// at the API boundary before it reaches the store.
type Category string

const (
	CategoryDiamondRings Category = "diamond-rings"
	CategoryPendants     Category = "pendants"
	CategoryEarrings     Category = "earrings"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryDiamondRings, CategoryPendants, CategoryEarrings:
		return true
	}
	return false
}

// Product has exactly one of ImageURL / VideoURL set, chosen by the media kind
// at creation time. FileName is the raw object-storage key and is never exposed
// through the public listing.
type Product struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	FileName   string    `json:"-"`
	ImageURL   *string   `json:"imageURL"`
	VideoURL   *string   `json:"videoURL"`
	Category   Category  `json:"category"`
	IsFeatured bool      `json:"isFeatured"`
	CreatedAt  time.Time `json:"-"`
}

// ProductFilter narrows a catalog listing. Zero values mean "not supplied":
// an empty Category and Featured=false leave the corresponding filter off.
type ProductFilter struct {
	Category Category
	Featured bool
}
