// Package cards defines the trading card record shared by the store, the
// catalog client, the service and the presentation layer.
package cards

import (
	"fmt"

	"github.com/agentstation/cardmap/internal/utils/ptr"
)

// Unknown is displayed for optional fields that are absent.
const Unknown = "Unknown"

// Card is one trading card. ID, Name and ImageURL are always set; every
// pointer field may be nil, meaning the remote catalog did not provide it.
type Card struct {
	ID            string  `json:"id" yaml:"id"`
	Name          string  `json:"name" yaml:"name"`
	ImageURL      string  `json:"imageUrl" yaml:"image_url"`
	ImageURLHiRes *string `json:"imageUrlHiRes,omitempty" yaml:"image_url_hires,omitempty"`
	Supertype     *string `json:"supertype,omitempty" yaml:"supertype,omitempty"`
	Subtype       *string `json:"subtype,omitempty" yaml:"subtype,omitempty"`
	HP            *string `json:"hp,omitempty" yaml:"hp,omitempty"`
	Artist        *string `json:"artist,omitempty" yaml:"artist,omitempty"`
	Rarity        *string `json:"rarity,omitempty" yaml:"rarity,omitempty"`
	Series        *string `json:"series,omitempty" yaml:"series,omitempty"`
	Set           *string `json:"set,omitempty" yaml:"set,omitempty"`
	SetCode       *string `json:"setCode,omitempty" yaml:"set_code,omitempty"`
	Number        *string `json:"number,omitempty" yaml:"number,omitempty"`
}

// Page is one page of the remote catalog after mapping.
type Page struct {
	Cards      []Card `json:"data" yaml:"data"`
	Page       int    `json:"page" yaml:"page"`
	PageSize   int    `json:"pageSize" yaml:"page_size"`
	Count      int    `json:"count" yaml:"count"`
	TotalCount int    `json:"totalCount" yaml:"total_count"`
}

// DetailImageURL returns the hi-res image, falling back to ImageURL.
func (c Card) DetailImageURL() string {
	if c.ImageURLHiRes != nil && *c.ImageURLHiRes != "" {
		return *c.ImageURLHiRes
	}
	return c.ImageURL
}

// TypeLine renders supertype and subtype as "Pokémon - Basic".
func (c Card) TypeLine() string {
	switch {
	case c.Supertype != nil && c.Subtype != nil:
		return *c.Supertype + " - " + *c.Subtype
	case c.Supertype != nil:
		return *c.Supertype
	case c.Subtype != nil:
		return *c.Subtype
	}
	return Unknown
}

// HPLine returns the hit points or "N/A".
func (c Card) HPLine() string {
	return ptr.Deref(c.HP, "N/A")
}

// RarityLine returns the rarity or "Unknown".
func (c Card) RarityLine() string {
	return ptr.Deref(c.Rarity, Unknown)
}

// ArtistLine returns the artist or "Unknown".
func (c Card) ArtistLine() string {
	return ptr.Deref(c.Artist, Unknown)
}

// SetLine renders the set name and the card's number in it, e.g. "Base - #4".
func (c Card) SetLine() string {
	return fmt.Sprintf("%s - #%s", ptr.Deref(c.Set, Unknown), ptr.Deref(c.Number, Unknown))
}

// Detail is one labeled line of the detail view.
type Detail struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Details returns the detail view lines in display order.
func (c Card) Details() []Detail {
	return []Detail{
		{Label: "Name", Value: c.Name},
		{Label: "Type", Value: c.TypeLine()},
		{Label: "HP", Value: c.HPLine()},
		{Label: "Rarity", Value: c.RarityLine()},
		{Label: "Set", Value: c.SetLine()},
		{Label: "Artist", Value: c.ArtistLine()},
		{Label: "Image", Value: c.DetailImageURL()},
	}
}

// IDs returns the IDs of cs in order.
func IDs(cs []Card) []string {
	ids := make([]string, len(cs))
	for i, c := range cs {
		ids[i] = c.ID
	}
	return ids
}

// Names returns the names of cs in order.
func Names(cs []Card) []string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.Name
	}
	return names
}
