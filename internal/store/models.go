package store

import (
	"github.com/uptrace/bun"

	"github.com/agentstation/cardmap/pkg/cards"
)

// cardRow is the persisted form of cards.Card. Column names keep the
// original cache layout ("card_set" because "set" reads badly in SQL).
type cardRow struct {
	bun.BaseModel `bun:"table:cards,alias:c"`

	ID            string  `bun:"id,pk,type:text"`
	Name          string  `bun:"name,notnull,type:text"`
	ImageURL      string  `bun:"image_url,notnull,type:text"`
	ImageURLHiRes *string `bun:"image_url_hires,type:text"`
	Supertype     *string `bun:"supertype,type:text"`
	Subtype       *string `bun:"subtype,type:text"`
	HP            *string `bun:"hp,type:text"`
	Artist        *string `bun:"artist,type:text"`
	Rarity        *string `bun:"rarity,type:text"`
	Series        *string `bun:"series,type:text"`
	Set           *string `bun:"card_set,type:text"`
	SetCode       *string `bun:"set_code,type:text"`
	Number        *string `bun:"number,type:text"`
}

// upsertColumns are overwritten on an ID conflict. Every non-key column is
// listed so that a field going absent remotely is cleared locally too.
var upsertColumns = []string{
	"name", "image_url", "image_url_hires", "supertype", "subtype", "hp",
	"artist", "rarity", "series", "card_set", "set_code", "number",
}

type metaRow struct {
	bun.BaseModel `bun:"table:store_meta,alias:m"`

	Key   string `bun:"meta_key,pk,type:text"`
	Value string `bun:"meta_value,notnull,type:text"`
}

func toRow(c cards.Card) cardRow {
	return cardRow{
		ID:            c.ID,
		Name:          c.Name,
		ImageURL:      c.ImageURL,
		ImageURLHiRes: c.ImageURLHiRes,
		Supertype:     c.Supertype,
		Subtype:       c.Subtype,
		HP:            c.HP,
		Artist:        c.Artist,
		Rarity:        c.Rarity,
		Series:        c.Series,
		Set:           c.Set,
		SetCode:       c.SetCode,
		Number:        c.Number,
	}
}

func (r cardRow) toCard() cards.Card {
	return cards.Card{
		ID:            r.ID,
		Name:          r.Name,
		ImageURL:      r.ImageURL,
		ImageURLHiRes: r.ImageURLHiRes,
		Supertype:     r.Supertype,
		Subtype:       r.Subtype,
		HP:            r.HP,
		Artist:        r.Artist,
		Rarity:        r.Rarity,
		Series:        r.Series,
		Set:           r.Set,
		SetCode:       r.SetCode,
		Number:        r.Number,
	}
}

func toRows(cs []cards.Card) []cardRow {
	rows := make([]cardRow, len(cs))
	for i, c := range cs {
		rows[i] = toRow(c)
	}
	return rows
}
