// Package table converts cards and catalog status into table rows for the
// CLI formatters.
package table

import (
	"strconv"

	"github.com/agentstation/cardmap/internal/cmd/output"
	"github.com/agentstation/cardmap/internal/store"
	"github.com/agentstation/cardmap/internal/utils/ptr"
	"github.com/agentstation/cardmap/pkg/cards"
	"github.com/agentstation/cardmap/pkg/constants"
)

// CardsToTableData converts a card list to table format. showDetails adds
// the rarity, set and artist columns.
func CardsToTableData(cs []cards.Card, showDetails bool) output.Data {
	headers := []string{"ID", "Name", "Type", "HP"}
	if showDetails {
		headers = append(headers, "Rarity", "Set", "Artist")
	}

	rows := make([][]string, 0, len(cs))
	for _, c := range cs {
		row := []string{c.ID, c.Name, c.TypeLine(), ptr.Deref(c.HP, "-")}
		if showDetails {
			row = append(row, c.RarityLine(), ptr.Deref(c.Set, cards.Unknown), c.ArtistLine())
		}
		rows = append(rows, row)
	}

	align := []output.Align{output.AlignLeft, output.AlignLeft, output.AlignLeft, output.AlignRight}
	return output.Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// DetailsToTableData renders the detail view of one card as label/value rows.
func DetailsToTableData(c cards.Card) output.Data {
	details := c.Details()
	rows := make([][]string, 0, len(details))
	for _, d := range details {
		rows = append(rows, []string{d.Label, d.Value})
	}
	return output.Data{Headers: []string{"Field", "Value"}, Rows: rows}
}

// Status is what the status command reports.
type Status struct {
	Database  string          `json:"database" yaml:"database"`
	Cached    int             `json:"cached" yaml:"cached"`
	HasAPIKey bool            `json:"has_api_key" yaml:"has_api_key"`
	LastSync  *store.SyncInfo `json:"last_sync,omitempty" yaml:"last_sync,omitempty"`
}

// StatusToTableData renders s as key/value rows.
func StatusToTableData(s Status) output.Data {
	lastSync, lastCount := "never", "-"
	if s.LastSync != nil {
		lastSync = s.LastSync.SyncedAt.Time.Local().Format(constants.TimeFormatHuman)
		lastCount = strconv.Itoa(s.LastSync.Count)
	}

	key := "not set"
	if s.HasAPIKey {
		key = "set"
	}

	return output.Data{
		Headers: []string{"Setting", "Value"},
		Rows: [][]string{
			{output.Title("database"), s.Database},
			{output.Title("cached_cards"), strconv.Itoa(s.Cached)},
			{output.Title("api_key"), key},
			{output.Title("last_refresh"), lastSync},
			{output.Title("last_refresh_count"), lastCount},
		},
	}
}
