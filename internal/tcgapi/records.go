package tcgapi

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/agentstation/cardmap/internal/utils/ptr"
	"github.com/agentstation/cardmap/pkg/cards"
	"github.com/agentstation/cardmap/pkg/errors"
)

// cardsResponse is the body of GET /v2/cards.
type cardsResponse struct {
	Data       []cardRecord `json:"data"`
	Page       int          `json:"page"`
	PageSize   int          `json:"pageSize"`
	Count      int          `json:"count"`
	TotalCount int          `json:"totalCount"`
}

type cardRecord struct {
	ID        string        `json:"id" validate:"required"`
	Name      string        `json:"name" validate:"required"`
	Supertype *string       `json:"supertype"`
	Subtypes  []string      `json:"subtypes"`
	HP        *string       `json:"hp"`
	Types     []string      `json:"types"`
	Artist    *string       `json:"artist"`
	Rarity    *string       `json:"rarity"`
	Series    *string       `json:"series"`
	Set       *setRecord    `json:"set"`
	Number    *string       `json:"number"`
	Images    *imagesRecord `json:"images" validate:"required"`
}

type setRecord struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Series       string `json:"series"`
	PrintedTotal int    `json:"printedTotal"`
	Total        int    `json:"total"`
	ReleaseDate  string `json:"releaseDate"`
}

type imagesRecord struct {
	Small string `json:"small" validate:"required"`
	Large string `json:"large"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// convertCards validates and maps every record. The first invalid record
// fails the whole page.
func (c *Client) convertCards(records []cardRecord) ([]cards.Card, error) {
	out := make([]cards.Card, 0, len(records))
	for i, r := range records {
		if err := c.validate.Struct(r); err != nil {
			return nil, mappingError(i, r.ID, err)
		}
		out = append(out, convertToCard(r))
	}
	return out, nil
}

func mappingError(index int, id string, err error) error {
	me := &errors.MappingError{Index: index, CardID: id, Field: "record", Message: err.Error()}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		me.Field = field
		me.Message = "is " + fe.Tag()
	}
	return me
}

// convertToCard maps a wire record to a card. Missing optional values stay nil.
func convertToCard(r cardRecord) cards.Card {
	card := cards.Card{
		ID:            r.ID,
		Name:          r.Name,
		ImageURL:      r.Images.Small,
		ImageURLHiRes: ptr.NonEmpty(r.Images.Large),
		Supertype:     nonEmpty(r.Supertype),
		Subtype:       ptr.First(r.Subtypes),
		HP:            nonEmpty(r.HP),
		Artist:        nonEmpty(r.Artist),
		Rarity:        nonEmpty(r.Rarity),
		Series:        nonEmpty(r.Series),
		Number:        nonEmpty(r.Number),
	}
	if r.Set != nil {
		card.Set = ptr.NonEmpty(r.Set.Name)
		card.SetCode = ptr.NonEmpty(r.Set.ID)
	}
	return card
}

func nonEmpty(p *string) *string {
	if p == nil {
		return nil
	}
	return ptr.NonEmpty(*p)
}
