package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Character is the request payload produced by the Elysium generator.
// The JSON field set mirrors the generator's character model; fields the
// sheet does not render are still decoded so payloads round-trip cleanly.
type Character struct {
	Name      string `json:"name"`
	Player    string `json:"player"`
	Chronicle string `json:"chronicle"`
	Sire      string `json:"sire"`

	Concept  *Reference `json:"concept"`
	Clan     *Reference `json:"clan"`
	Nature   *Reference `json:"nature"`
	Demeanor *Reference `json:"demeanor"`

	Generation      int    `json:"generation"`
	Age             int    `json:"age"`
	AgeCategory     string `json:"ageCategory"`
	BloodPerTurn    int    `json:"bloodPointsPerTurn"`
	MaxBloodPool    int    `json:"maximumBloodPool"`
	TotalExperience int    `json:"totalExperience"`
	SpentExperience int    `json:"spentExperience"`

	Attributes  TraitRatings `json:"attributes"`
	Abilities   TraitRatings `json:"abilities"`
	Disciplines TraitRatings `json:"disciplines"`
	Backgrounds TraitRatings `json:"backgrounds"`
	Virtues     TraitRatings `json:"virtues"`

	// Trackers distinguish "not sent" from zero; the assembler applies
	// the sheet defaults (7 and 6) when nil.
	Humanity  *int `json:"humanity"`
	Willpower *int `json:"willpower"`
}

// NewCharacter returns a character carrying the generator's documented
// defaults. Decoding a request body over this value leaves defaults in
// place for absent fields.
func NewCharacter() Character {
	return Character{
		Name:         "Unknown Kindred",
		Generation:   13,
		BloodPerTurn: 1,
		MaxBloodPool: 10,
	}
}

// Reference identifies a categorical choice (clan, nature, demeanor,
// concept). The wire shape varies between generator versions: a structured
// object, a bare string holding the display name, or nothing at all.
// Decoding is total: shapes that fit neither form resolve to the zero
// value rather than failing.
type Reference struct {
	ID          string
	Name        string
	Description string
	Weakness    string
}

// UnmarshalJSON decodes any of the accepted reference shapes.
func (r *Reference) UnmarshalJSON(data []byte) error {
	*r = Reference{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return nil
		}
		r.Name = name
		return nil
	}
	if data[0] != '{' {
		return nil
	}
	var obj struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Weakness    string `json:"weakness"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil
	}
	r.ID = obj.ID
	r.Name = obj.Name
	r.Description = obj.Description
	r.Weakness = obj.Weakness
	return nil
}

// Display returns the reference's sheet label, empty when unset.
func (r *Reference) Display() string {
	if r == nil {
		return ""
	}
	return r.Name
}

// TraitRatings is a name -> rating map that remembers the order keys
// appeared in the request document. Ranking ties are broken by that
// order, so it must survive decoding.
type TraitRatings struct {
	names   []string
	ratings map[string]int
}

// UnmarshalJSON decodes a JSON object of trait ratings. Member values are
// coerced leniently: bad trait data degrades to a zero rating instead of
// failing the whole request.
func (t *TraitRatings) UnmarshalJSON(data []byte) error {
	t.names = nil
	t.ratings = nil
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode traits: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("traits must be a JSON object")
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode trait name: %w", err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("trait name must be a string")
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("decode trait %q: %w", name, err)
		}
		t.Set(name, coerceRating(value))
	}
	return nil
}

// Set records a rating, keeping first-seen key order.
func (t *TraitRatings) Set(name string, rating int) {
	if t.ratings == nil {
		t.ratings = make(map[string]int)
	}
	if _, exists := t.ratings[name]; !exists {
		t.names = append(t.names, name)
	}
	t.ratings[name] = rating
}

// Get returns the rating for name and whether it was present.
func (t TraitRatings) Get(name string) (int, bool) {
	rating, ok := t.ratings[name]
	return rating, ok
}

// Rating returns the rating for name, or fallback when the trait is absent.
func (t TraitRatings) Rating(name string, fallback int) int {
	if rating, ok := t.ratings[name]; ok {
		return rating
	}
	return fallback
}

// Len reports how many traits are recorded.
func (t TraitRatings) Len() int {
	return len(t.names)
}

// Names returns the trait names in request order.
func (t TraitRatings) Names() []string {
	return slices.Clone(t.names)
}

// coerceRating converts a decoded JSON value to a non-negative rating.
// Numbers truncate, numeric strings parse, everything else reads as zero.
func coerceRating(value any) int {
	var rating int
	switch value := value.(type) {
	case float64:
		rating = int(value)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return 0
		}
		rating = parsed
	default:
		return 0
	}
	return max(rating, 0)
}
