package domain

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RankedTrait pairs a trait name with its rating after ranking.
type RankedTrait struct {
	Name   string
	Rating int
}

// rankTraits orders traits by rating, highest first. Traits with equal
// ratings keep the order they appeared in the request.
func rankTraits(traits TraitRatings) []RankedTrait {
	ranked := make([]RankedTrait, 0, traits.Len())
	for _, name := range traits.Names() {
		rating, _ := traits.Get(name)
		ranked = append(ranked, RankedTrait{Name: name, Rating: rating})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Rating > ranked[j].Rating
	})
	return ranked
}

// splitTraits partitions ranked traits into the sheet's visual slots and
// the overflow that must be listed as text.
func splitTraits(ranked []RankedTrait, slots int) (main, overflow []RankedTrait) {
	if len(ranked) <= slots {
		return ranked, nil
	}
	return ranked[:slots], ranked[slots:]
}

// overflowLines formats traits that did not fit their dot rows for the
// sheet's free-text section. The heading and its spacing line are always
// present; category sections appear only when that category overflowed.
// Callers cap the result at the sheet's misc line count.
func overflowLines(disciplines, backgrounds []RankedTrait) []string {
	lines := []string{overflowHeading, ""}
	if len(disciplines) > 0 {
		lines = append(lines, disciplineOverflowHeading)
		for _, trait := range disciplines {
			lines = append(lines, fmt.Sprintf("%s: %d", displayName(trait.Name), trait.Rating))
		}
		lines = append(lines, "")
	}
	if len(backgrounds) > 0 {
		lines = append(lines, backgroundOverflowHeading)
		for _, trait := range backgrounds {
			lines = append(lines, fmt.Sprintf("%s: %d", displayName(trait.Name), trait.Rating))
		}
		lines = append(lines, "")
	}
	return lines
}

// displayName converts a snake_case trait key into its sheet label, e.g.
// "animal_ken" -> "Animal Ken".
func displayName(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "_", " "))
}
