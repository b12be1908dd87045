package domain

import (
	"fmt"
	"strconv"
)

// BuildFieldMap assembles every AcroForm value for one character: dot
// rows for all trait categories, trackers, text fields, and the overflow
// section. The result is deterministic and complete; the applicator
// writes it to the template in one shot.
func BuildFieldMap(c Character) FieldMap {
	fields := make(FieldMap, 512)

	mainDisciplines, overflowDisciplines := splitTraits(rankTraits(c.Disciplines), traitSlots)
	mainBackgrounds, overflowBackgrounds := splitTraits(rankTraits(c.Backgrounds), traitSlots)

	for i, line := range overflowLines(overflowDisciplines, overflowBackgrounds) {
		if i >= maxMiscLines {
			break
		}
		fields[fmt.Sprintf("misc%d", i+1)] = Text(line)
	}

	fields.merge(textFields(c))

	for i, name := range attributeOrder {
		fields.merge(dotBlock(attributeDotBase+i*dotBlockSize, c.Attributes.Rating(name, 1)))
	}
	for i, name := range abilityOrder {
		fields.merge(dotBlock(abilityDotBase+i*dotBlockSize, c.Abilities.Rating(name, 0)))
	}

	for i, trait := range mainDisciplines {
		fields[fmt.Sprintf("disciplines%d", i+1)] = Text(displayName(trait.Name))
		fields.merge(dotBlock(disciplineDotBase+i*dotBlockSize, trait.Rating))
	}
	for i, trait := range mainBackgrounds {
		fields[fmt.Sprintf("back%d", i+1)] = Text(displayName(trait.Name))
		fields.merge(dotBlock(backgroundDotBase+i*dotBlockSize, trait.Rating))
	}

	for _, virtue := range virtueLayout {
		fields.merge(virtueBlock(virtue.Base, c.Virtues.Rating(virtue.Name, 1)))
	}

	humanity := defaultHumanity
	if c.Humanity != nil {
		humanity = *c.Humanity
	}
	fields.merge(tracker(humanityPrefix, humanity, trackerSlots))

	willpower := defaultWillpower
	if c.Willpower != nil {
		willpower = *c.Willpower
	}
	fields.merge(tracker(willpowerPrefix, willpower, trackerSlots))

	return fields
}

func textFields(c Character) FieldMap {
	weakness := ""
	if c.Clan != nil {
		weakness = c.Clan.Weakness
	}
	return FieldMap{
		"name":       Text(c.Name),
		"player":     Text(c.Player),
		"chronicle":  Text(c.Chronicle),
		"nature":     Text(c.Nature.Display()),
		"demeanor":   Text(c.Demeanor.Display()),
		"concept":    Text(c.Concept.Display()),
		"Clan":       Text(c.Clan.Display()),
		"gen":        Text(strconv.Itoa(c.Generation)),
		"sire":       Text(c.Sire),
		"ppt":        Text(strconv.Itoa(c.BloodPerTurn)),
		"weakness":   Text(weakness),
		"experience": Text(fmt.Sprintf("%d/%d", c.SpentExperience, c.TotalExperience)),
		// The template's own title box renders unreliably; the overflow
		// heading lives in misc1 instead.
		"misctitle": Text(" "),
	}
}
