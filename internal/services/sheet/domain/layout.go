package domain

// The V20 template names every dot as its own checkbox, dot1 through
// dot423, in fixed rows of eight (five for virtues). Each trait category
// starts at a fixed base offset; these tables are the layout contract,
// obtained by inspecting the template's fields.
const (
	dotBlockSize    = 8
	virtueBlockSize = 5
	trackerSlots    = 10

	attributeDotBase  = 1
	abilityDotBase    = 73
	disciplineDotBase = 313
	backgroundDotBase = 361

	// Disciplines and backgrounds get six visible rows each; anything
	// beyond that moves to the free-text overflow section.
	traitSlots     = 6
	maxMiscLines = 13

	humanityPrefix  = "hdot"
	willpowerPrefix = "willdot"

	defaultHumanity  = 7
	defaultWillpower = 6
)

// attributeOrder matches the sheet's column flow: Physical, Social, Mental.
var attributeOrder = []string{
	"strength", "dexterity", "stamina",
	"charisma", "manipulation", "appearance",
	"perception", "intelligence", "wits",
}

// abilityOrder matches the sheet's column flow: Talents, Skills, Knowledges.
var abilityOrder = []string{
	"alertness", "athletics", "awareness", "brawl", "empathy",
	"expression", "intimidation", "leadership", "streetwise", "subterfuge",

	"animal_ken", "crafts", "drive", "etiquette", "firearms",
	"larceny", "melee", "performance", "stealth", "survival",

	"academics", "computer", "finance", "investigation", "law",
	"medicine", "occult", "politics", "science", "technology",
}

// virtueLayout fixes each virtue's five-dot row start. Virtues are rated
// 1-5 and default to 1 rather than 0.
var virtueLayout = []struct {
	Name string
	Base int
}{
	{"conscience", 409},
	{"self_control", 414},
	{"courage", 419},
}

const (
	overflowHeading           = "OTHER TRAITS"
	disciplineOverflowHeading = "--- Additional Disciplines ---"
	backgroundOverflowHeading = "--- Additional Backgrounds ---"
)
