package coursetools

import "strings"

// Category is a repair category in the fixed error taxonomy.
type Category string

const (
	CategoryScriptLength  Category = "SCRIPT_LENGTH"
	CategoryMCQSync       Category = "MCQ_SYNC"
	CategoryHallucination Category = "HALLUCINATION"
	CategoryToneDrift     Category = "TONE_DRIFT"
	CategoryPronunciation Category = "PRONUNCIATION"
	CategoryStructure     Category = "STRUCTURE"
	CategoryOther         Category = "OTHER"
)

// CategoryOrder is the fixed priority order: the first rule whose
// keyword matches wins, so every error lands in exactly one category.
var CategoryOrder = []Category{
	CategoryScriptLength,
	CategoryMCQSync,
	CategoryHallucination,
	CategoryToneDrift,
	CategoryPronunciation,
	CategoryStructure,
	CategoryOther,
}

var categoryKeywords = map[Category][]string{
	CategoryScriptLength:  {"too short", "too long", "word count"},
	CategoryMCQSync:       {"mcq", "timestamp"},
	CategoryHallucination: {"source", "hallucination", "inferred"},
	CategoryToneDrift:     {"forbidden", "teacher", "tone", "speaker", "dialogue"},
	CategoryPronunciation: {"pronunciation", "pronounce"},
	CategoryStructure:     {"structure", "section"},
}

// Categorize maps raw validation error strings into the repair
// taxonomy. Pure string matching in fixed priority order; unmatched
// errors fall into OTHER so nothing is dropped.
func Categorize(errors []string) map[Category][]string {
	out := make(map[Category][]string)
	for _, e := range errors {
		cat := categorizeOne(e)
		out[cat] = append(out[cat], e)
	}
	return out
}

func categorizeOne(err string) Category {
	lower := strings.ToLower(err)
	for _, cat := range CategoryOrder {
		for _, kw := range categoryKeywords[cat] {
			if strings.Contains(lower, kw) {
				return cat
			}
		}
	}
	return CategoryOther
}

// RepairActionFor maps one category to its single fixed repair
// action. Script length picks expansion or compression from the
// error wording.
func RepairActionFor(cat Category, errors []string) string {
	switch cat {
	case CategoryScriptLength:
		for _, e := range errors {
			if strings.Contains(strings.ToLower(e), "too long") {
				return ActionRegenLongScript
			}
		}
		return ActionRegenShortScript
	case CategoryMCQSync:
		return ActionRegenMCQSync
	case CategoryHallucination:
		return ActionRegenRemoveHallucination
	case CategoryToneDrift:
		return ActionRegenToneFix
	case CategoryPronunciation:
		return ActionRegenPronunciation
	case CategoryStructure:
		return ActionRegenStructure
	default:
		return ActionRegenClarity
	}
}
