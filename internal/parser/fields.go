package parser

import "sort"

const (
	// EntrySeparator terminates an entry block
	EntrySeparator = "///"
	// IDPrefix starts the first line of every entry block
	IDPrefix = "ID\t"
	// CommentMarker starts a comment line
	CommentMarker = '*'
	// TransferredDeleted is the field assigned to retired EC numbers
	TransferredDeleted = "TRANSFERRED_DELETED"
)

// fieldTags is the closed vocabulary of BRENDA field labels.
// A line equal to one of these starts a new field, anything else is continuation text.
var fieldTags = map[string]struct{}{
	"ACTIVATING_COMPOUND":            {},
	"APPLICATION":                    {},
	"CLONED":                         {},
	"COFACTOR":                       {},
	"CRYSTALLIZATION":                {},
	"ENGINEERING":                    {},
	"EXPRESSION":                     {},
	"GENERAL_INFORMATION":            {},
	"GENERAL_STABILITY":              {},
	"IC50_VALUE":                     {},
	"INHIBITORS":                     {},
	"KCAT_KM_VALUE":                  {},
	"KI_VALUE":                       {},
	"KM_VALUE":                       {},
	"LOCALIZATION":                   {},
	"METALS_IONS":                    {},
	"MOLECULAR_WEIGHT":               {},
	"NATURAL_SUBSTRATE_PRODUCT":      {},
	"ORGANIC_SOLVENT_STABILITY":      {},
	"OXIDATION_STABILITY":            {},
	"PH_OPTIMUM":                     {},
	"PH_RANGE":                       {},
	"PH_STABILITY":                   {},
	"PI_VALUE":                       {},
	"POSTTRANSLATIONAL_MODIFICATION": {},
	"PROTEIN":                        {},
	"PURIFICATION":                   {},
	"REACTION":                       {},
	"REACTION_TYPE":                  {},
	"RECOMMENDED_NAME":               {},
	"REFERENCE":                      {},
	"RENATURED":                      {},
	"SOURCE_TISSUE":                  {},
	"SPECIFIC_ACTIVITY":              {},
	"STORAGE_STABILITY":              {},
	"SUBSTRATE_PRODUCT":              {},
	"SUBUNITS":                       {},
	"SYNONYMS":                       {},
	"SYSTEMATIC_NAME":                {},
	"TEMPERATURE_OPTIMUM":            {},
	"TEMPERATURE_RANGE":              {},
	"TEMPERATURE_STABILITY":          {},
	TransferredDeleted:               {},
	"TURNOVER_NUMBER":                {},
}

// IsFieldTag reports whether line is a known field label
func IsFieldTag(line string) bool {
	_, ok := fieldTags[line]
	return ok
}

// FieldTags returns the vocabulary in sorted order
func FieldTags() []string {
	tags := make([]string, 0, len(fieldTags))
	for tag := range fieldTags {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
