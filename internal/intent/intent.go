// Package intent maps free-text user questions about the Argo ocean
// observation program onto a small closed set of intents, and expands
// queries with intent-specific search hints.
package intent

// Intent is a closed-set label for what kind of information the user wants.
// The zero-value-adjacent default for unclassifiable text is ProgramOverview.
type Intent string

const (
	// ProgramOverview covers general "what is Argo / how does it work"
	// questions. It is also the fallback when nothing matches.
	ProgramOverview Intent = "program_overview"

	// RegionalStatus covers float status in a sea region (Indian Ocean,
	// Arabian Sea, Bay of Bengal).
	RegionalStatus Intent = "regional_status"

	// DataAccess covers downloading profiles, GDAC portals, NetCDF access.
	DataAccess Intent = "data_access"

	// LocationLookup covers finding floats near coordinates and float maps.
	LocationLookup Intent = "location_lookup"
)

// Default is returned when no pattern matches.
const Default = ProgramOverview

// All lists the declared intents in classification order.
func All() []Intent {
	return []Intent{ProgramOverview, RegionalStatus, DataAccess, LocationLookup}
}

func (i Intent) String() string {
	return string(i)
}

// Known reports whether i is one of the declared intents.
func (i Intent) Known() bool {
	switch i {
	case ProgramOverview, RegionalStatus, DataAccess, LocationLookup:
		return true
	}
	return false
}
