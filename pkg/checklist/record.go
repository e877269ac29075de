// Package checklist implements the checklist-metadata filter pipeline.
//
// A Record is one row per (reference, list, polygon, taxon) combination as
// returned by the data service. Filtering is a sequence of independent
// row-subset predicates combined with logical AND, followed by an optional
// complete-coverage filter driven by the nested-set taxonomy.
package checklist

// Reference subset statuses recognized by the service.
const (
	SubsetAll         = "all"
	SubsetNative      = "native"
	SubsetNaturalized = "naturalized"
	SubsetEndemic     = "endemic"
)

// Reference types recognized by the service.
const (
	TypeAccount    = "Account"
	TypeCatalogue  = "Catalogue"
	TypeChecklist  = "Checklist"
	TypeFlora      = "Flora"
	TypeHerbarium  = "Herbarium_collection"
	TypeKey        = "Key"
	TypeRedList    = "Red_list"
	TypeReport     = "Report"
	TypeSpeciesDB  = "Species_Database"
	TypeSurvey     = "Survey"
)

// Polygon classes recognized by the service.
const (
	ClassIsland         = "Island"
	ClassMainland       = "Mainland"
	ClassIslandMainland = "Island/Mainland"
	ClassIslandGroup    = "Island Group"
	ClassIslandPart     = "Island Part"
)

// Record is one checklist-metadata row. Indicator flags come from the
// service as 0/1/null; a nil pointer means the flag was not reported.
type Record struct {
	RefID    int `json:"ref_ID"`
	ListID   int `json:"list_ID"`
	EntityID int `json:"entity_ID"`
	TaxonID  int `json:"taxon_ID"`

	// Subset is the floristic status category the list covers.
	Subset string `json:"subset"`

	// Type is the kind of reference the list comes from.
	Type string `json:"type"`

	// EntityClass is the class of the polygon the list belongs to.
	EntityClass string `json:"entity_class"`

	NativeIndicated  *bool `json:"native_indicated"`
	NaturalIndicated *bool `json:"natural_indicated"`
	EndRef           *bool `json:"end_ref"`
	EndList          *bool `json:"end_list"`
	SuitGeo          *bool `json:"suit_geo"`

	// Restricted marks lists with a restrictive data-use policy.
	Restricted bool `json:"restricted"`
}

var subsetDomain = map[string]struct{}{
	SubsetAll:         {},
	SubsetNative:      {},
	SubsetNaturalized: {},
	SubsetEndemic:     {},
}

var typeDomain = map[string]struct{}{
	TypeAccount:   {},
	TypeCatalogue: {},
	TypeChecklist: {},
	TypeFlora:     {},
	TypeHerbarium: {},
	TypeKey:       {},
	TypeRedList:   {},
	TypeReport:    {},
	TypeSpeciesDB: {},
	TypeSurvey:    {},
}

var classDomain = map[string]struct{}{
	ClassIsland:         {},
	ClassMainland:       {},
	ClassIslandMainland: {},
	ClassIslandGroup:    {},
	ClassIslandPart:     {},
}
