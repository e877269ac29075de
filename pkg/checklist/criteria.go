package checklist

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Criteria configures the filter pipeline. The zero value keeps every
// record. All active predicates are combined with logical AND.
type Criteria struct {
	// RefIncluded keeps records whose Subset is in the given set.
	RefIncluded []string

	// RefExcluded drops records with the given reference IDs.
	RefExcluded []int

	// TypeRef keeps records whose reference Type is in the given set.
	TypeRef []string

	// EntityClass keeps records whose polygon class is in the given set.
	EntityClass []string

	// Require-flag switches. A record passes only when the flag is
	// present and true; a null flag counts as not indicated.
	NativeIndicated  bool
	NaturalIndicated bool
	EndRef           bool
	EndList          bool
	SuitGeo          bool

	// CompleteTaxon keeps only polygons where at least one remaining
	// checklist covers the whole target taxon. It runs after all other
	// predicates, on the taxon-restricted set.
	CompleteTaxon bool

	// IncludeRestricted keeps records from restricted-use references.
	// Off by default.
	IncludeRestricted bool
}

// Validate checks every criteria value against its enumerated domain.
// It runs before any filtering so the whole call fails fast on a typo.
func (c *Criteria) Validate() error {
	for _, s := range c.RefIncluded {
		if _, ok := subsetDomain[s]; !ok {
			return CriteriaError("ref_included", s, domainValues(subsetDomain))
		}
	}
	for _, s := range c.TypeRef {
		if _, ok := typeDomain[s]; !ok {
			return CriteriaError("type_ref", s, domainValues(typeDomain))
		}
	}
	for _, s := range c.EntityClass {
		if _, ok := classDomain[s]; !ok {
			return CriteriaError("entity_class", s, domainValues(classDomain))
		}
	}
	return nil
}

func domainValues(domain map[string]struct{}) string {
	vals := slices.Sorted(maps.Keys(domain))
	var lines []string
	for _, v := range vals {
		lines = append(lines, fmt.Sprintf("  * %s", v))
	}
	return strings.Join(lines, "\n")
}
