package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/gnames/gnflora/pkg/checklist"
	"github.com/gnames/gnflora/pkg/flora"
	"github.com/spf13/cobra"
)

var (
	clTaxon          string
	clSubsets        []string
	clTypes          []string
	clClasses        []string
	clExcludeRefs    []int
	clNativeInd      bool
	clNaturalInd     bool
	clEndRef         bool
	clEndList        bool
	clSuitGeo        bool
	clCompleteTaxon  bool
	clRestricted     bool
	clRemoveOverlap  bool
	clAreaThMainland float64
	clAreaThIsland   float64
	clOverlapTh      float64
	clWithSpecies    bool
)

func getChecklistsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checklists",
		Short: "Retrieve and filter checklist metadata for a taxon",
		Long: `Retrieve checklist metadata for the subtree of a taxon and run it
through the filter pipeline.

The taxon subtree uses the service's nested-set taxonomy: checklists
tagged at descendants of the taxon and at covering ancestors are both
considered. With --complete-taxon only polygons holding at least one
checklist as broad as the taxon survive.

With --remove-overlap, redundantly overlapping polygons are dropped: per
conflicting pair the smaller polygon is kept when its area reaches the
class-specific threshold, otherwise the larger one is kept.

Examples:
  gnflora checklists --taxon Angiospermae
  gnflora checklists --taxon Orchidaceae --subset native --complete-taxon
  gnflora checklists --taxon Poaceae --remove-overlap --overlap-th 0.1`,
		RunE: runChecklists,
	}

	cmd.Flags().StringVar(&clTaxon, "taxon", "", "target taxon name (required)")
	cmd.Flags().StringSliceVar(&clSubsets, "subset", nil,
		"status categories to keep (all, native, naturalized, endemic)")
	cmd.Flags().StringSliceVar(&clTypes, "type-ref", nil,
		"reference types to keep")
	cmd.Flags().StringSliceVar(&clClasses, "entity-class", nil,
		"polygon classes to keep")
	cmd.Flags().IntSliceVar(&clExcludeRefs, "exclude-ref", nil,
		"reference IDs to drop")
	cmd.Flags().BoolVar(&clNativeInd, "native-indicated", false,
		"require the native status flag")
	cmd.Flags().BoolVar(&clNaturalInd, "natural-indicated", false,
		"require the naturalized status flag")
	cmd.Flags().BoolVar(&clEndRef, "end-ref", false,
		"require endemism information at the reference level")
	cmd.Flags().BoolVar(&clEndList, "end-list", false,
		"require endemism information at the list level")
	cmd.Flags().BoolVar(&clSuitGeo, "suit-geo", false,
		"require suitable polygon geometry")
	cmd.Flags().BoolVar(&clCompleteTaxon, "complete-taxon", false,
		"keep only polygons with complete taxonomic coverage")
	cmd.Flags().BoolVar(&clRestricted, "include-restricted", false,
		"include restricted-use references")
	cmd.Flags().BoolVar(&clRemoveOverlap, "remove-overlap", false,
		"drop redundantly overlapping polygons")
	cmd.Flags().Float64Var(&clAreaThMainland, "area-th-mainland", 100,
		"area threshold (km2) for mainland polygons")
	cmd.Flags().Float64Var(&clAreaThIsland, "area-th-island", 0,
		"area threshold (km2) for island polygons")
	cmd.Flags().Float64Var(&clOverlapTh, "overlap-th", 0.1,
		"overlap fraction above which two polygons conflict")
	cmd.Flags().BoolVar(&clWithSpecies, "with-species", false,
		"also download species rows of surviving checklists")

	_ = cmd.MarkFlagRequired("taxon")

	return cmd
}

func runChecklists(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := getConfig()

	client, err := buildClient(cfg)
	if err != nil {
		return err
	}

	res, err := client.Checklists(ctx, flora.ChecklistQuery{
		Taxon: clTaxon,
		Criteria: checklist.Criteria{
			RefIncluded:       clSubsets,
			RefExcluded:       clExcludeRefs,
			TypeRef:           clTypes,
			EntityClass:       clClasses,
			NativeIndicated:   clNativeInd,
			NaturalIndicated:  clNaturalInd,
			EndRef:            clEndRef,
			EndList:           clEndList,
			SuitGeo:           clSuitGeo,
			CompleteTaxon:     clCompleteTaxon,
			IncludeRestricted: clRestricted,
		},
		RemoveOverlap:  clRemoveOverlap,
		AreaThMainland: clAreaThMainland,
		AreaThIsland:   clAreaThIsland,
		OverlapTh:      clOverlapTh,
		WithSpecies:    clWithSpecies,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Checklist records: %d\n", len(res.Records))
	fmt.Printf("Polygons: %d\n", len(res.EntityIDs))
	if len(res.RemovedEntityIDs) > 0 {
		removed := make([]string, len(res.RemovedEntityIDs))
		for i, id := range res.RemovedEntityIDs {
			removed[i] = fmt.Sprintf("%d", id)
		}
		fmt.Printf("Polygons removed by de-overlap: %s\n",
			strings.Join(removed, ", "))
	}
	if clWithSpecies {
		var total int
		for _, rows := range res.Species {
			total += len(rows)
		}
		fmt.Printf("Species rows: %d\n", total)
	}

	return nil
}
