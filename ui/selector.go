package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/lribeiro/dexview/catalog"
)

// SelectRegion presents an interactive menu for choosing a region
// before the viewer starts.
func SelectRegion(regions []catalog.Region) (catalog.Region, error) {
	if len(regions) == 0 {
		return catalog.Region{}, errors.New("no regions to select from")
	}

	var selected string
	options := make([]huh.Option[string], len(regions))
	for i, r := range regions {
		label := fmt.Sprintf("%s (#%d–#%d, %d Pokémon)", r.Name, r.Start, r.End, r.Count)
		options[i] = huh.NewOption(label, r.Key)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose a region:").
				Options(options...).
				Value(&selected),
		),
	)

	if err := form.Run(); err != nil {
		return catalog.Region{}, err
	}

	region, ok := catalog.RegionByKey(selected)
	if !ok {
		return catalog.Region{}, errors.New("selection not found")
	}
	return region, nil
}
