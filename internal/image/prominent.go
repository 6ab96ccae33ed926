package image

import (
	"fmt"
	"image"
	"sort"

	"github.com/EdlinOrg/prominentcolor"

	"github.com/jmylchreest/chromaspec/internal/colour"
)

// DefaultProminentCount is the number of k-means clusters used for prominent colours.
const DefaultProminentCount = 3

// ProminentColour is a k-means cluster centre and the share of pixels it covers.
type ProminentColour struct {
	Hex     string  `json:"color"`
	Share   float64 `json:"share"`
	Members int     `json:"pixels"`
}

// Prominent clusters img into k colours with k-means. Results are ordered
// by cluster size, largest first.
func Prominent(img image.Image, k int) ([]ProminentColour, error) {
	if k <= 0 {
		k = DefaultProminentCount
	}
	items, err := prominentcolor.KmeansWithAll(k, img, prominentcolor.ArgumentNoCropping, prominentcolor.DefaultSize, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to cluster colours: %w", err)
	}

	total := 0
	for _, item := range items {
		total += item.Cnt
	}

	out := make([]ProminentColour, 0, len(items))
	for _, item := range items {
		rgb := colour.RGB{R: uint8(item.Color.R), G: uint8(item.Color.G), B: uint8(item.Color.B)}
		share := 0.0
		if total > 0 {
			share = colour.Round(float64(item.Cnt)/float64(total)*100, 2)
		}
		out = append(out, ProminentColour{Hex: rgb.Hex(), Share: share, Members: item.Cnt})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Members > out[j].Members })
	return out, nil
}
