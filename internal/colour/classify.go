package colour

import (
	"fmt"
	"sort"
	"strings"
)

// Category is the hue family a colour belongs to.
type Category int

const (
	CategoryRed Category = iota
	CategoryGreen
	CategoryBlue
	CategoryOther
)

// Categories lists every category in display order.
var Categories = []Category{CategoryRed, CategoryGreen, CategoryBlue, CategoryOther}

func (c Category) String() string {
	switch c {
	case CategoryRed:
		return "red"
	case CategoryGreen:
		return "green"
	case CategoryBlue:
		return "blue"
	default:
		return "other"
	}
}

// MarshalText implements encoding.TextMarshaler so categories can key JSON objects.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCategory parses a category name.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red":
		return CategoryRed, nil
	case "green":
		return CategoryGreen, nil
	case "blue":
		return CategoryBlue, nil
	case "other":
		return CategoryOther, nil
	}
	return CategoryOther, fmt.Errorf("%w: unknown category %q", ErrInvalidFormat, s)
}

// HueRange is an inclusive hue interval in degrees. When Min > Max the
// interval wraps through 0.
type HueRange struct {
	Category Category
	Min      float64
	Max      float64
}

// Contains reports whether hue lies in the range.
func (r HueRange) Contains(hue float64) bool {
	if r.Min > r.Max {
		return hue >= r.Min || hue <= r.Max
	}
	return hue >= r.Min && hue <= r.Max
}

// HueRanges are the classification thresholds, checked in order.
var HueRanges = []HueRange{
	{Category: CategoryRed, Min: 345, Max: 15},
	{Category: CategoryGreen, Min: 90, Max: 150},
	{Category: CategoryBlue, Min: 180, Max: 250},
}

// MinCategorySaturation is the saturation (percent) below which a colour is
// always CategoryOther.
const MinCategorySaturation = 10.0

// Categorise assigns rgb to a category.
func Categorise(rgb RGB) Category {
	return categoriseHSL(RGBToHSL(rgb))
}

// Categorise assigns rgb to a category using the converter's cache.
func (c *Converter) Categorise(rgb RGB) Category {
	return categoriseHSL(c.HSL(rgb))
}

func categoriseHSL(hsl HSL) Category {
	if hsl.S < MinCategorySaturation {
		return CategoryOther
	}
	for _, r := range HueRanges {
		if r.Contains(hsl.H) {
			return r.Category
		}
	}
	return CategoryOther
}

// FrequencyMap maps canonical "#RRGGBB" colours to a percentage of the source.
type FrequencyMap map[string]float64

// Sum returns the total of all frequencies.
func (m FrequencyMap) Sum() float64 {
	var total float64
	for _, f := range m {
		total += f
	}
	return total
}

// ColourFrequency pairs a colour with its frequency.
type ColourFrequency struct {
	Hex       string  `json:"color"`
	Frequency float64 `json:"frequency"`
}

// SortFrequencies orders entries by descending frequency, ties by hex.
func SortFrequencies(entries []ColourFrequency) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Frequency != entries[j].Frequency {
			return entries[i].Frequency > entries[j].Frequency
		}
		return entries[i].Hex < entries[j].Hex
	})
}

// Entries returns the map as a sorted slice.
func (m FrequencyMap) Entries() []ColourFrequency {
	out := make([]ColourFrequency, 0, len(m))
	for hex, f := range m {
		out = append(out, ColourFrequency{Hex: hex, Frequency: f})
	}
	SortFrequencies(out)
	return out
}

// Categorised groups colours by category. Every category key is present.
type Categorised map[Category][]ColourFrequency

// CategoriseMany partitions a frequency map by category. Keys that are not
// valid hex colours are placed in CategoryOther.
func CategoriseMany(freqs FrequencyMap) Categorised {
	return (*Converter)(nil).CategoriseMany(freqs)
}

// CategoriseMany partitions a frequency map using the converter's cache.
func (c *Converter) CategoriseMany(freqs FrequencyMap) Categorised {
	out := make(Categorised, len(Categories))
	for _, cat := range Categories {
		out[cat] = []ColourFrequency{}
	}
	for hex, f := range freqs {
		cat := CategoryOther
		if rgb, err := HexToRGB(hex); err == nil {
			cat = c.Categorise(rgb)
		}
		out[cat] = append(out[cat], ColourFrequency{Hex: hex, Frequency: f})
	}
	for _, cat := range Categories {
		SortFrequencies(out[cat])
	}
	return out
}

// Count returns the number of colours in cat.
func (c Categorised) Count(cat Category) int {
	return len(c[cat])
}

// Total returns the number of colours across all categories.
func (c Categorised) Total() int {
	n := 0
	for _, entries := range c {
		n += len(entries)
	}
	return n
}

// Sum returns the total frequency across all categories.
func (c Categorised) Sum() float64 {
	var total float64
	for _, entries := range c {
		for _, e := range entries {
			total += e.Frequency
		}
	}
	return total
}

// Top returns the n most frequent colours across all categories.
func (c Categorised) Top(n int) []ColourFrequency {
	all := make([]ColourFrequency, 0, c.Total())
	for _, entries := range c {
		all = append(all, entries...)
	}
	SortFrequencies(all)
	if n >= 0 && len(all) > n {
		all = all[:n]
	}
	return all
}
