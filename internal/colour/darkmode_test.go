package colour

import (
	"math"
	"testing"
)

func TestCheckDarkMode(t *testing.T) {
	tests := []struct {
		name       string
		hex        string
		min        Rating
		compatible bool
	}{
		{name: "black fails on dark", hex: "#000000", min: RatingAA, compatible: false},
		{name: "white fails on light", hex: "#FFFFFF", min: RatingAA, compatible: false},
		{name: "mid grey passes large", hex: "#767676", min: RatingAALarge, compatible: true},
		{name: "mid grey fails AA", hex: "#767676", min: RatingAA, compatible: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CheckDarkMode(tt.hex, DefaultLightBackground, DefaultDarkBackground, tt.min)
			if err != nil {
				t.Fatal(err)
			}
			if got.Compatible != tt.compatible {
				t.Errorf("Compatible = %v, want %v (%s)", got.Compatible, tt.compatible, got)
			}
			want := got.Light.Rating.Meets(tt.min) && got.Dark.Rating.Meets(tt.min)
			if got.Compatible != want {
				t.Errorf("Compatible disagrees with ratings: %s", got)
			}
		})
	}
}

func TestCheckDarkModeInvalid(t *testing.T) {
	if _, err := CheckDarkMode("#000000", "#FFF", DefaultDarkBackground, RatingAA); err == nil {
		t.Error("expected error for invalid light background")
	}
}

func TestSuggestDarkModeAdjustments(t *testing.T) {
	got, err := SuggestDarkModeAdjustments("#000000", DefaultLightBackground, DefaultDarkBackground, RatingAALarge)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) == 0 {
		t.Fatal("expected at least one suggestion")
	}

	prev := 0.0
	for _, s := range got {
		res, err := CheckDarkMode(s.Colour, DefaultLightBackground, DefaultDarkBackground, RatingAALarge)
		if err != nil {
			t.Fatal(err)
		}
		if !res.Compatible {
			t.Errorf("suggestion %s is not compatible", s.Colour)
		}
		if math.Abs(s.Offset) < prev {
			t.Errorf("suggestions not ordered by magnitude: %v", got)
		}
		prev = math.Abs(s.Offset)
		if math.Abs(s.Offset) > DarkModeMaxOffset {
			t.Errorf("offset %v exceeds sweep", s.Offset)
		}
	}
	if got[0].Adjustment != "+40%" {
		t.Errorf("first suggestion = %+v, want +40%%", got[0])
	}
}

func TestSuggestDarkModeAdjustmentsMayBeEmpty(t *testing.T) {
	got, err := SuggestDarkModeAdjustments("#FF0000", DefaultLightBackground, DefaultDarkBackground, RatingAAA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Error("expected empty slice, got nil")
	}
}

func TestCompatibleTextColour(t *testing.T) {
	tests := []struct {
		name string
		min  Rating
		want string
	}{
		{name: "no grey reaches AA on both", min: RatingAA, want: Black},
		{name: "large text", min: RatingAALarge, want: "#666666"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CompatibleTextColour(DefaultLightBackground, DefaultDarkBackground, tt.min)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("CompatibleTextColour() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDarkModePalette(t *testing.T) {
	got, err := DarkModePalette("#3366CC", DefaultLightBackground, DefaultDarkBackground, RatingAA)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{RoleBackground, RolePrimary, RoleSecondary, RoleText} {
		if _, ok := got[name]; !ok {
			t.Errorf("missing result for %s", name)
		}
	}
	if _, err := DarkModePalette("nope", DefaultLightBackground, DefaultDarkBackground, RatingAA); err == nil {
		t.Error("expected error for invalid colour")
	}
}
