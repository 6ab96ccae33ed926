package colour

import (
	"errors"
	"testing"
)

func TestContrastRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "black on white", a: "#000000", b: "#FFFFFF", want: 21},
		{name: "same colour", a: "#336699", b: "#336699", want: 1},
		{name: "grey on white", a: "#767676", b: "#FFFFFF", want: 4.54},
		{name: "red on white", a: "#FF0000", b: "#FFFFFF", want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ContrastRatio(tt.a, tt.b)
			if err != nil {
				t.Fatal(err)
			}
			if Round(got, 2) != tt.want {
				t.Errorf("ContrastRatio(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestContrastRatioSymmetric(t *testing.T) {
	colours := []string{"#000000", "#FFFFFF", "#FF0000", "#00FF00", "#123456", "#ABCDEF", "#121212"}
	for _, a := range colours {
		for _, b := range colours {
			ab, _ := ContrastRatio(a, b)
			ba, _ := ContrastRatio(b, a)
			if ab != ba {
				t.Errorf("ContrastRatio(%s, %s) = %v but reversed = %v", a, b, ab, ba)
			}
			if ab < 1 || ab > 21.000001 {
				t.Errorf("ContrastRatio(%s, %s) = %v out of bounds", a, b, ab)
			}
		}
	}
}

func TestContrastRatioInvalid(t *testing.T) {
	if _, err := ContrastRatio("#FFF", "#000000"); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("error = %v, want ErrInvalidFormat", err)
	}
}

func TestRatingFor(t *testing.T) {
	tests := []struct {
		ratio float64
		large bool
		want  Rating
	}{
		{1, false, RatingFail},
		{2.99, false, RatingFail},
		{3, false, RatingAALarge},
		{4.49, false, RatingAALarge},
		{4.5, false, RatingAA},
		{6.99, false, RatingAA},
		{7, false, RatingAAA},
		{21, false, RatingAAA},
		{2.99, true, RatingFail},
		{3, true, RatingAA},
		{4.5, true, RatingAAA},
	}

	for _, tt := range tests {
		if got := RatingFor(tt.ratio, tt.large); got != tt.want {
			t.Errorf("RatingFor(%v, %v) = %s, want %s", tt.ratio, tt.large, got, tt.want)
		}
	}
}

func TestRatingMonotonic(t *testing.T) {
	for _, large := range []bool{false, true} {
		prev := RatingFail
		for r := 1.0; r <= 21; r += 0.01 {
			got := RatingFor(r, large)
			if got < prev {
				t.Fatalf("RatingFor(%v, %v) = %s after %s", r, large, got, prev)
			}
			prev = got
		}
	}
}

func TestParseRating(t *testing.T) {
	tests := []struct {
		in   string
		want Rating
	}{
		{"AAA", RatingAAA},
		{"aa", RatingAA},
		{"AA Large", RatingAALarge},
		{"aa-large", RatingAALarge},
		{"fail", RatingFail},
	}
	for _, tt := range tests {
		got, err := ParseRating(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseRating(%q) = %s, %v, want %s", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseRating("A"); err == nil {
		t.Error("ParseRating(A) expected error")
	}
	if !RatingAAA.Meets(RatingAA) || RatingAALarge.Meets(RatingAA) {
		t.Error("Meets ordering is wrong")
	}
}

func TestAnalyseBackgrounds(t *testing.T) {
	got, err := AnalyseBackgrounds("#FFFF00")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Backgrounds) != 2 {
		t.Fatalf("Backgrounds = %v, want white and black", got.Backgrounds)
	}
	if got.Backgrounds[1].Background != Black || got.Backgrounds[1].Rating != RatingAAA {
		t.Errorf("against black = %+v, want AAA", got.Backgrounds[1])
	}
	if got.Recommendation != RecommendBlackText {
		t.Errorf("Recommendation = %q, want %q", got.Recommendation, RecommendBlackText)
	}

	dark, err := AnalyseBackgrounds("#000080", "#FFFFFF")
	if err != nil {
		t.Fatal(err)
	}
	if dark.Recommendation != RecommendWhiteText {
		t.Errorf("Recommendation = %q, want %q", dark.Recommendation, RecommendWhiteText)
	}

	if _, err := AnalyseBackgrounds("#000080", "white"); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("invalid background error = %v", err)
	}
}
