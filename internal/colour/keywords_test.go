package colour

import "testing"

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{name: "red", want: "#FF0000", wantOK: true},
		{name: " RebeccaPurple ", want: "#663399", wantOK: true},
		{name: "grey", want: "#808080", wantOK: true},
		{name: "currentColor"},
		{name: ""},
	}
	for _, tt := range tests {
		got, ok := LookupKeyword(tt.name)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("LookupKeyword(%q) = %q, %v, want %q, %v", tt.name, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestNearestName(t *testing.T) {
	tests := []struct {
		rgb   RGB
		want  string
		exact bool
	}{
		{rgb: RGB{R: 255}, want: "red", exact: true},
		{rgb: RGB{R: 128, G: 128, B: 128}, want: "gray", exact: true},
		{rgb: RGB{G: 255, B: 255}, want: "aqua", exact: true},
		{rgb: RGB{R: 250, G: 2, B: 3}, want: "red"},
	}
	for _, tt := range tests {
		name, dist := NearestName(tt.rgb)
		if name != tt.want {
			t.Errorf("NearestName(%s) = %q, want %q", tt.rgb.Hex(), name, tt.want)
		}
		if tt.exact && dist > 1e-9 {
			t.Errorf("NearestName(%s) distance = %v, want 0", tt.rgb.Hex(), dist)
		}
		if !tt.exact && dist <= 0 {
			t.Errorf("NearestName(%s) distance = %v, want > 0", tt.rgb.Hex(), dist)
		}
	}
}
