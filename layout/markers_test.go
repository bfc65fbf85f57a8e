package layout

import "testing"

func TestIsBulletMarker(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"•", true},
		{"●", true},
		{"○", true},
		{"◦", true},
		{"▪", true},
		{"▸", true},
		{"►", true},
		{"-", true},
		{"–", true},
		{"—", true},
		{"• item", false},
		{"*", false},
		{"", false},
		{"text", false},
	}

	for _, tt := range tests {
		if got := IsBulletMarker(tt.text); got != tt.want {
			t.Errorf("IsBulletMarker(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestNumberMarker(t *testing.T) {
	tests := []struct {
		text    string
		wantNum string
		wantOK  bool
	}{
		{"1.", "1", true},
		{"12.", "12", true},
		{"3)", "3", true},
		{"4:", "4", true},
		{"1. text", "", false},
		{"1", "", false},
		{".", "", false},
		{"a.", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		num, ok := NumberMarker(tt.text)
		if ok != tt.wantOK || num != tt.wantNum {
			t.Errorf("NumberMarker(%q) = (%q, %v), want (%q, %v)",
				tt.text, num, ok, tt.wantNum, tt.wantOK)
		}
	}
}

func TestIsArrowContinuation(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"→", true},
		{"→ continued", true},
		{"→continued", false},
		{"text →", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsArrowContinuation(tt.text); got != tt.want {
			t.Errorf("IsArrowContinuation(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestStartsBulletItem(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"• item", true},
		{"- item", true},
		{"– item", true},
		{"•", false},
		{"•item", false},
		{"-item", false},
		{"item", false},
	}

	for _, tt := range tests {
		if got := StartsBulletItem(tt.text); got != tt.want {
			t.Errorf("StartsBulletItem(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestStartsNumberedItem(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"1. item", true},
		{"12) item", true},
		{"1.", false},
		{"1.item", false},
		{"1: item", false}, // colon markers are standalone-only
		{"item 1.", false},
	}

	for _, tt := range tests {
		if got := StartsNumberedItem(tt.text); got != tt.want {
			t.Errorf("StartsNumberedItem(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
