package systems

import (
	"testing"

	"github.com/automoto/numeralrun/components"
	cfg "github.com/automoto/numeralrun/config"
	"github.com/automoto/numeralrun/movement"
)

func TestFormatNumeral(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{7, "7"},
		{-3, "−3"},
	}
	for _, tt := range tests {
		got := formatNumeral(tt.n)
		if got != tt.want {
			t.Errorf("formatNumeral(%d) = %q, want %q", tt.n, got, tt.want)
		}
		if n, ok := movement.ParseNumeral(got); !ok || n != tt.n {
			t.Errorf("ParseNumeral(%q) = %d, %v", got, n, ok)
		}
	}
}

func TestEditLabel(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		action cfg.ActionID
		want   string
		edited bool
	}{
		{name: "up", text: "4", action: cfg.ActionNumberUp, want: "5", edited: true},
		{name: "down_to_negative", text: "0", action: cfg.ActionNumberDown, want: "−1", edited: true},
		{name: "negate_typographic", text: "−2", action: cfg.ActionNegate, want: "2", edited: true},
		{name: "no_key", text: "4", action: cfg.ActionNone, edited: false},
		{name: "not_a_number", text: "x", action: cfg.ActionNumberUp, edited: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label := &components.LabelData{Text: tt.text}
			var in components.InputData
			if tt.action != cfg.ActionNone {
				in.Current[tt.action] = true
			}

			editLabel(label, &in)

			if label.Edited != tt.edited {
				t.Fatalf("edited = %v, want %v", label.Edited, tt.edited)
			}
			if tt.edited && label.Edit != tt.want {
				t.Errorf("edit = %q, want %q", label.Edit, tt.want)
			}
		})
	}
}

func TestApplyPickup(t *testing.T) {
	tests := []struct {
		name   string
		n      int
		pickup components.PickupData
		want   int
	}{
		{name: "add", n: 1, pickup: components.PickupData{Delta: 2}, want: 3},
		{name: "subtract", n: 1, pickup: components.PickupData{Delta: -3}, want: -2},
		{name: "negate", n: 4, pickup: components.PickupData{Negate: true, Delta: 9}, want: -4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := applyPickup(tt.n, &tt.pickup); got != tt.want {
				t.Errorf("applyPickup = %d, want %d", got, tt.want)
			}
		})
	}
}
