package adapter

import "testing"

func TestChange(t *testing.T) {
	tests := []struct {
		name   string
		change Change
		kind   ChangeKind
		str    string
	}{
		{"zero value", Change{}, ChangeNone, "none"},
		{"none", None, ChangeNone, "none"},
		{"all", All, ChangeAll, "all"},
		{"empty part", Part(), ChangeNone, "none"},
		{"part", Part(1, 3), ChangePart, "part(1,3)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.change.Kind(); got != tt.kind {
				t.Errorf("Kind() = %v, want %v", got, tt.kind)
			}
			if got := tt.change.String(); got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}
		})
	}
}

func TestChangeIndicesAreCopied(t *testing.T) {
	in := []int{0, 2}
	c := Part(in...)
	in[0] = 9
	got := c.Indices()
	got[1] = 7

	if !c.Equal(Part(0, 2)) {
		t.Errorf("Part was mutated through its input or output: %v", c)
	}
}

func TestChangeEqual(t *testing.T) {
	if !Part(1).Equal(Part(1)) {
		t.Error("Part(1) != Part(1)")
	}
	if Part(1).Equal(Part(1, 2)) {
		t.Error("Part(1) == Part(1, 2)")
	}
	if All.Equal(None) {
		t.Error("All == None")
	}
}
