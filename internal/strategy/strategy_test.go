package strategy

import "testing"

func TestNamedContainsAllFiveStrategies(t *testing.T) {
	named := Named()
	want := []string{"random", "fortify", "attack", "convert", "undercut"}
	if len(named) != len(want) {
		t.Fatalf("Named() has %d entries, want %d", len(named), len(want))
	}
	for _, name := range want {
		if _, ok := named[name]; !ok {
			t.Errorf("Named() missing strategy %q", name)
		}
	}
}

func TestStrategyFieldValues(t *testing.T) {
	tests := []struct {
		name string
		st   Strategy
		want Strategy
	}{
		{"random", Random, Strategy{"random", false, false, NoSource, Any, Any}},
		{"fortify", Fortify, Strategy{"fortify", true, false, FromSource, Yes, Any}},
		{"attack", Attack, Strategy{"attack", true, true, FromSource, Toleration, No}},
		{"convert", Convert, Strategy{"convert", true, true, FromTarget, Yes, Any}},
		{"undercut", Undercut, Strategy{"undercut", true, true, FromTarget, Toleration, No}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.st != tt.want {
				t.Errorf("%s = %+v, want %+v", tt.name, tt.st, tt.want)
			}
		})
	}
}
