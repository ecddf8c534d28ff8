package recall

import (
	"encoding/json"
	"testing"
)

func TestPhaseString(t *testing.T) {
	tests := []struct {
		p    Phase
		want string
	}{
		{New, "New"},
		{Active, "Active"},
		{Relapsed, "Relapsed"},
		{Phase(0), "Phase(0)"},
		{Phase(9), "Phase(9)"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", int(tt.p), got, tt.want)
		}
	}
}

func TestPhaseJSONRoundTrip(t *testing.T) {
	for _, p := range []Phase{New, Active, Relapsed} {
		b, err := json.Marshal(p)
		if err != nil {
			t.Fatalf("marshal %s: %v", p, err)
		}
		var got Phase
		if err := json.Unmarshal(b, &got); err != nil {
			t.Fatalf("unmarshal %s: %v", b, err)
		}
		if got != p {
			t.Errorf("round trip: %s != %s", got, p)
		}
	}
}

func TestPhaseUnmarshalInvalid(t *testing.T) {
	var p Phase
	if err := json.Unmarshal([]byte(`"Dormant"`), &p); err == nil {
		t.Error("unmarshal of unknown phase should fail")
	}
}
