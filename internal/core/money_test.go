package core

import "testing"

func TestParseCents(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "plain integer", input: "12", want: 1200},
		{name: "dot separator", input: "12.34", want: 1234},
		{name: "comma separator", input: "12,34", want: 1234},
		{name: "single fractional digit", input: "5.5", want: 550},
		{name: "third decimal rounds down", input: "12.344", want: 1234},
		{name: "third decimal rounds up", input: "12.346", want: 1235},
		{name: "zero allowed", input: "0", want: 0},
		{name: "leading dot", input: ".50", want: 50},
		{name: "surrounding spaces", input: "  7.25 ", want: 725},
		{name: "empty", input: "", wantErr: true},
		{name: "negative rejected", input: "-3", wantErr: true},
		{name: "explicit plus rejected", input: "+3", wantErr: true},
		{name: "letters rejected", input: "12a.3", wantErr: true},
		{name: "two dots rejected", input: "1.2.3", wantErr: true},
		{name: "overflow rejected", input: "99999999999999999999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCents(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseCents(%q) = %d, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCents(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseCents(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseAmount_RejectsZero(t *testing.T) {
	if _, err := ParseAmount("0"); err == nil {
		t.Fatal("ParseAmount(\"0\") should fail")
	}
	if _, err := ParseAmount("0.00"); err == nil {
		t.Fatal("ParseAmount(\"0.00\") should fail")
	}
}

func TestParseBudget_AllowsZero(t *testing.T) {
	m, err := ParseBudget("0")
	if err != nil {
		t.Fatalf("ParseBudget(\"0\") unexpected error: %v", err)
	}
	if m.Cents != 0 {
		t.Errorf("ParseBudget(\"0\") = %d cents, want 0", m.Cents)
	}
}

func TestMoneyString(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{1234, "12.34"},
		{30000, "300.00"},
		{-50, "-0.50"},
	}
	for _, tt := range tests {
		if got := (Money{Cents: tt.cents}).String(); got != tt.want {
			t.Errorf("Money{%d}.String() = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	m := Money{Cents: 1234}
	b, err := m.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"12.34"` {
		t.Fatalf("marshal = %s, want \"12.34\"", b)
	}

	var back Money
	if err := back.UnmarshalJSON(b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Cents != m.Cents {
		t.Errorf("round trip = %d cents, want %d", back.Cents, m.Cents)
	}

	// Bare numbers are accepted too
	var fromNumber Money
	if err := fromNumber.UnmarshalJSON([]byte(`99.5`)); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if fromNumber.Cents != 9950 {
		t.Errorf("unmarshal number = %d cents, want 9950", fromNumber.Cents)
	}
}
