package primer

import "testing"

func TestRevComp(t *testing.T) {
	tests := []struct{ in, want string }{
		{"ACGT", "ACGT"},
		{"AACG", "CGTT"},
		{"RYSWKM", "KMWSRY"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := string(RevComp([]byte(tc.in))); got != tc.want {
			t.Errorf("RevComp(%s) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestValidate(t *testing.T) {
	if s, err := Validate(" ac gt "); err != nil || s != "ACGT" {
		t.Errorf("Validate: got %q, %v", s, err)
	}
	if _, err := Validate("ACQT"); err == nil {
		t.Error("expected error for Q")
	}
	if _, err := Validate(""); err == nil {
		t.Error("expected error for empty oligo")
	}
}
