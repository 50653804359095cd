package fold

import "testing"

func TestNorm(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Qté ", "qte"},
		{"Désignation", "designation"},
		{"TOTAL TTC", "total ttc"},
		{"Téléphone", "telephone"},
		{"", ""},
		{"P.U.", "p.u."},
	}
	for _, tt := range tests {
		if got := Norm(tt.in); got != tt.want {
			t.Errorf("Norm(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
