package fields

import "testing"

func TestIsMoney(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"12 500.00 DA", true},
		{"1,250", true},
		{"Total", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsMoney(tt.text); got != tt.want {
			t.Errorf("IsMoney(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestIsPhone(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"0550 12 34 56", true},
		{"+213 550 123 456", true},
		{"1234567", false}, // 7 digits is too short
		{"call me", false},
	}
	for _, tt := range tests {
		if got := IsPhone(tt.text); got != tt.want {
			t.Errorf("IsPhone(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestIsDate(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"23/06/2025", true},
		{"2025-06-23", true},
		{"23.06.25", true},
		{"June 2025", false},
		{"12500.00", false},
	}
	for _, tt := range tests {
		if got := IsDate(tt.text); got != tt.want {
			t.Errorf("IsDate(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestIsTextBlock(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"ACME Corp", true},
		{"ab", false},            // too short
		{"Suite 2000", false},    // carries digits
		{"12 500.00 DA", false},
	}
	for _, tt := range tests {
		if got := IsTextBlock(tt.text); got != tt.want {
			t.Errorf("IsTextBlock(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestCleanInvoiceNumber(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"123456 du 23/06/2025", "123456"},
		{"F-2023-001 dated 01/01/2024", "F-2023-001"},
		{"BL-99: ", "BL-99"},
		{"A7", "A7"},
	}
	for _, tt := range tests {
		if got := CleanInvoiceNumber(tt.text); got != tt.want {
			t.Errorf("CleanInvoiceNumber(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestCleanDate(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"le 23/06/2025 à Alger", "23/06/2025"},
		// Day-first matching is tried first and wins even inside a
		// year-first string, truncating the year to its last two digits.
		{"2025-06-23", "25-06-23"},
		{"no date here", "no date here"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CleanDate(tt.text); got != tt.want {
			t.Errorf("CleanDate(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestCleanSupplierName(t *testing.T) {
	if got := CleanSupplierName("Facture SARL X"); got != "" {
		t.Errorf("document keyword should discard the value, got %q", got)
	}
	if got := CleanSupplierName("  SARL TECHNO  "); got != "SARL TECHNO" {
		t.Errorf("CleanSupplierName = %q, want trimmed name", got)
	}
}

func TestCleanBuyerName(t *testing.T) {
	if got := CleanBuyerName("Adresse 12 rue X"); got != "" {
		t.Errorf("address label should be discarded, got %q", got)
	}
	if got := CleanBuyerName("ACME Corp"); got != "ACME Corp" {
		t.Errorf("CleanBuyerName = %q, want unchanged", got)
	}
}
