package models

import (
	"testing"
)

func TestClient_Placeholders(t *testing.T) {
	cuit := "20-12345678-9"
	empty := ""
	tests := []struct {
		name      string
		client    Client
		wantTaxID string
		wantEmail string
	}{
		{"both set", Client{TaxID: &cuit, Email: strPtr("a@b.c")}, cuit, "a@b.c"},
		{"nil values", Client{}, "-", "-"},
		{"empty strings", Client{TaxID: &empty, Email: &empty}, "-", "-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.client.TaxIDOr("-"); got != tt.wantTaxID {
				t.Errorf("TaxIDOr() = %q, want %q", got, tt.wantTaxID)
			}
			if got := tt.client.EmailOr("-"); got != tt.wantEmail {
				t.Errorf("EmailOr() = %q, want %q", got, tt.wantEmail)
			}
		})
	}
}

func TestInvoice_FormattedDate(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2024-03-01", "01/03/2024"},
		{"2024-12-31", "31/12/2024"},
		// matches the stored shape but is not a calendar date
		{"2024-13-45", "2024-13-45"},
	}
	for _, tt := range tests {
		inv := &Invoice{Date: tt.date}
		if got := inv.FormattedDate(); got != tt.want {
			t.Errorf("FormattedDate(%q) = %q, want %q", tt.date, got, tt.want)
		}
	}
}

func TestInvoice_ClientNameAndFilename(t *testing.T) {
	inv := &Invoice{Number: "A-1"}
	if inv.ClientName() != "" {
		t.Errorf("expected empty client name without a loaded client")
	}
	inv.Client = &Client{Name: "Acme"}
	if inv.ClientName() != "Acme" {
		t.Errorf("ClientName() = %q, want Acme", inv.ClientName())
	}
	if got := inv.PDFFilename(); got != "factura_A-1.pdf" {
		t.Errorf("PDFFilename() = %q", got)
	}
}

func strPtr(s string) *string { return &s }
