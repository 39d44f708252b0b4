package common

import "testing"

func TestResolveEntityType(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		want       EntityType
	}{
		{"first non-empty wins", []string{"", "institution", "expert"}, EntityTypeInstitution},
		{"organization maps to institution", []string{"Organization"}, EntityTypeInstitution},
		{"organisation maps to institution", []string{"organisation"}, EntityTypeInstitution},
		{"unknown falls back to expert", []string{"researcher"}, EntityTypeExpert},
		{"all empty defaults to expert", []string{"", "  "}, EntityTypeExpert},
		{"no candidates", nil, EntityTypeExpert},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveEntityType(tt.candidates...)
			if got != tt.want {
				t.Errorf("ResolveEntityType(%v) = %v, want %v", tt.candidates, got, tt.want)
			}
		})
	}
}

func TestContactEmpty(t *testing.T) {
	var nilContact *Contact
	if !nilContact.Empty() {
		t.Error("nil contact should be empty")
	}
	if !(&Contact{Confidence: 0.9}).Empty() {
		t.Error("contact with only confidence should be empty")
	}
	if (&Contact{Email: "a@example.org"}).Empty() {
		t.Error("contact with email should not be empty")
	}
	if (&Contact{ORCID: "0000-0001"}).Empty() {
		t.Error("contact with orcid should not be empty")
	}
}
