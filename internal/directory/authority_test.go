package directory_test

import (
	"testing"

	"github.com/civicsetu/resolver/internal/directory"
	"github.com/civicsetu/resolver/internal/domain"
)

func TestDirectory_Lookup_Resolution(t *testing.T) {
	dir := directory.New()

	testCases := []struct {
		name         string
		locality     string
		wantDistrict string
		wantZone     string
	}{
		{
			name:         "exact district match",
			locality:     "Janakpuri",
			wantDistrict: "Janakpuri",
			wantZone:     "West Delhi",
		},
		{
			name:         "locality containing a district name",
			locality:     "Dwarka Sector 10",
			wantDistrict: "Dwarka",
			wantZone:     "South West Delhi",
		},
		{
			name:         "district containing the locality name",
			locality:     "Chandni",
			wantDistrict: "Chandni Chowk",
			wantZone:     "Old Delhi",
		},
		{
			name:         "case insensitive partial match",
			locality:     "rohini sector 7",
			wantDistrict: "Rohini",
			wantZone:     "North West Delhi",
		},
		{
			name:         "unknown locality falls back to headquarters",
			locality:     "Atlantis Enclave",
			wantDistrict: "New Delhi",
			wantZone:     "Delhi",
		},
		{
			name:         "empty locality falls back to headquarters",
			locality:     "",
			wantDistrict: "New Delhi",
			wantZone:     "Delhi",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			contact := dir.Lookup(tc.locality, domain.DepartmentGeneral)

			if contact.District != tc.wantDistrict {
				t.Errorf("district = %q, want %q", contact.District, tc.wantDistrict)
			}
			if contact.Zone != tc.wantZone {
				t.Errorf("zone = %q, want %q", contact.Zone, tc.wantZone)
			}
			if contact.Email == "" || contact.PrimaryEmail == "" {
				t.Errorf("contact must always carry an email, got %+v", contact)
			}
		})
	}
}

func TestDirectory_Lookup_DepartmentEmailRouting(t *testing.T) {
	dir := directory.New()

	testCases := []struct {
		name        string
		locality    string
		department  string
		wantPrimary string
	}{
		{
			name:        "PWD routes to the roads desk",
			locality:    "Janakpuri",
			department:  domain.DepartmentPWD,
			wantPrimary: "pwd-west@delhi.gov.in",
		},
		{
			name:        "Jal Board routes to the water desk",
			locality:    "Janakpuri",
			department:  domain.DepartmentJalBoard,
			wantPrimary: "djb-west@delhijalboard.in",
		},
		{
			name:        "other departments use the general address",
			locality:    "Janakpuri",
			department:  domain.DepartmentSanitation,
			wantPrimary: "west-zone@mcd.delhi.gov.in",
		},
		{
			name:        "missing roads desk falls back to the general address",
			locality:    "Lajpat Nagar",
			department:  domain.DepartmentPWD,
			wantPrimary: "central-zone@mcd.delhi.gov.in",
		},
		{
			name:        "missing water desk falls back to the general address",
			locality:    "Karol Bagh",
			department:  domain.DepartmentJalBoard,
			wantPrimary: "karolbagh-zone@mcd.delhi.gov.in",
		},
		{
			name:        "unmatched locality keeps the general address for PWD",
			locality:    "Atlantis Enclave",
			department:  domain.DepartmentPWD,
			wantPrimary: "complaints@mcd.delhi.gov.in",
		},
		{
			name:        "unmatched locality keeps the general address for Jal Board",
			locality:    "Atlantis Enclave",
			department:  domain.DepartmentJalBoard,
			wantPrimary: "complaints@mcd.delhi.gov.in",
		},
		{
			name:        "empty locality keeps the general address",
			locality:    "",
			department:  domain.DepartmentPWD,
			wantPrimary: "complaints@mcd.delhi.gov.in",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			contact := dir.Lookup(tc.locality, tc.department)

			if contact.PrimaryEmail != tc.wantPrimary {
				t.Errorf("primary email = %q, want %q", contact.PrimaryEmail, tc.wantPrimary)
			}
		})
	}
}
