// Package directory maps a resolved locality to the responsible authority
// contact. The directory is an ordered list of records, not a map: the
// partial-match rule is first-match-wins over this declared order.
package directory

import (
	"strings"

	"github.com/civicsetu/resolver/internal/domain"
)

// record is one directory entry keyed by district name.
type record struct {
	District   string
	Body       string
	Zone       string
	Email      string
	Phone      string
	RoadsEmail string
	WaterEmail string
}

// records is the authority directory in lookup order. Broad zone records
// follow the specific districts they could otherwise shadow under substring
// matching.
var records = []record{
	{
		District: "Janakpuri", Body: "MCD West Zone Office", Zone: "West Delhi",
		Email: "west-zone@mcd.delhi.gov.in", Phone: "+91-11-2550-1234",
		RoadsEmail: "pwd-west@delhi.gov.in", WaterEmail: "djb-west@delhijalboard.in",
	},
	{
		District: "Dwarka", Body: "MCD Najafgarh Zone Office", Zone: "South West Delhi",
		Email: "najafgarh-zone@mcd.delhi.gov.in", Phone: "+91-11-2508-2345",
		RoadsEmail: "pwd-dwarka@delhi.gov.in", WaterEmail: "djb-dwarka@delhijalboard.in",
	},
	{
		District: "Rohini", Body: "MCD Rohini Zone Office", Zone: "North West Delhi",
		Email: "rohini-zone@mcd.delhi.gov.in", Phone: "+91-11-2705-3456",
		RoadsEmail: "pwd-rohini@delhi.gov.in", WaterEmail: "djb-rohini@delhijalboard.in",
	},
	{
		District: "Lajpat Nagar", Body: "MCD Central Zone Office", Zone: "South East Delhi",
		Email: "central-zone@mcd.delhi.gov.in", Phone: "+91-11-2984-4567",
		WaterEmail: "djb-south@delhijalboard.in",
	},
	{
		District: "Karol Bagh", Body: "MCD Karol Bagh Zone Office", Zone: "Central Delhi",
		Email: "karolbagh-zone@mcd.delhi.gov.in", Phone: "+91-11-2875-5678",
		RoadsEmail: "pwd-central@delhi.gov.in",
	},
	{
		District: "Saket", Body: "MCD South Zone Office", Zone: "South Delhi",
		Email: "south-zone@mcd.delhi.gov.in", Phone: "+91-11-2956-6789",
		RoadsEmail: "pwd-south@delhi.gov.in", WaterEmail: "djb-saket@delhijalboard.in",
	},
	{
		District: "Shahdara", Body: "MCD Shahdara North Zone Office", Zone: "East Delhi",
		Email: "shahdara-north@mcd.delhi.gov.in", Phone: "+91-11-2283-7890",
		WaterEmail: "djb-east@delhijalboard.in",
	},
	{
		District: "Chandni Chowk", Body: "MCD City-SP Zone Office", Zone: "Old Delhi",
		Email: "city-sp-zone@mcd.delhi.gov.in", Phone: "+91-11-2396-8901",
	},
	{
		District: "Najafgarh", Body: "MCD Najafgarh Zone Office", Zone: "South West Delhi",
		Email: "najafgarh-zone@mcd.delhi.gov.in", Phone: "+91-11-2508-2345",
		RoadsEmail: "pwd-najafgarh@delhi.gov.in",
	},
	{
		District: "Narela", Body: "MCD Narela Zone Office", Zone: "North Delhi",
		Email: "narela-zone@mcd.delhi.gov.in", Phone: "+91-11-2778-9012",
	},
}

// defaultRecord is returned when no directory entry matches.
var defaultRecord = record{
	District: "New Delhi", Body: "MCD Headquarters, Civic Centre", Zone: "Delhi",
	Email: "complaints@mcd.delhi.gov.in", Phone: "+91-11-2323-0000",
	RoadsEmail: "pwd-hq@delhi.gov.in", WaterEmail: "helpdesk@delhijalboard.in",
}

// Directory resolves localities to authority contacts.
type Directory struct {
	records []record
}

// New builds a directory over the standard records.
func New() *Directory {
	return &Directory{records: records}
}

// Lookup resolves a locality to its authority contact. Resolution order:
// exact district match, then bidirectional case-insensitive substring match
// in directory order, then the default fallback. PrimaryEmail is routed by
// the complaint's department for matched records; the fallback contact
// always carries its general address.
func (d *Directory) Lookup(localityName, department string) domain.AuthorityContact {
	if strings.TrimSpace(localityName) == "" {
		return defaultContact()
	}

	for _, rec := range d.records {
		if rec.District == localityName {
			return toContact(rec, department)
		}
	}

	lowered := strings.ToLower(localityName)
	for _, rec := range d.records {
		key := strings.ToLower(rec.District)
		if strings.Contains(lowered, key) || strings.Contains(key, lowered) {
			return toContact(rec, department)
		}
	}

	return defaultContact()
}

// defaultContact returns the fallback contact without department routing.
func defaultContact() domain.AuthorityContact {
	return domain.AuthorityContact{
		District:      defaultRecord.District,
		AuthorityBody: defaultRecord.Body,
		Zone:          defaultRecord.Zone,
		Email:         defaultRecord.Email,
		Phone:         defaultRecord.Phone,
		RoadsEmail:    defaultRecord.RoadsEmail,
		WaterEmail:    defaultRecord.WaterEmail,
		PrimaryEmail:  defaultRecord.Email,
	}
}

// toContact converts a record to the domain contact, selecting PrimaryEmail
// by department. Missing department-specific addresses fall back to the
// record's general address.
func toContact(rec record, department string) domain.AuthorityContact {
	contact := domain.AuthorityContact{
		District:      rec.District,
		AuthorityBody: rec.Body,
		Zone:          rec.Zone,
		Email:         rec.Email,
		Phone:         rec.Phone,
		RoadsEmail:    rec.RoadsEmail,
		WaterEmail:    rec.WaterEmail,
		PrimaryEmail:  rec.Email,
	}

	dept := strings.ToLower(department)
	switch {
	case strings.Contains(dept, "pwd") || strings.Contains(dept, "road") || strings.Contains(dept, "public works"):
		if rec.RoadsEmail != "" {
			contact.PrimaryEmail = rec.RoadsEmail
		}
	case strings.Contains(dept, "water") || strings.Contains(dept, "jal") || strings.Contains(dept, "sewage"):
		if rec.WaterEmail != "" {
			contact.PrimaryEmail = rec.WaterEmail
		}
	}

	return contact
}
