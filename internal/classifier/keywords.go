package classifier

// Curated keyword catalogs for Delhi civic complaints. Multi-word entries
// score double (see match.go). Plural and Hindi variants are listed
// explicitly because matching is whole-word.

// civicKeywords is the relevance gate: a post must score at least
// civicThreshold against this list to be treated as a civic complaint.
var civicKeywords = []string{
	"pothole", "potholes", "garbage", "trash", "waste", "kachra",
	"water", "paani", "sewage", "sewer", "drainage", "drain", "gutter",
	"manhole", "waterlogging", "water logging",
	"mcd", "dda", "pwd", "nigam", "municipal", "jal board",
	"electricity", "bijli", "power cut", "transformer", "streetlight",
	"street light", "blackout",
	"road", "roads", "footpath", "pavement", "flyover", "speed breaker",
	"park", "horticulture", "playground",
	"traffic", "signal", "encroachment", "parking",
	"mosquito", "mosquitoes", "dengue", "malaria", "fogging",
	"stray dog", "stray dogs", "sanitation", "dustbin", "litter",
	"accident", "accidents", "overflow", "overflowing", "leakage",
	"complaint", "repair", "broken",
}

// departmentCatalog lists department keyword rules in precedence order.
// Ties on score keep the first-seen department, so the order below is the
// tie-break order.
var departmentCatalog = []DepartmentRule{
	{
		Code:     "PWD",
		FullName: "Public Works Department",
		Keywords: []string{
			"pothole", "potholes", "road", "roads", "footpath", "pavement",
			"bridge", "flyover", "speed breaker", "road repair",
			"broken road", "construction debris", "divider",
		},
	},
	{
		Code:     "Jal Board",
		FullName: "Delhi Jal Board",
		Keywords: []string{
			"water", "paani", "water supply", "sewage", "sewer", "drainage",
			"pipeline", "leakage", "contaminated water", "dirty water",
			"borewell", "tanker", "waterlogging", "water logging", "jal board",
		},
	},
	{
		Code:     "MCD Sanitation",
		FullName: "Municipal Corporation of Delhi, Sanitation Wing",
		Keywords: []string{
			"garbage", "trash", "waste", "kachra", "dustbin", "litter",
			"sweeping", "cleanliness", "garbage collection", "garbage dump",
			"dump", "landfill",
		},
	},
	{
		Code:     "BSES",
		FullName: "BSES Delhi Power Distribution",
		Keywords: []string{
			"electricity", "bijli", "power", "power cut", "transformer",
			"voltage", "streetlight", "street light", "blackout", "wire",
			"live wire", "meter",
		},
	},
	{
		Code:     "DDA Horticulture",
		FullName: "Delhi Development Authority, Horticulture Division",
		Keywords: []string{
			"park", "parks", "garden", "tree", "trees", "horticulture",
			"playground", "green belt", "fallen tree",
		},
	},
	{
		Code:     "Traffic Police",
		FullName: "Delhi Traffic Police",
		Keywords: []string{
			"traffic", "signal", "jam", "parking", "congestion",
			"traffic light", "wrong side", "zebra crossing", "encroachment",
			"challan",
		},
	},
	{
		Code:     "DGHS",
		FullName: "Directorate General of Health Services",
		Keywords: []string{
			"mosquito", "mosquitoes", "dengue", "malaria", "fogging",
			"hospital", "dispensary", "hygiene", "epidemic",
			"stray dog", "stray dogs",
		},
	},
}

// generalDepartment is the catch-all for civic posts no department claims.
const (
	generalDepartmentCode     = "General"
	generalDepartmentFullName = "General Administration, Municipal Corporation of Delhi"
)

// highUrgencyKeywords mark complaints needing immediate response.
var highUrgencyKeywords = []string{
	"emergency", "urgent", "urgently", "danger", "dangerous",
	"accident", "accidents", "injured", "injury", "death", "dead",
	"fire", "collapsed", "collapse", "burst", "electrocution",
	"open manhole", "live wire", "sewage overflow",
	"no water", "no electricity", "days", "weeks",
}

// mediumUrgencyKeywords mark complaints that degrade daily life but are
// not immediately hazardous.
var mediumUrgencyKeywords = []string{
	"overflowing", "leaking", "broken", "damaged", "blocked",
	"smell", "stink", "foul", "unsafe", "erratic",
	"not working", "no response", "every day",
}

// DepartmentRule binds a department to its keyword list.
type DepartmentRule struct {
	Code     string
	FullName string
	Keywords []string
}
