package domain

import "time"

// Urgency tiers derived from text cues.
const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
)

// Complaint lifecycle status values.
const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"
)

// Department short codes. The set is closed; unmatched civic posts fall
// back to DepartmentGeneral, never to an empty department.
const (
	DepartmentPWD        = "PWD"
	DepartmentJalBoard   = "Jal Board"
	DepartmentSanitation = "MCD Sanitation"
	DepartmentPower      = "BSES"
	DepartmentParks      = "DDA Horticulture"
	DepartmentTraffic    = "Traffic Police"
	DepartmentHealth     = "DGHS"
	DepartmentGeneral    = "General"
)

// ClassificationResult is the outcome of classifying a post's text.
// Computed once per post; deterministic given the same text.
type ClassificationResult struct {
	IsCivic            bool   `json:"is_civic"`
	Department         string `json:"department,omitempty"`
	DepartmentFullName string `json:"department_full_name,omitempty"`
	Urgency            string `json:"urgency,omitempty"`
	Confidence         int    `json:"confidence"`    // 0-100 step function of keyword score
	KeywordScore       int    `json:"keyword_score"` // winning department's score
	RejectionReason    string `json:"rejection_reason,omitempty"`
}

// LocationResolution holds the resolved locality and coordinates for a
// complaint. LocalityName is always populated; Geocoded=false marks a
// city-centre fallback rather than a real geocode hit.
type LocationResolution struct {
	LocalityName string  `json:"locality_name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	DisplayName  string  `json:"display_name,omitempty"`
	Geocoded     bool    `json:"geocoded"`
}

// AuthorityContact is the government contact responsible for a locality.
type AuthorityContact struct {
	District      string `json:"district"`
	AuthorityBody string `json:"authority_body"`
	Zone          string `json:"zone"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	RoadsEmail    string `json:"roads_email,omitempty"`
	WaterEmail    string `json:"water_email,omitempty"`
	PrimaryEmail  string `json:"primary_email"` // routed by the complaint's department
}

// Complaint is the persisted aggregate. Created once after classification
// and geocoding succeed, updated exactly once more with notification flags.
type Complaint struct {
	ID                 string    `db:"id"                   json:"id"`
	Title              string    `db:"title"                json:"title"`
	Description        string    `db:"description"          json:"description"`
	Department         string    `db:"department"           json:"department"`
	DepartmentFullName string    `db:"department_full_name" json:"department_full_name"`
	Urgency            string    `db:"urgency"              json:"urgency"`
	Confidence         int       `db:"confidence"           json:"confidence"`
	Status             string    `db:"status"               json:"status"`
	Location           string    `db:"location"             json:"location"`
	Latitude           float64   `db:"latitude"             json:"latitude"`
	Longitude          float64   `db:"longitude"            json:"longitude"`
	Geocoded           bool      `db:"geocoded"             json:"geocoded"`
	SourceType         string    `db:"source_type"          json:"source_type"`
	SourceHandle       string    `db:"source_handle"        json:"source_handle"`
	SourceID           string    `db:"source_id"            json:"source_id,omitempty"`
	SourceLink         string    `db:"source_link"          json:"source_link,omitempty"`
	CitizenEmail       string    `db:"citizen_email"        json:"citizen_email,omitempty"`
	CitizenPhone       string    `db:"citizen_phone"        json:"citizen_phone,omitempty"`
	AuthorityNotified  bool      `db:"authority_notified"   json:"authority_notified"`
	CitizenNotified    bool      `db:"citizen_notified"     json:"citizen_notified"`
	CreatedAt          time.Time `db:"created_at"           json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"           json:"updated_at"`
}

// NotificationStatus reports the per-channel outcome of the fan-out.
type NotificationStatus struct {
	AuthorityEmail bool `json:"authority_email"`
	CitizenEmail   bool `json:"citizen_email"`
	CitizenSMS     bool `json:"citizen_sms"`
}

// Outcome summarizes a full pipeline run for one post.
type Outcome struct {
	ComplaintID    string               `json:"complaint_id,omitempty"`
	Registered     bool                 `json:"registered"`
	Duplicate      bool                 `json:"duplicate,omitempty"`
	Rejected       bool                 `json:"rejected,omitempty"`
	Reason         string               `json:"reason,omitempty"`
	Classification ClassificationResult `json:"classification"`
	Location       *LocationResolution  `json:"location,omitempty"`
	AuthorityBody  string               `json:"authority_body,omitempty"`
	AuthorityZone  string               `json:"authority_zone,omitempty"`
	Notifications  NotificationStatus   `json:"notifications"`
}
