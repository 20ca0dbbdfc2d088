package helpline

import (
	"encoding/json"
	"time"
)

// Domain is one of the four fixed partitions of adoption records. The string
// value doubles as the endpoint path segment (/api/adopt-<domain>).
type Domain string

const (
	DomainHealth          Domain = "health"
	DomainHigherEducation Domain = "higher-education"
	DomainSchool          Domain = "school"
	DomainWelfare         Domain = "welfare"
)

// Domains lists every partition, in the order the app presents them.
var Domains = []Domain{DomainHealth, DomainHigherEducation, DomainSchool, DomainWelfare}

func (d Domain) Valid() bool {
	switch d {
	case DomainHealth, DomainHigherEducation, DomainSchool, DomainWelfare:
		return true
	}
	return false
}

// FlexID tolerates backends that serialize identifiers as either a JSON
// string or a number. Both are coerced to the string form.
type FlexID string

func (f *FlexID) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())
	return nil
}

// RawRecord is the superset of fields an adoption record may carry across the
// four domains. Each backend family populates its own subset; nothing outside
// Normalize should reach into these fields.
type RawRecord struct {
	ID          FlexID  `json:"id,omitempty"`
	AltID       string  `json:"_id,omitempty"`
	Name        string  `json:"name,omitempty"`
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	Amount      float64 `json:"amount,omitempty"`
	Status      string  `json:"status,omitempty"`
	Adopted     bool    `json:"adopted,omitempty"`
	AdoptedBy   string  `json:"adoptedBy,omitempty"`
	AdoptedAt   string  `json:"adoptedAt,omitempty"`

	Age float64 `json:"age,omitempty"`

	// Health
	PatientName      string  `json:"patientName,omitempty"`
	PatientAge       float64 `json:"patientAge,omitempty"`
	PatientGender    string  `json:"patientGender,omitempty"`
	MedicalCondition string  `json:"medicalCondition,omitempty"`
	HospitalName     string  `json:"hospitalName,omitempty"`
	HospitalAddress  string  `json:"hospitalAddress,omitempty"`
	DoctorName       string  `json:"doctorName,omitempty"`
	TreatmentType    string  `json:"treatmentType,omitempty"`
	UrgencyLevel     string  `json:"urgencyLevel,omitempty"`
	EstimatedCost    float64 `json:"estimatedCost,omitempty"`
	AmountNeeded     float64 `json:"amountNeeded,omitempty"`
	AmountRaised     float64 `json:"amountRaised,omitempty"`

	// Higher education
	StudentName        string  `json:"studentName,omitempty"`
	StudentAge         float64 `json:"studentAge,omitempty"`
	FieldOfStudy       string  `json:"fieldOfStudy,omitempty"`
	CurrentInstitution string  `json:"currentInstitution,omitempty"`
	InstitutionAddress string  `json:"institutionAddress,omitempty"`
	CurrentSemester    string  `json:"currentSemester,omitempty"`
	CGPA               float64 `json:"CGPA,omitempty"`
	FamilyIncome       float64 `json:"familyIncome,omitempty"`
	TotalTuitionFee    float64 `json:"totalTuitionFee,omitempty"`
	AnnualTuitionFee   float64 `json:"annualTuitionFee,omitempty"`

	// School student
	CurrentClass        string  `json:"currentClass,omitempty"`
	CurrentSchool       string  `json:"currentSchool,omitempty"`
	SchoolAddress       string  `json:"schoolAddress,omitempty"`
	AcademicPerformance string  `json:"academicPerformance,omitempty"`
	LastYearPercentage  float64 `json:"lastYearPercentage,omitempty"`
	GuardianPhone       string  `json:"guardianPhone,omitempty"`
	GuardianEmail       string  `json:"guardianEmail,omitempty"`

	// Welfare
	ProjectName          string  `json:"projectName,omitempty"`
	Category             string  `json:"category,omitempty"`
	OrganizerType        string  `json:"organizerType,omitempty"`
	TargetBeneficiaries  float64 `json:"targetBeneficiaries,omitempty"`
	CurrentBeneficiaries float64 `json:"currentBeneficiaries,omitempty"`
	VolunteersNeeded     float64 `json:"volunteersNeeded,omitempty"`
	CurrentVolunteers    float64 `json:"currentVolunteers,omitempty"`
	TotalBudget          float64 `json:"totalBudget,omitempty"`

	// Common contact/location
	Location          string `json:"location,omitempty"`
	Address           string `json:"address,omitempty"`
	City              string `json:"city,omitempty"`
	ContactPhone      string `json:"contactPhone,omitempty"`
	ContactEmail      string `json:"contactEmail,omitempty"`
	ContactPersonName string `json:"contactPersonName,omitempty"`
}

// SponsorshipOpportunity is the canonical, domain-agnostic view of a raw
// record. It is derived by Normalize and never persisted directly.
type SponsorshipOpportunity struct {
	ID           string  `json:"id"`
	DisplayName  string  `json:"displayName"`
	Age          int     `json:"age,omitempty"` // 0 means unknown
	Location     string  `json:"location"`
	Description  string  `json:"description"`
	TotalAmount  float64 `json:"totalAmount"`
	AmountRaised float64 `json:"amountRaised"`
	AmountNeeded float64 `json:"amountNeeded"`
	Domain       Domain  `json:"domain"`
	IsSponsored  bool    `json:"isSponsored"`
}

// AmountBreakdown is the resolved money triple for a record.
type AmountBreakdown struct {
	Total  float64 `json:"total"`
	Raised float64 `json:"raised"`
	Needed float64 `json:"needed"`
}

// SponsorshipRecord is a confirmed pledge: a snapshot of the opportunity at
// adoption time, owned by the sponsoring user. The backend set is
// authoritative; local copies are read-through mirrors.
type SponsorshipRecord struct {
	OpportunityID string    `json:"id"`
	Domain        Domain    `json:"domain"`
	DisplayName   string    `json:"name"`
	Age           int       `json:"age,omitempty"`
	Location      string    `json:"location"`
	Description   string    `json:"description"`
	TotalAmount   float64   `json:"amount"`
	AmountNeeded  float64   `json:"amountNeeded"`
	SponsorEmail  string    `json:"sponsorEmail,omitempty"`
	AdoptedAt     time.Time `json:"adoptedDate"`
}

// Key identifies a sponsorship: at most one active record per (id, domain)
// for a given user.
func (r SponsorshipRecord) Key() string {
	return string(r.Domain) + "/" + r.OpportunityID
}

// ListEnvelope is the canonical list response shape after the dual-shape
// boundary has been applied.
type ListEnvelope struct {
	Success bool        `json:"success"`
	Data    []RawRecord `json:"data"`
	Count   int         `json:"count,omitempty"`
}

// SingleEnvelope wraps a single-record response.
type SingleEnvelope struct {
	Success bool      `json:"success"`
	Data    RawRecord `json:"data"`
	Message string    `json:"message,omitempty"`
}

// AdoptRequest is the body of POST /api/adopt-<domain>/<id>/adopt. Email is
// the join key the backend resolves the user by; the adopter* fields are kept
// for backward compatibility.
type AdoptRequest struct {
	Email        string `json:"email"`
	AdopterName  string `json:"adopterName"`
	AdopterEmail string `json:"adopterEmail"`
	AdopterPhone string `json:"adopterPhone"`
}

// Identity locates a user's sponsorships across requests. Email is the only
// reliable cross-session join key; the rest are best-effort.
type Identity struct {
	UserID string `json:"userId,omitempty"`
	Email  string `json:"email,omitempty"`
	Phone  string `json:"phone,omitempty"`
}

// User is the authenticated account profile as exchanged with the auth
// endpoints and kept in local storage.
type User struct {
	ID      string `json:"id,omitempty"`
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// Identity derives the join-key view of a user.
func (u User) Identity() Identity {
	return Identity{UserID: u.ID, Email: u.Email}
}
