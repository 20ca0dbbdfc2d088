package models

import (
	"time"
)

// The four case tables deliberately keep their divergent field sets; the
// mobile client owns normalization into a canonical view. Shared columns are
// limited to identity, money raised and adoption status.

type HealthCase struct {
	ID               string  `json:"id" gorm:"primaryKey;type:text"`
	PatientName      string  `json:"patientName" gorm:"type:text;not null"`
	PatientAge       int     `json:"patientAge,omitempty" gorm:"type:integer"`
	PatientGender    string  `json:"patientGender,omitempty" gorm:"type:text"`
	MedicalCondition string  `json:"medicalCondition,omitempty" gorm:"type:text"`
	HospitalName     string  `json:"hospitalName,omitempty" gorm:"type:text"`
	HospitalAddress  string  `json:"hospitalAddress,omitempty" gorm:"type:text"`
	DoctorName       string  `json:"doctorName,omitempty" gorm:"type:text"`
	TreatmentType    string  `json:"treatmentType,omitempty" gorm:"type:text"`
	UrgencyLevel     string  `json:"urgencyLevel,omitempty" gorm:"type:text"`
	Description      string  `json:"description,omitempty" gorm:"type:text"`
	EstimatedCost    float64 `json:"estimatedCost,omitempty" gorm:"type:numeric"`
	AmountNeeded     float64 `json:"amountNeeded,omitempty" gorm:"type:numeric"`
	AmountRaised     float64 `json:"amountRaised,omitempty" gorm:"type:numeric"`
	ContactPhone     string  `json:"contactPhone,omitempty" gorm:"type:text"`
	ContactEmail     string  `json:"contactEmail,omitempty" gorm:"type:text"`

	AdoptionColumns
}

type HigherEducationCase struct {
	ID                 string  `json:"id" gorm:"primaryKey;type:text"`
	StudentName        string  `json:"studentName" gorm:"type:text;not null"`
	StudentAge         int     `json:"studentAge,omitempty" gorm:"type:integer"`
	FieldOfStudy       string  `json:"fieldOfStudy,omitempty" gorm:"type:text"`
	CurrentInstitution string  `json:"currentInstitution,omitempty" gorm:"type:text"`
	InstitutionAddress string  `json:"institutionAddress,omitempty" gorm:"type:text"`
	CurrentSemester    string  `json:"currentSemester,omitempty" gorm:"type:text"`
	CGPA               float64 `json:"CGPA,omitempty" gorm:"column:cgpa;type:numeric"`
	FamilyIncome       float64 `json:"familyIncome,omitempty" gorm:"type:numeric"`
	TotalTuitionFee    float64 `json:"totalTuitionFee,omitempty" gorm:"type:numeric"`
	AnnualTuitionFee   float64 `json:"annualTuitionFee,omitempty" gorm:"type:numeric"`
	Description        string  `json:"description,omitempty" gorm:"type:text"`
	AmountRaised       float64 `json:"amountRaised,omitempty" gorm:"type:numeric"`
	City               string  `json:"city,omitempty" gorm:"type:text"`

	AdoptionColumns
}

type SchoolCase struct {
	ID                  string  `json:"id" gorm:"primaryKey;type:text"`
	Name                string  `json:"name" gorm:"type:text;not null"`
	Age                 int     `json:"age,omitempty" gorm:"type:integer"`
	CurrentClass        string  `json:"currentClass,omitempty" gorm:"type:text"`
	CurrentSchool       string  `json:"currentSchool,omitempty" gorm:"type:text"`
	SchoolAddress       string  `json:"schoolAddress,omitempty" gorm:"type:text"`
	AcademicPerformance string  `json:"academicPerformance,omitempty" gorm:"type:text"`
	LastYearPercentage  float64 `json:"lastYearPercentage,omitempty" gorm:"type:numeric"`
	GuardianPhone       string  `json:"guardianPhone,omitempty" gorm:"type:text"`
	GuardianEmail       string  `json:"guardianEmail,omitempty" gorm:"type:text"`
	Description         string  `json:"description,omitempty" gorm:"type:text"`
	AnnualTuitionFee    float64 `json:"annualTuitionFee,omitempty" gorm:"type:numeric"`
	AmountRaised        float64 `json:"amountRaised,omitempty" gorm:"type:numeric"`

	AdoptionColumns
}

type WelfareProject struct {
	ID                   string  `json:"id" gorm:"primaryKey;type:text"`
	ProjectName          string  `json:"projectName" gorm:"type:text;not null"`
	Category             string  `json:"category,omitempty" gorm:"type:text"`
	OrganizerType        string  `json:"organizerType,omitempty" gorm:"type:text"`
	TargetBeneficiaries  int     `json:"targetBeneficiaries,omitempty" gorm:"type:integer"`
	CurrentBeneficiaries int     `json:"currentBeneficiaries,omitempty" gorm:"type:integer"`
	VolunteersNeeded     int     `json:"volunteersNeeded,omitempty" gorm:"type:integer"`
	CurrentVolunteers    int     `json:"currentVolunteers,omitempty" gorm:"type:integer"`
	TotalBudget          float64 `json:"totalBudget,omitempty" gorm:"type:numeric"`
	AmountRaised         float64 `json:"amountRaised,omitempty" gorm:"type:numeric"`
	Description          string  `json:"description,omitempty" gorm:"type:text"`
	Address              string  `json:"address,omitempty" gorm:"type:text"`

	AdoptionColumns
}

// AdoptionColumns is the shared adoption status block embedded in every case
// table.
type AdoptionColumns struct {
	Adopted   bool       `json:"adopted" gorm:"type:boolean;not null;default:false;index"`
	Status    string     `json:"status,omitempty" gorm:"type:text;not null;default:'available'"`
	AdoptedBy *string    `json:"adoptedBy,omitempty" gorm:"type:text;index"`
	AdoptedAt *time.Time `json:"adoptedAt,omitempty" gorm:"type:timestamp with time zone"`
	CDate     time.Time  `json:"createdAt" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}
