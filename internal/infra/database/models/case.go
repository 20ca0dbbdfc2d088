package models

import (
	helpline "github.com/mudasir256/helplineapp"
)

// Case is implemented by all four case models so the repository and usecase
// layers can treat them uniformly while the wire shapes stay divergent.
type Case interface {
	CaseID() string
	Adoption() *AdoptionColumns
	Snapshot() helpline.SponsorshipOpportunity
}

func (a *AdoptionColumns) Adoption() *AdoptionColumns { return a }

func (c *HealthCase) CaseID() string { return c.ID }

func (c *HealthCase) Snapshot() helpline.SponsorshipOpportunity {
	return helpline.Normalize(helpline.RawRecord{
		ID:              helpline.FlexID(c.ID),
		PatientName:     c.PatientName,
		PatientAge:      float64(c.PatientAge),
		HospitalAddress: c.HospitalAddress,
		Description:     c.Description,
		EstimatedCost:   c.EstimatedCost,
		AmountNeeded:    c.AmountNeeded,
		AmountRaised:    c.AmountRaised,
	}, helpline.DomainHealth)
}

func (c *HigherEducationCase) CaseID() string { return c.ID }

func (c *HigherEducationCase) Snapshot() helpline.SponsorshipOpportunity {
	return helpline.Normalize(helpline.RawRecord{
		ID:                 helpline.FlexID(c.ID),
		StudentName:        c.StudentName,
		StudentAge:         float64(c.StudentAge),
		InstitutionAddress: c.InstitutionAddress,
		City:               c.City,
		Description:        c.Description,
		TotalTuitionFee:    c.TotalTuitionFee,
		AnnualTuitionFee:   c.AnnualTuitionFee,
		AmountRaised:       c.AmountRaised,
	}, helpline.DomainHigherEducation)
}

func (c *SchoolCase) CaseID() string { return c.ID }

func (c *SchoolCase) Snapshot() helpline.SponsorshipOpportunity {
	return helpline.Normalize(helpline.RawRecord{
		ID:               helpline.FlexID(c.ID),
		Name:             c.Name,
		Age:              float64(c.Age),
		SchoolAddress:    c.SchoolAddress,
		Description:      c.Description,
		AnnualTuitionFee: c.AnnualTuitionFee,
		AmountRaised:     c.AmountRaised,
	}, helpline.DomainSchool)
}

func (c *WelfareProject) CaseID() string { return c.ID }

func (c *WelfareProject) Snapshot() helpline.SponsorshipOpportunity {
	return helpline.Normalize(helpline.RawRecord{
		ID:           helpline.FlexID(c.ID),
		ProjectName:  c.ProjectName,
		Address:      c.Address,
		Description:  c.Description,
		TotalBudget:  c.TotalBudget,
		AmountRaised: c.AmountRaised,
	}, helpline.DomainWelfare)
}
