package helpline

// Placeholder values rendered when a record is missing the fields a view
// requires. Upstream data quality cannot be guaranteed, so normalization
// degrades instead of failing.
const (
	PlaceholderName        = "Unknown"
	PlaceholderLocation    = "Location not specified"
	PlaceholderDescription = "No description available"
)

// StatusAdopted is the record status value that marks a case as sponsored.
const StatusAdopted = "adopted"

// Normalize maps one of the four heterogeneous record shapes into the
// canonical view. Field resolution follows a fixed priority order per
// attribute; the first non-empty match wins. Deterministic and pure.
func Normalize(raw RawRecord, domain Domain) SponsorshipOpportunity {
	amounts := ResolveAmount(raw)

	return SponsorshipOpportunity{
		ID:           resolveID(raw),
		DisplayName:  firstNonEmpty(raw.Name, raw.Title, raw.PatientName, raw.StudentName, raw.ProjectName, PlaceholderName),
		Age:          resolveAge(raw),
		Location:     firstNonEmpty(raw.Location, raw.Address, raw.City, raw.HospitalAddress, raw.InstitutionAddress, raw.SchoolAddress, PlaceholderLocation),
		Description:  firstNonEmpty(raw.Description, PlaceholderDescription),
		TotalAmount:  amounts.Total,
		AmountRaised: amounts.Raised,
		AmountNeeded: amounts.Needed,
		Domain:       domain,
		IsSponsored:  raw.Adopted || raw.Status == StatusAdopted,
	}
}

// ResolveAmount derives the money triple for a record.
//
// The total is the first positive value among the domain-specific cost
// fields. An explicit amountNeeded always wins over the derived figure; when
// absent, needed is total minus raised if both are positive, otherwise the
// total itself. Needed is clamped at zero: source data occasionally reports
// raised above total, and a negative figure is never renderable.
func ResolveAmount(raw RawRecord) AmountBreakdown {
	total := firstPositive(raw.Amount, raw.EstimatedCost, raw.TotalTuitionFee, raw.AnnualTuitionFee, raw.TotalBudget)
	raised := raw.AmountRaised
	if raised < 0 {
		raised = 0
	}

	needed := raw.AmountNeeded
	if needed == 0 {
		if total > 0 && raised > 0 {
			needed = total - raised
		} else {
			needed = total
		}
	}
	if needed < 0 {
		needed = 0
	}

	return AmountBreakdown{Total: total, Raised: raised, Needed: needed}
}

func resolveID(raw RawRecord) string {
	if raw.ID != "" {
		return string(raw.ID)
	}
	return raw.AltID
}

func resolveAge(raw RawRecord) int {
	age := firstPositive(raw.Age, raw.PatientAge, raw.StudentAge)
	if age <= 0 {
		return 0
	}
	return int(age)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstPositive(values ...float64) float64 {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
