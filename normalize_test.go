package helpline

import (
	"reflect"
	"testing"
)

func TestNormalizePlaceholders(t *testing.T) {
	got := Normalize(RawRecord{ID: "x1"}, DomainWelfare)

	if got.DisplayName != PlaceholderName {
		t.Fatalf("expected placeholder name, got %q", got.DisplayName)
	}
	if got.Location != PlaceholderLocation {
		t.Fatalf("expected placeholder location, got %q", got.Location)
	}
	if got.Description != PlaceholderDescription {
		t.Fatalf("expected placeholder description, got %q", got.Description)
	}
}

func TestNormalizeHealthRecord(t *testing.T) {
	raw := RawRecord{ID: "h1", PatientName: "Ahmed", Amount: 500000}
	got := Normalize(raw, DomainHealth)

	if got.DisplayName != "Ahmed" {
		t.Fatalf("expected Ahmed, got %q", got.DisplayName)
	}
	if got.TotalAmount != 500000 || got.AmountNeeded != 500000 {
		t.Fatalf("expected total and needed 500000, got %v / %v", got.TotalAmount, got.AmountNeeded)
	}
	if got.Location != PlaceholderLocation {
		t.Fatalf("expected placeholder location, got %q", got.Location)
	}
	if got.Domain != DomainHealth {
		t.Fatalf("expected health domain, got %q", got.Domain)
	}
}

func TestNormalizeNamePriority(t *testing.T) {
	raw := RawRecord{Title: "Project X", ProjectName: "Clean Water"}
	if got := Normalize(raw, DomainWelfare).DisplayName; got != "Project X" {
		t.Fatalf("title should win over projectName, got %q", got)
	}

	raw.Name = "Named"
	if got := Normalize(raw, DomainWelfare).DisplayName; got != "Named" {
		t.Fatalf("name should win over title, got %q", got)
	}
}

func TestNormalizeAge(t *testing.T) {
	if got := Normalize(RawRecord{PatientAge: 12}, DomainHealth).Age; got != 12 {
		t.Fatalf("expected age 12, got %d", got)
	}
	if got := Normalize(RawRecord{Age: -3}, DomainHealth).Age; got != 0 {
		t.Fatalf("negative age should normalize to absent, got %d", got)
	}
}

func TestNormalizeSponsoredFlags(t *testing.T) {
	if !Normalize(RawRecord{Adopted: true}, DomainSchool).IsSponsored {
		t.Fatal("adopted flag should mark record sponsored")
	}
	if !Normalize(RawRecord{Status: "adopted"}, DomainSchool).IsSponsored {
		t.Fatal("adopted status should mark record sponsored")
	}
	if Normalize(RawRecord{Status: "open"}, DomainSchool).IsSponsored {
		t.Fatal("open record should not be sponsored")
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	raw := RawRecord{
		ID:              "22",
		StudentName:     "Sana",
		StudentAge:      19,
		City:            "Lahore",
		TotalTuitionFee: 240000,
		AmountRaised:    40000,
	}

	first := Normalize(raw, DomainHigherEducation)
	second := Normalize(raw, DomainHigherEducation)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("normalize is not idempotent: %+v vs %+v", first, second)
	}
}

func TestResolveAmountExplicitNeededWins(t *testing.T) {
	raw := RawRecord{Amount: 100000, AmountRaised: 90000, AmountNeeded: 55000}
	if got := ResolveAmount(raw).Needed; got != 55000 {
		t.Fatalf("explicit amountNeeded must win, got %v", got)
	}
}

func TestResolveAmountDerived(t *testing.T) {
	got := ResolveAmount(RawRecord{Amount: 100000, AmountRaised: 30000})
	if got.Needed != 70000 {
		t.Fatalf("expected derived needed 70000, got %v", got.Needed)
	}

	got = ResolveAmount(RawRecord{EstimatedCost: 80000})
	if got.Needed != 80000 || got.Total != 80000 {
		t.Fatalf("needed should equal total when nothing raised, got %+v", got)
	}
}

func TestResolveAmountClampsUnderflow(t *testing.T) {
	got := ResolveAmount(RawRecord{Amount: 50000, AmountRaised: 60000})
	if got.Needed != 0 {
		t.Fatalf("over-raised record must clamp needed to zero, got %v", got.Needed)
	}
}

func TestResolveAmountTotalPriority(t *testing.T) {
	raw := RawRecord{TotalTuitionFee: 300000, AnnualTuitionFee: 100000, TotalBudget: 9}
	if got := ResolveAmount(raw).Total; got != 300000 {
		t.Fatalf("totalTuitionFee should win, got %v", got)
	}
}

func TestResolveAmountIdempotent(t *testing.T) {
	raw := RawRecord{TotalBudget: 1200, AmountRaised: 200}
	if first, second := ResolveAmount(raw), ResolveAmount(raw); first != second {
		t.Fatalf("resolver not idempotent: %+v vs %+v", first, second)
	}
}

func TestResolveIDCoercion(t *testing.T) {
	if got := Normalize(RawRecord{AltID: "abc123"}, DomainHealth).ID; got != "abc123" {
		t.Fatalf("expected _id fallback, got %q", got)
	}
	if got := Normalize(RawRecord{ID: "42", AltID: "ignored"}, DomainHealth).ID; got != "42" {
		t.Fatalf("id should win over _id, got %q", got)
	}
}
