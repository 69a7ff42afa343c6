package services

import (
	"errors"
	"testing"

	"wealthdesk/internal/config"
	"wealthdesk/internal/core/domain"
)

func newTestWizard(validateOnAdvance bool) *WizardService {
	cfg := &config.Config{
		Form: config.FormConfig{ValidateOnAdvance: validateOnAdvance},
	}
	return NewWizardService(cfg)
}

// validAggregate fills every required field across the six steps
func validAggregate() *domain.FormAggregate {
	agg := domain.NewFormAggregate()
	agg.Personal = domain.PersonalDetails{
		FirstName:       "Asha",
		LastName:        "Rao",
		DateOfBirth:     "1990-04-12",
		PAN:             "ABCDE1234F",
		Mobile:          "9876543210",
		Email:           "asha@example.com",
		Address:         "12 MG Road, Pune",
		Occupation:      "Engineer",
		NomineeName:     "Ravi Rao",
		NomineeRelation: "Spouse",
		InvestmentMode:  "SIP",
	}
	agg.Income.SelfMonthly = "80000"
	agg.Income.SelfAnnual = "960000"
	agg.Requirements = domain.RequirementDetails{
		ShortTerm:    "Emergency fund",
		MidTerm:      "House",
		LongTerm:     "Retirement",
		RiskAppetite: "moderate",
	}
	return agg
}

func TestValidateStep_StepOutOfRange(t *testing.T) {
	t.Parallel()
	w := newTestWizard(true)

	for _, step := range []int{0, 7, -3} {
		_, err := w.ValidateStep(step, validAggregate())
		if !errors.Is(err, domain.ErrStepOutOfRange) {
			t.Errorf("step %d: expected ErrStepOutOfRange, got %v", step, err)
		}
	}
}

func TestValidateStep_PANFormat(t *testing.T) {
	t.Parallel()
	w := newTestWizard(true)

	cases := []struct {
		pan  string
		want bool
	}{
		{"ABCDE1234F", true},
		{"abcde1234f", false},
		{"ABCDE123F", false},
		{"ABCD1234FG", false},
		{"ABCDE12345", false},
		{"", false},
	}
	for _, tc := range cases {
		agg := validAggregate()
		agg.Personal.PAN = tc.pan
		result, err := w.ValidateStep(1, agg)
		if err != nil {
			t.Fatalf("ValidateStep error: %v", err)
		}
		if result.Valid != tc.want {
			t.Errorf("pan %q: valid=%v want %v (errors: %v)", tc.pan, result.Valid, tc.want, result.FieldErrors)
		}
		if !tc.want {
			if _, ok := result.FieldErrors["personal.pan"]; !ok {
				t.Errorf("pan %q: expected a personal.pan field error", tc.pan)
			}
		}
	}
}

func TestValidateStep_MobileFormat(t *testing.T) {
	t.Parallel()
	w := newTestWizard(true)

	cases := []struct {
		mobile string
		want   bool
	}{
		{"9876543210", true},
		{"6000000000", true},
		{"5876543210", false},
		{"98765", false},
		{"98765432100", false},
		{"", false},
	}
	for _, tc := range cases {
		agg := validAggregate()
		agg.Personal.Mobile = tc.mobile
		result, _ := w.ValidateStep(1, agg)
		if result.Valid != tc.want {
			t.Errorf("mobile %q: valid=%v want %v", tc.mobile, result.Valid, tc.want)
		}
	}
}

func TestValidateStep_FamilyRowsOptional(t *testing.T) {
	t.Parallel()
	w := newTestWizard(true)

	// All rows blank passes
	agg := validAggregate()
	result, _ := w.ValidateStep(2, agg)
	if !result.Valid {
		t.Fatalf("blank family rows should pass: %v", result.FieldErrors)
	}

	// A named row requires its date of birth
	agg.Spouse.Name = "Ravi Rao"
	result, _ = w.ValidateStep(2, agg)
	if result.Valid {
		t.Fatal("named spouse without DOB should fail")
	}
	if _, ok := result.FieldErrors["spouse.dateOfBirth"]; !ok {
		t.Errorf("expected spouse.dateOfBirth error, got %v", result.FieldErrors)
	}

	// A provided PAN must be well formed
	agg.Spouse.DateOfBirth = "1992-01-01"
	agg.Spouse.PAN = "BADPAN"
	result, _ = w.ValidateStep(2, agg)
	if result.Valid {
		t.Fatal("malformed spouse PAN should fail")
	}
}

func TestValidateStep_NumericStep(t *testing.T) {
	t.Parallel()
	w := newTestWizard(true)

	agg := validAggregate()
	result, _ := w.ValidateStep(4, agg)
	if !result.Valid {
		t.Fatalf("expected step 4 to pass: %v", result.FieldErrors)
	}

	// Own income is required
	agg.Income.SelfMonthly = ""
	result, _ = w.ValidateStep(4, agg)
	if result.Valid {
		t.Fatal("missing selfMonthly should fail")
	}

	// Optional amounts must still parse when present
	agg.Income.SelfMonthly = "80000"
	agg.Expenses.Rent = "12,000"
	result, _ = w.ValidateStep(4, agg)
	if result.Valid {
		t.Fatal("unparsable rent should fail")
	}
	if _, ok := result.FieldErrors["expenses.rent"]; !ok {
		t.Errorf("expected expenses.rent error, got %v", result.FieldErrors)
	}
}

func TestValidateStep_ListRowErrorsAreIndexed(t *testing.T) {
	t.Parallel()
	w := newTestWizard(true)

	agg := validAggregate()
	agg.Bonuses[0].Amount = "not-a-number"
	result, _ := w.ValidateStep(4, agg)
	if result.Valid {
		t.Fatal("bad bonus amount should fail")
	}
	if _, ok := result.FieldErrors["bonuses[0].amount"]; !ok {
		t.Errorf("expected bonuses[0].amount error, got %v", result.FieldErrors)
	}
}

func TestNext_BlocksOnInvalidStep(t *testing.T) {
	t.Parallel()
	w := newTestWizard(true)

	agg := domain.NewFormAggregate() // step 1, personal details empty
	result, err := w.Next(agg)
	if err != nil {
		t.Fatalf("Next error: %v", err)
	}
	if result.Valid {
		t.Fatal("empty personal details should not validate")
	}
	if agg.CurrentStep != 1 {
		t.Errorf("advance should be blocked, step is %d", agg.CurrentStep)
	}
}

func TestNext_AdvanceWithoutValidationMode(t *testing.T) {
	t.Parallel()
	w := newTestWizard(false)

	agg := domain.NewFormAggregate()
	result, err := w.Next(agg)
	if err != nil {
		t.Fatalf("Next error: %v", err)
	}
	if agg.CurrentStep != 2 {
		t.Errorf("expected advance despite errors, step is %d", agg.CurrentStep)
	}
	if result.Valid {
		t.Error("validation result should still report the errors")
	}
}

func TestNext_CappedAtLastStep(t *testing.T) {
	t.Parallel()
	w := newTestWizard(true)

	agg := validAggregate()
	agg.CurrentStep = domain.MaxStep
	if _, err := w.Next(agg); err != nil {
		t.Fatalf("Next error: %v", err)
	}
	if agg.CurrentStep != domain.MaxStep {
		t.Errorf("step must stay capped at %d, got %d", domain.MaxStep, agg.CurrentStep)
	}
}

func TestBack_FlooredAtFirstStep(t *testing.T) {
	t.Parallel()
	w := newTestWizard(true)

	agg := domain.NewFormAggregate()
	w.Back(agg)
	if agg.CurrentStep != domain.MinStep {
		t.Errorf("step must stay floored at %d, got %d", domain.MinStep, agg.CurrentStep)
	}

	agg.CurrentStep = 3
	w.Back(agg)
	if agg.CurrentStep != 2 {
		t.Errorf("expected step 2, got %d", agg.CurrentStep)
	}
}

func TestRemoveBonus_Floor(t *testing.T) {
	t.Parallel()
	w := newTestWizard(true)

	agg := domain.NewFormAggregate()
	if err := w.RemoveBonus(agg, 0); !errors.Is(err, domain.ErrListFloorReached) {
		t.Fatalf("expected ErrListFloorReached, got %v", err)
	}

	w.AddBonus(agg)
	if err := w.RemoveBonus(agg, 1); err != nil {
		t.Fatalf("RemoveBonus error: %v", err)
	}
	if len(agg.Bonuses) != domain.BonusFloor {
		t.Errorf("expected %d bonus rows, got %d", domain.BonusFloor, len(agg.Bonuses))
	}
}

func TestRemoveExistingAsset_IndexBounds(t *testing.T) {
	t.Parallel()
	w := newTestWizard(true)

	agg := domain.NewFormAggregate()
	if err := w.RemoveExistingAsset(agg, 5); !errors.Is(err, domain.ErrListIndexOutOfRange) {
		t.Fatalf("expected ErrListIndexOutOfRange, got %v", err)
	}
	if err := w.RemoveExistingAsset(agg, -1); !errors.Is(err, domain.ErrListIndexOutOfRange) {
		t.Fatalf("expected ErrListIndexOutOfRange, got %v", err)
	}
}

func TestDetailedAssets_SeededRowsProtected(t *testing.T) {
	t.Parallel()
	w := newTestWizard(true)

	agg := domain.NewFormAggregate()
	for i := 0; i < domain.DetailedAssetFloor; i++ {
		if err := w.RemoveDetailedAsset(agg, i); !errors.Is(err, domain.ErrListFloorReached) {
			t.Errorf("index %d: expected ErrListFloorReached, got %v", i, err)
		}
	}
}

func TestDetailedAssets_SrNoStaysContiguous(t *testing.T) {
	t.Parallel()
	w := newTestWizard(true)

	agg := domain.NewFormAggregate()
	w.AddDetailedAsset(agg) // srNo 5
	w.AddDetailedAsset(agg) // srNo 6
	w.AddDetailedAsset(agg) // srNo 7

	if err := w.RemoveDetailedAsset(agg, 5); err != nil {
		t.Fatalf("RemoveDetailedAsset error: %v", err)
	}

	if len(agg.DetailedAssets) != 6 {
		t.Fatalf("expected 6 rows, got %d", len(agg.DetailedAssets))
	}
	for i, a := range agg.DetailedAssets {
		if a.SrNo != i+1 {
			t.Errorf("row %d: srNo %d, want %d", i, a.SrNo, i+1)
		}
	}
}

func TestAddDetailedAsset_NumbersAfterLast(t *testing.T) {
	t.Parallel()
	w := newTestWizard(true)

	agg := domain.NewFormAggregate()
	w.AddDetailedAsset(agg)

	last := agg.DetailedAssets[len(agg.DetailedAssets)-1]
	if last.SrNo != domain.DetailedAssetFloor+1 {
		t.Errorf("expected srNo %d, got %d", domain.DetailedAssetFloor+1, last.SrNo)
	}
}
