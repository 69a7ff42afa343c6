package services

import (
	"fmt"
	"regexp"
	"strings"

	"wealthdesk/internal/config"
	"wealthdesk/internal/core/domain"
)

// Field format rules. PAN and mobile follow the Indian formats; amounts are
// unsigned decimal strings.
var (
	panPattern     = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	mobilePattern  = regexp.MustCompile(`^[6-9][0-9]{9}$`)
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[A-Za-z]{2,4}$`)
	decimalPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)
)

// StepValidation is the outcome of validating one wizard step
type StepValidation struct {
	Valid       bool              `json:"valid"`
	FieldErrors map[string]string `json:"field_errors,omitempty"`
}

// WizardService drives an investor through the six ordered form steps.
// It holds no per-user state; the aggregate is passed in on every call.
type WizardService struct {
	validateOnAdvance bool
}

// NewWizardService creates a new wizard service
func NewWizardService(cfg *config.Config) *WizardService {
	return &WizardService{
		validateOnAdvance: cfg.Form.ValidateOnAdvance,
	}
}

// ValidateStep validates only the sections belonging to the given step
func (s *WizardService) ValidateStep(step int, agg *domain.FormAggregate) (*StepValidation, error) {
	if step < domain.MinStep || step > domain.MaxStep {
		return nil, domain.ErrStepOutOfRange
	}

	errs := map[string]string{}

	switch step {
	case 1:
		validatePersonal(&agg.Personal, errs)
	case 2:
		validateFamily("spouse", &agg.Spouse, errs)
		validateFamily("child1", &agg.Child1, errs)
		validateFamily("child2", &agg.Child2, errs)
		validateFamily("parent", &agg.Parent, errs)
	case 3:
		requireField(errs, "personal.nomineeName", agg.Personal.NomineeName)
		requireField(errs, "personal.nomineeRelation", agg.Personal.NomineeRelation)
		requireField(errs, "personal.investmentMode", agg.Personal.InvestmentMode)
	case 4:
		validateNumericSections(agg, errs)
	case 5:
		requireField(errs, "requirements.shortTerm", agg.Requirements.ShortTerm)
		requireField(errs, "requirements.midTerm", agg.Requirements.MidTerm)
		requireField(errs, "requirements.longTerm", agg.Requirements.LongTerm)
		requireField(errs, "requirements.riskAppetite", agg.Requirements.RiskAppetite)
	case 6:
		// Review step has no input of its own
	}

	return &StepValidation{
		Valid:       len(errs) == 0,
		FieldErrors: errs,
	}, nil
}

// Next advances the aggregate by one step, capped at the last step. When
// validate-on-advance is enabled the current step must pass validation
// first; the returned StepValidation carries the field errors either way.
func (s *WizardService) Next(agg *domain.FormAggregate) (*StepValidation, error) {
	if agg.CurrentStep < domain.MinStep || agg.CurrentStep > domain.MaxStep {
		return nil, domain.ErrStepOutOfRange
	}

	result, err := s.ValidateStep(agg.CurrentStep, agg)
	if err != nil {
		return nil, err
	}

	if s.validateOnAdvance && !result.Valid {
		return result, nil
	}

	if agg.CurrentStep < domain.MaxStep {
		agg.CurrentStep++
	}
	return result, nil
}

// Back moves the aggregate one step back, floored at the first step
func (s *WizardService) Back(agg *domain.FormAggregate) {
	if agg.CurrentStep > domain.MinStep {
		agg.CurrentStep--
	}
}

// AddBonus appends a blank bonus row
func (s *WizardService) AddBonus(agg *domain.FormAggregate) {
	agg.Bonuses = append(agg.Bonuses, domain.Bonus{})
}

// RemoveBonus deletes the bonus row at index, refusing removal below the
// floor count
func (s *WizardService) RemoveBonus(agg *domain.FormAggregate, index int) error {
	if index < 0 || index >= len(agg.Bonuses) {
		return domain.ErrListIndexOutOfRange
	}
	if len(agg.Bonuses) <= domain.BonusFloor {
		return domain.ErrListFloorReached
	}
	agg.Bonuses = append(agg.Bonuses[:index], agg.Bonuses[index+1:]...)
	return nil
}

// AddExistingAsset appends a blank existing-asset row
func (s *WizardService) AddExistingAsset(agg *domain.FormAggregate) {
	agg.ExistingAssets = append(agg.ExistingAssets, domain.ExistingAsset{})
}

// RemoveExistingAsset deletes the existing-asset row at index, refusing
// removal below the floor count
func (s *WizardService) RemoveExistingAsset(agg *domain.FormAggregate, index int) error {
	if index < 0 || index >= len(agg.ExistingAssets) {
		return domain.ErrListIndexOutOfRange
	}
	if len(agg.ExistingAssets) <= domain.ExistingAssetFloor {
		return domain.ErrListFloorReached
	}
	agg.ExistingAssets = append(agg.ExistingAssets[:index], agg.ExistingAssets[index+1:]...)
	return nil
}

// AddDetailedAsset appends a blank detailed-asset row numbered after the
// last row
func (s *WizardService) AddDetailedAsset(agg *domain.FormAggregate) {
	next := 0
	for _, a := range agg.DetailedAssets {
		if a.SrNo > next {
			next = a.SrNo
		}
	}
	agg.DetailedAssets = append(agg.DetailedAssets, domain.DetailedAsset{SrNo: next + 1})
}

// RemoveDetailedAsset deletes the detailed-asset row at index and renumbers
// every remaining row whose serial exceeded the removed one, keeping SrNo
// contiguous 1..N. The pre-seeded rows are protected from removal.
func (s *WizardService) RemoveDetailedAsset(agg *domain.FormAggregate, index int) error {
	if index < 0 || index >= len(agg.DetailedAssets) {
		return domain.ErrListIndexOutOfRange
	}
	if index < domain.DetailedAssetFloor {
		return domain.ErrListFloorReached
	}

	removed := agg.DetailedAssets[index].SrNo
	agg.DetailedAssets = append(agg.DetailedAssets[:index], agg.DetailedAssets[index+1:]...)
	for i := range agg.DetailedAssets {
		if agg.DetailedAssets[i].SrNo > removed {
			agg.DetailedAssets[i].SrNo--
		}
	}
	return nil
}

// validatePersonal checks the step-1 fields. Nominee and investment-mode
// fields belong to step 3 and are skipped here.
func validatePersonal(p *domain.PersonalDetails, errs map[string]string) {
	requireField(errs, "personal.firstName", p.FirstName)
	requireField(errs, "personal.lastName", p.LastName)
	requireField(errs, "personal.dateOfBirth", p.DateOfBirth)
	requireField(errs, "personal.address", p.Address)
	requireField(errs, "personal.occupation", p.Occupation)

	if p.PAN == "" {
		errs["personal.pan"] = "This field is required"
	} else if !panPattern.MatchString(p.PAN) {
		errs["personal.pan"] = "PAN must be 5 letters, 4 digits, 1 letter"
	}

	if p.Mobile == "" {
		errs["personal.mobile"] = "This field is required"
	} else if !mobilePattern.MatchString(p.Mobile) {
		errs["personal.mobile"] = "Mobile must be 10 digits starting with 6-9"
	}

	if p.Email == "" {
		errs["personal.email"] = "This field is required"
	} else if !emailPattern.MatchString(p.Email) {
		errs["personal.email"] = "Enter a valid email address"
	}
}

// validateFamily checks one family-member row. The row itself is optional;
// once a name is entered the date of birth is required and a provided PAN
// must be well formed.
func validateFamily(section string, m *domain.FamilyMember, errs map[string]string) {
	if strings.TrimSpace(m.Name) == "" {
		return
	}
	if m.DateOfBirth == "" {
		errs[section+".dateOfBirth"] = "This field is required"
	}
	if m.PAN != "" && !panPattern.MatchString(m.PAN) {
		errs[section+".pan"] = "PAN must be 5 letters, 4 digits, 1 letter"
	}
}

// validateNumericSections checks the step-4 amount fields. Own income is
// required; every other amount is optional but must parse when present.
func validateNumericSections(agg *domain.FormAggregate, errs map[string]string) {
	requireDecimal(errs, "income.selfMonthly", agg.Income.SelfMonthly)
	requireDecimal(errs, "income.selfAnnual", agg.Income.SelfAnnual)
	optionalDecimal(errs, "income.spouseMonthly", agg.Income.SpouseMonthly)
	optionalDecimal(errs, "income.spouseAnnual", agg.Income.SpouseAnnual)
	optionalDecimal(errs, "income.otherMonthly", agg.Income.OtherMonthly)
	optionalDecimal(errs, "income.otherAnnual", agg.Income.OtherAnnual)

	optionalDecimal(errs, "expenses.household", agg.Expenses.Household)
	optionalDecimal(errs, "expenses.rent", agg.Expenses.Rent)
	optionalDecimal(errs, "expenses.emi", agg.Expenses.EMI)
	optionalDecimal(errs, "expenses.insurance", agg.Expenses.Insurance)
	optionalDecimal(errs, "expenses.education", agg.Expenses.Education)
	optionalDecimal(errs, "expenses.transport", agg.Expenses.Transport)
	optionalDecimal(errs, "expenses.medical", agg.Expenses.Medical)
	optionalDecimal(errs, "expenses.lifestyle", agg.Expenses.Lifestyle)
	optionalDecimal(errs, "expenses.others", agg.Expenses.Others)

	optionalDecimal(errs, "residual.buffer", agg.Residual.Buffer)
	optionalDecimal(errs, "residual.others", agg.Residual.Others)

	optionalDecimal(errs, "investments.monthlySip", agg.Investments.MonthlySIP)
	optionalDecimal(errs, "investments.annualLumpsum", agg.Investments.AnnualLumpsum)

	for i, b := range agg.Bonuses {
		optionalDecimal(errs, fmt.Sprintf("bonuses[%d].amount", i), b.Amount)
	}
	for i, a := range agg.ExistingAssets {
		optionalDecimal(errs, fmt.Sprintf("existingAssets[%d].currentValue", i), a.CurrentValue)
	}
	for i, a := range agg.DetailedAssets {
		optionalDecimal(errs, fmt.Sprintf("detailedAssets[%d].currentValue", i), a.CurrentValue)
	}
}

func requireField(errs map[string]string, name, value string) {
	if strings.TrimSpace(value) == "" {
		errs[name] = "This field is required"
	}
}

func requireDecimal(errs map[string]string, name, value string) {
	if value == "" {
		errs[name] = "This field is required"
		return
	}
	if !decimalPattern.MatchString(value) {
		errs[name] = "Enter a valid amount"
	}
}

func optionalDecimal(errs map[string]string, name, value string) {
	if value != "" && !decimalPattern.MatchString(value) {
		errs[name] = "Enter a valid amount"
	}
}
