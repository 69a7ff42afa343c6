package domain

// Wizard step bounds
const (
	MinStep = 1
	MaxStep = 6
)

// Profile statuses persisted alongside the aggregate
const (
	StatusInProgress = "in_progress"
	StatusSubmitted  = "submitted"
)

// Minimum row counts for the aggregate's lists
const (
	BonusFloor         = 1
	ExistingAssetFloor = 1
	// The first DetailedAssetFloor detailed-asset rows are pre-seeded
	// standard instruments and cannot be removed.
	DetailedAssetFloor = 4
)

// PersonalDetails holds the investor's own particulars. The nominee and
// investment-mode fields live here but are entered (and validated) at the
// nominee/investment step, not at step 1.
type PersonalDetails struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth"`
	PAN         string `json:"pan"`
	Mobile      string `json:"mobile"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	Occupation  string `json:"occupation"`

	// Step 3 fields
	NomineeName     string `json:"nomineeName"`
	NomineeRelation string `json:"nomineeRelation"`
	InvestmentMode  string `json:"investmentMode"`
}

// FamilyMember is one spouse/child/parent record
type FamilyMember struct {
	Name        string `json:"name"`
	DateOfBirth string `json:"dateOfBirth"`
	Occupation  string `json:"occupation"`
	PAN         string `json:"pan"`
}

// IncomeDetails holds monthly and annual income fields. All amounts are
// decimal strings as entered; empty means not provided.
type IncomeDetails struct {
	SelfMonthly   string `json:"selfMonthly"`
	SpouseMonthly string `json:"spouseMonthly"`
	OtherMonthly  string `json:"otherMonthly"`
	SelfAnnual    string `json:"selfAnnual"`
	SpouseAnnual  string `json:"spouseAnnual"`
	OtherAnnual   string `json:"otherAnnual"`
}

// ExpenseDetails holds the monthly expense fields
type ExpenseDetails struct {
	Household string `json:"household"`
	Rent      string `json:"rent"`
	EMI       string `json:"emi"`
	Insurance string `json:"insurance"`
	Education string `json:"education"`
	Transport string `json:"transport"`
	Medical   string `json:"medical"`
	Lifestyle string `json:"lifestyle"`
	Others    string `json:"others"`
}

// ResidualDetails holds amounts set aside before computing the investable
// residual
type ResidualDetails struct {
	Buffer string `json:"buffer"`
	Others string `json:"others"`
}

// InvestmentDetails holds planned investment amounts
type InvestmentDetails struct {
	MonthlySIP    string `json:"monthlySip"`
	AnnualLumpsum string `json:"annualLumpsum"`
}

// Bonus is one expected bonus/windfall row
type Bonus struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

// ExistingAsset is one summary row of an asset already held
type ExistingAsset struct {
	AssetName    string `json:"assetName"`
	Institution  string `json:"institution"`
	CurrentValue string `json:"currentValue"`
}

// DetailedAsset is one serial-numbered asset row used for allocation
// breakdowns. SrNo stays contiguous 1..N across removals.
type DetailedAsset struct {
	SrNo         int    `json:"srNo"`
	AssetType    string `json:"assetType"`
	AssetDetails string `json:"assetDetails"`
	CurrentValue string `json:"currentValue"`
}

// RequirementDetails holds the investor's stated goals and risk appetite
type RequirementDetails struct {
	ShortTerm    string `json:"shortTerm"`
	MidTerm      string `json:"midTerm"`
	LongTerm     string `json:"longTerm"`
	RiskAppetite string `json:"riskAppetite"`
}

// FormAggregate is the full in-progress investor profile spanning all
// wizard sections. One investor owns one in-progress aggregate; there are
// no concurrent editors.
type FormAggregate struct {
	CurrentStep int `json:"currentStep"`

	Personal PersonalDetails `json:"personal"`
	Spouse   FamilyMember    `json:"spouse"`
	Child1   FamilyMember    `json:"child1"`
	Child2   FamilyMember    `json:"child2"`
	Parent   FamilyMember    `json:"parent"`

	Income      IncomeDetails      `json:"income"`
	Expenses    ExpenseDetails     `json:"expenses"`
	Residual    ResidualDetails    `json:"residual"`
	Investments InvestmentDetails  `json:"investments"`
	Bonuses     []Bonus            `json:"bonuses"`

	ExistingAssets []ExistingAsset `json:"existingAssets"`
	DetailedAssets []DetailedAsset `json:"detailedAssets"`

	Requirements RequirementDetails `json:"requirements"`
}

// NewFormAggregate returns an empty aggregate at step 1 with the seeded
// list rows in place.
func NewFormAggregate() *FormAggregate {
	return &FormAggregate{
		CurrentStep:    MinStep,
		Bonuses:        []Bonus{{}},
		ExistingAssets: []ExistingAsset{{}},
		DetailedAssets: []DetailedAsset{
			{SrNo: 1, AssetType: "EPF"},
			{SrNo: 2, AssetType: "PPF"},
			{SrNo: 3, AssetType: "Life Insurance"},
			{SrNo: 4, AssetType: "Fixed Deposit"},
		},
	}
}
