package upgrade

// DefaultUpgrades is the built-in upgrade tree.
//
// Scoring is base × key multiplier × combo multiplier. Costs are tuned for
// roughly one unlock per minute at 100 WPM.
var DefaultUpgrades = []Upgrade{
	{
		ID:          1,
		Name:        "Vowel Power",
		Description: "All vowels give 3× score",
		Cost:        50,
		Effect:      Effect{Kind: VowelMultiplier, Value: 3},
	},
	{
		ID:              2,
		Name:            "Consonant Boost",
		Description:     "All consonants give 3× score",
		Cost:            200,
		Effect:          Effect{Kind: ConsonantMultiplier, Value: 3},
		PrerequisiteIDs: []int{1},
	},
	{
		ID:              3,
		Name:            "Keyboard Upgrade I",
		Description:     "All keys are worth more (base 1 → 5)",
		Cost:            600,
		Effect:          Effect{Kind: BaseScore, Value: 5},
		PrerequisiteIDs: []int{1},
	},
	{
		ID:              4,
		Name:            "Vowel Mastery",
		Description:     "All vowels give 5× score",
		Cost:            1500,
		Effect:          Effect{Kind: VowelMultiplier, Value: 5},
		PrerequisiteIDs: []int{1},
	},
	{
		ID:              5,
		Name:            "Consonant Mastery",
		Description:     "All consonants give 5× score",
		Cost:            3000,
		Effect:          Effect{Kind: ConsonantMultiplier, Value: 5},
		PrerequisiteIDs: []int{2},
	},
	{
		ID:              6,
		Name:            "Combo System",
		Description:     "Unlocks 3× combo at 60 WPM",
		Cost:            6000,
		Effect:          Effect{Kind: ComboUnlock, Value: 60, TierMultiplier: 3},
		PrerequisiteIDs: []int{3, 4, 5},
	},
	{
		ID:              10,
		Name:            "Keyboard Upgrade II",
		Description:     "All keys are worth much more (base 5 → 20)",
		Cost:            12000,
		Effect:          Effect{Kind: BaseScore, Value: 20},
		PrerequisiteIDs: []int{3},
	},
	{
		ID:              7,
		Name:            "Combo Efficiency",
		Description:     "3× combo threshold lowered to 40 WPM",
		Cost:            20000,
		Effect:          Effect{Kind: ComboThreshold, Value: 40, TierMultiplier: 3},
		PrerequisiteIDs: []int{6},
	},
	{
		ID:              8,
		Name:            "Speed Demon",
		Description:     "Unlocks 5× combo at 80 WPM",
		Cost:            35000,
		Effect:          Effect{Kind: ComboUnlock, Value: 80, TierMultiplier: 5},
		PrerequisiteIDs: []int{6},
	},
	{
		ID:              9,
		Name:            "Unbreakable Focus",
		Description:     "Mistakes no longer disable combos",
		Cost:            50000,
		Effect:          Effect{Kind: ComboNoBreak, Value: 1},
		PrerequisiteIDs: []int{3, 4, 5},
	},
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := NewCatalog(DefaultUpgrades)
	if err != nil {
		panic("upgrade: invalid built-in catalog: " + err.Error())
	}
	return c
}
