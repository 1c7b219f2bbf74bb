package models

// Expense category names referenced directly in code.
const (
	CategorySupermarket   = "Supermarket"
	CategoryEatingOut     = "Eating & Drinking Out"
	CategoryCoffee        = "Coffee"
	CategoryAlcohol       = "Alcohol"
	CategoryTransport     = "Transport"
	CategoryEntertainment = "Entertainment"
	CategoryShopping      = "Shopping"
	CategoryBills         = "Bills"
	CategorySubscriptions = "Subscriptions & Memberships"
	CategoryRent          = "Rent & Mortgage"
	CategoryHealth        = "Health"
	CategoryKids          = "Kids"
	CategoryHoliday       = "Holiday"
	CategoryOther         = "Other"
)

// Legacy category names migrated by the recategorize pass.
const (
	LegacyCategoryEatingOut   = "Eating Out"
	LegacyCategoryDrinkingOut = "Drinking Out"
)

// DefaultIncomeCategory is assigned to income rows created during a
// statement import; the user adjusts it during review.
const DefaultIncomeCategory = "Salary (Net)"

// ExpenseCategories is the fixed expense category list, in declared order.
var ExpenseCategories = []string{
	CategorySupermarket,
	CategoryEatingOut,
	CategoryCoffee,
	CategoryAlcohol,
	CategoryTransport,
	CategoryEntertainment,
	CategoryShopping,
	CategoryBills,
	CategorySubscriptions,
	CategoryRent,
	CategoryHealth,
	CategoryKids,
	CategoryHoliday,
	CategoryOther,
}

// IncomeCategories is the fixed income category list, disjoint from the
// expense categories.
var IncomeCategories = []string{
	"Salary (Net)",
	"Salary (Gross)",
	"Freelance",
	"Rental Income",
	"Investment Income",
	"Business Income",
	"Government Benefits",
	"Gift/Inheritance",
	"Other",
}

// IsExpenseCategory reports whether name is one of the fixed expense
// categories.
func IsExpenseCategory(name string) bool {
	for _, c := range ExpenseCategories {
		if c == name {
			return true
		}
	}
	return false
}

// IsIncomeCategory reports whether name is one of the fixed income
// categories.
func IsIncomeCategory(name string) bool {
	for _, c := range IncomeCategories {
		if c == name {
			return true
		}
	}
	return false
}

// CategoryConfig represents a single category entry in the categories YAML
// file: a name plus the lowercase keywords that map onto it.
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// CategoriesConfig represents the structure of the categories YAML file.
type CategoriesConfig struct {
	Categories []CategoryConfig `yaml:"categories"`
}
