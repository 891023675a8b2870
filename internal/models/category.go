package models

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Valid reports whether t is one of the known category types.
func (t CategoryType) Valid() bool {
	return t == CategoryTypeIncome || t == CategoryTypeExpense
}

// Category represents a transaction category owned by a single user.
// Default categories are seeded at registration and cannot be renamed or deleted.
type Category struct {
	Base
	UserID    string       `gorm:"type:uuid;not null;uniqueIndex:idx_categories_user_name_type;index:idx_categories_user_type"`
	Name      string       `gorm:"size:100;not null;uniqueIndex:idx_categories_user_name_type"`
	Type      CategoryType `gorm:"size:16;not null;uniqueIndex:idx_categories_user_name_type;index:idx_categories_user_type"`
	IsDefault bool         `gorm:"not null;default:false"`
}

// DefaultCategories returns the categories seeded for every new user.
func DefaultCategories(userID string) []Category {
	seed := []struct {
		name string
		kind CategoryType
	}{
		{"Food", CategoryTypeExpense},
		{"Rent", CategoryTypeExpense},
		{"Travel", CategoryTypeExpense},
		{"Groceries", CategoryTypeExpense},
		{"Salary", CategoryTypeIncome},
		{"Freelance", CategoryTypeIncome},
	}

	categories := make([]Category, 0, len(seed))
	for _, s := range seed {
		categories = append(categories, Category{
			UserID:    userID,
			Name:      s.name,
			Type:      s.kind,
			IsDefault: true,
		})
	}
	return categories
}
