package service

import (
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/storage/sqlconfig"
)

// Kind tags a transaction as money in or money out.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Category is drawn from a fixed set per Kind.
type Category string

const (
	CategorySalary      Category = "salary"
	CategoryFreelance   Category = "freelance"
	CategoryInvestment  Category = "investment"
	CategoryOtherIncome Category = "other_income"

	CategoryHousing        Category = "housing"
	CategoryTransportation Category = "transportation"
	CategoryFood           Category = "food"
	CategoryUtilities      Category = "utilities"
	CategoryHealthcare     Category = "healthcare"
	CategoryEntertainment  Category = "entertainment"
	CategoryShopping       Category = "shopping"
	CategoryOtherExpense   Category = "other_expense"
)

var categoriesByKind = map[Kind][]Category{
	KindIncome: {
		CategorySalary, CategoryFreelance, CategoryInvestment, CategoryOtherIncome,
	},
	KindExpense: {
		CategoryHousing, CategoryTransportation, CategoryFood, CategoryUtilities,
		CategoryHealthcare, CategoryEntertainment, CategoryShopping, CategoryOtherExpense,
	},
}

var categoryKinds = func() map[Category]Kind {
	m := make(map[Category]Kind)
	for kind, categories := range categoriesByKind {
		for _, category := range categories {
			m[category] = kind
		}
	}
	return m
}()

// CategoriesFor returns the categories allowed for kind, or nil for an
// unknown kind.
func CategoriesFor(kind Kind) []Category {
	categories := categoriesByKind[kind]
	if categories == nil {
		return nil
	}
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ValidCategory reports whether category belongs to kind's set.
func ValidCategory(kind Kind, category Category) bool {
	owner, ok := categoryKinds[category]
	return ok && owner == kind
}

// MaxDescriptionLength bounds a transaction description, in characters.
const MaxDescriptionLength = 500

// Transaction represents a transaction in the service layer.
type Transaction struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Kind        Kind
	Category    Category
	Amount      decimal.Decimal
	Description string
	OccurredAt  time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// AppendInput is the data needed to record a transaction. Amount is always
// positive; its sign comes from Kind.
type AppendInput struct {
	Kind        Kind
	Category    Category
	Amount      decimal.Decimal
	Description omit.Val[string]
	OccurredAt  omit.Val[time.Time]
}

// Balance is the owner's aggregate over active transactions.
type Balance struct {
	TotalIncome      decimal.Decimal
	TotalExpense     decimal.Decimal
	CurrentBalance   decimal.Decimal
	TransactionCount int64
}

func transactionFromStorage(row *sqlconfig.Transaction) Transaction {
	return Transaction{
		ID:          row.ID,
		OwnerID:     row.OwnerID,
		Kind:        Kind(row.Kind),
		Category:    Category(row.Category),
		Amount:      row.Amount,
		Description: row.Description,
		OccurredAt:  row.OccurredAt,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
		DeletedAt:   row.DeletedAt,
	}
}
