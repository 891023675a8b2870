package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"pennywise/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plaintext password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithUsername(t, db, fmt.Sprintf("user%d", nextID()))
}

// CreateTestUserWithUsername creates a user with the given username and no categories.
func CreateTestUserWithUsername(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory creates a custom (non-default) category of the given type.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID string, categoryType models.CategoryType) *models.Category {
	t.Helper()
	return createCategory(t, db, userID, categoryType, false)
}

// CreateTestDefaultCategory creates a default category of the given type.
func CreateTestDefaultCategory(t *testing.T, db *gorm.DB, userID string, categoryType models.CategoryType) *models.Category {
	t.Helper()
	return createCategory(t, db, userID, categoryType, true)
}

func createCategory(t *testing.T, db *gorm.DB, userID string, categoryType models.CategoryType, isDefault bool) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID:    userID,
		Name:      fmt.Sprintf("Test Category %d", nextID()),
		Type:      categoryType,
		IsDefault: isDefault,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction creates a transaction in the given category, dated now.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string, category *models.Category, amount string) *models.Transaction {
	t.Helper()
	return CreateTestTransactionOn(t, db, userID, category, amount, time.Now())
}

// CreateTestTransactionOn creates a transaction in the given category on a specific date.
// The transaction type follows the category type.
func CreateTestTransactionOn(t *testing.T, db *gorm.DB, userID string, category *models.Category, amount string, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:     userID,
		Type:       models.TransactionType(category.Type),
		CategoryID: category.ID,
		Amount:     decimal.RequireFromString(amount),
		Date:       date,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}
