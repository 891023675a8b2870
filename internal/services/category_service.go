package services

import (
	"strings"

	"gorm.io/gorm"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// ListCategories returns the user's categories split into income and expense,
// each ordered by name.
func (s *categoryService) ListCategories(userID string) (*CategoryLists, error) {
	var categories []models.Category
	if err := s.db.Where("user_id = ?", userID).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	lists := &CategoryLists{
		Income:  []models.Category{},
		Expense: []models.Category{},
	}
	for _, c := range categories {
		switch c.Type {
		case models.CategoryTypeIncome:
			lists.Income = append(lists.Income, c)
		case models.CategoryTypeExpense:
			lists.Expense = append(lists.Expense, c)
		}
	}
	return lists, nil
}

// CreateCategory creates a new custom category
func (s *categoryService) CreateCategory(userID, name string, categoryType models.CategoryType) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" || categoryType == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Please provide a name and type.")
	}
	if !categoryType.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Category type must be income or expense.")
	}

	if err := s.ensureUnique(userID, name, categoryType, ""); err != nil {
		return nil, err
	}

	category := &models.Category{
		UserID:    userID,
		Name:      name,
		Type:      categoryType,
		IsDefault: false,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, dbError(err, nil, apperrors.ErrDuplicateCategory)
	}

	return category, nil
}

// GetCategoryByID retrieves a category by ID for a specific user
func (s *categoryService) GetCategoryByID(userID, categoryID string) (*models.Category, error) {
	if !validID(categoryID) {
		return nil, apperrors.ErrCategoryNotFound
	}

	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		return nil, dbError(err, apperrors.ErrCategoryNotFound, nil)
	}
	return &category, nil
}

// UpdateCategory renames a custom category
func (s *categoryService) UpdateCategory(userID, categoryID, name string) (*models.Category, error) {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return nil, err
	}

	if category.IsDefault {
		return nil, apperrors.ErrDefaultCategoryImmutable
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Please provide a name.")
	}
	if name == category.Name {
		return category, nil
	}

	if err := s.ensureUnique(userID, name, category.Type, category.ID); err != nil {
		return nil, err
	}

	if err := s.db.Model(category).Update("name", name).Error; err != nil {
		return nil, dbError(err, nil, apperrors.ErrDuplicateCategory)
	}
	category.Name = name

	return category, nil
}

// DeleteCategory deletes a custom category that no transaction references
func (s *categoryService) DeleteCategory(userID, categoryID string) error {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return err
	}

	if category.IsDefault {
		return apperrors.WithMessage(apperrors.ErrDefaultCategoryImmutable, "Default categories cannot be deleted.")
	}

	var inUse int64
	if err := s.db.Model(&models.Transaction{}).
		Where("category_id = ?", category.ID).
		Count(&inUse).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if inUse > 0 {
		return apperrors.ErrCategoryInUse
	}

	if err := s.db.Delete(category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ensureUnique rejects a (user, name, type) triple that already exists,
// ignoring the category being renamed.
func (s *categoryService) ensureUnique(userID, name string, categoryType models.CategoryType, exceptID string) error {
	q := s.db.Model(&models.Category{}).
		Where("user_id = ? AND name = ? AND type = ?", userID, name, categoryType)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.ErrDuplicateCategory
	}
	return nil
}
