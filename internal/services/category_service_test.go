package services

import (
	"log/slog"
	"testing"

	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/repositories"
	"fintrack/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type CategoryServiceTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	categoryRepo *repository_mocks.MockCategoryRepositoryInterface
	service      CategoryServiceInterface
}

func (s *CategoryServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.categoryRepo = repository_mocks.NewMockCategoryRepositoryInterface(s.ctrl)
	s.service = NewCategoryService(s.categoryRepo, slog.Default())
}

func (s *CategoryServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestCategoryServiceSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}

func (s *CategoryServiceTestSuite) TestCreate_Success() {
	userID := uuid.New()
	req := &dto.CreateCategoryRequest{Name: "Hobbies", Color: "#AA5500"}

	s.categoryRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(category *models.Category) error {
		category.ID = uuid.New()
		return nil
	})

	category, err := s.service.Create(userID, req)

	s.NoError(err)
	s.Equal("Hobbies", category.Name)
	s.Require().NotNil(category.UserID)
	s.Equal(userID, *category.UserID)
	s.False(category.IsDefault)
}

func (s *CategoryServiceTestSuite) TestCreate_InvalidColor() {
	req := &dto.CreateCategoryRequest{Name: "Hobbies", Color: "orange"}

	category, err := s.service.Create(uuid.New(), req)

	s.ErrorIs(err, ErrInvalidColor)
	s.Nil(category)
}

func (s *CategoryServiceTestSuite) TestListVisibleToUser() {
	userID := uuid.New()
	categories := []models.Category{
		{ID: uuid.New(), Name: "Groceries", IsDefault: true},
		{ID: uuid.New(), Name: "Hobbies", UserID: &userID},
	}

	s.categoryRepo.EXPECT().GetVisibleToUser(userID).Return(categories, nil)

	got, err := s.service.ListVisibleToUser(userID)

	s.NoError(err)
	s.Len(got, 2)
}

func (s *CategoryServiceTestSuite) TestUpdate_OwnCategory() {
	userID := uuid.New()
	category := &models.Category{
		ID:     uuid.New(),
		UserID: &userID,
		Name:   "Old",
		Color:  "#112233",
	}
	newName := "New"
	req := &dto.UpdateCategoryRequest{Name: &newName}

	s.categoryRepo.EXPECT().GetByID(category.ID).Return(category, nil)
	s.categoryRepo.EXPECT().Update(gomock.Any()).Return(nil)

	updated, err := s.service.Update(userID, false, category.ID, req)

	s.NoError(err)
	s.Equal("New", updated.Name)
}

func (s *CategoryServiceTestSuite) TestUpdate_DefaultRequiresAdmin() {
	category := &models.Category{
		ID:        uuid.New(),
		Name:      "Groceries",
		Color:     "#112233",
		IsDefault: true,
	}
	newName := "Food"
	req := &dto.UpdateCategoryRequest{Name: &newName}

	s.categoryRepo.EXPECT().GetByID(category.ID).Return(category, nil)

	updated, err := s.service.Update(uuid.New(), false, category.ID, req)

	s.ErrorIs(err, ErrCategoryReadOnly)
	s.Nil(updated)
}

func (s *CategoryServiceTestSuite) TestUpdate_AdminCanEditDefault() {
	category := &models.Category{
		ID:        uuid.New(),
		Name:      "Groceries",
		Color:     "#112233",
		IsDefault: true,
	}
	newColor := "#445566"
	req := &dto.UpdateCategoryRequest{Color: &newColor}

	s.categoryRepo.EXPECT().GetByID(category.ID).Return(category, nil)
	s.categoryRepo.EXPECT().Update(gomock.Any()).Return(nil)

	updated, err := s.service.Update(uuid.New(), true, category.ID, req)

	s.NoError(err)
	s.Equal("#445566", updated.Color)
}

// Another user's personal category must look like a missing one, not a
// forbidden one
func (s *CategoryServiceTestSuite) TestUpdate_OtherUsersCategoryReportedNotFound() {
	ownerID := uuid.New()
	category := &models.Category{
		ID:     uuid.New(),
		UserID: &ownerID,
		Name:   "Private",
		Color:  "#112233",
	}
	newName := "Stolen"
	req := &dto.UpdateCategoryRequest{Name: &newName}

	s.categoryRepo.EXPECT().GetByID(category.ID).Return(category, nil)

	updated, err := s.service.Update(uuid.New(), false, category.ID, req)

	s.ErrorIs(err, ErrCategoryNotFound)
	s.Nil(updated)
}

func (s *CategoryServiceTestSuite) TestDelete_Success() {
	userID := uuid.New()
	category := &models.Category{ID: uuid.New(), UserID: &userID, Name: "Hobbies", Color: "#112233"}

	s.categoryRepo.EXPECT().GetByID(category.ID).Return(category, nil)
	s.categoryRepo.EXPECT().CountReferences(category.ID).Return(int64(0), nil)
	s.categoryRepo.EXPECT().Delete(category.ID).Return(nil)

	err := s.service.Delete(userID, false, category.ID)

	s.NoError(err)
}

func (s *CategoryServiceTestSuite) TestDelete_BlockedByReferences() {
	userID := uuid.New()
	category := &models.Category{ID: uuid.New(), UserID: &userID, Name: "Hobbies", Color: "#112233"}

	s.categoryRepo.EXPECT().GetByID(category.ID).Return(category, nil)
	s.categoryRepo.EXPECT().CountReferences(category.ID).Return(int64(2), nil)

	err := s.service.Delete(userID, false, category.ID)

	s.ErrorIs(err, ErrCategoryInUse)
}

func (s *CategoryServiceTestSuite) TestDelete_DefaultRequiresAdmin() {
	category := &models.Category{ID: uuid.New(), Name: "Groceries", IsDefault: true}

	s.categoryRepo.EXPECT().GetByID(category.ID).Return(category, nil)

	err := s.service.Delete(uuid.New(), false, category.ID)

	s.ErrorIs(err, ErrCategoryReadOnly)
}

func (s *CategoryServiceTestSuite) TestDelete_NotFound() {
	categoryID := uuid.New()

	s.categoryRepo.EXPECT().GetByID(categoryID).Return(nil, repositories.ErrCategoryNotFound)

	err := s.service.Delete(uuid.New(), false, categoryID)

	s.ErrorIs(err, ErrCategoryNotFound)
}

func (s *CategoryServiceTestSuite) TestEnsureDefaultCategories_SeedsEmptySet() {
	s.categoryRepo.EXPECT().GetDefaults().Return(nil, nil)
	s.categoryRepo.EXPECT().CreateBatch(gomock.Any()).DoAndReturn(func(categories []models.Category) error {
		s.Len(categories, len(models.DefaultCategorySeeds()))
		for _, category := range categories {
			s.True(category.IsDefault)
			s.Nil(category.UserID)
		}
		return nil
	})

	err := s.service.EnsureDefaultCategories(uuid.New())

	s.NoError(err)
}

func (s *CategoryServiceTestSuite) TestEnsureDefaultCategories_IdempotentWhenSeeded() {
	existing := []models.Category{{ID: uuid.New(), Name: "Groceries", IsDefault: true}}

	s.categoryRepo.EXPECT().GetDefaults().Return(existing, nil)

	err := s.service.EnsureDefaultCategories(uuid.New())

	s.NoError(err)
}
