package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/services"
	"fintrack/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

func TestCategoryHandler(t *testing.T) {
	suite.Run(t, new(CategoryHandlerSuite))
}

type CategoryHandlerSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	categoryService *service_mocks.MockCategoryServiceInterface
	handler         *CategoryHandler
	e               *echo.Echo
	userID          uuid.UUID
}

func (s *CategoryHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.categoryService = service_mocks.NewMockCategoryServiceInterface(s.ctrl)
	s.handler = NewCategoryHandler(s.categoryService)
	s.e = echo.New()
	s.e.Validator = NewValidator()
	s.userID = uuid.New()
}

func (s *CategoryHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *CategoryHandlerSuite) TestCreate() {
	s.Run("successful creation", func() {
		body, _ := json.Marshal(map[string]string{
			"name":  "Hobbies",
			"color": "#a855f7",
		})

		expected := &models.Category{
			ID:     uuid.New(),
			UserID: &s.userID,
			Name:   "Hobbies",
			Color:  "#a855f7",
		}

		s.categoryService.EXPECT().
			Create(s.userID, gomock.Any()).
			Return(expected, nil).
			Times(1)

		c, rec := authedRequest(s.e, http.MethodPost, "/categories", body, s.userID)

		s.NoError(s.handler.Create(c))
		s.Equal(http.StatusCreated, rec.Code)

		var response SuccessResponse
		_ = json.Unmarshal(rec.Body.Bytes(), &response)
		s.NotNil(response.Data)
	})

	s.Run("invalid color fails validation", func() {
		body, _ := json.Marshal(map[string]string{
			"name":  "Hobbies",
			"color": "purple",
		})

		// No expectation: the hex_color rule rejects the value first
		c, _ := authedRequest(s.e, http.MethodPost, "/categories", body, s.userID)

		s.Error(s.handler.Create(c))
	})
}

func (s *CategoryHandlerSuite) TestList() {
	s.Run("returns defaults and personal categories", func() {
		categories := []models.Category{
			{ID: uuid.New(), Name: "Groceries", Color: "#10b981", IsDefault: true},
			{ID: uuid.New(), UserID: &s.userID, Name: "Hobbies", Color: "#a855f7"},
		}

		s.categoryService.EXPECT().
			ListVisibleToUser(s.userID).
			Return(categories, nil).
			Times(1)

		c, rec := authedRequest(s.e, http.MethodGet, "/categories", nil, s.userID)

		s.NoError(s.handler.List(c))
		s.Equal(http.StatusOK, rec.Code)

		var response dto.CategoryListResponse
		s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
		s.Len(response.Categories, 2)
	})
}

func (s *CategoryHandlerSuite) TestUpdate() {
	s.Run("renames own category", func() {
		categoryID := uuid.New()
		body, _ := json.Marshal(map[string]string{"name": "Pastimes"})

		expected := &models.Category{ID: categoryID, UserID: &s.userID, Name: "Pastimes", Color: "#a855f7"}

		s.categoryService.EXPECT().
			Update(s.userID, false, categoryID, gomock.Any()).
			Return(expected, nil).
			Times(1)

		c, rec := authedRequest(s.e, http.MethodPut, "/categories/"+categoryID.String(), body, s.userID)
		c.SetParamNames("id")
		c.SetParamValues(categoryID.String())

		s.NoError(s.handler.Update(c))
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("default category is read-only for regular users", func() {
		categoryID := uuid.New()
		body, _ := json.Marshal(map[string]string{"name": "Food"})

		s.categoryService.EXPECT().
			Update(s.userID, false, categoryID, gomock.Any()).
			Return(nil, services.ErrCategoryReadOnly).
			Times(1)

		c, rec := authedRequest(s.e, http.MethodPut, "/categories/"+categoryID.String(), body, s.userID)
		c.SetParamNames("id")
		c.SetParamValues(categoryID.String())

		s.NoError(s.handler.Update(c))
		s.Equal(http.StatusForbidden, rec.Code)
		s.Equal("CATEGORY_002", decodeError(&s.Suite, rec).Error.Code)
	})

	s.Run("admin flag is forwarded", func() {
		categoryID := uuid.New()
		body, _ := json.Marshal(map[string]string{"name": "Food"})

		expected := &models.Category{ID: categoryID, Name: "Food", Color: "#10b981", IsDefault: true}

		s.categoryService.EXPECT().
			Update(s.userID, true, categoryID, gomock.Any()).
			Return(expected, nil).
			Times(1)

		c, rec := authedRequest(s.e, http.MethodPut, "/categories/"+categoryID.String(), body, s.userID)
		c.Set("is_admin", true)
		c.SetParamNames("id")
		c.SetParamValues(categoryID.String())

		s.NoError(s.handler.Update(c))
		s.Equal(http.StatusOK, rec.Code)
	})
}

func (s *CategoryHandlerSuite) TestDelete() {
	s.Run("successful deletion", func() {
		categoryID := uuid.New()

		s.categoryService.EXPECT().
			Delete(s.userID, false, categoryID).
			Return(nil).
			Times(1)

		c, rec := authedRequest(s.e, http.MethodDelete, "/categories/"+categoryID.String(), nil, s.userID)
		c.SetParamNames("id")
		c.SetParamValues(categoryID.String())

		s.NoError(s.handler.Delete(c))
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("category referenced by transactions or budgets", func() {
		categoryID := uuid.New()

		s.categoryService.EXPECT().
			Delete(s.userID, false, categoryID).
			Return(services.ErrCategoryInUse).
			Times(1)

		c, rec := authedRequest(s.e, http.MethodDelete, "/categories/"+categoryID.String(), nil, s.userID)
		c.SetParamNames("id")
		c.SetParamValues(categoryID.String())

		s.NoError(s.handler.Delete(c))
		s.Equal(http.StatusConflict, rec.Code)
		s.Equal("CATEGORY_003", decodeError(&s.Suite, rec).Error.Code)
	})

	s.Run("not found", func() {
		categoryID := uuid.New()

		s.categoryService.EXPECT().
			Delete(s.userID, false, categoryID).
			Return(services.ErrCategoryNotFound).
			Times(1)

		c, rec := authedRequest(s.e, http.MethodDelete, "/categories/"+categoryID.String(), nil, s.userID)
		c.SetParamNames("id")
		c.SetParamValues(categoryID.String())

		s.NoError(s.handler.Delete(c))
		s.Equal(http.StatusNotFound, rec.Code)
		s.Equal("CATEGORY_001", decodeError(&s.Suite, rec).Error.Code)
	})
}
