package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/workhive/workhive_backend/internal/apperrors"
	portssvc "github.com/workhive/workhive_backend/internal/core/ports/services"
	"github.com/workhive/workhive_backend/internal/core/services"
	"github.com/workhive/workhive_backend/internal/dto"
)

type ListingServiceTestSuite struct {
	suite.Suite
	mockListingRepo *MockListingRepository
	service         portssvc.ListingSvcFacade
}

func (suite *ListingServiceTestSuite) SetupTest() {
	suite.mockListingRepo = new(MockListingRepository)
	suite.service = services.NewListingService(suite.mockListingRepo)
}

func (suite *ListingServiceTestSuite) TestCreateListing_Success() {
	ctx := context.Background()
	actorID := uuid.NewString()
	req := dto.CreateListingRequest{
		Title:       "Logo design",
		Description: "Three concepts, two revision rounds",
		Price:       decimal.NewFromInt(250),
	}

	suite.mockListingRepo.On("SaveListing", ctx, mock.AnythingOfType("domain.ServiceListing")).Return(nil).Once()

	listing, err := suite.service.CreateListing(ctx, req, actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(listing)
	suite.NotEmpty(listing.ServiceID)
	suite.Equal(actorID, listing.FreelancerID)
	suite.True(listing.IsActive)
	suite.True(listing.Price.Equal(req.Price))
	suite.mockListingRepo.AssertExpectations(suite.T())
}

func (suite *ListingServiceTestSuite) TestCreateListing_NonPositivePrice() {
	ctx := context.Background()

	listing, err := suite.service.CreateListing(ctx, dto.CreateListingRequest{
		Title: "Free work",
		Price: decimal.Zero,
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(listing)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockListingRepo.AssertNotCalled(suite.T(), "SaveListing", mock.Anything, mock.Anything)
}

func (suite *ListingServiceTestSuite) TestGetListingByID_NotFound() {
	ctx := context.Background()
	serviceID := uuid.NewString()
	suite.mockListingRepo.On("FindListingByID", ctx, serviceID).Return(nil, apperrors.ErrNotFound).Once()

	listing, err := suite.service.GetListingByID(ctx, serviceID)

	suite.Require().Error(err)
	suite.Nil(listing)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestListingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ListingServiceTestSuite))
}
