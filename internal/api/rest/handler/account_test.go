package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/passkeep/passkeep-server/internal/apierrors"
	"github.com/passkeep/passkeep-server/internal/model"
	"github.com/passkeep/passkeep-server/internal/service"
	"github.com/passkeep/passkeep-server/internal/testutil"
)

type mockAccountService struct {
	mock.Mock
}

func (m *mockAccountService) List(ctx context.Context, actorID uuid.UUID) ([]model.Account, error) {
	args := m.Called(ctx, actorID)
	return args.Get(0).([]model.Account), args.Error(1)
}

func (m *mockAccountService) Get(ctx context.Context, actorID, accountID uuid.UUID) (model.Account, error) {
	args := m.Called(ctx, actorID, accountID)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *mockAccountService) Create(ctx context.Context, actorID uuid.UUID, params service.CreateAccountParams) (model.Account, error) {
	args := m.Called(ctx, actorID, params)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *mockAccountService) Update(ctx context.Context, actorID, accountID uuid.UUID, update model.AccountUpdate) (model.Account, error) {
	args := m.Called(ctx, actorID, accountID, update)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *mockAccountService) ResetPassword(ctx context.Context, actorID, accountID uuid.UUID, newPassword, confirmation string) error {
	args := m.Called(ctx, actorID, accountID, newPassword, confirmation)
	return args.Error(0)
}

func (m *mockAccountService) Delete(ctx context.Context, actorID, accountID uuid.UUID) error {
	args := m.Called(ctx, actorID, accountID)
	return args.Error(0)
}

func makeAccountEngine(svc AccountService, actorID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAccount(svc, testutil.MakeNoopLogger())

	engine := gin.New()
	group := engine.Group("/", identify(actorID, "token-1"))
	group.GET("/accounts", h.List)
	group.POST("/accounts", h.Create)
	group.GET("/accounts/:id", h.Get)
	group.PUT("/accounts/:id", h.Update)
	group.DELETE("/accounts/:id", h.Delete)
	group.PUT("/account/reset-password/:id", h.ResetPassword)
	return engine
}

func TestAccountHandler_List(t *testing.T) {
	svc := &mockAccountService{}
	actorID := uuid.New()
	engine := makeAccountEngine(svc, actorID)

	svc.On("List", mock.Anything, actorID).Return([]model.Account{
		{ID: uuid.New(), Name: "github", Password: "plain-secret", UserID: actorID},
	}, nil).Once()

	w := performJSON(t, engine, http.MethodGet, "/accounts", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "github")
	assert.Contains(t, w.Body.String(), "plain-secret")
}

func TestAccountHandler_List_Empty(t *testing.T) {
	svc := &mockAccountService{}
	actorID := uuid.New()
	engine := makeAccountEngine(svc, actorID)

	svc.On("List", mock.Anything, actorID).Return([]model.Account(nil), apierrors.NewErrNoAccountsFound()).Once()

	w := performJSON(t, engine, http.MethodGet, "/accounts", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No accounts found.", decodeBody(t, w)["message"])
}

func TestAccountHandler_Get(t *testing.T) {
	svc := &mockAccountService{}
	actorID := uuid.New()
	accountID := uuid.New()
	engine := makeAccountEngine(svc, actorID)

	svc.On("Get", mock.Anything, actorID, accountID).Return(model.Account{
		ID:       accountID,
		Name:     "github",
		Password: "plain-secret",
	}, nil).Once()

	w := performJSON(t, engine, http.MethodGet, "/accounts/"+accountID.String(), nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), accountID.String())
}

func TestAccountHandler_Get_BadID(t *testing.T) {
	svc := &mockAccountService{}
	engine := makeAccountEngine(svc, uuid.New())

	w := performJSON(t, engine, http.MethodGet, "/accounts/42", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Account does not exist", decodeBody(t, w)["message"])
	svc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}

func TestAccountHandler_Create(t *testing.T) {
	svc := &mockAccountService{}
	actorID := uuid.New()
	engine := makeAccountEngine(svc, actorID)

	svc.On("Create", mock.Anything, actorID, service.CreateAccountParams{
		Name:                 "github",
		Password:             "hunter22",
		PasswordConfirmation: "hunter22",
	}).Return(model.Account{ID: uuid.New(), Name: "github", UserID: actorID}, nil).Once()

	w := performJSON(t, engine, http.MethodPost, "/accounts", gin.H{
		"name":                  "github",
		"password":              "hunter22",
		"password_confirmation": "hunter22",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "github")
	svc.AssertExpectations(t)
}

func TestAccountHandler_Create_Validation(t *testing.T) {
	svc := &mockAccountService{}
	actorID := uuid.New()
	engine := makeAccountEngine(svc, actorID)

	svc.On("Create", mock.Anything, actorID, mock.Anything).
		Return(model.Account{}, apierrors.NewErrValidation("The password must be at least 6 characters.")).Once()

	w := performJSON(t, engine, http.MethodPost, "/accounts", gin.H{
		"name":                  "github",
		"password":              "abc",
		"password_confirmation": "abc",
	})

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "The password must be at least 6 characters.", decodeBody(t, w)["message"])
}

func TestAccountHandler_Update(t *testing.T) {
	svc := &mockAccountService{}
	actorID := uuid.New()
	accountID := uuid.New()
	engine := makeAccountEngine(svc, actorID)
	name := "gitlab"

	svc.On("Update", mock.Anything, actorID, accountID, model.AccountUpdate{Name: &name}).
		Return(model.Account{ID: accountID, Name: name}, nil).Once()

	w := performJSON(t, engine, http.MethodPut, "/accounts/"+accountID.String(), gin.H{"name": name})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), name)
}

func TestAccountHandler_ResetPassword(t *testing.T) {
	svc := &mockAccountService{}
	actorID := uuid.New()
	accountID := uuid.New()
	engine := makeAccountEngine(svc, actorID)

	svc.On("ResetPassword", mock.Anything, actorID, accountID, "new-secret", "new-secret").Return(nil).Once()

	w := performJSON(t, engine, http.MethodPut, "/account/reset-password/"+accountID.String(), gin.H{
		"password":              "new-secret",
		"password_confirmation": "new-secret",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Password reset successfully", decodeBody(t, w)["message"])
}

func TestAccountHandler_ResetPassword_SamePassword(t *testing.T) {
	svc := &mockAccountService{}
	actorID := uuid.New()
	accountID := uuid.New()
	engine := makeAccountEngine(svc, actorID)

	svc.On("ResetPassword", mock.Anything, actorID, accountID, "same", "same").
		Return(apierrors.NewErrSamePassword()).Once()

	w := performJSON(t, engine, http.MethodPut, "/account/reset-password/"+accountID.String(), gin.H{
		"password":              "same",
		"password_confirmation": "same",
	})

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAccountHandler_Delete(t *testing.T) {
	svc := &mockAccountService{}
	actorID := uuid.New()
	accountID := uuid.New()
	engine := makeAccountEngine(svc, actorID)

	svc.On("Delete", mock.Anything, actorID, accountID).Return(nil).Once()

	w := performJSON(t, engine, http.MethodDelete, "/accounts/"+accountID.String(), nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Account successfully deleted", decodeBody(t, w)["message"])
}

func TestAccountHandler_Delete_Forbidden(t *testing.T) {
	svc := &mockAccountService{}
	actorID := uuid.New()
	accountID := uuid.New()
	engine := makeAccountEngine(svc, actorID)

	svc.On("Delete", mock.Anything, actorID, accountID).Return(apierrors.NewErrForbidden()).Once()

	w := performJSON(t, engine, http.MethodDelete, "/accounts/"+accountID.String(), nil)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestAccountHandler_NoIdentity(t *testing.T) {
	svc := &mockAccountService{}
	gin.SetMode(gin.TestMode)
	h := NewAccount(svc, testutil.MakeNoopLogger())

	engine := gin.New()
	engine.GET("/accounts", h.List)

	w := performJSON(t, engine, http.MethodGet, "/accounts", nil)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}
