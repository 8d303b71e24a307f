package accountdelivery

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/go-ledger/bank-ledger/internal/domain"
	"github.com/go-ledger/bank-ledger/pkg/errorspkg"
	"github.com/go-ledger/bank-ledger/pkg/randompkg"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestRouter(service Service) *gin.Engine {
	handler := NewHandler(service)

	router := gin.New()
	router.POST("/accounts", handler.Create)
	router.GET("/accounts", handler.List)
	router.GET("/accounts/:id/balance", handler.GetBalance)

	return router
}

func randomAccount(id int32, balance string) domain.Account {
	return domain.Account{
		ID:        id,
		OwnerName: randompkg.Owner(),
		Balance:   balance,
		CreatedAt: time.Now().Truncate(time.Second).UTC(),
	}
}

func TestCreateAPI(t *testing.T) {
	account := randomAccount(1, "1000")

	type requestBody struct {
		OwnerName      string `json:"owner_name,omitempty"`
		InitialBalance string `json:"initial_balance,omitempty"`
	}

	testCases := []struct {
		name           string
		requestBody    requestBody
		buildStubs     func(service *MockService)
		wantStatusCode int
		wantError      string
	}{
		{
			name:        "OK",
			requestBody: requestBody{OwnerName: account.OwnerName, InitialBalance: "1000"},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Eq(account.OwnerName), gomock.Eq("1000")).
					Times(1).
					Return(account, nil)
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name:        "MissingOwnerName",
			requestBody: requestBody{InitialBalance: "1000"},
			buildStubs: func(service *MockService) {
				service.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "OwnerName is required",
		},
		{
			name:        "NegativeInitialBalance",
			requestBody: requestBody{OwnerName: account.OwnerName, InitialBalance: "-100"},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Account{}, domain.ErrNegativeInitialBalance)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      domain.ErrNegativeInitialBalance.Error(),
		},
		{
			name:        "OwnerAlreadyExists",
			requestBody: requestBody{OwnerName: account.OwnerName, InitialBalance: "1000"},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Account{}, domain.ErrOwnerAlreadyExists)
			},
			wantStatusCode: http.StatusConflict,
			wantError:      domain.ErrOwnerAlreadyExists.Error(),
		},
		{
			name:        "InternalError",
			requestBody: requestBody{OwnerName: account.OwnerName, InitialBalance: "1000"},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Account{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			router := newTestRouter(service)

			body, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			require.Equal(t, tc.wantStatusCode, recorder.Code)

			if tc.wantError != "" {
				var res struct {
					Error string `json:"error"`
				}
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
				require.Equal(t, tc.wantError, res.Error)

				return
			}

			var res struct {
				Data struct {
					Account domain.Account `json:"account"`
				} `json:"data"`
			}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))

			if diff := cmp.Diff(account, res.Data.Account, cmpopts.EquateApproxTime(time.Second)); diff != "" {
				t.Errorf("account mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGetBalanceAPI(t *testing.T) {
	account := randomAccount(1, "1300")

	testCases := []struct {
		name           string
		url            string
		buildStubs     func(service *MockService)
		wantStatusCode int
		wantError      string
	}{
		{
			name: "OK",
			url:  "/accounts/1/balance",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Get(gomock.Any(), gomock.Eq(int32(1))).
					Times(1).
					Return(account, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "InvalidID",
			url:  "/accounts/0/balance",
			buildStubs: func(service *MockService) {
				service.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "NotFound",
			url:  "/accounts/404/balance",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Get(gomock.Any(), gomock.Eq(int32(404))).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrAccountNotFound.Error(),
		},
		{
			name: "InternalError",
			url:  "/accounts/1/balance",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Get(gomock.Any(), gomock.Eq(int32(1))).
					Times(1).
					Return(domain.Account{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			router := newTestRouter(service)

			req := httptest.NewRequest(http.MethodGet, tc.url, nil)
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			require.Equal(t, tc.wantStatusCode, recorder.Code)

			if tc.wantError != "" {
				var res struct {
					Error string `json:"error"`
				}
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
				require.Equal(t, tc.wantError, res.Error)

				return
			}

			if tc.wantStatusCode != http.StatusOK {
				return
			}

			var res struct {
				Data struct {
					AccountID int32  `json:"account_id"`
					OwnerName string `json:"owner_name"`
					Balance   string `json:"balance"`
				} `json:"data"`
			}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
			require.Equal(t, account.ID, res.Data.AccountID)
			require.Equal(t, account.OwnerName, res.Data.OwnerName)
			require.Equal(t, account.Balance, res.Data.Balance)
		})
	}
}

func TestListAPI(t *testing.T) {
	accounts := []domain.Account{
		randomAccount(1, "1000"),
		randomAccount(2, "2000"),
	}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewMockService(ctrl)
	service.EXPECT().
		List(gomock.Any()).
		Times(1).
		Return(accounts, nil)

	router := newTestRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var res struct {
		Data struct {
			Accounts []domain.Account `json:"accounts"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))

	if diff := cmp.Diff(accounts, res.Data.Accounts, cmpopts.EquateApproxTime(time.Second)); diff != "" {
		t.Errorf("accounts mismatch (-want +got):\n%s", diff)
	}
}
