package importPayments

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventRegistrar/internal/http-server/handlers/payment/importPayments/mocks"
	"eventRegistrar/internal/lib/logger/handlers/slogdiscard"
	"eventRegistrar/internal/registry"
)

func TestImportPaymentsHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	paymentDate := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name           string
		requestBody    string
		mockSetup      func(mock *mocks.PaymentImporter)
		expectedStatus int
		expectedBody   string
		checkBody      func(t *testing.T, body string)
	}{
		{
			name: "Success",
			requestBody: `{
				"records": [
					{"amount": 500, "date": "2026-04-10T00:00:00Z", "reference": "26000042"},
					{"amount": -100, "date": "2026-04-10T00:00:00Z", "reference": "26000042"}
				]
			}`,
			mockSetup: func(mock *mocks.PaymentImporter) {
				mock.On("ApplyPayments", []registry.PaymentRecord{
					{Amount: 500, Date: paymentDate, Reference: "26000042"},
					{Amount: -100, Date: paymentDate, Reference: "26000042"},
				}).Return(registry.ImportResult{Applied: 2}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","result":{"applied":2,"unmatched":0,"failed":0}}`,
		},
		{
			name:           "Invalid JSON",
			requestBody:    `invalid json`,
			mockSetup:      func(mock *mocks.PaymentImporter) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode request"}`,
		},
		{
			name:           "Empty records",
			requestBody:    `{"records": []}`,
			mockSetup:      func(mock *mocks.PaymentImporter) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"status":"Error"`)
				assert.Contains(t, body, "Records")
			},
		},
		{
			name: "Internal server error",
			requestBody: `{
				"records": [
					{"amount": 500, "date": "2026-04-10T00:00:00Z", "reference": "26000042"}
				]
			}`,
			mockSetup: func(mock *mocks.PaymentImporter) {
				mock.On("ApplyPayments", []registry.PaymentRecord{
					{Amount: 500, Date: paymentDate, Reference: "26000042"},
				}).Return(registry.ImportResult{}, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to import payments"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockImporter := mocks.NewPaymentImporter(t)
			tc.mockSetup(mockImporter)

			handler := New(logger, mockImporter)

			req, err := http.NewRequest("POST", "/payments/import", bytes.NewBufferString(tc.requestBody))
			require.NoError(t, err)

			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")

			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")
			} else if tc.checkBody != nil {
				tc.checkBody(t, rr.Body.String())
			}
		})
	}
}
