package getEventInfo

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventRegistrar/internal/http-server/handlers/event/getEventInfo/mocks"
	"eventRegistrar/internal/lib/logger/handlers/slogdiscard"
	"eventRegistrar/internal/registry"
)

func TestGetEventInfoHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	info := registry.EventInfo{
		ID:       7,
		Name:     "Festival",
		ChildIDs: []int64{8, 9},
		Ranges: []registry.RangeSummary{
			{ID: 11, Name: "main", Price: 500, Deposit: 100, Applicable: true},
		},
	}

	testCases := []struct {
		name           string
		eventID        string
		mockSetup      func(mock *mocks.EventProvider)
		expectedStatus int
		expectedBody   string
		checkBody      func(t *testing.T, body string)
	}{
		{
			name:    "Success",
			eventID: "7",
			mockSetup: func(mock *mocks.EventProvider) {
				mock.On("GetEventInfo", int64(7)).Return(info, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"status":"OK"`)
				assert.Contains(t, body, `"name":"Festival"`)
				assert.Contains(t, body, `"child_ids":[8,9]`)
				assert.Contains(t, body, `"price":500`)
			},
		},
		{
			name:           "Missing event id",
			eventID:        "",
			mockSetup:      func(mock *mocks.EventProvider) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"event id is required"}`,
		},
		{
			name:           "Invalid event id format",
			eventID:        "abc",
			mockSetup:      func(mock *mocks.EventProvider) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid event id format"}`,
		},
		{
			name:    "Event not found",
			eventID: "999",
			mockSetup: func(mock *mocks.EventProvider) {
				mock.On("GetEventInfo", int64(999)).Return(registry.EventInfo{}, registry.ErrEventNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"event not found"}`,
		},
		{
			name:    "Internal server error",
			eventID: "7",
			mockSetup: func(mock *mocks.EventProvider) {
				mock.On("GetEventInfo", int64(7)).Return(registry.EventInfo{}, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to get event"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockProvider := mocks.NewEventProvider(t)
			tc.mockSetup(mockProvider)

			handler := New(logger, mockProvider)

			url := "/events/" + tc.eventID
			if tc.eventID == "" {
				url = "/events"
			}

			req, err := http.NewRequest("GET", url, nil)
			require.NoError(t, err)

			router := chi.NewRouter()
			router.Route("/events", func(r chi.Router) {
				r.Get("/{id}", handler)
				r.Get("/", handler)
			})

			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")

			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")
			} else if tc.checkBody != nil {
				tc.checkBody(t, rr.Body.String())
			}
		})
	}
}
