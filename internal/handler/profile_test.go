package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sedrickcz/cityvizor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProfileCatalog is a mock implementation of the ProfileCatalog interface
type MockProfileCatalog struct {
	mock.Mock
}

func (m *MockProfileCatalog) Get(id int64) (*cityvizor.Profile, error) {
	args := m.Called(id)
	profile, _ := args.Get(0).(*cityvizor.Profile)
	return profile, args.Error(1)
}

func (m *MockProfileCatalog) Query(query cityvizor.Query) ([]*cityvizor.Profile, error) {
	args := m.Called(query)
	profiles, _ := args.Get(0).([]*cityvizor.Profile)
	return profiles, args.Error(1)
}

var praha = &cityvizor.Profile{
	ID:     1,
	Status: cityvizor.StatusVisible,
	Main:   true,
	URL:    "praha",
	Name:   "Praha",
	GPSX:   14.42,
	GPSY:   50.08,
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) interface{} {
	t.Helper()
	var body interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestProfileHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		rawQuery       string
		expectedQuery  *cityvizor.Query
		mockProfiles   []*cityvizor.Profile
		mockError      error
		expectedStatus int
	}{
		{
			name:           "all profiles",
			expectedQuery:  &cityvizor.Query{},
			mockProfiles:   []*cityvizor.Profile{praha},
			expectedStatus: http.StatusOK,
		},
		{
			name:     "filtered and paginated",
			rawQuery: "status=visible&main=true&limit=10&offset=20",
			expectedQuery: &cityvizor.Query{
				Conditions: []cityvizor.Condition{
					{Column: cityvizor.ColumnStatus, Operator: cityvizor.OpEqual, Value: "visible"},
					{Column: cityvizor.ColumnMain, Operator: cityvizor.OpEqual, Value: true},
				},
				Limit:  10,
				Offset: 20,
			},
			mockProfiles:   []*cityvizor.Profile{},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid status",
			rawQuery:       "status=archived",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid main flag",
			rawQuery:       "main=maybe",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "negative limit",
			rawQuery:       "limit=-1",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "non-numeric offset",
			rawQuery:       "offset=ten",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "catalog error",
			expectedQuery:  &cityvizor.Query{},
			mockError:      assert.AnError,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCatalog := new(MockProfileCatalog)
			handler := NewProfileHandler(mockCatalog)

			if tt.expectedQuery != nil {
				mockCatalog.On("Query", *tt.expectedQuery).Return(tt.mockProfiles, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodGet, "/profiles?"+tt.rawQuery, nil)
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = req

			handler.List(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedQuery != nil {
				mockCatalog.AssertExpectations(t)
			} else {
				mockCatalog.AssertNotCalled(t, "Query", mock.Anything)
			}

			if tt.expectedStatus == http.StatusOK {
				body, ok := decodeBody(t, w).([]interface{})
				assert.True(t, ok)
				assert.Len(t, body, len(tt.mockProfiles))
			}
		})
	}
}

func TestProfileHandler_Get(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		id             string
		mockID         int64
		mockProfile    *cityvizor.Profile
		mockError      error
		expectedStatus int
		expectedBody   interface{}
	}{
		{
			name:           "found",
			id:             "1",
			mockID:         1,
			mockProfile:    praha,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown id",
			id:             "42",
			mockID:         42,
			mockError:      cityvizor.ErrProfileNotFound,
			expectedStatus: http.StatusNotFound,
			expectedBody:   map[string]interface{}{"error": "profile not found"},
		},
		{
			name:           "non-numeric id",
			id:             "praha",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "invalid profile id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCatalog := new(MockProfileCatalog)
			handler := NewProfileHandler(mockCatalog)

			if tt.mockID != 0 {
				mockCatalog.On("Get", tt.mockID).Return(tt.mockProfile, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodGet, "/profiles/"+tt.id, nil)
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = req
			c.Params = gin.Params{{Key: "id", Value: tt.id}}

			handler.Get(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockCatalog.AssertExpectations(t)

			body := decodeBody(t, w)
			if tt.expectedBody != nil {
				assert.Equal(t, tt.expectedBody, body)
				return
			}

			profile, ok := body.(map[string]interface{})
			assert.True(t, ok)
			assert.Equal(t, "Praha", profile["name"])
			assert.Equal(t, "visible", profile["status"])
			assert.Equal(t, 14.42, profile["gpsX"])
		})
	}
}
