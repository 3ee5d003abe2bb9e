package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"clinic-app-server/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newMockDB opens a gorm connection backed by sqlmock so handlers can be
// exercised without a MySQL server.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

// newTestContext builds a gin context carrying an authenticated caller and
// an optional JSON body.
func newTestContext(t *testing.T, method, path string, body interface{}, callerID string, callerRole models.Role) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	c.Request = httptest.NewRequest(method, path, reader)
	c.Request.Header.Set("Content-Type", "application/json")

	if callerID != "" {
		c.Set("userID", callerID)
		c.Set("userRole", callerRole)
	}

	return c, w
}

// decodeData unmarshals the "data" field of the standard response envelope
// into out.
func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

// appointmentColumns matches the appointments table as gorm maps it.
func appointmentColumns() []string {
	return []string{
		"id", "created_at", "updated_at",
		"doctor_id", "patient_id", "scheduled_time", "status",
		"remarks", "remarks_added_at", "check_in_time", "completed_time",
	}
}

// userRows builds a single-user result set with the columns handlers touch.
func userRows(id string, role models.Role) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "first_name", "last_name", "role"}).
		AddRow(id, string(role)+"@clinic.test", "Test", "User", string(role))
}
