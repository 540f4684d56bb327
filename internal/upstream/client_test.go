package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monikajha100/prime-admin-gateway/internal/models"
	appErrors "github.com/monikajha100/prime-admin-gateway/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(Config{BaseURL: server.URL})
}

func TestLoginSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "admin@academy.test", body["email"])

		_ = json.NewEncoder(w).Encode(AuthResult{
			Token: "tok-1",
			User:  models.User{ID: "u1", Role: models.RoleAdmin},
		})
	})

	result, err := client.Login(context.Background(), "admin@academy.test", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", result.Token)
	assert.Equal(t, models.RoleAdmin, result.User.Role)
}

func TestErrorDecodingUsesServerMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid email or password"}`))
	})

	_, err := client.Login(context.Background(), "x@y.z", "bad")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
	assert.Equal(t, "invalid email or password", appErr.Message)
}

func TestErrorDecodingNestedAndFallback(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":{"message":"break not found"}}`))
	})
	err := client.AssignFaculty(context.Background(), "tok", "b1", "f1")
	require.Error(t, err)
	assert.Equal(t, "break not found", appErrors.FromError(err).Message)

	client = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>nope</html>`))
	})
	err = client.AssignFaculty(context.Background(), "tok", "b1", "f1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUpstream.Message, appErrors.FromError(err).Message)
}

func TestBearerTokenAttached(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-9", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := client.ListEnrollments(context.Background(), "tok-9", "batch-1")
	require.NoError(t, err)
}

func TestMarkSessionAttendanceBody(t *testing.T) {
	var got map[string]interface{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/sessions/sess-1/attendance", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	})

	err := client.MarkSessionAttendance(context.Background(), "tok", "sess-1", "s1", models.AttendanceManualPresent, true)
	require.NoError(t, err)
	assert.Equal(t, "s1", got["student_id"])
	assert.Equal(t, "MANUAL_PRESENT", got["status"])
	assert.Equal(t, true, got["is_manual"])
}

func TestDownloadReportMergesTypeParam(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/reports/download", r.URL.Path)
		require.Equal(t, "pending-payments", r.URL.Query().Get("type"))
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte("id,amount\n"))
	})

	blob, contentType, err := client.DownloadReport(context.Background(), "tok", "pending-payments", nil)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
	assert.Equal(t, "id,amount\n", string(blob))
}

func TestListBatchesQueryParams(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "math", q.Get("search"))
		require.Equal(t, "2", q.Get("page"))
		_ = json.NewEncoder(w).Encode(BatchList{Batches: []models.Batch{{ID: "b1"}}})
	})

	list, err := client.ListBatches(context.Background(), "tok", models.BatchFilter{Search: "math", Page: 2})
	require.NoError(t, err)
	require.Len(t, list.Batches, 1)
	assert.Equal(t, "b1", list.Batches[0].ID)
}
