package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitladder-backend/internal/features/profile/models"
)

type fakeProfileService struct {
	record    *models.UserRecord
	lastPatch *models.RecordPatch
	saves     int
}

func (f *fakeProfileService) GetOrCreate(_ context.Context, _ string) (*models.UserRecord, error) {
	return f.record, nil
}

func (f *fakeProfileService) Get(_ context.Context, _ string) (*models.UserRecord, error) {
	return f.record, nil
}

func (f *fakeProfileService) Save(_ context.Context, _ string, patch *models.RecordPatch) (*models.UserRecord, error) {
	f.saves++
	f.lastPatch = patch
	patch.Apply(f.record)
	return f.record, nil
}

func setupProfileRouter(svc *fakeProfileService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", "user-1")
		c.Next()
	})

	api := router.Group("")
	NewProfileHandler(svc).RegisterRoutes(api)
	return router
}

func putProfile(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, "/profile", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestUpdateProfileVerifiedFlag(t *testing.T) {
	t.Run("granting the flag is rejected", func(t *testing.T) {
		svc := &fakeProfileService{record: models.NewUserRecord("user-1")}
		router := setupProfileRouter(svc)

		rec := putProfile(t, router, `{"is_verified": true}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, svc.saves)
		assert.False(t, svc.record.IsVerified)
	})

	t.Run("granting the flag alongside other fields is rejected", func(t *testing.T) {
		svc := &fakeProfileService{record: models.NewUserRecord("user-1")}
		router := setupProfileRouter(svc)

		rec := putProfile(t, router, `{"weight": 82.5, "is_verified": true}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, svc.saves)
	})

	t.Run("explicit false clears the flag", func(t *testing.T) {
		record := models.NewUserRecord("user-1")
		record.IsVerified = true
		svc := &fakeProfileService{record: record}
		router := setupProfileRouter(svc)

		rec := putProfile(t, router, `{"is_verified": false}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, svc.lastPatch)
		require.True(t, svc.lastPatch.IsVerified.IsSet())
		assert.False(t, svc.lastPatch.IsVerified.Value())
		assert.False(t, svc.record.IsVerified)
	})

	t.Run("omission leaves the flag out of the patch", func(t *testing.T) {
		record := models.NewUserRecord("user-1")
		record.IsVerified = true
		svc := &fakeProfileService{record: record}
		router := setupProfileRouter(svc)

		rec := putProfile(t, router, `{"weight": 82.5}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, svc.lastPatch)
		assert.False(t, svc.lastPatch.IsVerified.IsSet())
		assert.True(t, svc.record.IsVerified)
	})
}
