package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/identra-vault/internal/logger"
	"github.com/MKhiriev/identra-vault/internal/mock"
	"github.com/MKhiriev/identra-vault/internal/service"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestGetServerVersion_WritesVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	appInfo := mock.NewMockAppInfoService(ctrl)
	appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("1.2.3")

	h := NewHandler(&service.Services{AppInfoService: appInfo}, "", logger.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()
	h.getServerVersion(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1.2.3", rec.Body.String())
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
}

// TestGetServerVersion_ThroughRouter checks the route needs no token.
func TestGetServerVersion_ThroughRouter(t *testing.T) {
	ts := newTestServer(t)
	ts.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("v0.4.0")

	resp, err := http.Get(ts.URL + "/api/version")
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
