package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/identra-vault/internal/config"
	"github.com/MKhiriev/identra-vault/internal/handler"
	myHTTP "github.com/MKhiriev/identra-vault/internal/handler/http"
	"github.com/MKhiriev/identra-vault/internal/logger"
	"github.com/MKhiriev/identra-vault/internal/mock"
	"github.com/MKhiriev/identra-vault/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNewServer_NoHandlers(t *testing.T) {
	_, err := NewServer(nil, config.ServerHTTP{HTTPAddress: ":0"}, logger.Nop())
	assert.ErrorIs(t, err, errNoServersAreCreated)

	_, err = NewServer(&handler.Handlers{}, config.ServerHTTP{HTTPAddress: ":0"}, logger.Nop())
	assert.ErrorIs(t, err, errNoServersAreCreated)
}

func TestServer_ServeAndShutdown(t *testing.T) {
	ctrl := gomock.NewController(t)
	appInfo := mock.NewMockAppInfoService(ctrl)
	appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("9.9.9")

	handlers := &handler.Handlers{
		HTTP: myHTTP.NewHandler(&service.Services{AppInfoService: appInfo}, "", logger.Nop()),
	}
	srv, err := NewServer(handlers, config.ServerHTTP{HTTPAddress: "127.0.0.1:0", RequestTimeout: 5 * time.Second}, logger.Nop())
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.(*server).serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/version")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "9.9.9", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServer_RunListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	handlers := &handler.Handlers{HTTP: myHTTP.NewHandler(&service.Services{}, "", logger.Nop())}
	srv, err := NewServer(handlers, config.ServerHTTP{HTTPAddress: ln.Addr().String(), RequestTimeout: time.Second}, logger.Nop())
	require.NoError(t, err)

	assert.Error(t, srv.Run(context.Background()))
}
