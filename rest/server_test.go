package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nvkalinin/cal/calendar"
	"github.com/nvkalinin/cal/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOpts = Opts{
	LogRequests: false,
	RateLimiter: true,
	ReqLimit:    100,
	LimitWindow: 1 * time.Second,
}

var testNow = time.Date(2023, time.October, 15, 12, 0, 0, 0, time.Local)

var testPrinter = calendar.NewPrinter(calendar.Opts{Today: date.FromTime(testNow)})

func newTestServer() *httptest.Server {
	rest := &Server{
		Now:  func() time.Time { return testNow },
		Opts: testOpts,
	}
	return httptest.NewServer(rest.routes())
}

func get(t *testing.T, url string) (*http.Response, string) {
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestServer_Current(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	resp, body := get(t, srv.URL+"/api/cal")
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, testPrinter.Render(calendar.Plan{Year: 2023, Month: date.October, Count: 1}), body)

	// Never past December.
	_, body = get(t, srv.URL+"/api/cal?n=13")
	assert.Equal(t, testPrinter.Months(calendar.Layout{Year: 2023, Start: date.October, Count: 3}), body)

	resp, _ = get(t, srv.URL+"/api/cal?n=many")
	assert.Equal(t, 400, resp.StatusCode)
}

func TestServer_Year(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	resp, body := get(t, srv.URL+"/api/cal/2022?w=true")
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, testPrinter.Year(2022, true), body)

	resp, body = get(t, srv.URL+"/api/cal/0")
	assert.Equal(t, 400, resp.StatusCode)
	assert.JSONEq(t, `{"msg": "invalid year"}`, body)
}

func TestServer_Month(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	resp, body := get(t, srv.URL+"/api/cal/2023/10?n=3")
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, testPrinter.Months(calendar.Layout{Year: 2023, Start: date.November, Count: 2}), body)

	_, body = get(t, srv.URL+"/api/cal/2023/9?color=ansi")
	assert.Contains(t, body, "\033[30m\033[47m15\033[0m")

	_, body = get(t, srv.URL+"/api/cal/2023/9")
	assert.NotContains(t, body, "\033[")

	for _, url := range []string{"/api/cal/2023/12", "/api/cal/2023/-1", "/api/cal/2023/x", "/api/cal/2023/1?w=maybe", "/api/cal/2023/1?color=red"} {
		resp, _ := get(t, srv.URL+url)
		assert.Equal(t, 400, resp.StatusCode, url)
	}
}

func TestServer_Run(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	rest := &Server{Opts: Opts{Listen: addr, ShutdownTimeout: time.Second}}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- rest.Run(ctx)
	}()

	var resp *http.Response
	for i := 0; i < 100; i++ {
		time.Sleep(20 * time.Millisecond)
		if resp, err = http.Get(fmt.Sprintf("http://%s/api/cal/2024", addr)); err == nil {
			break
		}
	}
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.True(t, strings.HasPrefix(string(body), "\n"+strings.Repeat(" ", 30)+"2024\n\n"))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestSendErrorJson(t *testing.T) {
	rec := httptest.NewRecorder()
	sendErrorJson(rec, 404, "not found")

	msg := map[string]string{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.Equal(t, "not found", msg["msg"])
	assert.Equal(t, 404, rec.Code)
}
