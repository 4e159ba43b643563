package cmd

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jsphweid/chordguess/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postDetect(t *testing.T, body string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/detect", strings.NewReader(body))
	w := httptest.NewRecorder()
	NewRouter().ServeHTTP(w, req)
	resp := w.Result()
	return resp, w.Body.Bytes()
}

func decodeDetect(t *testing.T, body []byte) model.DetectResponse {
	t.Helper()
	var res model.DetectResponse
	require.NoError(t, json.Unmarshal(body, &res))
	return res
}

func TestDetectHandlerMajor(t *testing.T) {
	resp, body := postDetect(t, `{"notes": ["C4", "E4", "G4"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	res := decodeDetect(t, body)
	assert := assert.New(t)
	assert.Equal("C (100%)", res.Chord)
	assert.Equal("C", res.Root)
	assert.Equal("", res.Quality)
	assert.Equal("C", res.Bass)
	assert.False(res.Inverted)
	assert.Equal(1.0, res.Score)
	assert.Equal(100, res.Percent)
	assert.Equal([]string{"C4", "E4", "G4"}, res.Notes)

	_, err := uuid.Parse(res.ID)
	assert.NoError(err)
	assert.Equal(res.ID, resp.Header.Get("X-Request-Id"))
}

func TestDetectHandlerInversionFromNumbers(t *testing.T) {
	resp, body := postDetect(t, `{"numbers": [64, 67, 72]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	res := decodeDetect(t, body)
	assert := assert.New(t)
	assert.Equal("Gsus4/E (50%)", res.Chord)
	assert.Equal("G", res.Root)
	assert.Equal("sus4", res.Quality)
	assert.Equal("E", res.Bass)
	assert.True(res.Inverted)
	assert.Equal(50, res.Percent)
}

func TestDetectHandlerTranspose(t *testing.T) {
	_, body := postDetect(t, `{"notes": ["C4", "Eb4"], "numbers": [67], "transpose": 2}`)
	res := decodeDetect(t, body)
	assert.Equal(t, "Dm (100%)", res.Chord)
	assert.Equal(t, []string{"D4", "F4", "A4"}, res.Notes)
}

func TestDetectHandlerEmpty(t *testing.T) {
	resp, body := postDetect(t, `{}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res := decodeDetect(t, body)
	assert.Equal(t, "N/A", res.Chord)
	assert.Equal(t, []string{}, res.Notes)
	assert.Equal(t, "", res.Root)
}

func TestDetectHandlerBadInput(t *testing.T) {
	for _, body := range []string{`{"notes": ["H4"]}`, `{"notes": `, `[1, 2]`} {
		t.Run(body, func(t *testing.T) {
			resp, raw := postDetect(t, body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			var e model.ErrorResponse
			require.NoError(t, json.Unmarshal(raw, &e))
			assert.NotEmpty(t, e.Error)
		})
	}
}

func TestDetectHandlerRejectsGet(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/detect", nil)
	w := httptest.NewRecorder()
	NewRouter().ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestTemplatesHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/templates", nil)
	w := httptest.NewRecorder()
	NewRouter().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var res []model.TemplateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res, 21)
	assert.Equal(t, model.TemplateResponse{Label: "5", Intervals: []int{7}}, res[0])
	assert.Equal(t, model.TemplateResponse{Label: "", Intervals: []int{4, 7}}, res[1])
}

func TestHealthAndCors(t *testing.T) {
	t.Setenv("CHORDGUESS_CORS_ORIGINS", "*")
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://example.test")
	w := httptest.NewRecorder()
	NewRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestHandleDetectWithoutRouter(t *testing.T) {
	body := bytes.NewReader([]byte(`{"notes": ["G3", "C4", "E4"]}`))
	req := httptest.NewRequest(http.MethodPost, "/detect", body)
	w := httptest.NewRecorder()
	HandleDetect(w, req)

	res := decodeDetect(t, w.Body.Bytes())
	assert.Equal(t, "C/G (50%)", res.Chord)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestRequestsAreLoggedByStatus(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	postDetect(t, `{"notes": ["C4"]}`)
	postDetect(t, `{"notes": ["H4"]}`)

	out := buf.String()
	assert.Contains(t, out, "[INFO] detected chord")
	assert.Contains(t, out, "chord=C5 (0%)")
	assert.Contains(t, out, "[INFO] request completed")
	assert.Contains(t, out, "[WARN] request failed with client error")
	assert.Contains(t, out, "status_code=400")
}
