package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/samvaad-ai/samvaad/domain/entities"
)

func doASRForm(e *echo.Echo, filename, contentType, config string, fields map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="audio"; filename="`+filename+`"`)
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, _ := writer.CreatePart(header)
	part.Write([]byte("captured-audio"))

	writer.WriteField("config", config)
	for key, value := range fields {
		writer.WriteField(key, value)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/asr", &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestPostASRWrapsTranscript(t *testing.T) {
	speech := &fakeSpeech{transcript: "recognized text"}
	e := newTestServer(t, handlerOptions{speech: speech})

	config := `{"config":{"language":{"sourceLanguage":"hi"}}}`
	rec := doASRForm(e, "capture.webm", "audio/webm", config, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Output []struct {
			Transcript string `json:"transcript"`
		} `json:"output"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(body.Output) != 1 || body.Output[0].Transcript != "recognized text" {
		t.Errorf("Unexpected response shape: %s", rec.Body.String())
	}
}

func TestPostASRFailureReturnsMarker(t *testing.T) {
	speech := &fakeSpeech{transcribeErr: fmt.Errorf("recognizer offline")}
	e := newTestServer(t, handlerOptions{speech: speech})

	config := `{"config":{"language":{"sourceLanguage":"hi"}}}`
	rec := doASRForm(e, "capture.webm", "audio/webm", config, nil)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("Expected 502, got %d", rec.Code)
	}

	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if body.Error != "[ASR failed]" {
		t.Errorf("Expected the bracketed marker, got %q", body.Error)
	}
	if strings.Contains(rec.Body.String(), "offline") {
		t.Error("Expected the upstream error to stay out of the response")
	}
}

func TestPostASRRequiresAudioFile(t *testing.T) {
	e := newTestServer(t, handlerOptions{})

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	writer.WriteField("config", `{}`)
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/asr", &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without an audio file, got %d", rec.Code)
	}
}

func TestPostASRRejectsBadConfig(t *testing.T) {
	e := newTestServer(t, handlerOptions{})

	rec := doASRForm(e, "capture.webm", "audio/webm", "not json", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed config, got %d", rec.Code)
	}
}

func TestUploadFormatDetection(t *testing.T) {
	cases := []struct {
		filename    string
		contentType string
		want        entities.AudioFormat
	}{
		{"a.bin", "audio/webm", entities.FormatWebM},
		{"a.bin", "audio/ogg", entities.FormatOGG},
		{"a.bin", "audio/wav", entities.FormatWAV},
		{"a.bin", "audio/mpeg", entities.FormatMP3},
		{"clip.wav", "", entities.FormatWAV},
		{"clip.MP3", "", entities.FormatMP3},
		{"clip.m4a", "", entities.FormatMP4},
		{"mystery", "", entities.FormatWebM},
	}

	for _, c := range cases {
		header := &multipart.FileHeader{Filename: c.filename, Header: make(textproto.MIMEHeader)}
		if c.contentType != "" {
			header.Header.Set("Content-Type", c.contentType)
		}
		if got := uploadFormat(header); got != c.want {
			t.Errorf("%s/%s: expected %s, got %s", c.filename, c.contentType, c.want, got)
		}
	}
}

func TestTargetFromFormSnapsInvalidValues(t *testing.T) {
	e := echo.New()

	form := "sampleRate=44100&channels=7&format=aac"
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(form))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	c := e.NewContext(req, httptest.NewRecorder())

	target := targetFromForm(c)
	if target.SampleRate != 16000 {
		t.Errorf("Expected snap to 16000, got %d", target.SampleRate)
	}
	if target.Channels != 1 {
		t.Errorf("Expected snap to mono, got %d", target.Channels)
	}
	if target.Format != entities.FormatWAV {
		t.Errorf("Expected snap to wav, got %s", target.Format)
	}
}

func TestTargetFromFormKeepsValidValues(t *testing.T) {
	e := echo.New()

	form := "sampleRate=48000&channels=2&format=flac"
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(form))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	c := e.NewContext(req, httptest.NewRecorder())

	target := targetFromForm(c)
	if target.SampleRate != 48000 || target.Channels != 2 || target.Format != entities.FormatFLAC {
		t.Errorf("Expected values preserved, got %+v", target)
	}
}
