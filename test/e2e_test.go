package test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"cssfilt/pkg/detector"
	"cssfilt/pkg/filter"
	"cssfilt/pkg/report"
	"cssfilt/pkg/scanner"
	"cssfilt/pkg/webhook"
)

var (
	projectRoot string
	rootOnce    sync.Once
)

// capturePath returns the path of a capture fixture under testdata.
func capturePath(t *testing.T, name string) string {
	t.Helper()
	rootOnce.Do(func() {
		// Get the directory containing this test file, then go up one level
		_, filename, _, _ := runtime.Caller(0)
		projectRoot = filepath.Dir(filepath.Dir(filename))
	})
	path := filepath.Join(projectRoot, "testdata", "captures", name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatalf("Required test file not found: %s", path)
	}
	return path
}

// runCapture pushes a capture fixture through the full scanner/filter/report
// pipeline, rendering paths relative to /tmp (the fixtures use file:/tmp/ URIs).
func runCapture(t *testing.T, name string) (*filter.Result, string, error) {
	t.Helper()

	f, err := os.Open(capturePath(t, name))
	if err != nil {
		t.Fatalf("opening capture: %v", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	res, err := filter.Run(context.Background(), scanner.New(f), report.NewWithDir(&buf, "/tmp"))
	return res, buf.String(), err
}

func TestE2E_Errors(t *testing.T) {
	res, out, err := runCapture(t, "errors.txt")
	if err != nil {
		t.Fatalf("pipeline error: %v", err)
	}

	want := `Found 2 error(s)
index.css:6: Parse error (invalid or unsupported).
index.css:13: Property -text-decoration doesn't exist.
`
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
	if !res.ErrorsFound {
		t.Error("ErrorsFound = false, want true")
	}
}

func TestE2E_Clean(t *testing.T) {
	res, out, err := runCapture(t, "clean.txt")
	if err != nil {
		t.Fatalf("pipeline error: %v", err)
	}

	if out != "No error.\n" {
		t.Errorf("output = %q, want %q", out, "No error.\n")
	}
	if res.ErrorsFound {
		t.Error("ErrorsFound = true, want false")
	}
}

func TestE2E_Warnings(t *testing.T) {
	res, out, err := runCapture(t, "warnings.txt")
	if err != nil {
		t.Fatalf("pipeline error: %v", err)
	}

	want := `No error.
Found 2 warning(s)
style.css:8: -moz-border-radius is an unknown vendor extension.
style.css:12: Same color for background-color and color.
`
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
	if res.ErrorsFound {
		t.Error("ErrorsFound = true, want false (warnings only)")
	}
	if res.Warnings != 2 {
		t.Errorf("Warnings = %d, want 2", res.Warnings)
	}
}

// Feeding a soap12 capture to the filter must abort as malformed, and the
// detector must identify what the capture actually is.
func TestE2E_Soap12Rejected(t *testing.T) {
	_, _, err := runCapture(t, "soap12.txt")
	if !errors.Is(err, filter.ErrMalformed) {
		t.Fatalf("pipeline error = %v, want ErrMalformed", err)
	}

	d := detector.New()
	result, err := d.DetectFromFile(context.Background(), capturePath(t, "soap12.txt"))
	if err != nil {
		t.Fatalf("detection error: %v", err)
	}
	best := result.BestMatch()
	if best == nil || best.Mode.Name != "soap12" {
		t.Fatalf("BestMatch() = %+v, want soap12", best)
	}
	if best.Mode.Filterable {
		t.Error("soap12 must not be filterable")
	}
}

func TestE2E_DetectorRecognizesFixtures(t *testing.T) {
	d := detector.New()
	for _, name := range []string{"errors.txt", "clean.txt", "warnings.txt"} {
		result, err := d.DetectFromFile(context.Background(), capturePath(t, name))
		if err != nil {
			t.Fatalf("%s: detection error: %v", name, err)
		}
		best := result.BestMatch()
		if best == nil || best.Mode.Name != "text" {
			t.Errorf("%s: BestMatch() = %+v, want text", name, best)
		}
	}
}

func TestE2E_WebhookDelivery(t *testing.T) {
	var received []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	res, _, err := runCapture(t, "errors.txt")
	if err != nil {
		t.Fatalf("pipeline error: %v", err)
	}

	client := webhook.NewClient()
	resp := client.Send(context.Background(),
		webhook.NewReport(res, "index.css", time.Now()),
		webhook.SendOptions{URL: server.URL})
	if !resp.Success() {
		t.Fatalf("webhook send failed: %v", resp.Error)
	}

	var payload webhook.Report
	if err := json.Unmarshal(received, &payload); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if payload.Summary.Errors != 2 || payload.Summary.Status != "errors" {
		t.Errorf("payload summary = %+v", payload.Summary)
	}
}
