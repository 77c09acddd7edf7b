package detector

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var textCapture = []string{
	"W3C CSS Validator results for file:/tmp/index.css",
	"Sorry! We found the following errors (2)",
	"URI : file:/tmp/index.css",
	"Line : 6 ",
	"       Parse Error",
	"Line : 13        ",
	"       Property -text-decoration doesn't exist : ",
	"Valid CSS information",
}

var soapCapture = []string{
	`<?xml version="1.0" encoding="utf-8"?>`,
	`<env:Envelope xmlns:env="http://www.w3.org/2003/05/soap-envelope">`,
	`<m:cssvalidationresponse`,
	`<m:validity>false</m:validity>`,
	`</env:Envelope>`,
}

var htmlCapture = []string{
	`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN">`,
	`<html lang="en">`,
	`<body class="results">`,
	`<h1>W3C CSS Validator results</h1>`,
	`</html>`,
}

func TestDetectFromLines_TextMode(t *testing.T) {
	d := New()
	result := d.DetectFromLines(textCapture)

	if !result.HasMatch() {
		t.Fatal("no mode detected")
	}

	best := result.BestMatch()
	if best.Mode.Name != "text" {
		t.Fatalf("detected %q, want text", best.Mode.Name)
	}
	if !best.Mode.Filterable {
		t.Error("text mode should be filterable")
	}
	if best.MatchCount < 6 {
		t.Errorf("MatchCount = %d, want >= 6", best.MatchCount)
	}
	if best.Confidence <= 0.5 {
		t.Errorf("Confidence = %f, want > 0.5", best.Confidence)
	}
}

func TestDetectFromLines_SoapMode(t *testing.T) {
	d := New()
	result := d.DetectFromLines(soapCapture)

	best := result.BestMatch()
	if best == nil {
		t.Fatal("no mode detected")
	}
	if best.Mode.Name != "soap12" {
		t.Fatalf("detected %q, want soap12", best.Mode.Name)
	}
	if best.Mode.Filterable {
		t.Error("soap12 must not be filterable")
	}
	if best.Mode.Hint == "" {
		t.Error("non-text mode should carry a hint")
	}
}

func TestDetectFromLines_HTMLMode(t *testing.T) {
	d := New()
	result := d.DetectFromLines(htmlCapture)

	best := result.BestMatch()
	if best == nil {
		t.Fatal("no mode detected")
	}
	if best.Mode.Name != "html" {
		t.Fatalf("detected %q, want html", best.Mode.Name)
	}
}

func TestDetectFromLines_NoMatch(t *testing.T) {
	d := New()
	result := d.DetectFromLines([]string{"just some text", "nothing here"})

	if result.HasMatch() {
		t.Errorf("unexpected match: %+v", result.Matches)
	}
	if result.BestMatch() != nil {
		t.Error("BestMatch() should be nil")
	}
}

func TestDetectFromLines_Empty(t *testing.T) {
	d := New()
	result := d.DetectFromLines(nil)

	if result.SampledLines != 0 {
		t.Errorf("SampledLines = %d, want 0", result.SampledLines)
	}
	if result.HasMatch() {
		t.Error("unexpected match on empty input")
	}
}

func TestDetectFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.txt")
	content := strings.Join(textCapture, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	d := New()
	result, err := d.DetectFromFile(context.Background(), path)
	if err != nil {
		t.Fatalf("DetectFromFile() error = %v", err)
	}

	if result.SampledLines != len(textCapture) {
		t.Errorf("SampledLines = %d, want %d", result.SampledLines, len(textCapture))
	}
	if best := result.BestMatch(); best == nil || best.Mode.Name != "text" {
		t.Errorf("BestMatch() = %+v, want text", best)
	}
}

func TestWithSampleSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.txt")
	var b strings.Builder
	for i := 0; i < 50; i++ {
		b.WriteString("Line : 1 - warning\n")
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatal(err)
	}

	d := New(WithSampleSize(10))
	result, err := d.DetectFromFile(context.Background(), path)
	if err != nil {
		t.Fatalf("DetectFromFile() error = %v", err)
	}
	if result.SampledLines != 10 {
		t.Errorf("SampledLines = %d, want 10", result.SampledLines)
	}
}
