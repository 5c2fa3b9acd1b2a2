package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"dsfetch/internal/models"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		name     string
		bytes    int64
		expected string
	}{
		{"Zero bytes", 0, "0.00B"},
		{"Bytes", 500, "500.00B"},
		{"Kilobytes", 1536, "1.50KB"},
		{"Megabytes", 1536 * 1024, "1.50MB"},
		{"Gigabytes", 1073741824, "1.00GB"},
		{"Terabytes", 1536 * 1024 * 1024 * 1024, "1.50TB"},
		{"Just below a unit", 1023, "1023.00B"},
		{"Past terabytes keeps TB", 3 * 1024 * 1024 * 1024 * 1024 * 1024, "3072.00TB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatSize(tt.bytes)
			if result != tt.expected {
				t.Errorf("FormatSize(%d) = %s, want %s", tt.bytes, result, tt.expected)
			}
		})
	}
}

func TestFormatSizeRoundTrip(t *testing.T) {
	scales := map[string]float64{
		"B":  1,
		"KB": 1024,
		"MB": 1024 * 1024,
		"GB": 1024 * 1024 * 1024,
		"TB": 1024 * 1024 * 1024 * 1024,
	}

	inputs := []int64{0, 1, 999, 1024, 4096, 123456, 10 << 20, 5 << 30, 7 << 40}
	for _, b := range inputs {
		result := FormatSize(b)

		var unit string
		for _, u := range []string{"TB", "GB", "MB", "KB", "B"} {
			if strings.HasSuffix(result, u) {
				unit = u
				break
			}
		}
		if unit == "" {
			t.Fatalf("FormatSize(%d) = %q has no recognized unit", b, result)
		}

		value, err := strconv.ParseFloat(strings.TrimSuffix(result, unit), 64)
		if err != nil {
			t.Fatalf("FormatSize(%d) = %q has unparsable magnitude: %v", b, result, err)
		}

		reconstructed := value * scales[unit]
		tolerance := 0.005 * scales[unit] // rounding to 2 decimal places
		if math.Abs(reconstructed-float64(b)) > tolerance+1e-9 {
			t.Errorf("FormatSize(%d) = %q reconstructs to %f, outside tolerance %f", b, result, reconstructed, tolerance)
		}
	}
}

func TestPrintJSON(t *testing.T) {
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	testData := map[string]string{"key": "value"}

	err := PrintJSON(testData)

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	buf.ReadFrom(r)
	output := buf.String()

	if err != nil {
		t.Errorf("PrintJSON() returned error: %v", err)
	}

	var result map[string]string
	err = json.Unmarshal([]byte(output), &result)
	if err != nil {
		t.Errorf("PrintJSON() produced invalid JSON: %v", err)
	}

	if result["key"] != "value" {
		t.Errorf("PrintJSON() output = %v, want %v", result, testData)
	}
}

func TestPrintError(t *testing.T) {
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	testErr := errors.New("test error")
	testCmd := "test-command"

	PrintError(testErr, testCmd)

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	buf.ReadFrom(r)
	output := buf.String()

	if !strings.Contains(output, "test error") {
		t.Errorf("PrintError() output doesn't contain error message: %s", output)
	}

	if !strings.Contains(output, "test-command") {
		t.Errorf("PrintError() output doesn't contain command: %s", output)
	}

	var result models.ErrorResponse
	err := json.Unmarshal([]byte(output), &result)
	if err != nil {
		t.Errorf("PrintError() produced invalid JSON: %v", err)
	}

	if result.Error != "test error" {
		t.Errorf("PrintError() error = %s, want %s", result.Error, "test error")
	}

	if result.Command != "test-command" {
		t.Errorf("PrintError() command = %s, want %s", result.Command, "test-command")
	}
}

func TestFormatTime(t *testing.T) {
	testTime := time.Date(2023, 5, 15, 10, 30, 0, 0, time.UTC)
	expected := "2023-05-15T10:30:00Z" // RFC3339 format

	result := FormatTime(testTime)
	if result != expected {
		t.Errorf("FormatTime() = %s, want %s", result, expected)
	}
}

func ExampleFormatSize() {
	fmt.Println(FormatSize(1536))
	// Output: 1.50KB
}
