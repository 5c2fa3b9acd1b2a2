package cmd

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"dsfetch/config"
)

// Integration tests for the fetch command
// These tests require a real S3-compatible endpoint and are skipped by default
// To run these tests, set the environment variable S3_INTEGRATION_TEST=true

func TestFetchCommand(t *testing.T) {
	if os.Getenv("S3_INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test; set S3_INTEGRATION_TEST=true to run")
	}

	datasetID := os.Getenv("TEST_DATASET_ID")
	if datasetID == "" {
		t.Skip("TEST_DATASET_ID not set")
	}

	tempDir, err := os.MkdirTemp("", "fetch-cmd-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	cfg = &config.Config{
		BucketName:    os.Getenv("TEST_BUCKET_NAME"),
		Region:        os.Getenv("TEST_REGION"),
		ApiURL:        os.Getenv("TEST_API_URL"),
		AccessKey:     os.Getenv("TEST_ACCESS_KEY"),
		SecretKey:     os.Getenv("TEST_SECRET_KEY"),
		DatasetPrefix: os.Getenv("TEST_DATASET_PREFIX"),
		DownloadDir:   tempDir,
	}

	// Capture stdout
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	fetchCmd.SetArgs([]string{
		datasetID,
		"--destination", tempDir,
		"--confirm",
	})
	err = fetchCmd.Execute()

	// Restore stdout
	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	buf.ReadFrom(r)
	output := buf.String()

	if err != nil {
		t.Fatalf("Fetch command failed: %v", err)
	}

	if !strings.Contains(output, datasetID) {
		t.Errorf("Output doesn't contain dataset id: %s", output)
	}

	if !strings.Contains(output, tempDir) {
		t.Errorf("Output doesn't contain destination path: %s", output)
	}

	// Check if files were actually extracted
	files, err := os.ReadDir(tempDir)
	if err != nil {
		t.Fatalf("Failed to read temp directory: %v", err)
	}

	if len(files) == 0 {
		t.Errorf("No files were extracted to %s", tempDir)
	}
}
