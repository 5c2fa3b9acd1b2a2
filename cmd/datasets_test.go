package cmd

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"dsfetch/config"
)

// Integration test for the datasets command
// Requires a real S3-compatible endpoint; set S3_INTEGRATION_TEST=true to run

func TestDatasetsCommand(t *testing.T) {
	if os.Getenv("S3_INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test; set S3_INTEGRATION_TEST=true to run")
	}

	cfg = &config.Config{
		BucketName:    os.Getenv("TEST_BUCKET_NAME"),
		Region:        os.Getenv("TEST_REGION"),
		ApiURL:        os.Getenv("TEST_API_URL"),
		AccessKey:     os.Getenv("TEST_ACCESS_KEY"),
		SecretKey:     os.Getenv("TEST_SECRET_KEY"),
		DatasetPrefix: os.Getenv("TEST_DATASET_PREFIX"),
	}

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	datasetsCmd.SetArgs([]string{})
	err := datasetsCmd.Execute()

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	buf.ReadFrom(r)
	output := buf.String()

	if err != nil {
		t.Fatalf("Datasets command failed: %v", err)
	}

	if !strings.Contains(output, os.Getenv("TEST_BUCKET_NAME")) {
		t.Errorf("Output doesn't contain bucket name: %s", output)
	}
}
