// Package fetcher coordinates one blocking dataset transfer with the
// concurrent growth monitor, then expands and reports on the result.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"dsfetch/internal/models"
	"dsfetch/internal/monitor"
	"dsfetch/internal/provider"
	"dsfetch/pkg/utils"
)

// TransferClient is the provider surface the orchestrator needs. Both calls
// block; FetchAll exposes no progress callback, which is why progress is
// inferred from the growing file instead.
type TransferClient interface {
	Authenticate(ctx context.Context) error
	FetchAll(ctx context.Context, datasetID, destDir string) error
}

const defaultJoinTimeout = 2 * time.Second

type Fetcher struct {
	client      TransferClient
	DownloadDir string

	Out          io.Writer
	PollInterval time.Duration
	JoinTimeout  time.Duration
	KeepArchive  bool
}

func New(client TransferClient, downloadDir string) *Fetcher {
	return &Fetcher{
		client:       client,
		DownloadDir:  downloadDir,
		Out:          os.Stdout,
		PollInterval: monitor.DefaultInterval,
		JoinTimeout:  defaultJoinTimeout,
	}
}

// DownloadAll runs the blocking transfer with the growth monitor polling the
// expected artifact path alongside it. Authentication and transfer failures
// come back as a failed result, not an error; retrying is the caller's call.
func (f *Fetcher) DownloadAll(ctx context.Context, datasetID string) *models.TransferResult {
	result := &models.TransferResult{Dataset: datasetID}

	// Assumed by convention; the provider must produce exactly this name.
	expectedPath := filepath.Join(f.DownloadDir, provider.ArchiveName(datasetID))

	fmt.Fprintf(f.Out, "🚀 Starting download of %s...\n", datasetID)

	monitorCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := monitor.New(expectedPath, f.PollInterval)
	m.Out = f.Out

	monitorDone := make(chan struct{})
	go func() {
		defer close(monitorDone)
		m.Run(monitorCtx)
	}()

	err := f.client.FetchAll(ctx, datasetID, f.DownloadDir)

	cancel()
	select {
	case <-monitorDone:
	case <-time.After(f.JoinTimeout):
		// Abandoned; the monitor holds nothing but a path to stat and will
		// exit on its own at the next tick.
	}
	fmt.Fprintln(f.Out)

	if err != nil {
		fmt.Fprintf(f.Out, "❌ Download failed: %v\n", err)
		return result
	}

	result.ArchivePath = expectedPath
	result.Succeeded = true
	return result
}

// Run executes the full pipeline: authenticate, download with progress,
// extract, remove the archive, and report the download directory contents.
// Only extraction failures surface as errors; a half-extracted dataset is
// unusable, so they are not recovered.
func (f *Fetcher) Run(ctx context.Context, datasetID string) (*models.FetchReport, error) {
	startTime := time.Now()

	fmt.Fprintln(f.Out, "🔑 Authenticating with the dataset provider...")
	if err := f.client.Authenticate(ctx); err != nil {
		fmt.Fprintf(f.Out, "❌ Authentication failed: %v\n", err)
		return f.buildReport(datasetID, false, false, startTime)
	}
	fmt.Fprintln(f.Out, "✅ Authentication successful!")

	result := f.DownloadAll(ctx, datasetID)
	if !result.Succeeded {
		return f.buildReport(datasetID, false, false, startTime)
	}

	info, err := os.Stat(result.ArchivePath)
	if err != nil {
		// Transfer reported success but the expected artifact is missing.
		// Skip expansion rather than guessing the real name.
		fmt.Fprintf(f.Out, "⚠️  Archive %s not found, skipping extraction\n", result.ArchivePath)
		return f.buildReport(datasetID, true, false, startTime)
	}
	fmt.Fprintf(f.Out, "✅ Download complete: %s\n", utils.FormatSize(info.Size()))

	fmt.Fprintf(f.Out, "📦 Extracting %s...\n", filepath.Base(result.ArchivePath))
	if _, err := utils.ExtractArchive(result.ArchivePath, f.DownloadDir); err != nil {
		return nil, err
	}

	if !f.KeepArchive {
		if err := utils.CleanupTempFile(result.ArchivePath); err != nil {
			return nil, err
		}
		fmt.Fprintln(f.Out, "🗑 Removed archive after extraction")
	}

	return f.buildReport(datasetID, true, true, startTime)
}

func (f *Fetcher) buildReport(datasetID string, succeeded, extracted bool, startTime time.Time) (*models.FetchReport, error) {
	report := &models.FetchReport{
		Dataset:       datasetID,
		DownloadDir:   f.DownloadDir,
		Succeeded:     succeeded,
		Extracted:     extracted,
		OperationTime: utils.FormatTime(startTime),
		FetchDuration: time.Since(startTime).String(),
	}

	entries, err := os.ReadDir(f.DownloadDir)
	if err != nil {
		if os.IsNotExist(err) {
			report.TotalSizeHuman = utils.FormatSize(0)
			return report, nil
		}
		return nil, fmt.Errorf("failed to list download directory: %w", err)
	}

	if len(entries) > 0 {
		fmt.Fprintln(f.Out, "📁 Files in directory after extraction:")
	}

	var totalSize int64
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		fileInfo, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", entry.Name(), err)
		}

		report.Files = append(report.Files, models.FileEntry{
			Name:      entry.Name(),
			SizeBytes: fileInfo.Size(),
			SizeHuman: utils.FormatSize(fileInfo.Size()),
		})
		totalSize += fileInfo.Size()

		fmt.Fprintf(f.Out, "  📄 %s: %s\n", entry.Name(), utils.FormatSize(fileInfo.Size()))
	}

	if totalSize > 0 {
		fmt.Fprintf(f.Out, "📊 Total size: %s\n", utils.FormatSize(totalSize))
	}

	report.TotalFiles = len(report.Files)
	report.TotalSizeBytes = totalSize
	report.TotalSizeHuman = utils.FormatSize(totalSize)
	return report, nil
}
