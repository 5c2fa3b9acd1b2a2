package utils

import (
	"archive/zip"
	"dsfetch/internal/models"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
)

// ExtractArchive unpacks a zip archive into destDir, advancing a progress bar
// by each member's uncompressed size. Members are extracted in archive order;
// the first failing member aborts the whole extraction.
func ExtractArchive(archivePath, destDir string) (*models.ExtractInfo, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", archivePath, err)
	}
	defer reader.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create destination directory: %w", err)
	}

	var totalSize int64
	for _, member := range reader.File {
		totalSize += int64(member.UncompressedSize64)
	}

	bar := progressbar.NewOptions64(totalSize,
		progressbar.OptionSetDescription(fmt.Sprintf("Extracting %s", filepath.Base(archivePath))),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(50),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)

	for _, member := range reader.File {
		if err := extractMember(member, destDir); err != nil {
			return nil, fmt.Errorf("failed to extract %s: %w", member.Name, err)
		}
		_ = bar.Add64(int64(member.UncompressedSize64))
	}
	_ = bar.Finish()

	return &models.ExtractInfo{
		ArchivePath:    archivePath,
		DestinationDir: destDir,
		Members:        len(reader.File),
		TotalSizeBytes: totalSize,
		TotalSizeHuman: FormatSize(totalSize),
	}, nil
}

func extractMember(member *zip.File, destDir string) error {
	path := filepath.Join(destDir, member.Name)

	// Reject members that would escape the destination directory.
	cleanDest := filepath.Clean(destDir)
	if path != cleanDest && !strings.HasPrefix(path, cleanDest+string(os.PathSeparator)) {
		return fmt.Errorf("illegal member path: %s", member.Name)
	}

	if member.FileInfo().IsDir() {
		return os.MkdirAll(path, 0755)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	src, err := member.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, member.Mode())
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

func CleanupTempFile(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to cleanup temporary file %s: %w", path, err)
	}
	return nil
}
