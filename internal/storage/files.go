package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

const downloadChunkSize = 1024

// DownloadToPath streams a remote blob to a local path in fixed-size
// chunks, truncating any existing file and creating parent directories.
func DownloadToPath(ctx context.Context, url, destination string) error {
	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: unexpected status %d", url, resp.StatusCode)
	}
	file, err := os.Create(destination)
	if err != nil {
		return err
	}
	defer file.Close()
	buf := make([]byte, downloadChunkSize)
	if _, err := io.CopyBuffer(file, resp.Body, buf); err != nil {
		return err
	}
	return nil
}

func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func ReadBytes(path string) ([]byte, error) {
	return os.ReadFile(path)
}
