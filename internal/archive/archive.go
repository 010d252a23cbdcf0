// Package archive handles submitted artifacts: content hashing, safe zip
// extraction and source-root discovery inside extracted app bundles.
package archive

import (
	"archive/zip"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// HashFile streams the artifact once and returns its sha1 and sha256.
func HashFile(path string) (string, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h1 := sha1.New()
	h256 := sha256.New()
	buf := make([]byte, 64*1024)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			h1.Write(buf[:n])
			h256.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", "", fmt.Errorf("read %s: %w", path, err)
		}
	}
	return hex.EncodeToString(h1.Sum(nil)), hex.EncodeToString(h256.Sum(nil)), nil
}

// Unzip extracts src into dest and returns the entry names. Entries that
// would escape dest are rejected outright: app bundles are untrusted input.
func Unzip(src, dest string) ([]string, error) {
	r, err := zip.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", src, err)
	}
	defer r.Close()

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range r.File {
		target := filepath.Join(dest, entry.Name)
		if !strings.HasPrefix(target, filepath.Clean(dest)+string(os.PathSeparator)) {
			return nil, fmt.Errorf("archive entry %q escapes extraction dir", entry.Name)
		}

		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return nil, err
			}
			names = append(names, entry.Name)
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return nil, err
		}
		if err := extractFile(entry, target); err != nil {
			return nil, fmt.Errorf("extract %s: %w", entry.Name, err)
		}
		names = append(names, entry.Name)
	}
	return names, nil
}

func extractFile(entry *zip.File, target string) error {
	src, err := entry.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(target)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

// SourceRoot describes where the extracted app's code lives.
type SourceRoot struct {
	Path    string
	Lang    string
	Pattern string
}

// FindSourceRoot locates the java/kotlin source folder of an extracted APK
// or source archive, checking the known layouts in order.
func FindSourceRoot(base string) (SourceRoot, error) {
	candidates := []SourceRoot{
		{Path: filepath.Join(base, "java_source"), Lang: "java", Pattern: "*.java"},
		{Path: filepath.Join(base, "app", "src", "main", "java"), Lang: "java", Pattern: "*.java"},
		{Path: filepath.Join(base, "app", "src", "main", "kotlin"), Lang: "kotlin", Pattern: "*.kt"},
		{Path: filepath.Join(base, "src"), Lang: "java", Pattern: "*.java"},
	}
	for _, c := range candidates {
		if info, err := os.Stat(c.Path); err == nil && info.IsDir() {
			return c, nil
		}
	}
	return SourceRoot{}, fmt.Errorf("no source folder found under %s", base)
}
