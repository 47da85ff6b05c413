package util

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/git-l10n/po2json/catalog"
	"github.com/mattn/go-isatty"
	"github.com/qiniu/iconv"
	log "github.com/sirupsen/logrus"
)

const defaultEncoding = "UTF-8"

// ReadPoFile reads a PO file and returns its content as UTF-8, transcoding
// it from the charset declared in its header if needed.
func ReadPoFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	charset := HeaderCharset(data)
	if charset == "" || sameEncoding(charset, defaultEncoding) || sameEncoding(charset, "CHARSET") {
		return data, nil
	}
	log.Debugf("converting %s from %s to %s", path, charset, defaultEncoding)
	data, err = toUTF8(data, charset)
	if err != nil {
		return nil, fmt.Errorf("failed to convert %s: %w", path, err)
	}
	return data, nil
}

// HeaderCharset returns the charset of the Content-Type in the PO header,
// or "" if there is none.
func HeaderCharset(data []byte) string {
	c, err := catalog.ParseString(string(data))
	if err != nil {
		return ""
	}
	contentType := c.HeaderValue("Content-Type")
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		log.Debugf("bad Content-Type %q: %s", contentType, err)
		return ""
	}
	return params["charset"]
}

func sameEncoding(enc1, enc2 string) bool {
	enc1 = strings.Replace(strings.ToLower(enc1), "-", "", -1)
	enc2 = strings.Replace(strings.ToLower(enc2), "-", "", -1)
	return enc1 == enc2
}

func toUTF8(data []byte, charset string) ([]byte, error) {
	cd, err := iconv.Open(defaultEncoding, charset)
	if err != nil {
		return nil, fmt.Errorf("iconv.Open failed: %w", err)
	}
	defer cd.Close()

	var (
		buf   bytes.Buffer
		out   = make([]byte, 4096)
		width = len(data)
		nLeft = width
	)
	buf.Grow(width)
	for nLeft > 0 {
		n, left, err := cd.Do(data[width-nLeft:], nLeft, out)
		buf.Write(out[:n])
		if err != nil && n == 0 && left == nLeft {
			return nil, fmt.Errorf("bad %s characters at offset %d: %w", charset, width-nLeft, err)
		}
		nLeft = left
	}
	return buf.Bytes(), nil
}

// WriteOutput writes content to path, or to stdout if path is "" or "-".
// An existing file is only replaced if force is set or the user agrees.
func WriteOutput(path string, content string, force bool) error {
	if path == "" || path == "-" {
		if !strings.HasSuffix(content, "\n") && !strings.HasSuffix(content, "\r") {
			content += "\n"
		}
		_, err := io.WriteString(Stdout, content)
		return err
	}

	if Exist(path) && !force {
		if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) {
			return fmt.Errorf("%s already exists, use --force to overwrite", path)
		}
		answer := GetUserInput(fmt.Sprintf("%s already exists, overwrite? [y/N] ", path), "n")
		if !AnswerIsTrue(answer) {
			return fmt.Errorf("%s already exists, not overwritten", path)
		}
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// CollectPoFiles returns the sorted *.po files in dir.
func CollectPoFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read po dir %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".po" {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}
