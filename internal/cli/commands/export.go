package commands

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// chatEntryName is the transcript name inside an iOS export archive.
const chatEntryName = "_chat.txt"

// maxChatSize bounds the transcript read from an archive.
var maxChatSize = 512 << 20

// readExport returns the chat transcript stored at path. Plain text exports are
// returned as-is. Zip exports are searched for _chat.txt, then for the first
// .txt entry.
func readExport(file string) (string, error) {
	data, err := os.ReadFile(file) // #nosec G304 -- user-provided export path is expected
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("export not found: %s", file)
		}
		return "", fmt.Errorf("reading export: %w", err)
	}

	mtype := mimetype.Detect(data)
	switch {
	case isMIME(mtype, "application/zip"):
		return readZipExport(data)
	case isMIME(mtype, "text/plain"), strings.EqualFold(filepath.Ext(file), ".txt"):
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported export type %s: %s", mtype.String(), file)
	}
}

// isMIME reports whether m or one of its ancestors is want. A CSV-looking chat
// is still text/plain.
func isMIME(m *mimetype.MIME, want string) bool {
	for ; m != nil; m = m.Parent() {
		if m.Is(want) {
			return true
		}
	}
	return false
}

func readZipExport(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening zip export: %w", err)
	}

	var chat *zip.File
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !strings.EqualFold(path.Ext(f.Name), ".txt") {
			continue
		}
		if path.Base(f.Name) == chatEntryName {
			chat = f
			break
		}
		if chat == nil {
			chat = f
		}
	}
	if chat == nil {
		return "", fmt.Errorf("zip export contains no .txt chat")
	}

	rc, err := chat.Open()
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", chat.Name, err)
	}
	defer func() { _ = rc.Close() }()

	body, err := io.ReadAll(io.LimitReader(rc, int64(maxChatSize)+1))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", chat.Name, err)
	}
	if len(body) > maxChatSize {
		return "", fmt.Errorf("%s exceeds %d bytes", chat.Name, maxChatSize)
	}
	return string(body), nil
}
