package lsp

import (
	"fmt"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/jbearak/rlsp/location"
)

// isRURI reports whether uri names an R source file (.R or .r), ported
// from the teacher's isYammmURI (server.go) and generalized from a
// single fixed extension to R's conventional pair.
func isRURI(uri string) bool {
	path, err := URIToPath(uri)
	if err != nil {
		return false
	}
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".r"
}

// URIToPath converts a file:// URI to a filesystem path. Ported directly
// from the teacher's lsp/workspace.go URIToPath/isWindowsDriveLetter.
func URIToPath(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("parse URI %q: %w", uri, err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("not a file URI: %s", uri)
	}

	path := u.Path

	if runtime.GOOS == "windows" {
		if len(path) >= 3 && path[0] == '/' && isWindowsDriveLetter(path[1]) && path[2] == ':' {
			path = path[1:]
		}
		path = filepath.FromSlash(path)
	}

	return path, nil
}

// PathToURI converts a filesystem path to a file:// URI.
func PathToURI(path string) string {
	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err == nil {
			path = absPath
		}
	}

	path = filepath.ToSlash(path)

	if runtime.GOOS == "windows" && len(path) >= 2 && isWindowsDriveLetter(path[0]) && path[1] == ':' {
		path = "/" + path
	}

	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	return u.String()
}

func isWindowsDriveLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// fileIDToURI converts a location.FileID to a file:// URI for protocol
// responses. Synthetic IDs (never produced by this server's own
// document-open path, but possible from test fixtures) pass through
// their raw string.
func fileIDToURI(id location.FileID) string {
	if cp, ok := id.CanonicalPath(); ok {
		return PathToURI(cp.String())
	}
	return id.String()
}

// fileIDFromURI resolves a document URI to the FileID this server's
// other components use to key everything. Synthetic files never arise
// from a real LSP client, so an error here always means a malformed or
// non-file URI.
func fileIDFromURI(uri string) (location.FileID, error) {
	path, err := URIToPath(uri)
	if err != nil {
		return location.FileID{}, err
	}
	return location.FileIDFromPath(path)
}
