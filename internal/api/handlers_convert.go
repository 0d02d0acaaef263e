package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/mdanki/internal/doctree"
	"github.com/dgallion1/mdanki/internal/export"
	"github.com/dgallion1/mdanki/internal/outline"
	"github.com/dgallion1/mdanki/internal/parser"
)

const defaultFilename = "document.md"

// handleConvert returns the CSV export of an uploaded document.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	decks, filename, ok := s.decodeUpload(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, decks); err != nil {
		jsonError(w, "failed to write csv: "+err.Error(), http.StatusInternalServerError)
		return
	}

	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": base + ".csv"}))
	w.Write(buf.Bytes())
}

// handleDecks returns the parsed and rendered deck tree as JSON.
func (s *Server) handleDecks(w http.ResponseWriter, r *http.Request) {
	decks, _, ok := s.decodeUpload(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"decks": decks,
		"cards": doctree.CardCount(decks),
	})
}

// decodeUpload reads the document from a multipart "file" field or from the
// raw body and runs it through the pipeline. On failure the error response
// has already been written.
func (s *Server) decodeUpload(w http.ResponseWriter, r *http.Request) ([]doctree.Deck, string, bool) {
	data, filename, err := s.readUpload(w, r)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return nil, "", false
		}
		jsonError(w, err.Error(), http.StatusBadRequest)
		return nil, "", false
	}

	decks, err := s.converter.Decode(bytes.NewReader(data), filename)
	if err != nil {
		var missing *outline.MissingSectionError
		if errors.As(err, &missing) {
			jsonError(w, err.Error(), http.StatusUnprocessableEntity)
			return nil, "", false
		}
		jsonError(w, "failed to convert: "+err.Error(), http.StatusBadRequest)
		return nil, "", false
	}

	s.log.Debug("document decoded", "filename", filename, "decks", len(decks), "cards", doctree.CardCount(decks))
	return decks, filename, true
}

func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, string, error) {
	// Limit total request size, with room for multipart overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+64*1024)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		filename := sanitizeFilename(r.URL.Query().Get("filename"))
		if !parser.IsSupportedExtension(filename) {
			return nil, "", fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
		}
		data, err := readLimited(r.Body, s.cfg.MaxUploadBytes)
		return data, filename, err
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return nil, "", fmt.Errorf("invalid multipart form: %w", err)
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", fmt.Errorf("file is required: %w", err)
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		return nil, "", fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
	}
	data, err := readLimited(file, s.cfg.MaxUploadBytes)
	return data, filename, err
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, &http.MaxBytesError{Limit: limit}
	}
	return data, nil
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	if strings.TrimSpace(name) == "" {
		return defaultFilename
	}
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = defaultFilename
	}
	return name
}
