// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/ManuGH/padmeta/internal/content"
	"github.com/ManuGH/padmeta/internal/feed"
)

const defaultMaxUploadBytes = 10 << 20

var errUnsupportedMediaType = errors.New("unsupported media type")

// decodeCommand fills info from either a JSON body or a multipart form whose
// infoField part holds the same JSON. The optional image part is returned
// as an upload; it is not stored here.
func (s *Server) decodeCommand(w http.ResponseWriter, r *http.Request, infoField string, info any) (*feed.Upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("%w: missing or invalid Content-Type", errUnsupportedMediaType)
	}

	switch mediaType {
	case "application/json":
		if err := decodeJSON(r.Body, info); err != nil {
			return nil, err
		}
		return nil, nil
	case "multipart/form-data":
		return decodeMultipart(r, infoField, info)
	default:
		return nil, fmt.Errorf("%w: %s", errUnsupportedMediaType, mediaType)
	}
}

func decodeJSON(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return err
		}
		return fmt.Errorf("%w: invalid request body: %v", content.ErrValidation, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data after JSON body", content.ErrValidation)
	}
	return nil
}

func decodeMultipart(r *http.Request, infoField string, info any) (*feed.Upload, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", content.ErrValidation, err)
	}

	var (
		upload  *feed.Upload
		hasInfo bool
	)
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, readError(err)
		}

		switch part.FormName() {
		case infoField:
			data, err := io.ReadAll(part)
			if err != nil {
				return nil, readError(err)
			}
			if err := decodeJSON(bytes.NewReader(data), info); err != nil {
				return nil, fmt.Errorf("%s: %w", infoField, err)
			}
			hasInfo = true
		case fieldImage:
			data, err := io.ReadAll(part)
			if err != nil {
				return nil, readError(err)
			}
			if len(data) == 0 {
				continue
			}
			upload = &feed.Upload{Data: data, MIME: partMIME(part.Header.Get("Content-Type"), data)}
		default:
			if _, err := io.Copy(io.Discard, part); err != nil {
				return nil, readError(err)
			}
		}
	}

	if !hasInfo {
		return nil, fmt.Errorf("%w: missing %s", content.ErrValidation, infoField)
	}
	return upload, nil
}

// partMIME trusts the declared type unless the client sent none or a
// generic one.
func partMIME(declared string, data []byte) string {
	if declared == "" || declared == "application/octet-stream" {
		return http.DetectContentType(data)
	}
	return declared
}

func readError(err error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return err
	}
	return fmt.Errorf("%w: malformed multipart body: %v", content.ErrValidation, err)
}
