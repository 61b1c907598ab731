package wsclient

import (
	"bytes"
	"compress/zlib"
	"encoding/json"
	"fmt"
	"io"
)

// encodeFrame marshals v to JSON and zlib-compresses it.
func encodeFrame(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal frame: %w", err)
	}
	var b bytes.Buffer
	zw := zlib.NewWriter(&b)
	if _, err := zw.Write(raw); err != nil {
		return nil, fmt.Errorf("compress frame: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compress frame: %w", err)
	}
	return b.Bytes(), nil
}

// decodeFrame inflates a zlib-compressed frame and returns the JSON inside.
// Frames inflating past maxMsgSize are rejected.
func decodeFrame(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("inflate frame: %w", err)
	}
	raw, readErr := io.ReadAll(io.LimitReader(zr, maxMsgSize+1))
	if closeErr := zr.Close(); readErr == nil {
		readErr = closeErr
	}
	if readErr != nil {
		return nil, fmt.Errorf("inflate frame: %w", readErr)
	}
	if len(raw) > maxMsgSize {
		return nil, ErrFrameTooLarge
	}
	return raw, nil
}
