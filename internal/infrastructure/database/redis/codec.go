package redis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// Stored payloads start with a one-byte format marker.
const (
	formatJSON byte = 'j'
	formatGzip byte = 'z'
)

// minCompressSize is the JSON length below which gzip is skipped even when
// compression is enabled.
const minCompressSize = 256

func encode(v interface{}, compress bool) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if !compress || len(raw) < minCompressSize {
		return append([]byte{formatJSON}, raw...), nil
	}

	var buf bytes.Buffer
	buf.WriteByte(formatGzip)
	zw, err := gzip.NewWriterLevel(&buf, gzip.BestSpeed)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(raw); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(data []byte, v interface{}) error {
	if len(data) == 0 {
		return fmt.Errorf("empty payload")
	}
	switch data[0] {
	case formatJSON:
		return json.Unmarshal(data[1:], v)
	case formatGzip:
		zr, err := gzip.NewReader(bytes.NewReader(data[1:]))
		if err != nil {
			return err
		}
		defer zr.Close()
		raw, err := io.ReadAll(zr)
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, v)
	default:
		return fmt.Errorf("unknown payload format %q", data[0])
	}
}

//Personal.AI order the ending
