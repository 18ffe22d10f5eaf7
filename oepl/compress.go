package oepl

import (
	"bytes"
	"compress/zlib"
)

// CompressPayload deflates an image payload for DATA_TYPE_ZLIB uploads. The
// device inflates it on receipt, so large mostly white or black images cross
// the link in a fraction of the airtime.
func CompressPayload(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
