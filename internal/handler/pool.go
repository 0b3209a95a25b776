package handler

import (
	"bytes"
	"encoding/json"
	"sync"
)

// Response buffers start at pooledBufferSize. Buffers grown past
// maxPooledBuffer by a large inventory listing are not returned to the pool.
const (
	pooledBufferSize = 1 << 10
	maxPooledBuffer  = 64 << 10
)

var jsonBuffers = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, pooledBufferSize))
	},
}

// encodeJSON renders payload into a pooled buffer. The caller hands the
// buffer back with releaseBuffer.
func encodeJSON(payload any) (*bytes.Buffer, error) {
	buf := jsonBuffers.Get().(*bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		releaseBuffer(buf)
		return nil, err
	}
	return buf, nil
}

// releaseBuffer returns buf to the pool unless it grew too large
func releaseBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBuffer {
		return
	}
	buf.Reset()
	jsonBuffers.Put(buf)
}
