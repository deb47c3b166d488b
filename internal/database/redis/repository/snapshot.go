package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"orgchart/internal/core"
	"orgchart/internal/orgchart"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

// 快照第一個 byte 記錄壓縮格式，讀取時不依賴目前設定
const (
	tagBrotli byte = 'b'
	tagZstd   byte = 'z'
)

var ErrUnknownSnapshotCodec = errors.New("unknown roster snapshot codec")

// snapshot 是寫入 Redis 的名冊內容
type snapshot struct {
	Version int             `json:"version"`
	Source  string          `json:"source"`
	Dinos   []orgchart.Dino `json:"dinos"`
}

func encodeSnapshot(codec core.SnapshotCodec, snap snapshot) ([]byte, error) {
	raw, err := json.Marshal(snap)
	if err != nil {
		return nil, err
	}
	switch codec {
	case core.SnapshotCodecZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		return enc.EncodeAll(raw, []byte{tagZstd}), nil
	case core.SnapshotCodecBrotli, "":
		var buf bytes.Buffer
		buf.WriteByte(tagBrotli)
		w := brotli.NewWriterLevel(&buf, brotli.DefaultCompression)
		if _, err := w.Write(raw); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSnapshotCodec, codec)
	}
}

func decodeSnapshot(payload []byte) (snapshot, core.SnapshotCodec, error) {
	if len(payload) < 2 {
		return snapshot{}, "", errors.New("roster snapshot too short")
	}
	var (
		raw   []byte
		codec core.SnapshotCodec
		err   error
	)
	switch payload[0] {
	case tagBrotli:
		codec = core.SnapshotCodecBrotli
		raw, err = io.ReadAll(brotli.NewReader(bytes.NewReader(payload[1:])))
	case tagZstd:
		codec = core.SnapshotCodecZstd
		var dec *zstd.Decoder
		dec, err = zstd.NewReader(nil)
		if err == nil {
			raw, err = dec.DecodeAll(payload[1:], nil)
			dec.Close()
		}
	default:
		return snapshot{}, "", fmt.Errorf("%w: tag 0x%02x", ErrUnknownSnapshotCodec, payload[0])
	}
	if err != nil {
		return snapshot{}, codec, err
	}
	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return snapshot{}, codec, err
	}
	return snap, codec, nil
}
