package repository

import (
	"fmt"
	"testing"

	"orgchart/internal/core"
	"orgchart/internal/orgchart"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRoster(n int) []orgchart.Dino {
	title := "Engineer"
	dinos := make([]orgchart.Dino, 0, n)
	for i := 0; i < n; i++ {
		manager := ""
		if i > 0 {
			manager = fmt.Sprint(i / 2)
		}
		dinos = append(dinos, orgchart.Dino{
			UserID:     fmt.Sprintf("ad|Mozilla-LDAP|user%d", i),
			EmployeeID: fmt.Sprint(i),
			ManagerID:  manager,
			Data: orgchart.Data{
				UserID:    fmt.Sprintf("ad|Mozilla-LDAP|user%d", i),
				FirstName: fmt.Sprintf("First%d", i),
				Picture:   "https://pics.example.com/default.png",
				Title:     &title,
			},
		})
	}
	return dinos
}

func TestSnapshotRoundTrip(t *testing.T) {
	roster := sampleRoster(200)

	for _, codec := range []core.SnapshotCodec{core.SnapshotCodecBrotli, core.SnapshotCodecZstd, ""} {
		t.Run(string(codec), func(t *testing.T) {
			payload, err := encodeSnapshot(codec, snapshot{Version: snapshotVersion, Source: "mongo", Dinos: roster})
			require.NoError(t, err)

			snap, gotCodec, err := decodeSnapshot(payload)
			require.NoError(t, err)
			if codec == "" {
				assert.Equal(t, core.SnapshotCodecBrotli, gotCodec)
			} else {
				assert.Equal(t, codec, gotCodec)
			}
			assert.Equal(t, snapshotVersion, snap.Version)
			assert.Equal(t, "mongo", snap.Source)
			assert.Equal(t, roster, snap.Dinos)
		})
	}
}

func TestSnapshotCompresses(t *testing.T) {
	roster := sampleRoster(500)
	brotliPayload, err := encodeSnapshot(core.SnapshotCodecBrotli, snapshot{Dinos: roster})
	require.NoError(t, err)
	zstdPayload, err := encodeSnapshot(core.SnapshotCodecZstd, snapshot{Dinos: roster})
	require.NoError(t, err)

	assert.Equal(t, tagBrotli, brotliPayload[0])
	assert.Equal(t, tagZstd, zstdPayload[0])
	// 名冊欄位高度重複，壓縮後平均每筆不到 100 bytes
	assert.Less(t, len(brotliPayload), 500*100)
	assert.Less(t, len(zstdPayload), 500*100)
}

func TestSnapshotRejectsUnknownCodec(t *testing.T) {
	_, err := encodeSnapshot("lz4", snapshot{})
	assert.ErrorIs(t, err, ErrUnknownSnapshotCodec)

	_, _, err = decodeSnapshot([]byte{'x', 1, 2, 3})
	assert.ErrorIs(t, err, ErrUnknownSnapshotCodec)

	_, _, err = decodeSnapshot([]byte{tagZstd})
	assert.Error(t, err)
}

func TestSnapshotCorruptPayload(t *testing.T) {
	_, _, err := decodeSnapshot([]byte{tagZstd, 0xde, 0xad, 0xbe, 0xef})
	assert.Error(t, err)
}
