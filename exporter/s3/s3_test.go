package s3

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestObjectName(t *testing.T) {
	p := &S3Exporter{bucket: "piles"}
	require.Equal(t, "/piles", p.Root())
	require.Equal(t, "pile.lz4", p.objectName("pile.lz4"))

	p = &S3Exporter{bucket: "piles", prefix: "host/daily"}
	require.Equal(t, "/piles/host/daily", p.Root())
	require.Equal(t, "host/daily/pile.lz4", p.objectName("pile.lz4"))
}

func TestNoBucket(t *testing.T) {
	_, err := NewS3Exporter("s3://key:secret@localhost:9000/")
	require.Error(t, err)
}
