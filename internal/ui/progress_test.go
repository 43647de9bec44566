package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rssh/internal/models"
)

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.0 KiB", FormatBytes(1024))
	assert.Equal(t, "1.5 MiB", FormatBytes(1536*1024))
	assert.Equal(t, "2.0 GiB", FormatBytes(2*1024*1024*1024))
}

func TestRenderProgress_KnownTotal(t *testing.T) {
	st := models.TransferStatus{
		TotalBytes:       1000,
		TransferredBytes: 500,
		StartTime:        time.Now().Add(-time.Second),
	}

	line := RenderProgress(st, 60)
	assert.True(t, strings.HasPrefix(line, "["))
	assert.Contains(t, line, " 50%")
	assert.Contains(t, line, "500 B/1000 B")
}

func TestRenderProgress_Complete(t *testing.T) {
	st := models.TransferStatus{
		TotalBytes:       1000,
		TransferredBytes: 1000,
		StartTime:        time.Now().Add(-time.Second),
	}

	line := RenderProgress(st, 60)
	assert.Contains(t, line, "100%")
	assert.NotContains(t, line, ">")
}

func TestRenderProgress_UnknownTotalDegradesToCounter(t *testing.T) {
	st := models.TransferStatus{
		TransferredBytes: 2048,
		StartTime:        time.Now().Add(-time.Second),
	}

	line := RenderProgress(st, 60)
	assert.NotContains(t, line, "[")
	assert.NotContains(t, line, "%")
	assert.Contains(t, line, "2.0 KiB")
}
