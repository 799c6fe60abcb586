package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/Veraticus/hireflow/internal/storage"
	"github.com/stretchr/testify/assert"
)

func TestFormatFileSize(t *testing.T) {
	tests := map[int64]string{
		0:               "0 B",
		1023:            "1023 B",
		1024:            "1.0 KB",
		1536:            "1.5 KB",
		5 * 1024 * 1024: "5.0 MB",
	}
	for size, want := range tests {
		assert.Equal(t, want, formatFileSize(size), "size %d", size)
	}
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		ago  time.Duration
		want string
	}{
		{ago: 10 * time.Second, want: "just now"},
		{ago: time.Minute, want: "1 minute ago"},
		{ago: 45 * time.Minute, want: "45 minutes ago"},
		{ago: 3 * time.Hour, want: "3 hours ago"},
		{ago: 30 * time.Hour, want: "yesterday"},
		{ago: 4 * 24 * time.Hour, want: "4 days ago"},
		{ago: 30 * 24 * time.Hour, want: "2024-02-09 12:00"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatRelativeTime(now.Add(-tt.ago), now))
		})
	}
}

func TestWriteCheckpointTable(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	var empty bytes.Buffer
	writeCheckpointTable(&empty, nil, now)
	assert.Contains(t, empty.String(), "No checkpoints found.")

	var out bytes.Buffer
	writeCheckpointTable(&out, []storage.SnapshotInfo{
		{ID: "before-import", CreatedAt: now.Add(-2 * time.Hour), FileSize: 2048, Applicants: 12},
		{ID: "auto-import-2024", CreatedAt: now.Add(-30 * time.Second), FileSize: 100, Applicants: 9, IsAuto: true},
	}, now)

	text := out.String()
	assert.Contains(t, text, "APPLICANTS")
	assert.Contains(t, text, "before-import")
	assert.Contains(t, text, "2 hours ago")
	assert.Contains(t, text, "2.0 KB")
	assert.Contains(t, text, "manual")
	assert.Contains(t, text, "just now")
	assert.Contains(t, text, "auto")
}
