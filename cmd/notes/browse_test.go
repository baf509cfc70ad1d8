package main

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes/internal/note"
	"notes/internal/view"
)

func TestParseBrowseLine(t *testing.T) {
	tests := []struct {
		line string
		want browseInput
	}{
		{"groceries", browseInput{action: actSearch, text: "groceries"}},
		{"", browseInput{action: actSearch, text: ""}},
		{"  two words ", browseInput{action: actSearch, text: "  two words "}},
		{":n", browseInput{action: actNext}},
		{":next", browseInput{action: actNext}},
		{":p", browseInput{action: actPrev}},
		{" :r ", browseInput{action: actReload}},
		{":q", browseInput{action: actQuit}},
		{":h", browseInput{action: actHelp}},
		{":g 3", browseInput{action: actGoto, page: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := parseBrowseLine(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBrowseLine_Errors(t *testing.T) {
	for _, line := range []string{":", ":g", ":g x", ":g 1 2", ":zap"} {
		t.Run(line, func(t *testing.T) {
			_, err := parseBrowseLine(line)
			assert.Error(t, err)
		})
	}
}

func TestRenderer_PrintsSettledStatesOnce(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	r := &renderer{w: &buf}

	snap := view.Snapshot{
		Loaded:     true,
		Page:       1,
		TotalPages: 1,
		TotalCount: 1,
		Notes:      []note.Note{{ID: uuid.New(), Title: "Only"}},
	}

	r.render(view.Snapshot{Loading: true})
	assert.Empty(t, buf.String())

	r.render(snap)
	r.render(snap)
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("Only")))

	r.force(snap)
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("Only")))
}
