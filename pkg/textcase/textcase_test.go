// Copyright (c) 2026 The entertainment-api authors. All rights reserved.
// Author: a.wozniak.dev@gmail.com

package textcase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amwozniak/entertainment-api/pkg/textcase"
)

func TestSmartTitle_DefaultPolicy(t *testing.T) {
	example := "TV Movie, TV movie, RPG, Multi-player, fantasy, World War II"
	expected := "TV Movie, TV Movie, RPG, Multi-player, Fantasy, World War II"

	assert.Equal(t, expected, textcase.SmartTitle(example, textcase.ModeNone))
}

func TestSmartTitle_UnknownModeFallsBackToDefault(t *testing.T) {
	example := "TV Movie, TV movie, RPG, Multi-player, fantasy, World War II"
	expected := "TV Movie, TV Movie, RPG, Multi-player, Fantasy, World War II"

	// An unrecognized mode is silently ignored, not an error.
	assert.Equal(t, expected, textcase.SmartTitle(example, textcase.Mode("invalid")))
}

func TestSmartTitle_Modes(t *testing.T) {
	tests := []struct {
		name     string
		mode     textcase.Mode
		input    string
		expected string
	}{
		{
			name:     "lower",
			mode:     textcase.ModeLower,
			input:    "TV Movie, TV movie, RPG, Multi-player, fantasy, World War II",
			expected: "tv movie, tv movie, rpg, multi-player, fantasy, world war ii",
		},
		{
			name:     "upper",
			mode:     textcase.ModeUpper,
			input:    "tv movie, fantasy",
			expected: "TV MOVIE, FANTASY",
		},
		{
			name:     "capitalize_lowers_remainder",
			mode:     textcase.ModeCapitalize,
			input:    "RPG mULTI-pLAYER",
			expected: "Rpg Multi-player",
		},
		{
			name:     "title_capitalizes_every_word",
			mode:     textcase.ModeTitle,
			input:    "multi-player rock-n-roll",
			expected: "Multi-Player Rock-N-Roll",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, textcase.SmartTitle(tt.input, tt.mode))
		})
	}
}

func TestSmartTitle_EmptyString(t *testing.T) {
	assert.Equal(t, "", textcase.SmartTitle("", textcase.ModeNone))
	assert.Equal(t, "", textcase.SmartTitle("   ", textcase.ModeLower))
}

func TestSmartTitle_CollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "Science Fiction", textcase.SmartTitle("  science   fiction ", textcase.ModeNone))
}

func TestTitle(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"war", "War"},
		{"science fiction", "Science Fiction"},
		{"multi-player", "Multi-Player"},
		{"RPG", "Rpg"},
		{"21st century", "21St Century"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, textcase.Title(tt.input), "input: %q", tt.input)
	}
}
