package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptCommand(t *testing.T) {
	output, err := execute(t, "prompt", "Electric Bicycles", "--min-words", "800", "-l", "German")
	require.NoError(t, err)

	assert.Contains(t, output, "Electric Bicycles")
	assert.Contains(t, output, "German")
	assert.Contains(t, output, "800")
}

func TestPromptCommand_MissingBounds(t *testing.T) {
	_, err := execute(t, "prompt", "Electric Bicycles")
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	output, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "seo_writer dev\n", output)
}
