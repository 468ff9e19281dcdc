package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestNewGenerationRequest_DefaultsLanguage(t *testing.T) {
	req := NewGenerationRequest("Electric Bicycles", "", intPtr(800), nil)
	assert.Equal(t, DefaultLanguage, req.Language)

	req = NewGenerationRequest("Electric Bicycles", "German", intPtr(800), nil)
	assert.Equal(t, "German", req.Language)
}

func TestGenerationRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     GenerationRequest
		wantErr bool
	}{
		{
			name: "min only",
			req:  NewGenerationRequest("Go", "", intPtr(800), nil),
		},
		{
			name: "max only",
			req:  NewGenerationRequest("Go", "", nil, intPtr(1500)),
		},
		{
			name: "both ordered",
			req:  NewGenerationRequest("Go", "", intPtr(800), intPtr(1500)),
		},
		{
			name:    "no bounds",
			req:     NewGenerationRequest("Go", "", nil, nil),
			wantErr: true,
		},
		{
			name:    "missing topic",
			req:     NewGenerationRequest("", "", intPtr(800), nil),
			wantErr: true,
		},
		{
			name:    "blank topic",
			req:     NewGenerationRequest("   ", "", intPtr(800), nil),
			wantErr: true,
		},
		{
			name:    "zero min",
			req:     NewGenerationRequest("Go", "", intPtr(0), nil),
			wantErr: true,
		},
		{
			name:    "min above max",
			req:     NewGenerationRequest("Go", "", intPtr(2000), intPtr(1000)),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		input string
		want  OutputFormat
	}{
		{"HTML", FormatHTML},
		{"html", FormatHTML},
		{"Markdown", FormatMarkdown},
		{"md", FormatMarkdown},
		{"GitHub", FormatGitHub},
		{" github ", FormatGitHub},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseOutputFormat("pdf")
	assert.Error(t, err)
}

func TestOutputFormat_Extension(t *testing.T) {
	assert.Equal(t, "html", FormatHTML.Extension())
	assert.Equal(t, "md", FormatMarkdown.Extension())
	assert.Equal(t, "md", FormatGitHub.Extension())
}

func TestEnrichmentBundle_FinalMarkdown(t *testing.T) {
	bundle := EnrichmentBundle{IllustratedMarkdown: "# A"}
	assert.Equal(t, "# A", bundle.FinalMarkdown())

	bundle.ReadmeMarkdown = "# A (readme)"
	assert.Equal(t, "# A (readme)", bundle.FinalMarkdown())
}

func TestEnrichmentBundle_Degraded(t *testing.T) {
	assert.False(t, EnrichmentBundle{}.Degraded())
	assert.True(t, EnrichmentBundle{Fallbacks: []string{"keywords"}}.Degraded())
}
