package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/jonathan/seo-article-writer/internal/llm"
	"github.com/jonathan/seo-article-writer/internal/llm/llmtest"
)

// execute runs the root command in-process and returns its combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// useMockClient replaces the service constructor for the duration of the test.
// The returned pointer receives the config the command built.
func useMockClient(t *testing.T, client *llmtest.MockClient) **llm.Config {
	t.Helper()
	var got *llm.Config
	original := newClient
	newClient = func(_ context.Context, config *llm.Config, _ string) (llm.Client, error) {
		got = config
		return client, nil
	}
	t.Cleanup(func() { newClient = original })
	return &got
}

func articleService() *llmtest.MockClient {
	return &llmtest.MockClient{
		StreamContentFunc: func(context.Context, string, llm.ModelTier, llm.StreamOptions) llm.Stream {
			return llmtest.TextStream("# H1: Electric Bicycles:\n\n", "Electric bicycles are everywhere.\n\n## Range:\n\nFar.")
		},
		GenerateJSONFunc: func(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
			if strings.Contains(prompt, `"keywords"`) {
				return `{"keywords": ["electric bicycles", "e-bike"]}`, nil
			}
			return `{"topics": ["bicycle"]}`, nil
		},
		GenerateContentFunc: func(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
			switch {
			case strings.Contains(prompt, "meta description"):
				return "All about electric bicycles.", nil
			case strings.Contains(prompt, "photo search query"):
				return "bicycle", nil
			}
			return "# Electric Bicycles\n\nREADME body", nil
		},
	}
}
