package main

import (
	"fmt"

	"github.com/jonathan/seo-article-writer/internal/compose"
	"github.com/spf13/cobra"
)

func newPromptCmd() *cobra.Command {
	f := &requestFlags{}
	cmd := &cobra.Command{
		Use:   "prompt <topic>",
		Short: "Print the generation prompt for a topic without calling the service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			if cfg, err = f.finish(cfg); err != nil {
				return err
			}
			req, err := request(args[0], cfg)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), compose.BuildPrompt(req))
			return err
		},
	}
	f.register(cmd)
	return cmd
}
