package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Simplici0/lavender/internal/input"
)

func defaultsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Print the default form values as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defaults, err := opts.formDefaults()
			if err != nil {
				return err
			}

			// A mapping node keeps the form's field order.
			doc := &yaml.Node{Kind: yaml.MappingNode}
			for _, field := range input.Fields {
				value := &yaml.Node{Kind: yaml.ScalarNode, Value: defaults[field]}
				if value.Value == "" {
					value.Tag = "!!str"
				}
				doc.Content = append(doc.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: field}, value)
			}

			data, err := yaml.Marshal(doc)
			if err != nil {
				return fmt.Errorf("encode defaults: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
