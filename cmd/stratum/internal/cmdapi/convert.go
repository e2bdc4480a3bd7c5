// Copyright 2023-present The Stratum Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

package cmdapi

import (
	"github.com/spf13/cobra"
)

type convertFlags struct {
	out    string
	format string
}

func init() {
	Root.AddCommand(convertCmd())
}

// convertCmd represents the subcommand 'stratum convert'.
func convertCmd() *cobra.Command {
	var flags convertFlags
	cmd := &cobra.Command{
		Use:   "convert [flags] file",
		Short: "Rewrite a snapshot document in another format.",
		Example: `  stratum convert -o snapshot.hcl snapshot.yaml
  stratum convert --format hcl snapshot.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return convertRun(cmd, &flags, args[0])
		},
	}
	addFlagOut(cmd.Flags(), &flags.out)
	addFlagFormat(cmd.Flags(), &flags.format)
	return cmd
}

// convertRun keeps the element order of the input document; only the
// rendering changes.
func convertRun(cmd *cobra.Command, flags *convertFlags, path string) error {
	d, err := readDocument(path)
	if err != nil {
		return err
	}
	format := flags.format
	if flags.out != "" {
		format = formatOf(flags.out)
	}
	data, err := marshalDocument(d, format)
	if err != nil {
		return err
	}
	return writeOutput(cmd, flags.out, data)
}
