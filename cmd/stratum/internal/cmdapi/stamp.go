// Copyright 2023-present The Stratum Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

package cmdapi

import (
	"github.com/stratumhq/stratum/snapshot"

	"github.com/spf13/cobra"
)

type stampFlags struct {
	out    string
	format string
}

func init() {
	Root.AddCommand(stampCmd())
}

// stampCmd represents the subcommand 'stratum stamp'.
func stampCmd() *cobra.Command {
	var flags stampFlags
	cmd := &cobra.Command{
		Use:   "stamp [flags] file",
		Short: "Assign identity tokens to elements missing them and rewrite the document.",
		Example: `  stratum stamp -o stamped.yaml snapshot.yaml
  stratum stamp --format hcl snapshot.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return stampRun(cmd, &flags, args[0])
		},
	}
	addFlagOut(cmd.Flags(), &flags.out)
	addFlagFormat(cmd.Flags(), &flags.format)
	return cmd
}

func stampRun(cmd *cobra.Command, flags *stampFlags, path string) error {
	d, err := readDocument(path)
	if err != nil {
		return err
	}
	missing := 0
	for _, o := range d.Elements {
		if o.SnapshotID() == "" {
			missing++
		}
	}
	s := snapshot.New()
	s.Add(d.Elements...)
	s.AssignIDs()
	format := flags.format
	if flags.out != "" {
		format = formatOf(flags.out)
	}
	data, err := marshalDocument(s.Document(), format)
	if err != nil {
		return err
	}
	if err := writeOutput(cmd, flags.out, data); err != nil {
		return err
	}
	cmd.PrintErrf("stamped %d of %d elements\n", missing, s.Len())
	return nil
}
