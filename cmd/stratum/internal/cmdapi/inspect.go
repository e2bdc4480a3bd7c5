// Copyright 2023-present The Stratum Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

package cmdapi

import (
	"github.com/stratumhq/stratum/snapshot"
	"github.com/stratumhq/stratum/structure"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

type inspectFlags struct {
	includeCatalog bool
}

func init() {
	Root.AddCommand(inspectCmd())
}

// inspectCmd represents the subcommand 'stratum inspect'.
func inspectCmd() *cobra.Command {
	var flags inspectFlags
	cmd := &cobra.Command{
		Use:   "inspect [flags] file",
		Short: "Print the elements of a snapshot document in canonical order.",
		Example: `  stratum inspect snapshot.yaml
  stratum inspect --include-catalog snapshot.hcl`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return inspectRun(cmd, &flags, args[0])
		},
	}
	addFlagIncludeCatalog(cmd.Flags(), &flags.includeCatalog)
	return cmd
}

func inspectRun(cmd *cobra.Command, flags *inspectFlags, path string) error {
	d, err := readDocument(path)
	if err != nil {
		return err
	}
	s := snapshot.New(snapshot.WithComparer(&structure.Comparer{
		IncludeCatalog: func() bool { return flags.includeCatalog },
	}))
	s.Add(d.Elements...)
	if err := s.Resolve(); err != nil {
		return err
	}
	t := tablewriter.NewWriter(cmd.OutOrStdout())
	t.SetHeader([]string{"KIND", "SCHEMA", "NAME", "SNAPSHOT ID"})
	t.SetAutoFormatHeaders(false)
	t.SetBorder(false)
	t.SetColumnSeparator("")
	t.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, o := range s.Elements() {
		var schema string
		if sc := o.Schema(); sc != nil {
			schema = sc.Name()
			if flags.includeCatalog && sc.CatalogName() != "" {
				schema = sc.CatalogName() + "." + schema
			}
		}
		t.Append([]string{o.TypeName(), schema, o.Name(), o.SnapshotID()})
	}
	t.Render()
	cmd.Println(color.CyanString("%d elements", s.Len()))
	return nil
}
