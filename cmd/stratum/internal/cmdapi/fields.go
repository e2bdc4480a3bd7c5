// Copyright 2023-present The Stratum Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

package cmdapi

import (
	"encoding/json"
	"sort"

	"github.com/stratumhq/stratum/structure"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type fieldsFlags struct {
	kind string
	json bool
}

func init() {
	Root.AddCommand(fieldsCmd())
}

// fieldsCmd represents the subcommand 'stratum fields'.
func fieldsCmd() *cobra.Command {
	var flags fieldsFlags
	cmd := &cobra.Command{
		Use:   "fields [flags] file",
		Short: "Print the serializable fields of snapshot elements.",
		Example: `  stratum fields snapshot.yaml
  stratum fields --kind table --json snapshot.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return fieldsRun(cmd, &flags, args[0])
		},
	}
	addFlagKind(cmd.Flags(), &flags.kind)
	addFlagJSON(cmd.Flags(), &flags.json)
	return cmd
}

func addFlagKind(set *pflag.FlagSet, target *string) {
	set.StringVar(target, flagKind, "", "limit output to elements of this kind")
}

func addFlagJSON(set *pflag.FlagSet, target *bool) {
	set.BoolVar(target, flagJSON, false, "print as a JSON array")
}

// elementFields is the JSON form of one element's field projection.
type elementFields struct {
	Kind   string            `json:"kind"`
	Name   string            `json:"name,omitempty"`
	Fields map[string]string `json:"fields"`
}

func fieldsRun(cmd *cobra.Command, flags *fieldsFlags, path string) error {
	d, err := readDocument(path)
	if err != nil {
		return err
	}
	out := make([]elementFields, 0, len(d.Elements))
	for _, o := range d.Elements {
		if flags.kind != "" && o.TypeName() != flags.kind {
			continue
		}
		ef := elementFields{Kind: o.TypeName(), Name: o.Name(), Fields: make(map[string]string)}
		for _, f := range structure.SerializableFields(o) {
			v, err := structure.FieldValue(o, f)
			if err != nil {
				return err
			}
			if v == nil {
				continue
			}
			ef.Fields[f] = structure.Text(v)
		}
		out = append(out, ef)
	}
	if flags.json {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	for _, ef := range out {
		title := ef.Kind
		if ef.Name != "" {
			title += " " + color.CyanString("%q", ef.Name)
		}
		cmd.Println(title)
		t := tablewriter.NewWriter(cmd.OutOrStdout())
		t.SetHeader([]string{"FIELD", "VALUE"})
		t.SetAutoFormatHeaders(false)
		t.SetBorder(false)
		t.SetColumnSeparator("")
		t.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		t.SetAlignment(tablewriter.ALIGN_LEFT)
		names := make([]string, 0, len(ef.Fields))
		for name := range ef.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			t.Append([]string{name, ef.Fields[name]})
		}
		t.Render()
		cmd.Println()
	}
	return nil
}
