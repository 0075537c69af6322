package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/openidx/permmap/internal/permmap"
)

type rootOptions struct {
	tablePath string
	jsonOut   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "permmapctl",
		Short:         "Translate between backend permissions and frontend capabilities",
		Long:          "Inspect a permission mapping table and translate permission sets in either direction",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.tablePath, "table", "", "Mapping table file (YAML, JSON or TOML); built-in table when empty")
	rootCmd.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "Print results as JSON")

	rootCmd.AddCommand(
		frontendCmd(opts),
		backendCmd(opts),
		mappingCmd(opts),
		validateCmd(opts),
	)

	return rootCmd
}

func (o *rootOptions) translator(stderr io.Writer) (*permmap.Translator, error) {
	entries, err := permmap.LoadEntriesFile(o.tablePath)
	if err != nil {
		return nil, err
	}
	if err := permmap.Validate(entries); err != nil {
		fmt.Fprintf(stderr, "warning: %v\n", err)
	}
	return permmap.NewTranslator(permmap.NewMappingTable(entries)), nil
}

func frontendCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "frontend [permission...]",
		Short:   "Translate backend permissions to frontend capabilities",
		Aliases: []string{"fe"},
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := opts.translator(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			out := permmap.FrontendStrings(t.ToFrontend(permmap.BackendIDs(args)))
			return printList(cmd.OutOrStdout(), opts.jsonOut, out)
		},
	}
}

func backendCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "backend [capability...]",
		Short:   "Expand frontend capabilities into backend permissions",
		Aliases: []string{"be"},
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := opts.translator(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			out := permmap.BackendStrings(t.ToBackend(permmap.FrontendIDs(args)))
			return printList(cmd.OutOrStdout(), opts.jsonOut, out)
		},
	}
}

func mappingCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mapping",
		Short: "Show the mapping table and the capabilities it derives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := opts.translator(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			if opts.jsonOut {
				return printJSON(cmd.OutOrStdout(), t.Table().Entries())
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "BACKEND\tFRONTEND")
			for _, e := range t.Table().Entries() {
				fmt.Fprintf(w, "%s\t%s\n", e.Backend, e.Frontend)
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, "CAPABILITY\tBACKEND PERMISSIONS")
			for _, capability := range t.Inverse().Capabilities() {
				bucket, _ := t.Inverse().Lookup(capability)
				fmt.Fprintf(w, "%s\t%v\n", capability, permmap.BackendStrings(bucket))
			}
			return w.Flush()
		},
	}
}

func validateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the mapping table for empty identifiers and duplicate keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := permmap.LoadEntriesFile(opts.tablePath)
			if err != nil {
				return err
			}

			if err := permmap.Validate(entries); err != nil {
				var verr *permmap.ValidationError
				if !errors.As(err, &verr) {
					return err
				}
				for _, p := range verr.Problems {
					fmt.Fprintln(cmd.ErrOrStderr(), p.String())
				}
				return fmt.Errorf("mapping table has %d problem(s)", len(verr.Problems))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "OK: %d entries\n", len(entries))
			return nil
		},
	}
}

func printList(w io.Writer, asJSON bool, items []string) error {
	if asJSON {
		return printJSON(w, items)
	}
	for _, item := range items {
		fmt.Fprintln(w, item)
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(output))
	return nil
}
