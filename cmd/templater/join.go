package main

import (
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func init() {
	joinCmd.RunE = joinValues
	joinCmd.Flags().StringVarP(&joinCmd.tmplfile, "template", "t", "",
		"Set template file name")
	joinCmd.MarkFlagRequired("template")
	rootCmd.AddCommand(&joinCmd.Command)
}

var joinCmd = struct {
	cobra.Command
	tmplfile string
}{
	Command: cobra.Command{
		Use:   "join [values-file]",
		Short: "Fill the template blanks with a JSON array of strings",
		Args:  cobra.MaximumNArgs(1),
	},
}

func joinValues(cmd *cobra.Command, args []string) error {
	tmpl, err := openTemplate(joinCmd.tmplfile)
	if err != nil {
		return err
	}
	var data []byte
	if len(args) == 0 {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return err
	}
	var values []string
	if err = json.Unmarshal(data, &values); err != nil {
		return err
	}
	text, err := tmpl.Join(values)
	if err != nil {
		return err
	}
	_, err = io.WriteString(cmd.OutOrStdout(), text)
	return err
}
