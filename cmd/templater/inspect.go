package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fractalqb/templater"
)

func init() {
	inspectCmd.RunE = inspectTemplate
	inspectCmd.Flags().StringVarP(&inspectCmd.tmplfile, "template", "t", "",
		"Set template file name")
	inspectCmd.MarkFlagRequired("template")
	rootCmd.AddCommand(&inspectCmd.Command)
}

var inspectCmd = struct {
	cobra.Command
	tmplfile string
}{
	Command: cobra.Command{
		Use:   "inspect",
		Short: "Describe a template file as YAML",
		Args:  cobra.NoArgs,
	},
}

// Blanks are encoded as null.
type inspection struct {
	MinBlockSize int       `yaml:"min-block-size"`
	Blanks       int       `yaml:"blanks"`
	Segments     []*string `yaml:"segments"`
}

func describe(tmpl *templater.Template) inspection {
	res := inspection{
		MinBlockSize: tmpl.MinBlockSize(),
		Blanks:       tmpl.Blanks(),
	}
	for _, seg := range tmpl.Segments() {
		if seg.Blank {
			res.Segments = append(res.Segments, nil)
		} else {
			lit := seg.Literal
			res.Segments = append(res.Segments, &lit)
		}
	}
	return res
}

func inspectTemplate(cmd *cobra.Command, args []string) error {
	tmpl, err := openTemplate(inspectCmd.tmplfile)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err = enc.Encode(describe(tmpl)); err != nil {
		return err
	}
	return enc.Close()
}
