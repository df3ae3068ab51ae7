package main

import (
	"errors"
	"io/fs"
	"log"

	"github.com/spf13/cobra"

	"github.com/fractalqb/templater"
)

func init() {
	learnCmd.RunE = learnFiles
	learnCmd.Flags().StringVarP(
		&learnCmd.output,
		"output", "o",
		learnCmd.output,
		"Write the template to file, binary if it ends with "+binarySuffix)
	learnCmd.Flags().BoolVarP(
		&learnCmd.update,
		"update", "u",
		learnCmd.update,
		"Learn into an existing output template file")
	rootCmd.AddCommand(&learnCmd.Command)
}

var learnCmd = struct {
	cobra.Command
	output string
	update bool
}{
	Command: cobra.Command{
		Use:   "learn [example-file...]",
		Short: "Learn a template from example files or stdin",
	},
}

func learnFiles(cmd *cobra.Command, files []string) error {
	tmpl, err := learnBase()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		text, err := templater.ReadText(cmd.InOrStdin())
		if err != nil {
			return err
		}
		tmpl.Learn(text)
	}
	for _, f := range files {
		if err := tmpl.LearnFile(f); err != nil {
			return err
		}
		log.Printf("learned %s: %d blanks\n", f, tmpl.Blanks())
	}
	if learnCmd.output == "" {
		return tmpl.WriteMarked(cmd.OutOrStdout())
	}
	return saveTemplate(tmpl, learnCmd.output)
}

func learnBase() (*templater.Template, error) {
	if !learnCmd.update || learnCmd.output == "" {
		return templater.New(options()...), nil
	}
	tmpl, err := openTemplate(learnCmd.output)
	if errors.Is(err, fs.ErrNotExist) {
		return templater.New(options()...), nil
	}
	return tmpl, err
}
