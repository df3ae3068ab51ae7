package main

import (
	"fmt"
	"log"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/fractalqb/templater"
)

func init() {
	parseCmd.RunE = parseFiles
	parseCmd.Flags().StringVarP(&parseCmd.tmplfile, "template", "t", "",
		"Set template file name")
	parseCmd.MarkFlagRequired("template")
	rootCmd.AddCommand(&parseCmd.Command)
}

var parseCmd = struct {
	cobra.Command
	tmplfile string
}{
	Command: cobra.Command{
		Use:   "parse [subject-file...]",
		Short: "Print the blank values of subject files as JSON",
	},
}

type parsed struct {
	File   string   `json:"file"`
	Values []string `json:"values"`
}

func parseFiles(cmd *cobra.Command, files []string) error {
	tmpl, err := openTemplate(parseCmd.tmplfile)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	if len(files) == 0 {
		text, err := templater.ReadText(cmd.InOrStdin())
		if err != nil {
			return err
		}
		values, err := tmpl.Parse(text)
		if err != nil {
			return fmt.Errorf("stdin: %w", err)
		}
		return enc.Encode(values)
	}
	misses := 0
	for _, f := range files {
		values, err := tmpl.ParseFile(f)
		if err != nil {
			log.Printf("%s mismatch with %s: %s", f, parseCmd.tmplfile, err)
			misses++
			continue
		}
		if err = enc.Encode(parsed{File: f, Values: values}); err != nil {
			return err
		}
	}
	if misses > 0 {
		return fmt.Errorf("%d of %d subjects do not match", misses, len(files))
	}
	return nil
}
