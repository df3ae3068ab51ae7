// A command line tool to learn text templates from examples
package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fractalqb/templater"
)

// Template files with this extension are binary dumps, all others are marked
// text.
const binarySuffix = ".tpl"

var rootCmd = struct {
	cobra.Command
	cfgFile string
}{
	Command: cobra.Command{
		Use:   "templater",
		Short: "Learn text templates from examples and use them to parse and join texts",
		Long: `Learn text templates from examples and use them to parse and join texts

Template files with suffix ` + binarySuffix + ` are binary, all other template
files are text where a marker denotes the blanks, e.g.:

   |||<b>|||</b>|||

Settings are read from flags, TEMPLATER_* environment variables and an
optional YAML config file:

   marker: "|||"
   min-block-size: 2`,
		SilenceUsage:      true,
		DisableAutoGenTag: true,
	},
}

var settings = viper.New()

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&rootCmd.cfgFile, "config", "c", "",
		"Read settings from YAML config file")
	flags.StringP("marker", "m", templater.DefaultMarker,
		"Set the marker that denotes blanks in template text files")
	flags.IntP("min-block-size", "b", 1,
		"Set the minimum length of learned literals")
	settings.BindPFlag("marker", flags.Lookup("marker"))
	settings.BindPFlag("min-block-size", flags.Lookup("min-block-size"))
	settings.SetEnvPrefix("TEMPLATER")
	settings.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	settings.AutomaticEnv()
	rootCmd.PersistentPreRunE = readConfig
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

func readConfig(cmd *cobra.Command, args []string) error {
	if rootCmd.cfgFile == "" {
		return nil
	}
	settings.SetConfigFile(rootCmd.cfgFile)
	settings.SetConfigType("yaml")
	return settings.ReadInConfig()
}

func options() []templater.Option {
	return []templater.Option{
		templater.WithMarker(settings.GetString("marker")),
		templater.WithMinBlockSize(settings.GetInt("min-block-size")),
	}
}

func openTemplate(name string) (*templater.Template, error) {
	if filepath.Ext(name) == binarySuffix {
		return templater.Load(name, options()...)
	}
	return templater.Open(name, options()...)
}

func saveTemplate(tmpl *templater.Template, name string) error {
	if filepath.Ext(name) == binarySuffix {
		return tmpl.Dump(name)
	}
	return tmpl.Save(name)
}

func main() {
	log.SetFlags(0)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
