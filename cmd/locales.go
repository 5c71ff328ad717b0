package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/spigell/internbuddy/internal/locale"
	"github.com/spigell/internbuddy/internal/script"
)

var localesCmd = &cobra.Command{
	Use:   "locales",
	Short: "List supported languages and the question script each one uses",
	Run: func(_ *cobra.Command, _ []string) {
		config, err := getConfig()
		if err != nil {
			log.Fatalf("getting a config: %v", err)
		}

		registry, err := buildRegistry(config)
		if err != nil {
			log.Fatalf("loading question scripts: %v", err)
		}

		if err := printLocales(os.Stdout, registry); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(localesCmd)
}

func printLocales(w io.Writer, registry *script.Registry) error {
	if _, err := fmt.Fprintf(w, "registered scripts: %v (default %s)\n", registry.Locales(), registry.Default()); err != nil {
		return err
	}

	for _, lang := range locale.Supported {
		_, resolved := registry.Get(lang.Code)
		note := ""
		if resolved != lang.Code {
			note = " (uses " + resolved + " script)"
		}
		if _, err := fmt.Fprintf(w, "%-3s %-10s %s%s\n", lang.Code, lang.Name, lang.NativeName, note); err != nil {
			return err
		}
	}
	return nil
}
