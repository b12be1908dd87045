// Package templatefields lists the fillable form fields of a sheet
// template. The dot and tracker layout constants in the renderer come from
// the template's field names, so the tool is the quickest way to audit a
// new template revision against them.
package templatefields

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/elysium-rpg/pdf-service/internal/services/sheet/pdfform"
)

// Config holds configuration for template field listing.
type Config struct {
	TemplatePath string
}

// ParseConfig parses flags into a Config. The template path may be given
// with -template or as the first positional argument.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	fs.StringVar(&cfg.TemplatePath, "template", cfg.TemplatePath, "path to the AcroForm template PDF")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.TemplatePath) == "" && fs.NArg() > 0 {
		cfg.TemplatePath = fs.Arg(0)
	}
	return cfg, nil
}

// Run lists the template's fields and writes one line per field to out,
// field type first, in document order.
func Run(cfg Config, out io.Writer) error {
	if strings.TrimSpace(cfg.TemplatePath) == "" {
		return errors.New("template path is required")
	}
	if out == nil {
		return errors.New("output is required")
	}

	template, err := os.ReadFile(cfg.TemplatePath)
	if err != nil {
		return fmt.Errorf("read template: %w", err)
	}
	doc, err := pdfform.Open(template)
	if err != nil {
		return err
	}
	fields, err := doc.Fields()
	if err != nil {
		return err
	}

	for _, field := range fields {
		if _, err := fmt.Fprintf(out, "%s\t%s\n", field.Type, field.Name); err != nil {
			return err
		}
	}
	return nil
}
