package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/schedline/pkg/report"
)

// ErrInvalidDocument is returned when a report document violates the schema.
var ErrInvalidDocument = errors.New("document does not match the report schema")

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	var (
		noColor    bool
		showSchema bool
	)

	cmd := &cobra.Command{
		Use:   "validate <timeline_label.json|->",
		Short: "Validate a JSON timeline report against the report schema",
		Long: `Validate a JSON document written by "schedline timeline --format json"
against the embedded report schema.

Examples:
  schedline validate timeline_light.json
  schedline validate - < timeline_light.json
  schedline validate --schema`,
		Args: cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				color.NoColor = true //nolint:reassign // intentional override of library global
			}

			if showSchema {
				_, err := cmd.OutOrStdout().Write(report.Schema())

				return err
			}

			if len(args) == 0 {
				return cmd.Usage()
			}

			return runValidate(cmd.OutOrStdout(), cmd.InOrStdin(), args[0])
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&showSchema, "schema", false, "Print the embedded schema and exit")

	return cmd
}

func runValidate(out io.Writer, stdin io.Reader, inputPath string) error {
	data, label, err := readInput(stdin, inputPath)
	if err != nil {
		return err
	}

	violations, err := report.Validate(data)
	if err != nil {
		return fmt.Errorf("%s: %w", label, err)
	}

	if len(violations) == 0 {
		color.New(color.FgGreen).Fprintf(out, "report is valid (%s)\n", label)

		return nil
	}

	color.New(color.FgRed).Fprintf(out, "report validation failed (%s)\n", label)

	for _, v := range violations {
		color.New(color.FgRed).Fprintf(out, "  - %s\n", v)
	}

	return fmt.Errorf("%w: %d violations in %s", ErrInvalidDocument, len(violations), label)
}

func readInput(stdin io.Reader, inputPath string) (data []byte, label string, err error) {
	if inputPath == "-" {
		data, err = io.ReadAll(stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}

		return data, "stdin", nil
	}

	data, err = os.ReadFile(inputPath)
	if err != nil {
		return nil, "", fmt.Errorf("read report: %w", err)
	}

	return data, inputPath, nil
}
