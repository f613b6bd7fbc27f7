package cli

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vaultpass/passgen-go/internal/form"
	"github.com/vaultpass/passgen-go/internal/strength"
)

var errNoInput = errors.New("no password given on the command line or stdin")

func newEvaluateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate [password]",
		Short: "Rate the strength of an existing password",
		Long: `Rate the strength of an existing password.

Without an argument the first line of stdin is read, which keeps the
password out of the shell history.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				scanner := bufio.NewScanner(cmd.InOrStdin())
				if !scanner.Scan() {
					if err := scanner.Err(); err != nil {
						return fmt.Errorf("reading stdin: %w", err)
					}
					return errNoInput
				}
				password = scanner.Text()
			}

			printAssessment(cmd.OutOrStdout(), strength.Evaluate(password))
			return nil
		},
	}
}

func newFormCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "form",
		Short: "Open the interactive password form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return form.Run(cmd.Context())
		},
	}
}
