package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/strength"
)

// MinLength is the shortest password the command line accepts. It is
// stricter than the generator's own floor of 1.
const MinLength = 4

var (
	ErrLengthTooShort = fmt.Errorf("password length must be at least %d", MinLength)
	ErrCountTooSmall  = errors.New("count must be at least 1")
)

type generateOptions struct {
	Length  int
	Count   int
	Classes crypto.CharacterClasses
	Hash    bool
}

// Execute runs the passgen command tree and returns the process exit status.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// NewRootCommand builds the passgen command and its subcommands.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "passgen",
		Short: "Generate secure random passwords and rate their strength",
		Example: `  passgen                      # one 16-character password
  passgen -l 20 -n 5           # five 20-character passwords
  passgen --no-symbols         # no symbols
  passgen -l 12 --no-upper     # 12 characters, no uppercase letters`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := bindEnv(cmd)
			if err != nil {
				return err
			}

			logger := newLogger(cmd.ErrOrStderr(), v.GetBool("verbose"))

			opts := generateOptions{
				Length: v.GetInt("length"),
				Count:  v.GetInt("count"),
				Classes: crypto.CharacterClasses{
					Uppercase: enabled(v, "upper"),
					Lowercase: enabled(v, "lower"),
					Digits:    enabled(v, "digits"),
					Symbols:   enabled(v, "symbols"),
				},
				Hash: v.GetBool("hash"),
			}

			return runGenerate(cmd.OutOrStdout(), logger, opts)
		},
	}

	flags := cmd.Flags()
	flags.IntP("length", "l", crypto.DefaultLength, "password length")
	flags.IntP("count", "n", 1, "number of passwords to generate")
	addClassFlags(flags)
	flags.Bool("hash", false, "also print an Argon2id hash of each password")

	cmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging to stderr")

	cmd.AddCommand(newEvaluateCommand())
	cmd.AddCommand(newFormCommand())

	return cmd
}

// addClassFlags registers --<class> (default on) and --no-<class> for every
// character class. A class is used when it is on and not negated.
func addClassFlags(flags *pflag.FlagSet) {
	for _, class := range []struct{ name, desc string }{
		{"upper", "uppercase letters (A-Z)"},
		{"lower", "lowercase letters (a-z)"},
		{"digits", "digits (0-9)"},
		{"symbols", "symbols (!@#$%...)"},
	} {
		flags.Bool(class.name, true, "include "+class.desc)
		flags.Bool("no-"+class.name, false, "exclude "+class.desc)
	}
}

// bindEnv lets every flag also be set as PASSGEN_<FLAG>, following the
// precedence flag > environment > default.
func bindEnv(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	v.SetEnvPrefix("PASSGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v, nil
}

func enabled(v *viper.Viper, class string) bool {
	return v.GetBool(class) && !v.GetBool("no-"+class)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func runGenerate(out io.Writer, logger *slog.Logger, opts generateOptions) error {
	if opts.Length < MinLength {
		return ErrLengthTooShort
	}
	if opts.Count < 1 {
		return ErrCountTooSmall
	}

	hashParams := crypto.DefaultHashParams()
	for i := 0; i < opts.Count; i++ {
		password, err := crypto.Generate(opts.Length, opts.Classes)
		if err != nil {
			return err
		}

		a := strength.Evaluate(password)
		logger.Debug("generated password", "index", i+1, "length", opts.Length, "strength", a.Level, "score", a.Score)

		fmt.Fprintf(out, "\nPassword %d: %s\n", i+1, password)
		printAssessment(out, a)

		if opts.Hash {
			hash, err := crypto.HashPassword(password, hashParams)
			if err != nil {
				return fmt.Errorf("hashing password: %w", err)
			}
			fmt.Fprintf(out, "Hash: %s\n", hash)
		}
	}
	return nil
}

func printAssessment(out io.Writer, a strength.Assessment) {
	fmt.Fprintf(out, "Strength: %s (score: %d/100)\n", a.Level, a.Score)
	fmt.Fprintf(out, "Feedback: %s\n", a.Feedback)
}
