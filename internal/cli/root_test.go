package cli

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/strength"
)

var passwordLine = regexp.MustCompile(`(?m)^Password (\d+): (.+)$`)

func run(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func passwords(t *testing.T, out string) []string {
	t.Helper()
	var pws []string
	for _, m := range passwordLine.FindAllStringSubmatch(out, -1) {
		pws = append(pws, m[2])
	}
	return pws
}

func TestGenerateDefaults(t *testing.T) {
	code, out, errOut := run(t, "")
	require.Equal(t, 0, code, errOut)
	assert.Empty(t, errOut)

	pws := passwords(t, out)
	require.Len(t, pws, 1)
	assert.Len(t, pws[0], 16)

	a := strength.Evaluate(pws[0])
	assert.Contains(t, out, "Strength: "+a.Level.String())
	assert.Contains(t, out, "/100)")
	assert.Contains(t, out, "Feedback: "+a.Feedback)
}

func TestGenerateLengthAndCount(t *testing.T) {
	code, out, errOut := run(t, "", "-l", "20", "-n", "5")
	require.Equal(t, 0, code, errOut)

	pws := passwords(t, out)
	require.Len(t, pws, 5)
	for _, pw := range pws {
		assert.Len(t, pw, 20)
	}
	assert.Contains(t, out, "Password 5: ")
}

func TestGenerateClassToggles(t *testing.T) {
	code, out, errOut := run(t, "", "--length", "40", "--no-upper", "--digits=false", "--no-symbols")
	require.Equal(t, 0, code, errOut)

	pws := passwords(t, out)
	require.Len(t, pws, 1)
	for _, r := range pws[0] {
		assert.Contains(t, crypto.LowercaseChars, string(r))
	}
}

func TestGenerateFromEnvironment(t *testing.T) {
	t.Setenv("PASSGEN_LENGTH", "24")
	t.Setenv("PASSGEN_NO_SYMBOLS", "true")

	code, out, errOut := run(t, "")
	require.Equal(t, 0, code, errOut)

	pws := passwords(t, out)
	require.Len(t, pws, 1)
	assert.Len(t, pws[0], 24)
	assert.False(t, strings.ContainsAny(pws[0], crypto.SymbolChars))
}

func TestFlagOverridesEnvironment(t *testing.T) {
	t.Setenv("PASSGEN_LENGTH", "24")

	code, out, errOut := run(t, "", "-l", "8")
	require.Equal(t, 0, code, errOut)
	assert.Len(t, passwords(t, out)[0], 8)
}

func TestGenerateWithHash(t *testing.T) {
	code, out, errOut := run(t, "", "--hash")
	require.Equal(t, 0, code, errOut)

	pws := passwords(t, out)
	require.Len(t, pws, 1)

	m := regexp.MustCompile(`(?m)^Hash: (\S+)$`).FindStringSubmatch(out)
	require.Len(t, m, 2)
	ok, err := crypto.VerifyPassword(pws[0], m[1])
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGenerateValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "length below four",
			args: []string{"-l", "3"},
			want: "error: password length must be at least 4\n",
		},
		{
			name: "count zero",
			args: []string{"-n", "0"},
			want: "error: count must be at least 1\n",
		},
		{
			name: "no classes",
			args: []string{"--no-upper", "--no-lower", "--no-digits", "--no-symbols"},
			want: "error: " + crypto.ErrInvalidSelection.Error() + "\n",
		},
		{
			name: "unknown flag",
			args: []string{"--bogus"},
			want: "error: unknown flag: --bogus\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := run(t, "", tt.args...)
			assert.Equal(t, 1, code)
			assert.Empty(t, passwords(t, out))
			assert.Equal(t, tt.want, errOut)
		})
	}
}

func TestVerboseLogsWithoutPassword(t *testing.T) {
	code, out, errOut := run(t, "", "-v")
	require.Equal(t, 0, code)

	pws := passwords(t, out)
	require.Len(t, pws, 1)
	assert.Contains(t, errOut, "generated password")
	assert.NotContains(t, errOut, pws[0])
}

func TestEvaluateArgument(t *testing.T) {
	code, out, errOut := run(t, "", "evaluate", "abcd")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t,
		"Strength: weak (score: 20/100)\nFeedback: "+strength.FeedbackTooShort+" / "+strength.FeedbackFewTypes+"\n",
		out)
}

func TestEvaluateStdin(t *testing.T) {
	code, out, errOut := run(t, "Ab1!Ab1!Ab1!Ab1!\nignored\n", "evaluate")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "Strength: very-strong (score: 100/100)\nFeedback: "+strength.FeedbackGood+"\n", out)
}

func TestEvaluateNoInput(t *testing.T) {
	code, _, errOut := run(t, "", "evaluate")
	assert.Equal(t, 1, code)
	assert.Equal(t, "error: "+errNoInput.Error()+"\n", errOut)
}
