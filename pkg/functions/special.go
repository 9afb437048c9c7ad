package functions

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/Hanaasagi/prmpt/pkg/prmpt"
)

// Special provides characters that cannot be written literally in a script.
func Special() prmpt.Provider {
	return prmpt.ProviderFunc(func() []prmpt.Function {
		return []prmpt.Function{
			{
				Name:    "unichar",
				MinArgs: 1,
				MaxArgs: 1,
				Help:    "Unicode character for a code point; 0x, 0o and 0b prefixes are accepted.",
				Call:    unichar,
			},
			constant("backslash", `\`, `A backslash (\).`),
			constant("percent", "%", "A percent sign."),
			constant("opencurly", "{", "An opening curly brace."),
			constant("closecurly", "}", "A closing curly brace."),
			constant("opensquare", "[", "An opening square bracket."),
			constant("closesquare", "]", "A closing square bracket."),
			constant("space", " ", "A space."),
			constant("newline", "\n", "A line break."),
			constant("carriagereturn", "\r", "A carriage return."),
			constant("escape", "\033", "The escape character."),
			constant("tick", "\u2714", "A tick symbol."),
			constant("cross", "\u2718", "A cross symbol."),
			constant("highvoltage", "\u26a1", "A high voltage symbol."),
		}
	})
}

func unichar(_ *prmpt.Context, args ...string) (string, error) {
	code := strings.TrimSpace(args[0])
	n, err := strconv.ParseInt(code, 0, 32)
	// a leading zero needs a base letter: "010" is not octal, "00" is zero
	if len(code) > 1 && code[0] == '0' && unicode.IsDigit(rune(code[1])) && strings.Trim(code, "0") != "" {
		err = strconv.ErrSyntax
	}
	if err != nil || n < 0 || n > 0x10ffff {
		return "", prmpt.Invalidf("unichar: invalid code point %q", args[0])
	}
	return string(rune(n)), nil
}
