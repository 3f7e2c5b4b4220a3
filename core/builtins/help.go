package builtins

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance is the largest edit distance help will suggest a
// builtin for.
const maxSuggestDistance = 2

// Help lists the builtins, or shows the help for a single one.
func Help(ctx *Context, cmd *Command) int {
	w := ctx.OS.Stdout()

	switch cmd.Len() {
	case 1:
		fmt.Fprintf(w, "%s built-in commands:\n", capitalize(ctx.name()))
		for _, entry := range registry {
			fmt.Fprintf(w, "  %s - %s\n", entry.Name, entry.Help)
		}
		return 0

	case 2:
		topic := cmd.Args[1]
		entry, ok := Lookup(topic)
		if !ok {
			status := ctx.invalid(cmd, fmt.Errorf("%w for '%s'", ErrNoHelp, topic))
			if suggestion := suggest(topic); suggestion != "" {
				ctx.errorf(cmd, "did you mean '%s'?", suggestion)
			}
			return status
		}
		fmt.Fprintln(w, entry.Help)
		return 0

	default:
		return ctx.invalid(cmd, ErrTooManyArguments)
	}
}

// suggest returns the closest builtin name to topic, or the empty string if
// none are close. Ties go to the earlier entry.
func suggest(topic string) string {
	best, bestDistance := "", maxSuggestDistance+1
	for _, entry := range registry {
		if d := levenshtein.ComputeDistance(topic, entry.Name); d < bestDistance {
			best, bestDistance = entry.Name, d
		}
	}
	return best
}

// capitalize upper-cases the first rune of s.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
