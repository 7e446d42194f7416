package filter

import (
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

var pathSeparator = string(filepath.Separator)

const globSpecialCharacters = `*?[]{}\,`

type tokenKind int

const (
	tokenLiteral tokenKind = iota
	tokenAnyRun
	tokenAnyCharacter
	tokenClass
)

// runeRange is an inclusive rune interval. A single character is a range with lo == hi.
type runeRange struct {
	lo rune
	hi rune
}

// fnmatchToken is one element of a parsed shell-style pattern.
type fnmatchToken struct {
	kind    tokenKind
	literal rune
	negated bool
	ranges  []runeRange
}

func (token fnmatchToken) matchesRune(value rune) bool {
	switch token.kind {
	case tokenLiteral:
		return token.literal == value
	case tokenAnyCharacter:
		return true
	case tokenClass:
		for _, member := range token.ranges {
			if member.lo <= value && value <= member.hi {
				return !token.negated
			}
		}
		return token.negated
	}
	return false
}

// compileFnmatch compiles a shell-style pattern in which '*' also matches path
// separators. Braces and backslashes are literal. Patterns are rendered into
// gobwas syntax; a negated class with more than one member has no gobwas form
// and is served by fnmatchMatcher instead.
func compileFnmatch(pattern string) (glob.Glob, error) {
	tokens := parseFnmatch(pattern)
	if syntax, expressible := gobwasSyntax(tokens); expressible {
		return glob.Compile(syntax)
	}
	return fnmatchMatcher{tokens: tokens}, nil
}

// parseFnmatch splits pattern into tokens. An opening bracket without a closing
// one is a literal character.
func parseFnmatch(pattern string) []fnmatchToken {
	runes := []rune(pattern)
	tokens := make([]fnmatchToken, 0, len(runes))
	for index := 0; index < len(runes); index++ {
		switch runes[index] {
		case '*':
			if len(tokens) > 0 && tokens[len(tokens)-1].kind == tokenAnyRun {
				continue
			}
			tokens = append(tokens, fnmatchToken{kind: tokenAnyRun})
		case '?':
			tokens = append(tokens, fnmatchToken{kind: tokenAnyCharacter})
		case '[':
			if class, end, closed := parseClass(runes, index); closed {
				tokens = append(tokens, class)
				index = end
				continue
			}
			tokens = append(tokens, fnmatchToken{kind: tokenLiteral, literal: '['})
		default:
			tokens = append(tokens, fnmatchToken{kind: tokenLiteral, literal: runes[index]})
		}
	}
	return tokens
}

// parseClass reads the class opened at start and returns it with the index of
// its closing bracket. A leading '!' negates; a ']' right after the opening
// (or after '!') is a member. "a-z" is a range, a '-' at either end is a member,
// and reversed ranges are empty.
func parseClass(runes []rune, start int) (fnmatchToken, int, bool) {
	index := start + 1
	class := fnmatchToken{kind: tokenClass}
	if index < len(runes) && runes[index] == '!' {
		class.negated = true
		index++
	}
	bodyStart := index
	if index < len(runes) && runes[index] == ']' {
		index++
	}
	for index < len(runes) && runes[index] != ']' {
		index++
	}
	if index >= len(runes) {
		return fnmatchToken{}, 0, false
	}

	body := runes[bodyStart:index]
	for position := 0; position < len(body); {
		lo := body[position]
		if position+2 < len(body) && body[position+1] == '-' {
			hi := body[position+2]
			if lo <= hi {
				class.ranges = append(class.ranges, runeRange{lo: lo, hi: hi})
			}
			position += 3
			continue
		}
		class.ranges = append(class.ranges, runeRange{lo: lo, hi: lo})
		position++
	}
	return class, index, true
}

// gobwasSyntax renders tokens as a gobwas/glob pattern compiled without separators.
// The boolean is false when a token cannot be expressed.
func gobwasSyntax(tokens []fnmatchToken) (string, bool) {
	var builder strings.Builder
	for _, token := range tokens {
		switch token.kind {
		case tokenAnyRun:
			builder.WriteRune('*')
		case tokenAnyCharacter:
			builder.WriteRune('?')
		case tokenLiteral:
			writeEscaped(&builder, token.literal)
		case tokenClass:
			if !writeClass(&builder, token) {
				return "", false
			}
		}
	}
	return builder.String(), true
}

// writeClass renders a positive class as an alternation of its members, for
// example "[a-zA-Z_]" as "{[a-z],[A-Z],\_}". A negated class is only expressible
// with a single member.
func writeClass(builder *strings.Builder, class fnmatchToken) bool {
	if class.negated {
		switch len(class.ranges) {
		case 0:
			builder.WriteRune('?')
			return true
		case 1:
			member := class.ranges[0]
			builder.WriteString("[!" + string(member.lo) + "-" + string(member.hi) + "]")
			return true
		default:
			return false
		}
	}

	var alternatives []string
	for _, member := range class.ranges {
		alternatives = append(alternatives, positiveAlternatives(member)...)
	}
	switch len(alternatives) {
	case 0:
		return false
	case 1:
		builder.WriteString(alternatives[0])
	default:
		builder.WriteString("{" + strings.Join(alternatives, ",") + "}")
	}
	return true
}

// positiveAlternatives renders one class member. gobwas reads a leading '!' in a
// range as negation, so a range starting at '!' is split off.
func positiveAlternatives(member runeRange) []string {
	if member.lo == member.hi {
		return []string{escapedRune(member.lo)}
	}
	if member.lo == '!' {
		return []string{escapedRune('!'), "[" + string(member.lo+1) + "-" + string(member.hi) + "]"}
	}
	return []string{"[" + string(member.lo) + "-" + string(member.hi) + "]"}
}

func escapedRune(value rune) string {
	var builder strings.Builder
	writeEscaped(&builder, value)
	return builder.String()
}

func writeEscaped(builder *strings.Builder, value rune) {
	if strings.ContainsRune(globSpecialCharacters, value) {
		builder.WriteRune('\\')
	}
	builder.WriteRune(value)
}

// fnmatchMatcher matches parsed tokens directly. It implements glob.Glob.
type fnmatchMatcher struct {
	tokens []fnmatchToken
}

// Match reports whether value matches the whole pattern. A '*' backtracks to
// the most recent star only, which is sufficient because stars match any run.
func (matcher fnmatchMatcher) Match(value string) bool {
	runes := []rune(value)
	tokenIndex, runeIndex := 0, 0
	starToken, starRune := -1, 0
	for runeIndex < len(runes) {
		if tokenIndex < len(matcher.tokens) {
			token := matcher.tokens[tokenIndex]
			if token.kind == tokenAnyRun {
				starToken, starRune = tokenIndex, runeIndex
				tokenIndex++
				continue
			}
			if token.matchesRune(runes[runeIndex]) {
				tokenIndex++
				runeIndex++
				continue
			}
		}
		if starToken < 0 {
			return false
		}
		starRune++
		tokenIndex, runeIndex = starToken+1, starRune
	}
	for tokenIndex < len(matcher.tokens) && matcher.tokens[tokenIndex].kind == tokenAnyRun {
		tokenIndex++
	}
	return tokenIndex == len(matcher.tokens)
}

var _ glob.Glob = fnmatchMatcher{}

// joinPattern appends pattern to root the way a path join does, without cleaning.
// A pattern that is itself absolute replaces the root.
func joinPattern(root, pattern string) string {
	if strings.HasPrefix(pattern, pathSeparator) || root == "" {
		return pattern
	}
	if strings.HasSuffix(root, pathSeparator) {
		return root + pattern
	}
	return root + pathSeparator + pattern
}
