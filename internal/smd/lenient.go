package smd

import (
	"strconv"
	"strings"
)

// Every numeric field in the format goes through parseInt or parseFloat.
// Both accept the longest numeric prefix of the token and return 0 when
// there is none, so malformed input never stops a block.

func parseInt(tok string) int {
	tok = strings.TrimSpace(tok)
	end := 0
	if end < len(tok) && (tok[end] == '+' || tok[end] == '-') {
		end++
	}
	digits := end
	for end < len(tok) && tok[end] >= '0' && tok[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	v, err := strconv.Atoi(tok[:end])
	if err != nil {
		return 0
	}
	return v
}

func parseFloat(tok string) float64 {
	tok = strings.TrimSpace(tok)
	if v, err := strconv.ParseFloat(tok, 64); err == nil {
		return v
	}
	n := floatPrefix(tok)
	if n == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(tok[:n], 64)
	if err != nil {
		return 0
	}
	return v
}

// floatPrefix returns the length of the leading [+-]digits[.digits][e[+-]digits] run.
func floatPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	mant := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		mant++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			mant++
		}
	}
	if mant == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		exp := j
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j > exp {
			i = j
		}
	}
	return i
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// fields splits a line on whitespace. A double-quoted run is one token and
// keeps its quotes, so names like "Bip01 Pelvis" survive.
func fields(line string) []string {
	var out []string
	i := 0
	for i < len(line) {
		for i < len(line) && isSpace(line[i]) {
			i++
		}
		if i >= len(line) {
			break
		}
		start := i
		quoted := false
		for i < len(line) {
			c := line[i]
			if c == '"' {
				quoted = !quoted
			} else if isSpace(c) && !quoted {
				break
			}
			i++
		}
		out = append(out, line[start:i])
	}
	return out
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == '\v' || b == '\f'
}

func unquote(tok string) string {
	tok = strings.TrimPrefix(tok, `"`)
	return strings.TrimSuffix(tok, `"`)
}

// arg returns args[i] or "" when the line is too short.
func arg(args []string, i int) string {
	if i < 0 || i >= len(args) {
		return ""
	}
	return args[i]
}
