package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ParseExample parses the textual example field submitted by the admin form.
// The result must be a mapping; anything else is rejected.
func ParseExample(s string) (map[string]interface{}, error) {
	value, err := ParseLiteral(s)
	if err != nil {
		return nil, err
	}
	m, ok := value.(map[string]interface{})
	if !ok {
		return nil, errors.New("literal is not a mapping")
	}
	return m, nil
}

// ParseLiteral parses a restricted data literal: strings (single or double
// quoted), numbers, booleans, null/None, and nested mappings and lists.
// It is a plain recursive-descent parser over those shapes — there is no
// expression grammar, so nothing the admin types can ever be evaluated.
func ParseLiteral(s string) (interface{}, error) {
	p := &literalParser{input: s}
	p.skipSpace()
	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, fmt.Errorf("unexpected trailing input at offset %d", p.pos)
	}
	return value, nil
}

type literalParser struct {
	input string
	pos   int
}

func (p *literalParser) parseValue() (interface{}, error) {
	if p.pos >= len(p.input) {
		return nil, errors.New("unexpected end of input")
	}

	switch c := p.input[p.pos]; {
	case c == '{':
		return p.parseMap()
	case c == '[':
		return p.parseList()
	case c == '\'' || c == '"':
		return p.parseString()
	case c == '-' || c == '+' || unicode.IsDigit(rune(c)):
		return p.parseNumber()
	default:
		return p.parseKeyword()
	}
}

func (p *literalParser) parseMap() (interface{}, error) {
	p.pos++ // consume '{'
	result := make(map[string]interface{})

	p.skipSpace()
	if p.peek() == '}' {
		p.pos++
		return result, nil
	}

	for {
		p.skipSpace()
		if c := p.peek(); c != '\'' && c != '"' {
			return nil, fmt.Errorf("expected string key at offset %d", p.pos)
		}
		key, err := p.parseString()
		if err != nil {
			return nil, err
		}

		p.skipSpace()
		if p.peek() != ':' {
			return nil, fmt.Errorf("expected ':' at offset %d", p.pos)
		}
		p.pos++

		p.skipSpace()
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		result[key.(string)] = value

		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case '}':
			p.pos++
			return result, nil
		default:
			return nil, fmt.Errorf("expected ',' or '}' at offset %d", p.pos)
		}
	}
}

func (p *literalParser) parseList() (interface{}, error) {
	p.pos++ // consume '['
	result := []interface{}{}

	p.skipSpace()
	if p.peek() == ']' {
		p.pos++
		return result, nil
	}

	for {
		p.skipSpace()
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		result = append(result, value)

		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case ']':
			p.pos++
			return result, nil
		default:
			return nil, fmt.Errorf("expected ',' or ']' at offset %d", p.pos)
		}
	}
}

func (p *literalParser) parseString() (interface{}, error) {
	quote := p.input[p.pos]
	p.pos++

	var sb strings.Builder
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		switch c {
		case quote:
			p.pos++
			return sb.String(), nil
		case '\\':
			p.pos++
			if p.pos >= len(p.input) {
				return nil, errors.New("unterminated escape sequence")
			}
			switch esc := p.input[p.pos]; esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '\\', '\'', '"':
				sb.WriteByte(esc)
			default:
				return nil, fmt.Errorf("unsupported escape '\\%c'", esc)
			}
			p.pos++
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
	return nil, errors.New("unterminated string literal")
}

func (p *literalParser) parseNumber() (interface{}, error) {
	start := p.pos
	if c := p.peek(); c == '-' || c == '+' {
		p.pos++
	}
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if unicode.IsDigit(rune(c)) || c == '.' || c == 'e' || c == 'E' {
			p.pos++
			continue
		}
		if (c == '-' || c == '+') && (p.input[p.pos-1] == 'e' || p.input[p.pos-1] == 'E') {
			p.pos++
			continue
		}
		break
	}

	text := p.input[start:p.pos]
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", text)
	}
	return f, nil
}

func (p *literalParser) parseKeyword() (interface{}, error) {
	start := p.pos
	for p.pos < len(p.input) && unicode.IsLetter(rune(p.input[p.pos])) {
		p.pos++
	}

	// Accept both JSON and Python spellings; the admin form historically
	// carried Python-style literals.
	switch p.input[start:p.pos] {
	case "true", "True":
		return true, nil
	case "false", "False":
		return false, nil
	case "null", "None":
		return nil, nil
	default:
		return nil, fmt.Errorf("unexpected token at offset %d", start)
	}
}

func (p *literalParser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *literalParser) skipSpace() {
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}
