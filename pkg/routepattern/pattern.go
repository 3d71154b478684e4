package routepattern

import (
	"fmt"
	"regexp"
	"strings"
)

// captureExpr matches one non-empty path segment.
const captureExpr = `([^/]+)`

var (
	// tokenRe finds every {...} token in a definition, left to right.
	tokenRe = regexp.MustCompile(`\{([^}]*)\}`)

	// paramSegmentRe recognizes a segment that is a single placeholder.
	paramSegmentRe = regexp.MustCompile(`^\{(.*?)\}$`)

	// nameRe is the accepted parameter identifier grammar.
	nameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Segment is one "/"-separated piece of a definition.
type Segment struct {
	Literal string
	Param   string
	IsParam bool
}

// Pattern is an immutable compiled route definition.
type Pattern struct {
	matcher    *regexp.Regexp
	definition string
	segments   []Segment
	params     []string
}

// Compile turns a route definition into a Pattern.
// A single leading slash is discarded before splitting on "/".
func Compile(definition string) *Pattern {
	p := &Pattern{definition: definition}

	trimmed := strings.TrimPrefix(definition, "/")
	parts := []string{}
	if trimmed != "" {
		parts = strings.Split(trimmed, "/")
	}

	exprs := make([]string, 0, len(parts))
	for _, part := range parts {
		if m := paramSegmentRe.FindStringSubmatch(part); m != nil {
			p.segments = append(p.segments, Segment{Param: m[1], IsParam: true})
			exprs = append(exprs, captureExpr)
			continue
		}
		p.segments = append(p.segments, Segment{Literal: part})
		exprs = append(exprs, regexp.QuoteMeta(part))
	}

	for _, m := range tokenRe.FindAllStringSubmatch(definition, -1) {
		p.params = append(p.params, m[1])
	}

	expr := `^/?$`
	if len(exprs) > 0 {
		expr = `^/?` + strings.Join(exprs, "/") + `/?$`
	}
	// Every piece is either escaped or the fixed capture, so the expression is always valid.
	p.matcher = regexp.MustCompile(expr)

	return p
}

// Definition returns the source text the pattern was compiled from.
func (p *Pattern) Definition() string {
	return p.definition
}

// Segments returns a copy of the parsed segments.
func (p *Pattern) Segments() []Segment {
	out := make([]Segment, len(p.segments))
	copy(out, p.segments)
	return out
}

// Params returns parameter names in the order they appear in the definition.
func (p *Pattern) Params() []string {
	out := make([]string, len(p.params))
	copy(out, p.params)
	return out
}

// Expr returns the matcher source.
func (p *Pattern) Expr() string {
	return p.matcher.String()
}

// Equal reports whether both patterns accept exactly the same paths,
// judged by matcher equality rather than definition text.
func (p *Pattern) Equal(other *Pattern) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.Expr() == other.Expr()
}

// Match reports whether path is accepted and returns the raw captures in
// definition order.
func (p *Pattern) Match(path string) ([]string, bool) {
	m := p.matcher.FindStringSubmatch(path)
	if m == nil {
		return nil, false
	}
	return m[1:], true
}

// Captures zips the captures of path with the parameter names.
// Returns nil, false if path does not match.
func (p *Pattern) Captures(path string) (map[string]string, bool) {
	values, ok := p.Match(path)
	if !ok {
		return nil, false
	}
	out := make(map[string]string, len(values))
	for i, v := range values {
		if i < len(p.params) {
			out[p.params[i]] = v
		}
	}
	return out, true
}

// String implements fmt.Stringer.
func (p *Pattern) String() string {
	return p.definition
}

// Validate checks that every parameter name is a valid identifier, that no
// name repeats and that no placeholder is embedded inside a literal segment.
func Validate(p *Pattern) error {
	paramSegments := 0
	for _, s := range p.segments {
		if !s.IsParam {
			continue
		}
		// A stray brace such as {a}} leaves the token scan and the segment disagreeing.
		if !nameRe.MatchString(s.Param) {
			return fmt.Errorf("%w: %q in %q", ErrInvalidParameterName, s.Param, p.definition)
		}
		paramSegments++
	}

	seen := make(map[string]struct{}, len(p.params))
	for _, name := range p.params {
		if !nameRe.MatchString(name) {
			return fmt.Errorf("%w: %q in %q", ErrInvalidParameterName, name, p.definition)
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: %q in %q", ErrDuplicateParameterName, name, p.definition)
		}
		seen[name] = struct{}{}
	}

	if paramSegments != len(p.params) {
		return fmt.Errorf("%w: placeholder must span a whole segment in %q", ErrInvalidParameterName, p.definition)
	}

	return nil
}
