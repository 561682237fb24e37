// Package validate checks token documents against structural and semantic
// rules.
//
// Validation never stops at the first problem: every issue is collected
// into a [Report]. Structural problems (missing values, broken or circular
// references, interpolation, values that contradict their type) are errors;
// stylistic ones (missing types, naming, unrecognized formats) are
// warnings.
package validate

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/darianrosebrook/portfolio-sub007/pkg/color"
	"github.com/darianrosebrook/portfolio-sub007/pkg/dag"
	"github.com/darianrosebrook/portfolio-sub007/pkg/errors"
	"github.com/darianrosebrook/portfolio-sub007/pkg/index"
	"github.com/darianrosebrook/portfolio-sub007/pkg/resolve"
	"github.com/darianrosebrook/portfolio-sub007/pkg/token"
)

// DefaultExtensionsDepth bounds how deep "$extensions" objects are scanned.
const DefaultExtensionsDepth = 32

type options struct {
	strictUnits     bool
	maxIssues       int
	extensionsDepth int
}

// Option configures validation.
type Option func(*options)

// WithStrictUnits only accepts px and rem dimensions.
func WithStrictUnits() Option {
	return func(o *options) { o.strictUnits = true }
}

// WithMaxIssues stops collecting after n issues and marks the report
// truncated. Zero means no limit.
func WithMaxIssues(n int) Option {
	return func(o *options) { o.maxIssues = n }
}

// WithExtensionsDepth overrides [DefaultExtensionsDepth].
func WithExtensionsDepth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.extensionsDepth = n
		}
	}
}

// Validate indexes doc and checks it.
func Validate(doc map[string]any, opts ...Option) *Report {
	ix := index.Build(doc)
	return Index(ix, resolve.New(ix), opts...)
}

// Index checks an already indexed document. r must resolve ix; passing the
// resolver lets callers share its memo.
func Index(ix *index.Index, r *resolve.Resolver, opts ...Option) *Report {
	o := options{extensionsDepth: DefaultExtensionsDepth}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	v := &validator{ix: ix, r: r, opts: o, c: &collector{max: o.maxIssues}}

	for _, m := range ix.Malformed() {
		v.c.fail(errors.CodeSchemaViolation, "node.notObject", m.Path,
			"node must be an object", fmt.Sprintf("got %s", describe(m.Value)))
	}
	for _, n := range ix.Nodes() {
		v.checkNode(n)
	}
	v.checkCycles()
	for _, n := range ix.Tokens() {
		v.checkToken(n)
	}

	v.c.report.sort()
	return &v.c.report
}

type validator struct {
	ix   *index.Index
	r    *resolve.Resolver
	opts options
	c    *collector
}

var segmentPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// checkNode covers rules shared by groups and tokens.
func (v *validator) checkNode(n *index.Node) {
	for _, k := range slices.Sorted(maps.Keys(n.Raw)) {
		if token.IsReserved(k) && !token.KnownProperty(k) {
			v.c.warn(errors.CodeUnknownProperty, "property.unknown", n.Path,
				fmt.Sprintf("unknown property %q", k), "")
		}
	}

	if raw, ok := n.Raw[token.KeyType]; ok {
		if s, isString := raw.(string); !isString {
			v.c.fail(errors.CodeSchemaViolation, "type.notString", n.Path,
				"$type must be a string", fmt.Sprintf("got %s", describe(raw)))
		} else if !token.Type(s).Known() {
			v.c.warn(errors.CodeUnknownProperty, "type.unknown", n.Path,
				fmt.Sprintf("unknown type %q", s), "")
		}
	}
	if raw, ok := n.Raw[token.KeyDescription]; ok {
		if _, isString := raw.(string); !isString {
			v.c.fail(errors.CodeSchemaViolation, "description.notString", n.Path,
				"$description must be a string", "")
		}
	}
	if raw, ok := n.Raw[token.KeyDeprecated]; ok {
		switch raw.(type) {
		case bool, string:
		default:
			v.c.fail(errors.CodeSchemaViolation, "deprecated.type", n.Path,
				"$deprecated must be a boolean or a string", "")
		}
	}
	if raw, ok := n.Raw[token.KeyExtensions]; ok {
		if ext, isObject := raw.(map[string]any); !isObject {
			v.c.fail(errors.CodeSchemaViolation, "extensions.notObject", n.Path,
				"$extensions must be an object", fmt.Sprintf("got %s", describe(raw)))
		} else {
			v.checkExtensions(n.Path, ext, 1)
		}
	}

	seg := n.Path[strings.LastIndexByte(n.Path, '.')+1:]
	switch {
	case !norm.NFC.IsNormalString(seg):
		v.c.warn(errors.CodeNamingConvention, "naming.unicode", n.Path,
			fmt.Sprintf("segment %q is not NFC-normalized", seg), "normalized: "+norm.NFC.String(seg))
	case !segmentPattern.MatchString(seg):
		v.c.warn(errors.CodeNamingConvention, "naming.segment", n.Path,
			fmt.Sprintf("segment %q should only use letters, digits, '-' and '_'", seg), "")
	}
}

// checkExtensions applies the reference rules to "$extensions" values,
// recursing into nested objects and arrays up to the configured depth.
func (v *validator) checkExtensions(path string, ext map[string]any, depth int) {
	if depth > v.opts.extensionsDepth {
		v.c.warn(errors.CodeSchemaViolation, "extensions.depth", path,
			fmt.Sprintf("$extensions nested deeper than %d levels were not scanned", v.opts.extensionsDepth), "")
		return
	}
	for _, k := range slices.Sorted(maps.Keys(ext)) {
		v.checkExtensionValue(path, ext[k], depth)
	}
}

func (v *validator) checkExtensionValue(path string, val any, depth int) {
	switch x := val.(type) {
	case string:
		if ref, ok := token.ParseReference(x); ok {
			v.checkTarget(path, ref, "extensions.reference")
		} else if token.HasInterpolation(x) {
			v.c.fail(errors.CodeInterpolationNotAllowed, "extensions.interpolation", path,
				"interpolation is not allowed in $extensions", fmt.Sprintf("value: %q", x))
		}
	case map[string]any:
		v.checkExtensions(path, x, depth+1)
	case []any:
		for _, e := range x {
			v.checkExtensionValue(path, e, depth)
		}
	}
}

// checkTarget reports a reference from path to target that is missing or
// points at a group. It returns the target node when it is a token.
func (v *validator) checkTarget(path, target, rule string) (*index.Node, bool) {
	tn, ok := v.ix.Lookup(target)
	if !ok {
		v.c.fail(errors.CodeUnresolvedReference, rule+".unresolved", path,
			fmt.Sprintf("reference {%s} does not resolve", target), "referenced path: "+target)
		return nil, false
	}
	if !tn.IsToken() {
		v.c.fail(errors.CodeReferenceToNonToken, rule+".nonToken", path,
			fmt.Sprintf("reference {%s} points at a group", target), "referenced path: "+target)
		return nil, false
	}
	return tn, true
}

func (v *validator) checkCycles() {
	for _, cycle := range dag.FromIndex(v.ix).Cycles() {
		v.c.add(Issue{
			Code:     errors.CodeCircularReference,
			Rule:     "reference.circular",
			Path:     cycle[0],
			Message:  "circular reference: " + strings.Join(cycle, " -> "),
			Details:  fmt.Sprintf("cycle of %d tokens", len(cycle)-1),
			Severity: SeverityError,
			Cycle:    cycle,
		})
	}
}

func (v *validator) checkToken(n *index.Node) {
	if n.Value == nil {
		v.c.fail(errors.CodeSchemaViolation, "value.null", n.Path, "$value must not be null", "")
		return
	}
	for _, k := range slices.Sorted(maps.Keys(n.Raw)) {
		if !token.IsReserved(k) {
			v.c.fail(errors.CodeSchemaViolation, "token.hasChildren", n.Path,
				"a token must not contain other nodes", "child: "+token.Join(n.Path, k))
			break
		}
	}
	if n.Type == "" {
		v.c.warn(errors.CodeMissingType, "type.missing", n.Path,
			"token has no $type and inherits none", "")
	}

	for _, s := range token.Interpolations(n.Value) {
		v.c.fail(errors.CodeInterpolationNotAllowed, "value.interpolation", n.Path,
			"interpolation is not allowed; use a pure {path} reference", fmt.Sprintf("value: %q", s))
	}

	seen := make(map[string]bool)
	for _, ref := range token.References(n.Value) {
		if seen[ref] {
			continue
		}
		seen[ref] = true
		tn, ok := v.checkTarget(n.Path, ref, "reference")
		if !ok {
			continue
		}
		if token.IsReference(n.Value) && n.Type != "" && tn.Type != "" && n.Type != tn.Type {
			v.c.warn(errors.CodeTypeValueMismatch, "reference.typeMismatch", n.Path,
				fmt.Sprintf("%s token references %s token {%s}", n.Type, tn.Type, ref), "")
		}
	}

	res := v.r.Result(n.Path)
	if res.Err != nil {
		// Other failures were reported by the reference rules above.
		if res.Err.Code == errors.CodeSchemaViolation {
			v.c.fail(res.Err.Code, "reference.depth", n.Path, rootCause(res.Err).Message, "")
		}
		return
	}
	v.checkValue(n, res.Value)
}

// checkValue checks a resolved value against the token's canonical type.
func (v *validator) checkValue(n *index.Node, val any) {
	switch n.Type {
	case token.TypeNumber:
		if _, ok := token.Number(val); !ok {
			v.c.fail(errors.CodeTypeValueMismatch, "type.number.nonNumericValue", n.Path,
				"number token must hold a numeric value", fmt.Sprintf("got %s", describe(val)))
		}
	case token.TypeBoolean:
		if _, ok := val.(bool); !ok {
			v.c.fail(errors.CodeTypeValueMismatch, "type.boolean.nonBooleanValue", n.Path,
				"boolean token must hold true or false", fmt.Sprintf("got %s", describe(val)))
		}
	case token.TypeColor:
		if c, ok := val.(token.Color); ok {
			v.checkColor(n.Path, c)
			return
		}
		v.malformedComposite(n.Path, "color", val, "a CSS color or a {path} reference")
	case token.TypeDimension:
		if d, ok := val.(token.Dimension); ok {
			v.checkDimension(n.Path, "dimension", d)
			return
		}
		v.malformedComposite(n.Path, "dimension", val, "a number with a unit, such as 8px")
	case token.TypeShadow:
		switch s := val.(type) {
		case token.Shadow:
			v.checkShadow(n.Path, s)
		case []token.Shadow:
			for _, layer := range s {
				v.checkShadow(n.Path, layer)
			}
		default:
			v.malformedComposite(n.Path, "shadow", val, "a CSS box-shadow")
		}
	case token.TypeCubicBezier:
		if !isNumberList(val, 4) {
			v.c.fail(errors.CodeTypeValueMismatch, "type.cubicBezier.shape", n.Path,
				"cubicBezier must be an array of four numbers", fmt.Sprintf("got %s", describe(val)))
		}
	case token.TypeFontFamily:
		if !isStringOrStrings(val) {
			v.c.fail(errors.CodeTypeValueMismatch, "type.fontFamily.shape", n.Path,
				"fontFamily must be a string or an array of strings", fmt.Sprintf("got %s", describe(val)))
		}
	case token.TypeFontWeight:
		switch val.(type) {
		case string:
		default:
			if _, ok := token.Number(val); !ok {
				v.c.fail(errors.CodeTypeValueMismatch, "type.fontWeight.shape", n.Path,
					"fontWeight must be a number or a keyword", fmt.Sprintf("got %s", describe(val)))
			}
		}
	}
}

// malformedComposite reports a composite-typed value that coercion could
// not convert. Unparsable strings are a format warning; other shapes are
// errors.
func (v *validator) malformedComposite(path, kind string, val any, want string) {
	switch val.(type) {
	case string:
		v.c.warn(errors.CodeParseFailure, kind+".format", path,
			fmt.Sprintf("%s value should be %s", kind, want), fmt.Sprintf("got %q", val))
	case map[string]any, []any:
		v.c.fail(errors.CodeSchemaViolation, kind+".structure", path,
			fmt.Sprintf("structured %s value is malformed", kind), fmt.Sprintf("got %s", describe(val)))
	default:
		v.c.fail(errors.CodeTypeValueMismatch, kind+".type", path,
			fmt.Sprintf("%s token cannot hold %s", kind, describe(val)), "")
	}
}

func (v *validator) checkColor(path string, c token.Color) {
	if !color.KnownSpace(c.ColorSpace) {
		v.c.fail(errors.CodeSchemaViolation, "color.colorSpace", path,
			fmt.Sprintf("unknown color space %q", c.ColorSpace), "known: "+strings.Join(color.Spaces, ", "))
	}
	if c.ColorSpace == color.SpaceSRGB {
		for i, f := range c.Components {
			if f < 0 || f > 1 {
				v.c.fail(errors.CodeSchemaViolation, "color.components", path,
					fmt.Sprintf("srgb component %d is %g, outside [0,1]", i, f), "")
				break
			}
		}
	}
	if c.Alpha != nil && (*c.Alpha < 0 || *c.Alpha > 1) {
		v.c.fail(errors.CodeSchemaViolation, "color.alpha", path,
			fmt.Sprintf("alpha %g is outside [0,1]", *c.Alpha), "")
	}
}

func (v *validator) checkDimension(path, rule string, d token.Dimension) {
	units := token.LegacyUnits
	if v.opts.strictUnits {
		units = token.StrictUnits
	}
	if !slices.Contains(units, d.Unit) {
		v.c.fail(errors.CodeSchemaViolation, rule+".unit", path,
			fmt.Sprintf("unit %q is not allowed", d.Unit), "allowed: "+strings.Join(units, ", "))
	}
}

func (v *validator) checkShadow(path string, s token.Shadow) {
	v.checkDimension(path, "shadow.offsetX", s.OffsetX)
	v.checkDimension(path, "shadow.offsetY", s.OffsetY)
	v.checkDimension(path, "shadow.blur", s.Blur)
	if s.Spread != nil {
		v.checkDimension(path, "shadow.spread", *s.Spread)
	}
	v.checkColor(path, s.Color)
}

func isNumberList(v any, n int) bool {
	list, ok := v.([]any)
	if !ok || len(list) != n {
		return false
	}
	for _, e := range list {
		if _, ok := token.Number(e); !ok {
			return false
		}
	}
	return true
}

func isStringOrStrings(v any) bool {
	switch x := v.(type) {
	case string:
		return true
	case []any:
		if len(x) == 0 {
			return false
		}
		for _, e := range x {
			if _, ok := e.(string); !ok {
				return false
			}
		}
		return true
	}
	return false
}

func rootCause(err *errors.Error) *errors.Error {
	for {
		var next *errors.Error
		if !errors.As(err.Cause, &next) {
			return err
		}
		err = next
	}
}

// describe names the JSON kind of v for messages.
func describe(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("string %q", x)
	case bool:
		return fmt.Sprintf("boolean %t", x)
	case map[string]any:
		return "object"
	case []any:
		return "array"
	}
	if f, ok := token.Number(v); ok {
		return fmt.Sprintf("number %g", f)
	}
	return fmt.Sprintf("%T", v)
}
