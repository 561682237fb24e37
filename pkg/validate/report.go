package validate

import (
	"cmp"
	"slices"
	"strings"

	"github.com/darianrosebrook/portfolio-sub007/pkg/errors"
)

// Severity separates blocking problems from advice.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one finding.
type Issue struct {
	Code     errors.Code `json:"code"`
	Rule     string      `json:"rule"`
	Path     string      `json:"path"`
	Message  string      `json:"message"`
	Details  string      `json:"details,omitempty"`
	Severity Severity    `json:"severity"`
	Cycle    []string    `json:"cycle,omitempty"`
}

// Line renders the issue as "- [code] path: message".
func (i Issue) Line() string {
	var b strings.Builder
	b.WriteString("- [")
	b.WriteString(string(i.Code))
	b.WriteString("] ")
	if i.Path != "" {
		b.WriteString(i.Path)
	} else {
		b.WriteString("(root)")
	}
	b.WriteString(": ")
	b.WriteString(i.Message)
	return b.String()
}

// Report is the outcome of a validation run. Both lists are sorted by path,
// then code.
type Report struct {
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
	// Truncated is set when the issue limit was reached.
	Truncated bool `json:"truncated,omitempty"`
}

// OK reports whether no errors were found. Warnings do not count.
func (r *Report) OK() bool { return len(r.Errors) == 0 }

// Clean reports whether nothing at all was found.
func (r *Report) Clean() bool { return len(r.Errors) == 0 && len(r.Warnings) == 0 }

// Len returns the total number of issues.
func (r *Report) Len() int { return len(r.Errors) + len(r.Warnings) }

// Issues returns errors followed by warnings.
func (r *Report) Issues() []Issue {
	return append(slices.Clone(r.Errors), r.Warnings...)
}

// Merge appends the issues of other, keeping the order invariant.
func (r *Report) Merge(other *Report) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Truncated = r.Truncated || other.Truncated
	r.sort()
}

// HasCode reports whether any issue carries code.
func (r *Report) HasCode(code errors.Code) bool {
	for _, i := range r.Issues() {
		if i.Code == code {
			return true
		}
	}
	return false
}

func (r *Report) sort() {
	byPathCode := func(a, b Issue) int {
		return cmp.Or(
			cmp.Compare(a.Path, b.Path),
			cmp.Compare(a.Code, b.Code),
			cmp.Compare(a.Rule, b.Rule),
			cmp.Compare(a.Message, b.Message),
		)
	}
	slices.SortStableFunc(r.Errors, byPathCode)
	slices.SortStableFunc(r.Warnings, byPathCode)
}

// collector accumulates issues up to a limit.
type collector struct {
	report Report
	max    int
}

func (c *collector) add(i Issue) {
	if c.max > 0 && c.report.Len() >= c.max {
		c.report.Truncated = true
		return
	}
	if i.Severity == SeverityWarning {
		c.report.Warnings = append(c.report.Warnings, i)
		return
	}
	i.Severity = SeverityError
	c.report.Errors = append(c.report.Errors, i)
}

func (c *collector) fail(code errors.Code, rule, path, msg, details string) {
	c.add(Issue{Code: code, Rule: rule, Path: path, Message: msg, Details: details, Severity: SeverityError})
}

func (c *collector) warn(code errors.Code, rule, path, msg, details string) {
	c.add(Issue{Code: code, Rule: rule, Path: path, Message: msg, Details: details, Severity: SeverityWarning})
}
