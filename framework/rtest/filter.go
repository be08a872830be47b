package rtest

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/openrepo/repo-test-harness/framework"
	"github.com/openrepo/repo-test-harness/framework/helpers"
)

// Filter decides whether to run a specific test or not.
type Filter interface {
	Match(id TestID) bool
}

// FilterFunc adapts a plain function to the Filter interface.
type FilterFunc func(TestID) bool

func (f FilterFunc) Match(id TestID) bool { return f(id) }

// SelfDescribingFilter is a Filter that can print an explanation of its criteria.
type SelfDescribingFilter interface {
	Filter
	Describe(w io.Writer, supportedCapabilities framework.Capabilities, importantCapabilities framework.Capabilities)
}

// RegexFilters is a Filter based on regex patterns from the -run and -skip command-line
// options.
type RegexFilters struct {
	MustMatch    TestIDPatternList
	MustNotMatch TestIDPatternList
}

func (r RegexFilters) Match(id TestID) bool {
	return (!r.MustMatch.IsDefined() || r.MustMatch.AnyMatch(id, true)) &&
		!r.MustNotMatch.AnyMatch(id, false)
}

func (r RegexFilters) Describe(
	w io.Writer,
	supportedCapabilities framework.Capabilities,
	importantCapabilities framework.Capabilities,
) {
	if r.MustMatch.IsDefined() || r.MustNotMatch.IsDefined() {
		helpers.MustFprintln(w, "Some tests will be skipped based on the filter criteria for this test run:")
		if r.MustMatch.IsDefined() {
			helpers.MustFprintf(w, "  skip any not matching %s\n", r.MustMatch)
		}
		if r.MustNotMatch.IsDefined() {
			helpers.MustFprintf(w, "  skip any matching %s\n", r.MustNotMatch)
		}
		helpers.MustFprintln(w)
	}

	if len(importantCapabilities) != 0 {
		var missingCapabilities []string
		for _, c := range importantCapabilities {
			if !supportedCapabilities.Has(c) {
				missingCapabilities = append(missingCapabilities, c)
			}
		}
		if len(missingCapabilities) > 0 {
			helpers.MustFprintln(w, "Some tests may be skipped because the repository service does not support the following capabilities:")
			helpers.MustFprintf(w, "  %s\n", strings.Join(missingCapabilities, ", "))
			helpers.MustFprintln(w)
		}
	}
}

// TestIDPattern is a list of regexes, one per test path component.
type TestIDPattern []*regexp.Regexp

func (p TestIDPattern) Match(id TestID, includeParents bool) bool {
	min := len(p)
	if min > len(id) {
		if !includeParents {
			return false
		}
		min = len(id)
	}
	for i := 0; i < min; i++ {
		if !p[i].MatchString(id[i]) {
			return false
		}
	}
	return true
}

func (p TestIDPattern) String() string {
	ss := make([]string, 0, len(p))
	for _, c := range p {
		ss = append(ss, c.String())
	}
	return strings.Join(ss, "/")
}

// ParseTestIDPattern compiles a slash-delimited list of regexes into a TestIDPattern.
func ParseTestIDPattern(s string) (TestIDPattern, error) {
	parts := strings.Split(s, "/")
	ret := make(TestIDPattern, 0, len(parts))
	for _, part := range parts {
		rx, err := regexp.Compile(part)
		if err != nil {
			return nil, fmt.Errorf("invalid regex: %w", err)
		}
		ret = append(ret, rx)
	}
	return ret, nil
}

// TestIDPatternList is a list of patterns of which any one may match.
type TestIDPatternList []TestIDPattern

func (l TestIDPatternList) String() string {
	ss := make([]string, 0, len(l))
	for _, p := range l {
		ss = append(ss, `"`+p.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser.
func (l *TestIDPatternList) Set(value string) error {
	p, err := ParseTestIDPattern(value)
	if err != nil {
		return err
	}
	*l = append(*l, p)
	return nil
}

func (l TestIDPatternList) IsDefined() bool {
	return len(l) != 0
}

func (l TestIDPatternList) AnyMatch(id TestID, includeParents bool) bool {
	for _, p := range l {
		if p.Match(id, includeParents) {
			return true
		}
	}
	return false
}
