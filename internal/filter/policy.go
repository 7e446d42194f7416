// Package filter decides whether a filesystem entry is part of the snapshot.
//
// The decision is a fixed cascade evaluated in order, first match wins:
// the artifact being written, hidden directories, names containing "cache",
// files with long digit runs, ignore-file patterns, and finally the
// extension allow-list. The cascade is not configurable.
package filter

import (
	"regexp"
	"strings"

	"github.com/gobwas/glob"
	"go.uber.org/zap"

	"github.com/temirov/codedump/internal/config"
	"github.com/temirov/codedump/internal/types"
	"github.com/temirov/codedump/internal/utils"
)

const (
	hiddenPrefix      = "."
	cacheMarker       = "cache"
	patternSeparator  = "/"
	directoryWildcard = "/*"

	warningPatternCompileMessage = "ignoring unusable pattern"
)

var digitRunExpression = regexp.MustCompile(`\p{Nd}{5,}`)

// Policy evaluates the exclusion cascade for one run. It is immutable after
// construction and safe to query from any walk.
type Policy struct {
	config            types.FilterConfig
	allowedExtensions map[string]struct{}
	rules             []patternRule
}

// patternRule holds the compiled forms of one normalized ignore pattern.
type patternRule struct {
	raw         string
	anchored    glob.Glob
	relative    glob.Glob
	directories glob.Glob
}

// NewPolicy compiles patterns against filterConfig.RootDirectory. Patterns that
// cannot be compiled are reported through logger and never match.
func NewPolicy(filterConfig types.FilterConfig, patterns config.PatternSet, logger *zap.Logger) *Policy {
	logger = utils.LoggerOrNop(logger)

	allowed := make(map[string]struct{}, len(filterConfig.AllowedExtensions))
	for _, extension := range filterConfig.AllowedExtensions {
		allowed[extension] = struct{}{}
	}

	policy := &Policy{config: filterConfig, allowedExtensions: allowed}
	for _, rawPattern := range patterns.Patterns() {
		rule, compileError := compileRule(filterConfig.RootDirectory, rawPattern)
		if compileError != nil {
			logger.Warn(warningPatternCompileMessage, zap.String("pattern", rawPattern), zap.Error(compileError))
			continue
		}
		policy.rules = append(policy.rules, rule)
	}
	return policy
}

// Decide returns the verdict for entry. It performs no I/O.
func (policy *Policy) Decide(entry types.EntryDescriptor) types.Verdict {
	if policy.isExcluded(entry) {
		return types.VerdictExclude
	}
	return types.VerdictInclude
}

// Excludes is shorthand for Decide(entry) == VerdictExclude.
func (policy *Policy) Excludes(entry types.EntryDescriptor) bool {
	return policy.Decide(entry) == types.VerdictExclude
}

func (policy *Policy) isExcluded(entry types.EntryDescriptor) bool {
	if entry.AbsolutePath == policy.config.OutputArtifactPath {
		return true
	}
	if entry.IsDirectory && strings.HasPrefix(entry.Name, hiddenPrefix) {
		return true
	}
	if strings.Contains(strings.ToLower(entry.Name), cacheMarker) {
		return true
	}
	if !entry.IsDirectory && digitRunExpression.MatchString(entry.Name) {
		return true
	}
	if policy.matchesAnyPattern(entry) {
		return true
	}
	if !entry.IsDirectory && len(policy.allowedExtensions) > 0 {
		if _, allowed := policy.allowedExtensions[entry.Extension]; !allowed {
			return true
		}
	}
	return false
}

func (policy *Policy) matchesAnyPattern(entry types.EntryDescriptor) bool {
	if len(policy.rules) == 0 {
		return false
	}
	segments := strings.Split(entry.RelativePath, pathSeparator)
	for _, rule := range policy.rules {
		if rule.anchored.Match(entry.AbsolutePath) || rule.relative.Match(entry.RelativePath) {
			return true
		}
		if entry.IsDirectory && rule.directories.Match(entry.AbsolutePath) {
			return true
		}
		for _, segment := range segments {
			if rule.relative.Match(segment) {
				return true
			}
		}
	}
	return false
}

// NormalizePattern strips a single leading and a single trailing slash.
func NormalizePattern(rawPattern string) string {
	normalized := strings.TrimPrefix(rawPattern, patternSeparator)
	return strings.TrimSuffix(normalized, patternSeparator)
}

func compileRule(rootDirectory, rawPattern string) (patternRule, error) {
	normalized := NormalizePattern(rawPattern)
	anchored, err := compileFnmatch(joinPattern(rootDirectory, normalized))
	if err != nil {
		return patternRule{}, err
	}
	relative, err := compileFnmatch(normalized)
	if err != nil {
		return patternRule{}, err
	}
	directories, err := compileFnmatch(joinPattern(rootDirectory, normalized+directoryWildcard))
	if err != nil {
		return patternRule{}, err
	}
	return patternRule{raw: rawPattern, anchored: anchored, relative: relative, directories: directories}, nil
}
