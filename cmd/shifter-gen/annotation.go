package main

import (
	"regexp"
	"strings"

	"github.com/a-peyrard/shifter/set"
	"github.com/rs/zerolog"
)

const (
	constructorAnnotationTag = "@constructor"
	injectAnnotationTag      = "@inject"
	propertyAnnotationTag    = "@property"
)

var (
	propertiesRegexp = regexp.MustCompile(`(\w+)=(?:"([^"]*)"|(\w+))`)
	flagsRegexp      = regexp.MustCompile(`^\w+$`)
	knownProperties  = set.NewWithValues("visibility")
	knownFlags       = set.NewWithValues("inject")
)

// Annotation is a parsed `@tag flag key=value` doc line.
type Annotation struct {
	Tag        string
	flags      set.Set[string]
	properties map[string]string
}

// Inject reports whether the member is marked for injection, @inject and @property always are.
func (a Annotation) Inject() bool {
	return a.Tag != constructorAnnotationTag || a.flags.Contains("inject")
}

// Visibility returns the forced visibility, "private" or "public", empty when not forced.
func (a Annotation) Visibility() string {
	return a.properties["visibility"]
}

// UnknownKeys lists the flags and properties the generator does not understand.
func (a Annotation) UnknownKeys() []string {
	var unknown []string
	for flag := range a.flags {
		if !knownFlags.Contains(flag) {
			unknown = append(unknown, flag)
		}
	}
	for key := range a.properties {
		if !knownProperties.Contains(key) {
			unknown = append(unknown, key)
		}
	}
	return unknown
}

// findAnnotation looks for the first of the tags in a doc comment.
func findAnnotation(logger *zerolog.Logger, docText string, tags ...string) (Annotation, bool) {
	for _, line := range strings.Split(docText, "\n") {
		line = strings.TrimSpace(line)
		for _, tag := range tags {
			if line != tag && !strings.HasPrefix(line, tag+" ") {
				continue
			}
			annotation := parseAnnotation(line, tag)
			if visibility := annotation.Visibility(); visibility != "" && visibility != "private" && visibility != "public" {
				logger.Warn().Msgf("Unknown visibility %s, expected private or public, ignoring it", visibility)
				delete(annotation.properties, "visibility")
			}
			for _, key := range annotation.UnknownKeys() {
				logger.Warn().Msgf("Unknown annotation key %s in %s, ignoring it", key, line)
			}
			return annotation, true
		}
	}
	return Annotation{}, false
}

func parseAnnotation(line string, tag string) Annotation {
	content := strings.TrimSpace(strings.TrimPrefix(line, tag))
	return Annotation{
		Tag:        tag,
		flags:      parseFlags(content),
		properties: parseProperties(content),
	}
}

// parseProperties reads key=value or key="value" pairs.
func parseProperties(content string) map[string]string {
	properties := make(map[string]string)
	for _, match := range propertiesRegexp.FindAllStringSubmatch(content, -1) {
		key := match[1]
		// match[2] is quoted value, match[3] is unquoted value
		value := match[2]
		if value == "" {
			value = match[3]
		}
		properties[key] = value
	}
	return properties
}

// parseFlags reads the bare words, once the properties are removed.
func parseFlags(content string) set.Set[string] {
	flags := set.New[string]()
	withoutProperties := propertiesRegexp.ReplaceAllString(content, " ")
	for _, word := range strings.Fields(withoutProperties) {
		if flagsRegexp.MatchString(word) {
			flags.Add(word)
		}
	}
	return flags
}
