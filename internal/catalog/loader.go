package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"tripcheck/internal/letter"
	dErrors "tripcheck/pkg/domain-errors"
	pstrings "tripcheck/pkg/platform/strings"
)

// Format is the serialisation of a raw catalog document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ValidationError lists every problem found in a catalog document. It is
// fatal at startup.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "catalog invalid: " + e.Problems[0]
	}
	return fmt.Sprintf("catalog invalid: %d problems: %s", len(e.Problems), strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error {
	return dErrors.New(dErrors.CodeCatalogInvalid, "catalog failed validation")
}

// Load parses, validates and indexes a raw catalog document.
func Load(data []byte, format Format) (*Catalog, error) {
	jsonBytes, err := toJSON(data, format)
	if err != nil {
		return nil, &ValidationError{Problems: []string{err.Error()}}
	}

	var generic any
	if err := json.Unmarshal(jsonBytes, &generic); err != nil {
		return nil, &ValidationError{Problems: []string{"malformed JSON: " + err.Error()}}
	}
	problems, err := schemaProblems(generic)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "catalog schema unavailable")
	}
	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	var doc Document
	dec := json.NewDecoder(bytes.NewReader(jsonBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, &ValidationError{Problems: []string{"decode: " + err.Error()}}
	}

	normalize(&doc)
	if problems := checkDocument(doc); len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}
	return newCatalog(doc), nil
}

func toJSON(data []byte, format Format) ([]byte, error) {
	if format != FormatYAML {
		return data, nil
	}
	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("malformed YAML: %w", err)
	}
	out, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("YAML is not representable as JSON: %w", err)
	}
	return out, nil
}

func normalize(doc *Document) {
	for i := range doc.Rules {
		r := &doc.Rules[i]
		r.ID = strings.TrimSpace(r.ID)
		r.CountryName = strings.TrimSpace(r.CountryName)
		r.Citizenships = pstrings.DedupeAndTrimUpper(r.Citizenships)

		purposes := make([]string, len(r.Purposes))
		for j, p := range r.Purposes {
			purposes[j] = string(p)
		}
		purposes = pstrings.DedupeAndTrimLower(purposes)
		r.Purposes = make([]Purpose, len(purposes))
		for j, p := range purposes {
			r.Purposes[j] = Purpose(p)
		}
	}
}

// checkDocument runs the cross-field checks the schema cannot express.
func checkDocument(doc Document) []string {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if _, err := semver.NewVersion(doc.Version); err != nil {
		add("version %q is not a semantic version", doc.Version)
	}

	seen := make(map[string]int, len(doc.Rules))
	for i, r := range doc.Rules {
		at := fmt.Sprintf("rules[%d] (%s)", i, r.ID)
		if prev, dup := seen[r.ID]; dup {
			add("%s: duplicate rule id, first defined at rules[%d]", at, prev)
		} else {
			seen[r.ID] = i
		}
		if !IsCountryCode(r.CountryCode) {
			add("%s: countryCode %q is not an ISO 3166-1 alpha-2 country", at, r.CountryCode)
		}
		if len(r.Purposes) == 0 {
			add("%s: purposes must not be empty", at)
		}
		for _, p := range r.Purposes {
			if !p.IsValid() {
				add("%s: unknown purpose %q", at, p)
			}
		}
		for _, c := range r.Citizenships {
			if !IsCountryCode(c) {
				add("%s: citizenship %q is not an ISO 3166-1 alpha-2 country", at, c)
			}
		}

		reqIDs := make(map[string]bool, len(r.Requirements))
		for j, req := range r.Requirements {
			if reqIDs[req.ID] {
				add("%s: requirements[%d]: duplicate requirement id %q", at, j, req.ID)
			}
			reqIDs[req.ID] = true
			if !req.Type.IsValid() {
				add("%s: requirements[%d]: unknown type %q", at, j, req.Type)
			}
			if !req.Severity.IsValid() {
				add("%s: requirements[%d]: unknown severity %q", at, j, req.Severity)
			}
			if req.Fee != nil && req.Fee.Amount.IsNegative() {
				add("%s: requirements[%d]: fee amount must not be negative", at, j)
			}
			for _, a := range req.Actions {
				if !isHTTPURL(a.URL) {
					add("%s: requirements[%d]: action %q has invalid url %q", at, j, a.Label, a.URL)
				}
			}
		}

		out := r.Output
		if !out.EntryType.IsValid() {
			add("%s: unknown entryType %q", at, out.EntryType)
		}
		if out.MaxStayDays < 0 {
			add("%s: maxStayDays must not be negative", at)
		}
		if out.LetterTemplate != "" && !letter.IsAllowed(letter.TemplateID(out.LetterTemplate)) {
			add("%s: letterTemplate %q is not an available template", at, out.LetterTemplate)
		}
		if out.Fee != nil && out.Fee.Amount.IsNegative() {
			add("%s: fee amount must not be negative", at)
		}
		for _, s := range out.Sources {
			if !isHTTPURL(s.URL) {
				add("%s: source %q has invalid url %q", at, s.Title, s.URL)
			}
		}
	}
	return problems
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "https" || u.Scheme == "http") && u.Host != ""
}
