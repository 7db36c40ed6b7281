package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nao1215/salesqueen/internal/model"
)

// Default file names offered for downloads.
const (
	ProjectFileName = "salesqueen_project.json"
	QuoteFileName   = "salesqueen_quote.json"
)

// Section selects the part of a project to export.
type Section string

const (
	SectionAll      Section = ""
	SectionProgress Section = "progress"
	SectionEstimate Section = "estimate"
	SectionQuote    Section = "quote"
	SectionDesign   Section = "design"
	SectionLead     Section = "lead"
	SectionFind     Section = "find"
)

// ErrUnknownSection is returned for a section name that is not part of a project.
var ErrUnknownSection = errors.New("unknown project section")

// ParseSection converts a user-supplied name. "all" and "" mean the whole project.
func ParseSection(s string) (Section, error) {
	switch Section(s) {
	case "all", SectionAll:
		return SectionAll, nil
	case SectionProgress, SectionEstimate, SectionQuote, SectionDesign, SectionLead, SectionFind:
		return Section(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSection, s)
	}
}

// DefaultFileName returns the suggested file name for section.
func DefaultFileName(section Section) string {
	if section == SectionEstimate {
		return QuoteFileName
	}
	if section == SectionAll {
		return ProjectFileName
	}
	return "salesqueen_" + string(section) + ".json"
}

// pick returns the value to serialize for section.
// A missing section is exported as an empty object.
func pick(doc model.Project, section Section) (any, error) {
	var v any
	switch section {
	case SectionAll:
		return doc, nil
	case SectionProgress:
		return doc.Progress, nil
	case SectionEstimate:
		if doc.Estimate != nil {
			v = doc.Estimate
		}
	case SectionQuote:
		if doc.Quote != nil {
			v = doc.Quote
		}
	case SectionDesign:
		if doc.Design != nil {
			v = doc.Design
		}
	case SectionLead:
		if doc.Lead != nil {
			v = doc.Lead
		}
	case SectionFind:
		if doc.Find != nil {
			v = doc.Find
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}
	if v == nil {
		return struct{}{}, nil
	}
	return v, nil
}

// JSON writes section of doc as two-space indented JSON.
// Block markup is written as is, without HTML escaping.
func JSON(w io.Writer, doc model.Project, section Section) error {
	v, err := pick(doc, section)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", sectionName(section), err)
	}
	return nil
}

// WriteJSONFile writes section of doc to path, creating parent directories.
func WriteJSONFile(path string, doc model.Project, section Section) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // user-chosen export path
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := JSON(f, doc, section); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func sectionName(s Section) string {
	if s == SectionAll {
		return "project"
	}
	return string(s)
}
