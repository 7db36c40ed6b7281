package lead

import (
	"strings"
	"unicode/utf8"

	"github.com/nao1215/salesqueen/internal/model"
)

// MaxFieldLength is the maximum number of runes kept per lead field.
const MaxFieldLength = 500

// Field names a lead field by its document key.
type Field string

const (
	FieldBusinessName Field = "businessName"
	FieldIndustry     Field = "industry"
	FieldPhone        Field = "phone"
	FieldEmail        Field = "email"
	FieldWebsite      Field = "website"
	FieldAddress      Field = "address"
	FieldNotes        Field = "notes"
)

// Fields returns every lead field in form order.
func Fields() []Field {
	return []Field{
		FieldBusinessName, FieldIndustry, FieldPhone, FieldEmail,
		FieldWebsite, FieldAddress, FieldNotes,
	}
}

// Patch is a partial lead update. Only present keys are applied;
// unrecognized keys are ignored.
type Patch map[Field]string

// Sanitize trims s, caps it at MaxFieldLength runes and trims again so the
// result never ends in whitespace exposed by the cut.
func Sanitize(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > MaxFieldLength {
		s = string([]rune(s)[:MaxFieldLength])
	}
	return strings.TrimSpace(s)
}

// Merge returns l with every field of p sanitized and applied.
func Merge(l model.Lead, p Patch) model.Lead {
	for f, v := range p {
		if ptr := fieldPtr(&l, f); ptr != nil {
			*ptr = Sanitize(v)
		}
	}
	return l
}

// SanitizeLead sanitizes every field of l.
func SanitizeLead(l model.Lead) model.Lead {
	for _, f := range Fields() {
		ptr := fieldPtr(&l, f)
		*ptr = Sanitize(*ptr)
	}
	return l
}

// Value returns the value of field f in l.
func Value(l model.Lead, f Field) string {
	if ptr := fieldPtr(&l, f); ptr != nil {
		return *ptr
	}
	return ""
}

func fieldPtr(l *model.Lead, f Field) *string {
	switch f {
	case FieldBusinessName:
		return &l.BusinessName
	case FieldIndustry:
		return &l.Industry
	case FieldPhone:
		return &l.Phone
	case FieldEmail:
		return &l.Email
	case FieldWebsite:
		return &l.Website
	case FieldAddress:
		return &l.Address
	case FieldNotes:
		return &l.Notes
	default:
		return nil
	}
}
