package export

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/nao1215/salesqueen/internal/model"
	"github.com/nao1215/salesqueen/internal/pricing"
)

// MailSubject is the subject of quote emails.
const MailSubject = "SalesQueen Quote"

// MailBody renders the quote email body.
func MailBody(sel model.Selection, total int64) string {
	return fmt.Sprintf("Website Type: %s\nTimeline: %s\nTotal: %s", sel.Type, sel.Timeline, pricing.INR.Format(total))
}

// MailtoLink returns a mailto: URL that opens a quote email addressed to to,
// which may be empty.
func MailtoLink(to string, sel model.Selection, total int64) string {
	return "mailto:" + url.PathEscape(to) + "?subject=" + escape(MailSubject) + "&body=" + escape(MailBody(sel, total))
}

// escape percent-encodes s for a mailto component. Spaces become %20 since
// mail clients do not decode "+".
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
