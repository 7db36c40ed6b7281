package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	"github.com/nao1215/salesqueen/internal/model"
)

// ShareTitle is the title passed to a Sharer.
const ShareTitle = "SalesQueen Project"

// ErrShareCancelled is returned by a Sharer when the user dismissed it.
var ErrShareCancelled = errors.New("share cancelled")

// ErrClipboardUnavailable is returned when the system has no clipboard utility.
var ErrClipboardUnavailable = errors.New("clipboard is not available")

// ShareText summarizes progress and the page quote on three lines.
func ShareText(doc model.Project) string {
	progress, _ := json.Marshal(doc.Progress)
	quote, _ := json.Marshal(doc.Quote)
	return fmt.Sprintf("%s\nProgress: %s\nQuote: %s", ShareTitle, progress, quote)
}

// Sharer hands text to a platform share facility.
type Sharer interface {
	Share(ctx context.Context, title, text string) error
}

// SharerFunc adapts a function to Sharer.
type SharerFunc func(ctx context.Context, title, text string) error

// Share calls f.
func (f SharerFunc) Share(ctx context.Context, title, text string) error {
	return f(ctx, title, text)
}

// Method reports how text was shared.
type Method string

const (
	MethodShared    Method = "shared"
	MethodCancelled Method = "cancelled"
	MethodCopied    Method = "copied"
	MethodPrinted   Method = "printed"
)

// Target lists the ways to share, tried in order: Sharer, Copy, Fallback.
// Nil entries are skipped.
type Target struct {
	Sharer   Sharer
	Copy     func(string) error
	Fallback io.Writer
}

// NewTarget returns a Target that copies to the system clipboard and
// otherwise prints to w.
func NewTarget(w io.Writer) Target {
	return Target{Copy: CopyToClipboard, Fallback: w}
}

// CopyToClipboard writes text to the system clipboard.
func CopyToClipboard(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	return clipboard.WriteAll(text)
}

// Share delivers text through the first working method of t.
// A cancelled share is not retried with the other methods.
func Share(ctx context.Context, t Target, text string) (Method, error) {
	if t.Sharer != nil {
		err := t.Sharer.Share(ctx, ShareTitle, text)
		switch {
		case err == nil:
			return MethodShared, nil
		case errors.Is(err, ErrShareCancelled):
			return MethodCancelled, nil
		}
	}

	if t.Copy != nil {
		if err := t.Copy(text); err == nil {
			return MethodCopied, nil
		}
	}

	if t.Fallback != nil {
		if _, err := io.WriteString(t.Fallback, text+"\n"); err != nil {
			return "", err
		}
		return MethodPrinted, nil
	}

	return "", ErrClipboardUnavailable
}
