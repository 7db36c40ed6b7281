package pricing

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency describes how amounts of one quoting mode are displayed.
type Currency struct {
	Code   string       `json:"code"`
	Symbol string       `json:"symbol"`
	Tag    language.Tag `json:"-"`
}

var (
	// INR is used by the catalog estimator.
	INR = Currency{Code: "INR", Symbol: "₹", Tag: language.MustParse("en-IN")}
	// USD is used by the page estimator.
	USD = Currency{Code: "USD", Symbol: "$", Tag: language.AmericanEnglish}
)

// Format renders amount with the currency symbol and locale digit grouping.
func (c Currency) Format(amount int64) string {
	p := message.NewPrinter(c.Tag)
	if amount < 0 {
		return "-" + c.Symbol + p.Sprintf("%d", -amount)
	}
	return c.Symbol + p.Sprintf("%d", amount)
}

// FormatSigned is like Format but always prefixes non-negative amounts with "+".
func (c Currency) FormatSigned(amount int64) string {
	if amount < 0 {
		return c.Format(amount)
	}
	return "+" + c.Format(amount)
}
