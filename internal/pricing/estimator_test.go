package pricing

import (
	"errors"
	"testing"

	"github.com/nao1215/salesqueen/internal/model"
)

func TestCatalogEstimator_Estimate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		sel          model.Selection
		wantBase     int64
		wantFeatures int64
		wantModified int64
		wantTax      int64
		wantTotal    int64
		wantOverage  int64
	}{
		{
			name:         "business with seo and cms on standard timeline",
			sel:          model.Selection{Type: "business", Features: []string{"seo-basic", "cms"}, Timeline: model.TimelineStandard},
			wantBase:     25000,
			wantFeatures: 6500,
			wantModified: 31500,
			wantTax:      5670,
			wantTotal:    37170,
		},
		{
			name:         "rush timeline",
			sel:          model.Selection{Type: "business", Features: []string{"seo-basic", "cms"}, Timeline: model.TimelineRush},
			wantBase:     25000,
			wantFeatures: 6500,
			wantModified: 40950,
			wantTax:      7371,
			wantTotal:    48321,
		},
		{
			name:         "flex timeline",
			sel:          model.Selection{Type: "business", Features: []string{"seo-basic", "cms"}, Timeline: model.TimelineFlex},
			wantBase:     25000,
			wantFeatures: 6500,
			wantModified: 28350,
			wantTax:      5103,
			wantTotal:    33453,
		},
		{
			name:         "budget exceeded",
			sel:          model.Selection{Type: "business", Features: []string{"seo-basic", "cms"}, Timeline: model.TimelineStandard, Budget: 30000},
			wantBase:     25000,
			wantFeatures: 6500,
			wantModified: 31500,
			wantTax:      5670,
			wantTotal:    37170,
			wantOverage:  7170,
		},
		{
			name:         "budget not exceeded",
			sel:          model.Selection{Type: "portfolio", Timeline: model.TimelineStandard, Budget: 100000},
			wantBase:     15000,
			wantModified: 15000,
			wantTax:      2700,
			wantTotal:    17700,
		},
		{
			name:         "no type selected",
			sel:          model.Selection{Features: []string{"analytics"}},
			wantFeatures: 2500,
			wantModified: 2500,
			wantTax:      450,
			wantTotal:    2950,
		},
		{
			name:         "unknown feature and timeline are ignored",
			sel:          model.Selection{Type: "blog", Features: []string{"teleport"}, Timeline: "yesterday"},
			wantBase:     20000,
			wantModified: 20000,
			wantTax:      3600,
			wantTotal:    23600,
		},
	}

	e := NewCatalogEstimator(DefaultCatalog())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := e.Estimate(Input{Selection: tt.sel})
			if got.Strategy != StrategyCatalog {
				t.Errorf("Strategy = %q, want %q", got.Strategy, StrategyCatalog)
			}
			if base := got.Amount(ItemBase); base != tt.wantBase {
				t.Errorf("base = %d, want %d", base, tt.wantBase)
			}
			if f := got.Amount(ItemFeatures); f != tt.wantFeatures {
				t.Errorf("features = %d, want %d", f, tt.wantFeatures)
			}
			if got.Modified != tt.wantModified {
				t.Errorf("Modified = %d, want %d", got.Modified, tt.wantModified)
			}
			if got.Tax != tt.wantTax {
				t.Errorf("Tax = %d, want %d", got.Tax, tt.wantTax)
			}
			if got.Total != tt.wantTotal {
				t.Errorf("Total = %d, want %d", got.Total, tt.wantTotal)
			}
			if tt.wantOverage == 0 {
				if got.Warning != nil {
					t.Errorf("Warning = %+v, want nil", got.Warning)
				}
			} else {
				if got.Warning == nil {
					t.Fatal("Warning = nil, want overage")
				}
				if got.Warning.Overage != tt.wantOverage {
					t.Errorf("Overage = %d, want %d", got.Warning.Overage, tt.wantOverage)
				}
			}
			if !got.HasTax() {
				t.Error("catalog breakdown should carry a tax line")
			}
		})
	}
}

func TestCatalogEstimator_TimelineOrdering(t *testing.T) {
	t.Parallel()

	e := NewCatalogEstimator(DefaultCatalog())
	for _, typ := range DefaultCatalog().Types {
		sel := model.Selection{Type: typ.ID, Features: []string{"cms", "chatbot"}}

		sel.Timeline = model.TimelineRush
		rush := e.Estimate(Input{Selection: sel}).Total
		sel.Timeline = model.TimelineStandard
		standard := e.Estimate(Input{Selection: sel}).Total
		sel.Timeline = model.TimelineFlex
		flex := e.Estimate(Input{Selection: sel}).Total

		if rush < standard || standard < flex {
			t.Errorf("%s: rush=%d standard=%d flex=%d, want rush >= standard >= flex", typ.ID, rush, standard, flex)
		}
	}
}

func TestCatalogEstimator_ItemsSumToTotal(t *testing.T) {
	t.Parallel()

	e := NewCatalogEstimator(DefaultCatalog())
	got := e.Estimate(Input{Selection: model.Selection{
		Type:     "ecommerce",
		Features: []string{"payments", "multi-language"},
		Timeline: model.TimelineRush,
	}})

	var sum int64
	for _, it := range got.Items {
		sum += it.Amount
	}
	if sum != got.Total {
		t.Errorf("sum of items = %d, want total %d", sum, got.Total)
	}
}

func TestPageEstimator_Estimate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		quote        model.PageQuote
		wantSubtotal int64
		wantTotal    int64
		wantRecur    int64
	}{
		{
			name:         "short timeline applies rush",
			quote:        model.PageQuote{NumPages: 5, Ecommerce: "basic", SEO: "plus", TimelineWeeks: 3},
			wantSubtotal: 2850,
			wantTotal:    3563,
		},
		{
			name:         "four weeks is still rush",
			quote:        model.PageQuote{NumPages: 2, TimelineWeeks: 4},
			wantSubtotal: 300,
			wantTotal:    375,
		},
		{
			name:         "long timeline has no multiplier",
			quote:        model.PageQuote{NumPages: 10, Ecommerce: "advanced", SEO: "premium", TimelineWeeks: 8},
			wantSubtotal: 5400,
			wantTotal:    5400,
		},
		{
			name:         "maintenance stays outside the total",
			quote:        model.PageQuote{NumPages: 1, Ecommerce: "none", SEO: "standard", TimelineWeeks: 6, Maintenance: true},
			wantSubtotal: 650,
			wantTotal:    650,
			wantRecur:    120,
		},
	}

	e := NewPageEstimator(DefaultPageRates())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := e.Estimate(Input{Pages: tt.quote})
			if got.PreTimeline != tt.wantSubtotal {
				t.Errorf("PreTimeline = %d, want %d", got.PreTimeline, tt.wantSubtotal)
			}
			if got.Total != tt.wantTotal {
				t.Errorf("Total = %d, want %d", got.Total, tt.wantTotal)
			}
			if got.HasTax() || got.Tax != 0 {
				t.Error("page breakdown must not carry tax")
			}
			if m := got.Amount(ItemMaintenance); m != tt.wantRecur {
				t.Errorf("maintenance = %d, want %d", m, tt.wantRecur)
			}
			if got.Warning != nil {
				t.Errorf("Warning = %+v, want nil", got.Warning)
			}
		})
	}
}

func TestPageEstimator_ScenarioLines(t *testing.T) {
	t.Parallel()

	got := NewPageEstimator(DefaultPageRates()).Estimate(Input{Pages: model.PageQuote{
		NumPages: 5, Ecommerce: "basic", SEO: "plus", TimelineWeeks: 3,
	}})

	want := map[ItemKind]int64{
		ItemPages:     750,
		ItemEcommerce: 1200,
		ItemSEO:       900,
		ItemTimeline:  713,
	}
	for kind, amount := range want {
		if a := got.Amount(kind); a != amount {
			t.Errorf("%s = %d, want %d", kind, a, amount)
		}
	}
	if got.Currency.Code != "USD" {
		t.Errorf("Currency = %q, want USD", got.Currency.Code)
	}
}

func TestPageEstimator_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		quote model.PageQuote
		want  error
	}{
		{name: "valid", quote: model.PageQuote{NumPages: 1, TimelineWeeks: 1, Ecommerce: "basic", SEO: "none"}},
		{name: "zero pages", quote: model.PageQuote{NumPages: 0, TimelineWeeks: 2}, want: ErrInvalidPageCount},
		{name: "zero weeks", quote: model.PageQuote{NumPages: 3}, want: ErrInvalidWeeks},
		{name: "unknown ecommerce tier", quote: model.PageQuote{NumPages: 3, TimelineWeeks: 2, Ecommerce: "gold"}, want: ErrUnknownTier},
		{name: "unknown seo tier", quote: model.PageQuote{NumPages: 3, TimelineWeeks: 2, SEO: "ultra"}, want: ErrUnknownTier},
	}

	e := NewPageEstimator(DefaultPageRates())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := e.Validate(Input{Pages: tt.quote})
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	for _, s := range []Strategy{StrategyCatalog, StrategyPages} {
		e, err := New(s)
		if err != nil {
			t.Fatalf("New(%q) error = %v", s, err)
		}
		if e.Strategy() != s {
			t.Errorf("Strategy() = %q, want %q", e.Strategy(), s)
		}
	}

	if _, err := ParseStrategy("hourly"); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("ParseStrategy(hourly) error = %v, want ErrUnknownStrategy", err)
	}
}

func TestCurrency_Format(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		cur    Currency
		amount int64
		signed bool
		want   string
	}{
		{name: "inr total", cur: INR, amount: 37170, want: "₹37,170"},
		{name: "inr small", cur: INR, amount: 450, want: "₹450"},
		{name: "usd total", cur: USD, amount: 3563, want: "$3,563"},
		{name: "signed positive", cur: INR, amount: 9450, signed: true, want: "+₹9,450"},
		{name: "signed negative", cur: INR, amount: -3150, signed: true, want: "-₹3,150"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got string
			if tt.signed {
				got = tt.cur.FormatSigned(tt.amount)
			} else {
				got = tt.cur.Format(tt.amount)
			}
			if got != tt.want {
				t.Errorf("Format(%d) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestBudgetWarning_Message(t *testing.T) {
	t.Parallel()

	w := BudgetWarning{Budget: 30000, Total: 37170, Overage: 7170}
	want := "Your selections exceed your budget by ₹7,170. Consider deselecting some features or choosing a flexible timeline."
	if got := w.Message(INR); got != want {
		t.Errorf("Message() = %q, want %q", got, want)
	}
}
