package client

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Resolve computes the effective display value of one attribute from
// its (base, override) pair. An override wins whenever it is present,
// even as an empty string: blanking a field is a valid user choice and
// must not fall back to the scraped value. Each attribute resolves
// independently, so a record whose fields are all nil behaves exactly
// like no override record at all.
func Resolve(base, override *string) string {
	if override != nil {
		return *override
	}
	if base != nil {
		return *base
	}
	return ""
}

// ResolvedLink is the per-field resolution of a link, ready to render.
type ResolvedLink struct {
	URL         string
	Title       string
	Description string
	SiteName    string
	Price       string
	Currency    string
	ImageURL    string
}

// ResolveLink applies Resolve to every displayable attribute.
func ResolveLink(l *Link) ResolvedLink {
	base := l.PageMetadata
	if base == nil {
		base = &PageMetadata{}
	}
	ov := l.Override
	if ov == nil {
		ov = &PageMetadataOverride{}
	}
	return ResolvedLink{
		URL:         l.URL,
		Title:       Resolve(base.Title, ov.Title),
		Description: Resolve(base.Description, ov.Description),
		SiteName:    Resolve(base.SiteName, ov.SiteName),
		Price:       Resolve(base.Price, ov.Price),
		Currency:    Resolve(base.Currency, ov.Currency),
		ImageURL:    Resolve(base.ImageURL, ov.ImageURL),
	}
}

var currencySymbols = map[string]string{
	"USD": "$",
}

// CurrencySymbol maps a currency code to its display prefix. Unknown or
// missing codes map to an empty prefix.
func CurrencySymbol(code string) string {
	return currencySymbols[code]
}

// FormatPrice renders a decimal price string for display, locale-aware
// and keyed by the resolved currency code. A missing currency formats
// as USD; an unparsable price is shown as-is.
func FormatPrice(price, code string) string {
	if price == "" {
		return ""
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return price
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.USD
	}
	p := message.NewPrinter(language.English)
	return p.Sprintf("%v", currency.NarrowSymbol(unit.Amount(d.InexactFloat64())))
}
