package providers

import (
	"fmt"

	"github.com/fxdesk/currency_rates_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ratePrecision matches the scale rates are stored at.
const ratePrecision = 6

var one = decimal.NewFromInt(1)

// Normalize re-expresses a raw quote set in the canonical base frame.
//
// When the provider already quoted against the canonical base the rates pass
// through unchanged except for rounding. Otherwise every quote is divided by
// the canonical currency's own quote, and the provider's native base gets the
// inverted leg. There is no transitive triangulation: if the canonical
// currency is absent from a foreign-based quote set the payload is unusable.
func Normalize(q Quotes, canonicalBase string) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(q.Rates))

	if q.BaseCode == canonicalBase {
		for code, rate := range q.Rates {
			if code == canonicalBase {
				continue
			}
			out[code] = rate.Round(ratePrecision)
		}
		return out, nil
	}

	canonicalLeg, ok := q.Rates[canonicalBase]
	if !ok || canonicalLeg.IsZero() {
		return nil, fmt.Errorf("%w: base %s quotes do not include %s", apperrors.ErrNormalization, q.BaseCode, canonicalBase)
	}

	for code, rate := range q.Rates {
		if code == canonicalBase {
			continue
		}
		out[code] = rate.Div(canonicalLeg).Round(ratePrecision)
	}
	out[q.BaseCode] = one.Div(canonicalLeg).Round(ratePrecision)

	return out, nil
}
