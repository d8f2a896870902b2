package calculator

import "github.com/jamiedarville/sp500-analysis/internal/model"

// Fundamentals derives the ratio set from descriptive info. A missing input
// yields a nil output field, never zero. Yield and ROE arrive from the
// provider as fractions and are scaled to percentages here.
func Fundamentals(info *model.Info) model.Ratios {
	var r model.Ratios
	if info == nil {
		return r
	}

	r.PE = rounded2(info.TrailingPE)
	r.ForwardPE = rounded2(info.ForwardPE)
	r.PEG = rounded2(info.PEGRatio)

	if info.TotalDebt != nil && info.TotalEquity != nil && *info.TotalEquity != 0 {
		r.DebtToEquity = model.Float(round2(*info.TotalDebt / *info.TotalEquity))
	}

	if info.FreeCashFlow != nil {
		r.FreeCashFlow = model.Float(*info.FreeCashFlow)
	}
	if info.DividendYield != nil {
		r.DividendYield = model.Float(round2(*info.DividendYield * 100))
	}
	r.BookValue = rounded2(info.BookValue)
	r.PriceToBook = rounded2(info.PriceToBook)
	if info.ReturnOnEquity != nil {
		r.ReturnOnEquity = model.Float(round2(*info.ReturnOnEquity * 100))
	}
	return r
}

func rounded2(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return model.Float(round2(*v))
}
