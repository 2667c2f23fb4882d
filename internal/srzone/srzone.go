// Package srzone maintains an incremental support/resistance zone store per
// (symbol, timeframe): pivot discovery with confirmation lag, zone merging,
// decay/prune, and nearest-zone lookup. Grounded closely on the Python
// original's SRDetector (original_source/app/sr.py), restated with Go's
// slice/struct idiom instead of pandas.
package srzone

import "signalengine/internal/barmodel"

// Params are the detector's configured thresholds, spec §4.5.
type Params struct {
	PivotWindow           int
	MergeTolerancePct     float64
	MergeToleranceATRMult float64
	MaxAgeBars            int
	DecayPerBar           float64
}

// DefaultParams returns the §4.5 defaults.
func DefaultParams() Params {
	return Params{
		PivotWindow:           5,
		MergeTolerancePct:     0.1,
		MergeToleranceATRMult: 0.5,
		MaxAgeBars:            300,
		DecayPerBar:           0.01,
	}
}

type key struct {
	symbol string
	tf     string
}

type slot struct {
	h, l, c []float64
	atr     float64
	zones   []*barmodel.Zone
}

// Detector is the single-writer per-(symbol, tf) zone store.
type Detector struct {
	p     Params
	slots map[key]*slot
}

// New returns a Detector configured with p.
func New(p Params) *Detector {
	return &Detector{p: p, slots: make(map[key]*slot)}
}

// Update folds one closed bar's h, l, c into (symbol, tf)'s zone store:
// decay, prune, pivot-confirm, and touch-pass, in that order (spec §4.5).
func (d *Detector) Update(symbol, tf string, h, l, c float64) {
	k := key{symbol, tf}
	s, ok := d.slots[k]
	if !ok {
		s = &slot{}
		d.slots[k] = s
	}

	s.h = append(s.h, h)
	s.l = append(s.l, l)
	s.c = append(s.c, c)
	idx := len(s.c) - 1

	s.atr = rollingATR(s.h, s.l, s.c)

	for _, z := range s.zones {
		z.Score = max0(z.Score * (1 - d.p.DecayPerBar))
	}

	kept := s.zones[:0:0]
	for _, z := range s.zones {
		if idx-z.CreatedIdx <= d.p.MaxAgeBars {
			kept = append(kept, z)
		}
	}
	s.zones = kept

	center := idx - d.p.PivotWindow
	if center >= 0 {
		w := d.p.PivotWindow
		if isPivotHigh(s.h, center, w) {
			d.mergeOrCreate(s, s.h[center], center)
		}
		if isPivotLow(s.l, center, w) {
			d.mergeOrCreate(s, s.l[center], center)
		}
	}

	for _, z := range s.zones {
		if c >= z.PriceLow && c <= z.PriceHigh {
			z.Touches++
			z.Score += 0.5
			z.LastTouchIdx = idx
		}
	}
}

// mergeOrCreate implements spec §4.5's merge_or_create: expand the first
// overlapping zone found (stable iteration order), else append a new one.
func (d *Detector) mergeOrCreate(s *slot, level float64, curIdx int) {
	tol := max(level*(d.p.MergeTolerancePct/100), d.p.MergeToleranceATRMult*s.atr)
	newLow, newHigh := level-tol, level+tol

	for _, z := range s.zones {
		if !(newHigh < z.PriceLow || newLow > z.PriceHigh) {
			if newLow < z.PriceLow {
				z.PriceLow = newLow
			}
			if newHigh > z.PriceHigh {
				z.PriceHigh = newHigh
			}
			z.Touches++
			z.Score += 1.0
			z.LastTouchIdx = curIdx
			return
		}
	}

	s.zones = append(s.zones, &barmodel.Zone{
		PriceLow:     newLow,
		PriceHigh:    newHigh,
		Score:        1.0,
		Touches:      1,
		CreatedIdx:   curIdx,
		LastTouchIdx: curIdx,
	})
}

// Nearest returns the support zone below price and resistance zone above
// price that are closest to it, or nil for a side with no candidate. Zones
// straddling price are excluded from both sides; ties broken by later
// CreatedIdx.
func (d *Detector) Nearest(symbol, tf string, price float64) (support, resistance *barmodel.Zone) {
	s, ok := d.slots[key{symbol, tf}]
	if !ok {
		return nil, nil
	}

	var bestSupportDist, bestResistDist float64
	for _, z := range s.zones {
		if z.PriceHigh <= price {
			dist := price - z.PriceHigh
			if support == nil || dist < bestSupportDist ||
				(dist == bestSupportDist && z.CreatedIdx > support.CreatedIdx) {
				support = z
				bestSupportDist = dist
			}
		}
		if z.PriceLow >= price {
			dist := z.PriceLow - price
			if resistance == nil || dist < bestResistDist ||
				(dist == bestResistDist && z.CreatedIdx > resistance.CreatedIdx) {
				resistance = z
				bestResistDist = dist
			}
		}
	}
	return support, resistance
}

// rollingATR is the simple mean of the last min(N-1, 14) true ranges, or 0
// if fewer than 2 closes have been observed (spec §4.5 step 1).
func rollingATR(h, l, c []float64) float64 {
	n := len(c)
	if n < 2 {
		return 0
	}
	window := n - 1
	if window > 14 {
		window = 14
	}
	sum := 0.0
	for i := n - window; i < n; i++ {
		tr := trueRange(h[i], l[i], c[i-1])
		sum += tr
	}
	return sum / float64(window)
}

func trueRange(h, l, prevClose float64) float64 {
	hl := h - l
	hc := abs(h - prevClose)
	lc := abs(l - prevClose)
	return max(hl, max(hc, lc))
}

func isPivotHigh(h []float64, center, w int) bool {
	if center-w < 0 || center+w >= len(h) {
		return false
	}
	v := h[center]
	for i := center - w; i <= center+w; i++ {
		if i == center {
			continue
		}
		if h[i] >= v {
			return false
		}
	}
	return true
}

func isPivotLow(l []float64, center, w int) bool {
	if center-w < 0 || center+w >= len(l) {
		return false
	}
	v := l[center]
	for i := center - w; i <= center+w; i++ {
		if i == center {
			continue
		}
		if l[i] <= v {
			return false
		}
	}
	return true
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
