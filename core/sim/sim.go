// Package sim models a multiplex PCR reaction over predicted products:
// annealing equilibrium seeds the first cycles, then amplification proceeds
// cycle by cycle with primer and dNTP bookkeeping and a polymerase
// throughput cap, so product quantities saturate the way a real reaction
// does instead of growing geometrically forever.
package sim

import (
	"fmt"
	"math"
	"sort"

	"paneval-core/primer"
	"paneval-core/thermo"
)

// Conditions are the wet-lab knobs of the simulated reaction.
type Conditions struct {
	AnnealC         float64 // annealing temperature, °C
	Na              float64 // monovalent cations, mol/L
	Mg              float64 // magnesium, mol/L
	DNTP            float64 // each dNTP, mol/L
	DNA             float64 // template DNA, mol/L
	PolymeraseUL    float64 // polymerase activity, U/L
	WithExonuclease bool    // 3'→5' proofreading allows 3'-mismatched extension
	Cycles          int
	MaxAmplicon     int     // longest product; sets elongation time
	MinK            float64 // duplexes below this association constant are ignored (0 = default)
}

const (
	defaultMinK = 100.0
	// products below this fraction of the most abundant one are dropped
	minQuantityFactor = 0.001
	seedCycles        = 3
	equilibriumRounds = 8
)

func (c Conditions) minK() float64 {
	if c.MinK > 0 {
		return c.MinK
	}
	return defaultMinK
}

func (c Conditions) salt() thermo.Salt { return thermo.Salt{Na: c.Na, Mg: c.Mg} }

// elongation time in minutes, assuming 1 kb/min synthesis speed
func (c Conditions) elongationMinutes() float64 {
	if c.MaxAmplicon <= 0 {
		return 1
	}
	return float64(c.MaxAmplicon) / 1000.0
}

// Annealing is one unambiguous primer variant bound to a product flank.
type Annealing struct {
	Variant primer.Oligo
	Duplex  thermo.Duplex
	K       float64
}

// Product is a candidate amplicon inside the reaction.
type Product struct {
	Key      string // caller-supplied identity, e.g. "seqID:start-end"
	Template string
	Start    int
	End      int
	Length   int
	Fwd      []Annealing
	Rev      []Annealing

	Quantity float64 // mol/L at reaction end
	Cycles   int     // last cycle this product was still synthesizing
}

// Outcome summarizes the reaction after Run. All products share one tube,
// so depletion and saturation diagnostics are run-wide.
type Outcome struct {
	Products        []*Product
	CyclesRun       int
	DNTPLeft        float64 // per-letter concentration left
	DepletedPrimers []string
	PolyShortage    [][2]int // inclusive cycle ranges with insufficient polymerase
	Saturated       bool     // primers or dNTP ran out within the seed cycles
}

// Reaction accumulates primers and candidate products, then Run computes
// final quantities.
type Reaction struct {
	cond     Conditions
	primers  map[string]float64 // variant sequence → total concentration
	products map[string]*Product
}

func New(cond Conditions) *Reaction {
	return &Reaction{
		cond:     cond,
		primers:  make(map[string]float64),
		products: make(map[string]*Product),
	}
}

// AddPrimer registers an unambiguous primer variant and its concentration.
// Repeated registration keeps the first concentration.
func (r *Reaction) AddPrimer(o primer.Oligo) {
	if _, ok := r.primers[o.Seq]; !ok {
		r.primers[o.Seq] = o.Concentration
	}
}

// AddProduct admits a candidate product. Annealings are filtered by the
// equilibrium-constant floor and, without a proofreading polymerase, by
// 3'-terminal mismatches. Returns false when nothing viable remains.
func (r *Reaction) AddProduct(key, template string, start, end int, fwd, rev []Annealing) bool {
	valid := func(in []Annealing) []Annealing {
		var out []Annealing
		for _, a := range in {
			if a.K < r.cond.minK() {
				continue
			}
			if !r.cond.WithExonuclease && a.Duplex.Terminal3Mismatch() {
				continue
			}
			if _, known := r.primers[a.Variant.Seq]; !known {
				continue
			}
			out = append(out, a)
		}
		return out
	}
	vf, vr := valid(fwd), valid(rev)
	if len(vf) == 0 || len(vr) == 0 {
		return false
	}
	if p, ok := r.products[key]; ok {
		p.Fwd = append(p.Fwd, vf...)
		p.Rev = append(p.Rev, vr...)
		return true
	}
	r.products[key] = &Product{
		Key:      key,
		Template: template,
		Start:    start,
		End:      end,
		Length:   end - start,
		Fwd:      vf,
		Rev:      vr,
	}
	return true
}

// NewAnnealing computes the duplex and association constant of a primer
// variant on its annealing site under the reaction conditions.
func (r *Reaction) NewAnnealing(v primer.Oligo, site string) (Annealing, error) {
	d, err := thermo.AnnealDuplex(v.Seq, site)
	if err != nil {
		return Annealing{}, fmt.Errorf("annealing %s: %w", v.ID, err)
	}
	return Annealing{Variant: v, Duplex: d, K: d.K(r.cond.AnnealC, r.cond.salt())}, nil
}

// variant is one (forward component, reverse component) synthesis lineage of
// a product; its amount doubles each cycle until something runs out.
type variant struct {
	fwdSeq  string
	revSeq  string
	amount  float64
	product *Product
}

// Run simulates the reaction and returns the outcome. Products that never
// accumulate above max(C_DNA, 0.001·max quantity) are dropped.
func (r *Reaction) Run() Outcome {
	out := Outcome{CyclesRun: seedCycles}
	if len(r.products) == 0 {
		return out
	}

	// working pools
	dNTP := r.cond.DNTP * 4.0 // equal letter composition assumed
	pool := make(map[string]float64, len(r.primers))
	for s, c := range r.primers {
		pool[s] = c
	}
	depleted := make(map[string]bool)

	bound := r.solveEquilibrium()

	// Seed cycles: first-cycle strands from the annealing equilibrium, then
	// two doublings combining every forward/reverse lineage.
	var variants []*variant
	for _, p := range r.orderedProducts() {
		type strand struct {
			seq  string
			frac float64 // bound fraction of template sites
			conc float64 // first-cycle strand concentration
		}
		var fwd1, rev1 []strand
		for _, a := range p.Fwd {
			d := bound[reactionKey(p.Key, "f", a.Variant.Seq)]
			if d <= 0 {
				continue
			}
			pool[a.Variant.Seq] -= d
			dNTP -= d * float64(p.Length)
			fwd1 = append(fwd1, strand{a.Variant.Seq, d / r.cond.DNA, d})
		}
		for _, a := range p.Rev {
			d := bound[reactionKey(p.Key, "r", a.Variant.Seq)]
			if d <= 0 {
				continue
			}
			pool[a.Variant.Seq] -= d
			dNTP -= d * float64(p.Length)
			rev1 = append(rev1, strand{a.Variant.Seq, d / r.cond.DNA, d})
		}
		for _, f := range fwd1 {
			for _, v := range rev1 {
				// cycle 2: each first-cycle strand templates the other primer
				f2 := f.frac * v.conc
				r2 := v.frac * f.conc
				pool[f.seq] -= f2
				pool[v.seq] -= r2
				dNTP -= (f2 + r2) * float64(p.Length)
				// cycle 3: the bundle doubles once more
				pool[f.seq] -= r2
				pool[v.seq] -= f2
				dNTP -= (f2 + r2) * float64(p.Length)
				variants = append(variants, &variant{
					fwdSeq: f.seq, revSeq: v.seq, amount: f2 + r2, product: p,
				})
			}
		}
	}
	if len(variants) == 0 {
		return out
	}
	if dNTP <= 0 || minPool(pool) <= 0 {
		// The reaction saturates before cycling even starts; matches the
		// "reduce input concentrations" failure mode.
		out.Saturated = true
		return out
	}
	sort.Slice(variants, func(i, j int) bool { return variants[i].amount < variants[j].amount })

	maxConsumption := r.cond.PolymeraseUL * 1e-8 * r.cond.elongationMinutes() / 30.0

	cycles := r.cond.Cycles
	if cycles < seedCycles {
		cycles = seedCycles
	}
	for cycle := seedCycles + 1; cycle <= cycles; cycle++ {
		prevDNTP := dNTP
		prevPool := copyPool(pool)
		prevAmounts := make([]float64, len(variants))
		for i, v := range variants {
			prevAmounts[i] = v.amount
		}

		idle := true
		for _, v := range variants {
			if depleted[v.fwdSeq] || depleted[v.revSeq] {
				continue
			}
			pool[v.fwdSeq] -= v.amount
			pool[v.revSeq] -= v.amount
			dNTP -= v.amount * 2 * float64(v.product.Length)
			v.amount += v.amount
			idle = false
		}
		if idle {
			break
		}

		dNTP = r.correctCycle(cycle, &out, variants, prevAmounts, pool, prevPool, dNTP, prevDNTP, maxConsumption, depleted)

		for i, v := range variants {
			if v.amount != prevAmounts[i] {
				v.product.Cycles = cycle
			}
		}
		out.CyclesRun = cycle
		if dNTP <= 0 {
			break
		}
	}

	if dNTP < 0 {
		dNTP = 0
	}
	out.DNTPLeft = dNTP / 4.0
	for s := range depleted {
		out.DepletedPrimers = append(out.DepletedPrimers, s)
	}
	sort.Strings(out.DepletedPrimers)

	// collect quantities
	for _, v := range variants {
		v.product.Quantity += v.amount
	}
	maxQ := 0.0
	for _, p := range r.products {
		if p.Quantity > maxQ {
			maxQ = p.Quantity
		}
	}
	floor := math.Max(r.cond.DNA, maxQ*minQuantityFactor)
	for _, p := range r.orderedProducts() {
		if p.Quantity > floor {
			out.Products = append(out.Products, p)
		}
	}
	return out
}

// correctCycle rolls back over-consumption: primers that went negative scale
// their lineages' synthesis by the available ratio, and the polymerase
// throughput cap rescales the whole cycle when exceeded.
func (r *Reaction) correctCycle(
	cycle int, out *Outcome,
	variants []*variant, prevAmounts []float64,
	pool, prevPool map[string]float64,
	dNTP, prevDNTP, maxConsumption float64,
	depleted map[string]bool,
) float64 {
	// primer depletion
	ratios := make(map[string]float64)
	for s, c := range pool {
		if depleted[s] || c >= 0 {
			continue
		}
		ratios[s] = prevPool[s] / (prevPool[s] - c)
	}
	if len(ratios) > 0 {
		for i, v := range variants {
			rf, fOK := ratios[v.fwdSeq]
			rr, rOK := ratios[v.revSeq]
			if !fOK && !rOK {
				continue
			}
			if depleted[v.fwdSeq] || depleted[v.revSeq] {
				continue
			}
			ratio := 1.0
			if fOK {
				ratio = rf
			}
			if rOK && rr < ratio {
				ratio = rr
			}
			added := (v.amount - prevAmounts[i]) * ratio
			// restore, then apply the feasible addition
			pool[v.fwdSeq] += prevAmounts[i]
			pool[v.revSeq] += prevAmounts[i]
			dNTP += prevAmounts[i] * 2 * float64(v.product.Length)
			pool[v.fwdSeq] -= added
			pool[v.revSeq] -= added
			dNTP -= added * 2 * float64(v.product.Length)
			v.amount = prevAmounts[i] + added
		}
		for s := range ratios {
			pool[s] = 0
		}
	}

	// polymerase throughput
	consumed := prevDNTP - dNTP
	if consumed > maxConsumption && maxConsumption > 0 {
		if n := len(out.PolyShortage); n > 0 && cycle-out.PolyShortage[n-1][1] == 1 {
			out.PolyShortage[n-1][1] = cycle
		} else {
			out.PolyShortage = append(out.PolyShortage, [2]int{cycle, cycle})
		}
	}
	if (consumed > maxConsumption && maxConsumption > 0) || dNTP < 0 {
		ratio := 1.0
		if consumed > 0 {
			ratio = math.Min(maxConsumption/consumed, prevDNTP/consumed)
		}
		dNTP = prevDNTP
		for s, c := range prevPool {
			pool[s] = c
		}
		for i, v := range variants {
			if depleted[v.fwdSeq] || depleted[v.revSeq] {
				continue
			}
			added := (v.amount - prevAmounts[i]) * ratio
			pool[v.fwdSeq] -= added
			pool[v.revSeq] -= added
			dNTP -= added * 2 * float64(v.product.Length)
			v.amount = prevAmounts[i] + added
		}
	}

	for s, c := range pool {
		if c <= 0 {
			pool[s] = 0
			depleted[s] = true
		}
	}
	return dNTP
}

// solveEquilibrium estimates first-cycle duplex concentrations. Each
// annealing solves its own two-component equilibrium, then concentrations
// are rescaled a few rounds so no primer variant is allocated beyond its
// pool. This replaces the original's full nonlinear system with a
// deterministic approximation.
func (r *Reaction) solveEquilibrium() map[string]float64 {
	bound := make(map[string]float64)
	byPrimer := make(map[string][]string)
	for _, p := range r.orderedProducts() {
		add := func(side string, as []Annealing) {
			for _, a := range as {
				key := reactionKey(p.Key, side, a.Variant.Seq)
				d := duplexConc(a.K, r.primers[a.Variant.Seq], r.cond.DNA)
				bound[key] = d
				byPrimer[a.Variant.Seq] = append(byPrimer[a.Variant.Seq], key)
			}
		}
		add("f", p.Fwd)
		add("r", p.Rev)
	}
	for round := 0; round < equilibriumRounds; round++ {
		adjusted := false
		for seq, keys := range byPrimer {
			total := 0.0
			for _, k := range keys {
				total += bound[k]
			}
			if avail := r.primers[seq]; total > avail && total > 0 {
				scale := avail / total
				for _, k := range keys {
					bound[k] *= scale
				}
				adjusted = true
			}
		}
		if !adjusted {
			break
		}
	}
	return bound
}

// duplexConc solves K = D / ((P−D)(T−D)) for D, taking the physical root.
func duplexConc(k, p0, t0 float64) float64 {
	if k <= 0 || p0 <= 0 || t0 <= 0 {
		return 0
	}
	b := k*(p0+t0) + 1
	disc := b*b - 4*k*k*p0*t0
	if disc < 0 {
		disc = 0
	}
	d := (b - math.Sqrt(disc)) / (2 * k)
	if d < 0 {
		d = 0
	}
	if d > math.Min(p0, t0) {
		d = math.Min(p0, t0)
	}
	return d
}

func (r *Reaction) orderedProducts() []*Product {
	keys := make([]string, 0, len(r.products))
	for k := range r.products {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*Product, len(keys))
	for i, k := range keys {
		out[i] = r.products[k]
	}
	return out
}

func reactionKey(product, side, seq string) string {
	return product + "|" + side + "|" + seq
}

func minPool(pool map[string]float64) float64 {
	first := true
	m := 0.0
	for _, c := range pool {
		if first || c < m {
			m = c
			first = false
		}
	}
	return m
}

func copyPool(pool map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(pool))
	for k, v := range pool {
		out[k] = v
	}
	return out
}
