package output

import (
	"io"

	"paneval-core/engine"
	"paneval/internal/jsonutil"
	"paneval/pkg/api"
)

// ToAPIProduct converts a domain Product to the stable wire schema (v1).
func ToAPIProduct(p engine.Product) api.ProductV1 {
	return api.ProductV1{
		PairID:         p.PairID,
		SequenceID:     p.SequenceID,
		Start:          p.Start,
		End:            p.End,
		Length:         p.Length,
		Type:           p.Type,
		FwdMM:          p.FwdMM,
		RevMM:          p.RevMM,
		FwdMismatchIdx: append([]int(nil), p.FwdMismatchIdx...),
		RevMismatchIdx: append([]int(nil), p.RevMismatchIdx...),
		Quantity:       p.Quantity,
		Cycles:         p.Cycles,
		Seq:            p.Seq,
		SourceFile:     p.SourceFile,
	}
}

func toAPIProducts(list []engine.Product) []api.ProductV1 {
	out := make([]api.ProductV1, 0, len(list))
	for _, p := range list {
		out = append(out, ToAPIProduct(p))
	}
	return out
}

// WriteJSON writes a single JSON array of v1 products (pretty-indented).
func WriteJSON(w io.Writer, list []engine.Product) error {
	return jsonutil.EncodePretty(w, toAPIProducts(list))
}
