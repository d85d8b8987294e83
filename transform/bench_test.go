// Package transform_test provides benchmarks comparing the quick transform with
// the dense operator.
package transform_test

import (
	"fmt"
	"testing"

	"github.com/MrOnlineCoder/qmf/transform"
)

// sinks to defeat dead-code elimination
var (
	sinkI []int64
	sinkF []float64
)

func BenchmarkQuickForward(b *testing.B) {
	b.ReportAllocs()
	for _, n := range []int{4, 6, 8, 10} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			sel := mustUniform(b, n, transform.BlockTrue)
			tr, err := transform.NewTransformer(sel)
			if err != nil {
				b.Fatal(err)
			}
			tbl := mustTable(b, 0x5a5a5a5a5a5a5a5a>>uint(64-min(64, 1<<uint(n))), n)
			dst := make([]int64, tr.Len())
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				dst, err = tr.Forward(dst, tbl)
				if err != nil {
					b.Fatal(err)
				}
			}
			sinkI = dst
		})
	}
}

func BenchmarkDenseApply(b *testing.B) {
	b.ReportAllocs()
	for _, n := range []int{4, 6, 8} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			sel := mustUniform(b, n, transform.BlockTrue)
			op := mustBuild(b, n, sel)
			tbl := mustTable(b, 0x5a5a5a5a5a5a5a5a>>uint(64-min(64, 1<<uint(n))), n)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				out, err := op.Apply(tbl)
				if err != nil {
					b.Fatal(err)
				}
				sinkF = out
			}
		})
	}
}
