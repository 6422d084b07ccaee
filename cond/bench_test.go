package cond

import "testing"

var benchConditions = []struct {
	name string
	src  string
}{
	{"span", "3 days"},
	{"typical", "LastBU > 2 hours && Modified"},
	{"wide", "LastBU >= 1 month || LastBU > 1 day + 12 hours && Modified || False"},
	{"nested", "((((((((LastBU > 1 min))))))))"},
}

func BenchmarkTokenize(b *testing.B) {
	for _, bc := range benchConditions {
		b.Run(bc.name, func(b *testing.B) {
			b.ReportAllocs()

			for b.Loop() {
				if _, err := Tokenize(bc.src); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkParse(b *testing.B) {
	for _, bc := range benchConditions {
		b.Run(bc.name+"/uncached", func(b *testing.B) {
			b.ReportAllocs()

			for b.Loop() {
				if _, err := Parse(bc.src, WithoutCache()); err != nil {
					b.Fatal(err)
				}
			}
		})

		b.Run(bc.name+"/cached", func(b *testing.B) {
			b.ReportAllocs()

			for b.Loop() {
				if _, err := Parse(bc.src); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkEval(b *testing.B) {
	env := StaticContext{Age: 3 * SecondsPerDay, Modified: true}

	for _, bc := range benchConditions {
		ast, err := Parse(bc.src)
		if err != nil {
			b.Fatal(err)
		}

		b.Run(bc.name, func(b *testing.B) {
			b.ReportAllocs()

			for b.Loop() {
				if _, err := ast.Eval(env); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
