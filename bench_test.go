package jfold

import (
	"strings"
	"testing"
)

const benchDocString = `{
  "service": "orders-api",
  "note": "say \"hi\" \\ / \b \f \n \r \t",
  "emoji": "weather ☃",
  "window": {},
  "samples": [],
  "port": 8443,
  "uptime_s": 1234567890,
  "drift": -45,
  "load": 3.14159,
  "scale": 1.23e+4,
  "flags": [true, false],
  "parent": null,
  "mixed": [0, "one", {"two":2}, [3,4]],
  "limits": {"soft":1, "hard":{"bytes":[{"max":"4096"}]}},
  "escaped": "{\"x\":1,\"y\":[true,false,null],\"z\":{\"k\":\"v\"}}",
  "trace": {"spans":[{"id":1,"children":[{"id":2,"children":[{"id":3,"children":[]}]}]}]}
}`

var benchDocBytes = []byte(benchDocString)
var benchJSONL = buildBenchJSONL()

var benchFoldSink []byte

func warmPools() {
	e := acquireEncodeState()
	releaseEncodeState(e)
}

func buildBenchJSONL() []byte {
	var b strings.Builder
	baseLines := []string{
		benchDocString,
		`["queued",7,false,null,{"attempt":3}]`,
		`"plain text line"`,
		`8443`,
		`-273`,
		`2.71828`,
		`true`,
		`false`,
		`null`,
	}
	for _, line := range baseLines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	for i := 0; i < 8; i++ {
		b.WriteString(benchDocString)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

func BenchmarkFold_Inline(b *testing.B) {
	benchmarkFold(b, 0)
}

func BenchmarkFold_DefaultDepth(b *testing.B) {
	benchmarkFold(b, DefaultOptions.Depth)
}

func BenchmarkFold_FullDepth(b *testing.B) {
	benchmarkFold(b, 64)
}

func benchmarkFold(b *testing.B, depth int) {
	opts := Options{Depth: depth, Palette: "none"}

	warmPools()
	b.ReportAllocs()
	b.SetBytes(int64(len(benchDocBytes)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		out, err := Fold(benchDocBytes, &opts)
		if err != nil {
			b.Fatal(err)
		}
		benchFoldSink = out
	}
}

func BenchmarkFoldTo_Stream(b *testing.B) {
	opts := Options{Depth: 2, Palette: "none"}
	w := discardStringByteWriter{}

	warmPools()
	b.ReportAllocs()
	b.SetBytes(int64(len(benchJSONL)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := FoldTo(w, benchJSONL, &opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFoldTo_Colored(b *testing.B) {
	opts := Options{Depth: 2, Palette: "jq", ForceColor: true}
	w := discardStringByteWriter{}

	warmPools()
	b.ReportAllocs()
	b.SetBytes(int64(len(benchDocBytes)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := FoldTo(w, benchDocBytes, &opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMarshal(b *testing.B) {
	v := map[string]any{
		"count":   2,
		"message": "ok",
		"tags":    []string{"a", "b"},
		"nested":  map[string]any{"deep": map[string]any{"x": 1}},
	}
	opts := Options{Depth: 2, Palette: "none"}

	warmPools()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		out, err := Marshal(v, &opts)
		if err != nil {
			b.Fatal(err)
		}
		benchFoldSink = out
	}
}
