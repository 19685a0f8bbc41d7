package cli

import (
	"bytes"
	"testing"
)

func BenchmarkRunnerRun_EndToEnd(b *testing.B) {
	var out bytes.Buffer
	runner := testRunner(&out)

	cfg := &Config{
		Mode:    ModeReflect,
		Library: "dataframe",
		Classes: DefaultClasses(),
		Snippet: DefaultSnippet,
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		out.Reset()
		if err := runner.Run(cfg); err != nil {
			b.Fatal(err)
		}
	}
}
