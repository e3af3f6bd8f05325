//nolint:testpackage // using package name 'benchmark' to access unexported fields for testing
package benchmark

import (
	"testing"

	fuzzy "github.com/dzonerzy/go-clap/internal/fuzzy"
)

// Category: fuzzy (exported paths only)

var switchNames = []string{
	"help", "version", "verbose", "config", "output", "input",
	"force", "debug", "port", "host", "timeout", "retry",
}

func BenchmarkMatcher_Best(b *testing.B) {
	matcher := fuzzy.NewMatcher(2)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		matcher.Best("verbos", switchNames)
	}
}

func BenchmarkMatcher_Matches(b *testing.B) {
	matcher := fuzzy.NewMatcher(2)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		matcher.Matches("ver", switchNames)
	}
}

func BenchmarkConvenienceFunctions(b *testing.B) {
	b.Run("FindBestFlag", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			fuzzy.FindBestFlag("tiemout", switchNames, 2)
		}
	})
	b.Run("FindSuggestions", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			fuzzy.FindSuggestions("ver", switchNames, 2, 3)
		}
	})
}
