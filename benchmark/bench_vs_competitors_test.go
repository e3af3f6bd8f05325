package benchmark_test

import (
	"testing"

	"github.com/dzonerzy/go-clap/clap"
	flags "github.com/jessevdk/go-flags"
	"github.com/spf13/cobra"
	"github.com/urfave/cli/v2"
)

// Benchmark simple CLI with an int option, a bool flag and one positional.
// Every library parses the same tokens into the same three values.

func BenchmarkSimpleCLI_Clap(b *testing.B) {
	var port int
	var verbose bool
	var target string
	bl := clap.New("bench")
	bl.IntOption("port", &port).Short('p').Long("").Default(8080)
	bl.BoolFlag("verbose", &verbose).Short('v').Long("")
	bl.StringArg("target", &target)
	s := bl.MustBuild()

	args := []string{"bench", "--port", "9000", "--verbose", "prod"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = s.TryParse(args)
	}
}

func BenchmarkSimpleCLI_Cobra(b *testing.B) {
	args := []string{"--port", "9000", "--verbose", "prod"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		rootCmd := &cobra.Command{
			Use:  "bench",
			Args: cobra.ExactArgs(1),
			Run:  func(_ *cobra.Command, _ []string) {},
		}
		rootCmd.Flags().IntP("port", "p", 8080, "Server port")
		rootCmd.Flags().BoolP("verbose", "v", false, "Verbose output")
		rootCmd.SetArgs(args)
		_ = rootCmd.Execute()
	}
}

func BenchmarkSimpleCLI_Urfave(b *testing.B) {
	args := []string{"bench", "--port", "9000", "--verbose", "prod"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		app := &cli.App{
			Name: "bench",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 8080, Usage: "Server port"},
				&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "Verbose output"},
			},
			Action: func(_ *cli.Context) error { return nil },
		}
		_ = app.Run(args)
	}
}

func BenchmarkSimpleCLI_GoFlags(b *testing.B) {
	args := []string{"--port", "9000", "--verbose", "prod"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		var opts struct {
			Port    int  `short:"p" long:"port" default:"8080" description:"Server port"`
			Verbose bool `short:"v" long:"verbose" description:"Verbose output"`
		}
		_, _ = flags.ParseArgs(&opts, args)
	}
}

// Benchmark short clusters and attached values: -vvv -o out.txt -n5

func BenchmarkShortCluster_Clap(b *testing.B) {
	var verbose, num int
	var out string
	bl := clap.New("bench")
	bl.CountFlag("verbose", &verbose).Short('v')
	bl.StringOption("output", &out).Short('o')
	bl.IntOption("num", &num).Short('n')
	s := bl.MustBuild()

	args := []string{"bench", "-vvvo", "out.txt", "-n5"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = s.TryParse(args)
	}
}

func BenchmarkShortCluster_Cobra(b *testing.B) {
	args := []string{"-vvvo", "out.txt", "-n5"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		rootCmd := &cobra.Command{Use: "bench", Run: func(_ *cobra.Command, _ []string) {}}
		rootCmd.Flags().CountP("verbose", "v", "Verbosity")
		rootCmd.Flags().StringP("output", "o", "", "Output file")
		rootCmd.Flags().IntP("num", "n", 0, "Count")
		rootCmd.SetArgs(args)
		_ = rootCmd.Execute()
	}
}

func BenchmarkShortCluster_GoFlags(b *testing.B) {
	args := []string{"-vvvo", "out.txt", "-n5"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		var opts struct {
			Verbose []bool `short:"v"`
			Output  string `short:"o"`
			Num     int    `short:"n"`
		}
		_, _ = flags.ParseArgs(&opts, args)
	}
}

// Benchmark a repeated option plus trailing positionals after "--"

func BenchmarkMultiple_Clap(b *testing.B) {
	var tags, files []string
	bl := clap.New("bench")
	bl.StringsOption("tag", &tags).Short('t').Long("")
	bl.StringsArg("files", &files)
	s := bl.MustBuild()

	args := []string{"bench", "-ta", "--tag", "b", "--tag=c", "x.go", "--", "-y.go", "z.go"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = s.TryParse(args)
	}
}

func BenchmarkMultiple_Urfave(b *testing.B) {
	args := []string{"bench", "-t", "a", "--tag", "b", "--tag=c", "x.go", "--", "-y.go", "z.go"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		app := &cli.App{
			Name:   "bench",
			Flags:  []cli.Flag{&cli.StringSliceFlag{Name: "tag", Aliases: []string{"t"}}},
			Action: func(_ *cli.Context) error { return nil },
		}
		_ = app.Run(args)
	}
}

func BenchmarkMultiple_GoFlags(b *testing.B) {
	args := []string{"-ta", "--tag", "b", "--tag=c", "x.go", "--", "-y.go", "z.go"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		var opts struct {
			Tag []string `short:"t" long:"tag"`
		}
		_, _ = flags.ParseArgs(&opts, args)
	}
}
