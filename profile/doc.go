// Package profile provides optional runtime profiling for bucond.
//
// Profiling is built on [github.com/pkg/profile] and must be enabled at build
// time with the "pprof" build tag:
//
//	go build -tags pprof .
//
// Without the tag, [Modes] is empty and [Profiler.Start] does nothing.
//
// A profiler is configured with options and started once:
//
//	p := profile.New(profile.WithMode("cpu"), profile.WithPath("/tmp/prof"))
//	defer p.Start().Stop()
//
// The profile is written to the directory Path under the name of the mode
// (cpu.pprof, mem.pprof, ...) and can be read with go tool pprof:
//
//	go tool pprof -http=: /tmp/prof/cpu.pprof
//
// The supported modes are allocs, block, clock, cpu, goroutine, heap, mem,
// mutex, thread and trace.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
