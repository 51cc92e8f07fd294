// Package pathstats derives aggregate statistics over collections of edit
// paths.
//
// Paths of different lengths are made comparable by mapping every operation
// position onto a fixed number of equal-width buckets.
package pathstats

import (
	"math"

	"github.com/FAU-CDI/gedpath/internal/editpath"
	"github.com/FAU-CDI/gedpath/internal/ged"
)

//spellchecker:words stddev

// Buckets is the number of equal-width position bins operations are
// normalized into.
const Buckets = 10

// Bucket maps the zero-based operation index i of a path with length
// operations onto a bucket in [0, Buckets).
func Bucket(i, length int) int {
	bucket := int(math.Floor(float64(i) / (float64(length) / Buckets)))
	if bucket > Buckets-1 {
		bucket = Buckets - 1
	}
	return bucket
}

// ValueStats summarizes a numeric sample.
type ValueStats struct {
	Count  int
	Mean   float64
	Stddev float64 // population standard deviation
	Min    float64
	Max    float64
}

// Describe computes the ValueStats of the given sample.
func Describe(values []float64) (stats ValueStats) {
	stats.Count = len(values)
	if stats.Count == 0 {
		return
	}

	stats.Min = values[0]
	stats.Max = values[0]

	var sum float64
	for _, value := range values {
		sum += value
		if value < stats.Min {
			stats.Min = value
		}
		if value > stats.Max {
			stats.Max = value
		}
	}
	stats.Mean = sum / float64(stats.Count)

	var squares float64
	for _, value := range values {
		delta := value - stats.Mean
		squares += delta * delta
	}
	stats.Stddev = math.Sqrt(squares / float64(stats.Count))

	return
}

// PathSummary holds the per-path measurements of a single edit path.
type PathSummary struct {
	Source ged.GraphID
	Target ged.GraphID

	// Length is the number of operations; the path holds Length+1 graphs.
	Length int

	// per intermediate graph, including both endpoints
	NodeCounts []int
	EdgeCounts []int
	Connected  []bool

	// Totals counts the operations per kind, indexed like editpath.Kinds.
	Totals [6]int

	// Positions holds the literal zero-based operation positions per kind.
	Positions [6][]int

	// Disconnected is the fraction of intermediate graphs that are not
	// connected.
	Disconnected float64
}

// Sample is one exported statistic: its name, the raw sample values, and
// their summary.
type Sample struct {
	Name   string
	Values []float64
	Stats  ValueStats
}

// Report is the result of analyzing a collection of edit paths.
type Report struct {
	Paths []PathSummary

	// Histogram counts all operations by normalized position.
	Histogram [Buckets]int

	// KindHistograms are per-kind position histograms, indexed like
	// editpath.Kinds.
	KindHistograms [6][Buckets]int

	// Samples holds every exported statistic in a fixed order.
	Samples []Sample
}

// Analyze derives a report over the given paths.
func Analyze(paths []editpath.Path) *Report {
	report := &Report{
		Paths: make([]PathSummary, 0, len(paths)),
	}

	var nodeCounts, edgeCounts []float64
	var operationCounts, pathLengths []float64
	var kindTotals [6][]float64
	var disconnected []float64

	for _, path := range paths {
		summary := summarize(path)

		for i, count := range summary.NodeCounts {
			nodeCounts = append(nodeCounts, float64(count))
			edgeCounts = append(edgeCounts, float64(summary.EdgeCounts[i]))
		}
		operationCounts = append(operationCounts, float64(summary.Length))
		pathLengths = append(pathLengths, float64(summary.Length))
		for kind, total := range summary.Totals {
			kindTotals[kind] = append(kindTotals[kind], float64(total))
		}
		disconnected = append(disconnected, summary.Disconnected)

		for _, entry := range path.Entries {
			bucket := Bucket(entry.Step, summary.Length)
			report.Histogram[bucket]++
			report.KindHistograms[editpath.KindIndex(entry.Op)][bucket]++
		}

		report.Paths = append(report.Paths, summary)
	}

	report.Samples = []Sample{
		{Name: "NodeCounts", Values: nodeCounts},
		{Name: "EdgeCounts", Values: edgeCounts},
		{Name: "OperationCounts", Values: operationCounts},
		{Name: "PathLengths", Values: pathLengths},
	}
	for kind, values := range kindTotals {
		report.Samples = append(report.Samples, Sample{
			Name:   editpath.Kinds[kind].String() + "s",
			Values: values,
		})
	}
	report.Samples = append(report.Samples, Sample{Name: "DisconnectedFraction", Values: disconnected})

	for i := range report.Samples {
		report.Samples[i].Stats = Describe(report.Samples[i].Values)
	}

	return report
}

// summarize measures a single path.
func summarize(path editpath.Path) PathSummary {
	summary := PathSummary{
		Source: path.Source,
		Target: path.Target,
		Length: path.Len(),

		NodeCounts: make([]int, 0, len(path.Graphs)),
		EdgeCounts: make([]int, 0, len(path.Graphs)),
		Connected:  make([]bool, 0, len(path.Graphs)),
	}

	var broken int
	for i := range path.Graphs {
		graph := &path.Graphs[i]
		summary.NodeCounts = append(summary.NodeCounts, graph.NodeCount())
		summary.EdgeCounts = append(summary.EdgeCounts, graph.EdgeCount())

		connected := graph.IsConnected()
		summary.Connected = append(summary.Connected, connected)
		if !connected {
			broken++
		}
	}
	if len(path.Graphs) > 0 {
		summary.Disconnected = float64(broken) / float64(len(path.Graphs))
	}

	for i, entry := range path.Entries {
		kind := editpath.KindIndex(entry.Op)
		summary.Totals[kind]++
		summary.Positions[kind] = append(summary.Positions[kind], i)
	}

	return summary
}
