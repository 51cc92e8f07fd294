package graphs

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// TextLoader loads a dataset from a plain text description.
//
// The format is line based. Lines starting with '#' and blank lines are
// skipped. A 'g <name>' line starts a new graph; 'n <label>' appends a node
// to the current graph; 'e <from> <to> <label>' appends an undirected edge
// between two previously declared nodes.
type TextLoader struct{}

var _ Loader = TextLoader{}

var errNoGraph = errors.New("node or edge outside of a graph")

// LoadDataset implements Loader.
func (TextLoader) LoadDataset(name, path string) (_ *Dataset, e error) {
	file, err := os.Open(path) // #nosec G304 -- explicit parameter
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset description: %w", err)
	}
	defer func() {
		if e2 := file.Close(); e2 != nil {
			e2 = fmt.Errorf("failed to close dataset description: %w", e2)
			if e == nil {
				e = e2
			} else {
				e = errors.Join(e, e2)
			}
		}
	}()

	dataset := &Dataset{Name: name}

	var current *Graph
	line := 0

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line++

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "g":
			if len(fields) != 2 {
				return nil, fmt.Errorf("line %d: expected 'g <name>'", line)
			}
			dataset.Graphs = append(dataset.Graphs, Graph{Name: fields[1]})
			current = &dataset.Graphs[len(dataset.Graphs)-1]
		case "n":
			if current == nil {
				return nil, fmt.Errorf("line %d: %w", line, errNoGraph)
			}
			if len(fields) != 2 {
				return nil, fmt.Errorf("line %d: expected 'n <label>'", line)
			}
			label, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid label: %w", line, err)
			}
			current.Labels = append(current.Labels, label)
		case "e":
			if current == nil {
				return nil, fmt.Errorf("line %d: %w", line, errNoGraph)
			}
			if len(fields) != 4 {
				return nil, fmt.Errorf("line %d: expected 'e <from> <to> <label>'", line)
			}
			var ints [3]int
			for i, field := range fields[1:] {
				value, err := strconv.Atoi(field)
				if err != nil {
					return nil, fmt.Errorf("line %d: invalid edge: %w", line, err)
				}
				ints[i] = value
			}
			if ints[0] < 0 || ints[0] >= current.NodeCount() || ints[1] < 0 || ints[1] >= current.NodeCount() {
				return nil, fmt.Errorf("line %d: edge endpoint out of range [0, %d)", line, current.NodeCount())
			}
			current.Edges = append(current.Edges, MakeEdge(ints[0], ints[1], ints[2]))
		default:
			return nil, fmt.Errorf("line %d: unknown directive %q", line, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dataset description: %w", err)
	}

	return dataset, nil
}
