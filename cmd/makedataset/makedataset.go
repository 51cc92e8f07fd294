// Command makedataset converts a plain text dataset description into the
// preprocessed blob the other commands read.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/FAU-CDI/gedpath"
	"github.com/FAU-CDI/gedpath/internal/graphs"
	"github.com/FAU-CDI/gedpath/internal/stats"
)

func main() {
	st := stats.NewStats(os.Stderr)
	defer st.Close()

	if len(nArgs) != 1 || datasetName == "" {
		st.Log("Usage: makedataset [-help] [...flags] -dataset name /path/to/description.txt")
		os.Exit(1)
	}

	var dataset *graphs.Dataset
	err := st.DoStage(stats.StageLoadDataset, func() (err error) {
		dataset, err = graphs.TextLoader{}.LoadDataset(datasetName, nArgs[0])
		return
	})
	if err != nil {
		st.LogFatal("load description", err)
	}

	connected := 0
	for i := range dataset.Graphs {
		if dataset.Graphs[i].IsConnected() {
			connected++
		}
	}
	st.Log("parsed dataset", "name", dataset.Name, "graphs", dataset.Len(), "connected", connected)

	path := filepath.Join(out, datasetName+".bin")
	err = st.DoStage(stats.StageSaveStore, func() error {
		if err := os.MkdirAll(out, 0750); err != nil {
			return err
		}
		return graphs.SaveDataset(path, dataset)
	})
	if err != nil {
		st.LogFatal("save dataset", err)
	}

	st.Log("wrote dataset", "path", path)
}

// ===================

var nArgs []string
var datasetName string
var out = "."

func init() {
	var legalFlag bool = false
	flag.BoolVar(&legalFlag, "legal", legalFlag, "Display legal notices and exit")

	flag.StringVar(&datasetName, "dataset", datasetName, "Name of the dataset to create")
	flag.StringVar(&out, "out", out, "Directory to write the dataset blob to")

	defer func() {
		if legalFlag {
			fmt.Print(gedpath.LegalText())
			os.Exit(0)
		}
	}()

	flag.Parse()
	nArgs = flag.Args()
}
