// Package monitor exposes pipeline progress over http.
//
// It intentionally serves machine-readable snapshots only; rendering them is
// left to whatever is watching.
package monitor

import (
	"encoding/json"
	"net/http"

	"github.com/FAU-CDI/gedpath/internal/stats"
	"github.com/gorilla/mux"
)

// Monitor serves progress information about a running pipeline.
type Monitor struct {
	Stats *stats.Stats
}

// New creates a new Monitor for the given stats.
func New(st *stats.Stats) *Monitor {
	return &Monitor{Stats: st}
}

// Router returns the http handler serving this monitor.
func (monitor *Monitor) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/api/progress", monitor.serveProgress).Methods(http.MethodGet)
	router.HandleFunc("/api/stages", monitor.serveStages).Methods(http.MethodGet)
	router.HandleFunc("/api/dataset", monitor.serveDataset).Methods(http.MethodGet)
	return router
}

func (monitor *Monitor) serveProgress(w http.ResponseWriter, r *http.Request) {
	serveJSON(w, monitor.Stats.Progress())
}

func (monitor *Monitor) serveStages(w http.ResponseWriter, r *http.Request) {
	type stage struct {
		Stage   stats.Stage
		Current int
		Total   int
		Took    string
	}

	all := monitor.Stats.All()
	stages := make([]stage, len(all))
	for i, ss := range all {
		stages[i] = stage{
			Stage:   ss.Stage,
			Current: ss.Current,
			Total:   ss.Total,
			Took:    ss.Diff().Time.String(),
		}
	}
	serveJSON(w, stages)
}

func (monitor *Monitor) serveDataset(w http.ResponseWriter, r *http.Request) {
	serveJSON(w, monitor.Stats.DatasetStats())
}

func serveJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
