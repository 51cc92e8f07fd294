//spellchecker:words monitor
package monitor_test

//spellchecker:words encoding json httptest testing github gedpath internal monitor stats
import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/FAU-CDI/gedpath/internal/monitor"
	"github.com/FAU-CDI/gedpath/internal/stats"
)

func get(t *testing.T, handler http.Handler, path string, into any) {
	t.Helper()

	request := httptest.NewRequest(http.MethodGet, path, nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("GET %s = %d, want %d", path, recorder.Code, http.StatusOK)
	}
	if err := json.NewDecoder(recorder.Body).Decode(into); err != nil {
		t.Fatalf("GET %s: failed to decode body: %v", path, err)
	}
}

func TestMonitor(t *testing.T) {
	t.Parallel()

	st := stats.NewStats(io.Discard)
	defer st.Close()

	st.StoreDatasetStats(stats.DatasetStats{Name: "toy", Graphs: 5, Pairs: 10})
	_ = st.DoStage(stats.StageLoadDataset, func() error { return nil })
	st.Start(stats.StageCompute)
	st.SetCT(3, 20)

	router := monitor.New(st).Router()

	var dataset stats.DatasetStats
	get(t, router, "/api/dataset", &dataset)
	if dataset.Name != "toy" || dataset.Graphs != 5 || dataset.Pairs != 10 {
		t.Errorf("dataset = %+v", dataset)
	}

	var progress stats.Progress
	get(t, router, "/api/progress", &progress)
	if progress.Done {
		t.Error("progress reports done")
	}
	if progress.Stage != stats.StageCompute || progress.Current != 3 || progress.Total != 20 {
		t.Errorf("progress = %+v", progress)
	}

	var stages []struct {
		Stage stats.Stage
	}
	get(t, router, "/api/stages", &stages)
	if len(stages) != 2 {
		t.Fatalf("got %d stages, want 2", len(stages))
	}
	if stages[0].Stage != stats.StageLoadDataset || stages[1].Stage != stats.StageCompute {
		t.Errorf("stages = %+v", stages)
	}

	// unrelated paths are not served
	request := httptest.NewRequest(http.MethodGet, "/api/other", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	if recorder.Code == http.StatusOK {
		t.Error("GET /api/other succeeded")
	}
}
