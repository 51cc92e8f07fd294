package main

import (
	"database/sql"

	"github.com/FAU-CDI/gedpath/internal/ged"
	"github.com/FAU-CDI/gedpath/internal/pathstats"
	"github.com/FAU-CDI/gedpath/internal/pathstats/exporter"
	"github.com/FAU-CDI/gedpath/internal/stats"
	_ "github.com/glebarez/go-sqlite"
	_ "github.com/go-sql-driver/mysql"
)

const (
	sqliteMaxQueryVar = 32766 // see https://www.sqlite.org/limits.html
	sqlBatchSize      = 1000
)

func doSQL(proto, addr string, report *pathstats.Report, results []ged.Result, st *stats.Stats) {
	db, err := sql.Open(proto, addr)
	if err != nil {
		st.LogFatal("open sql", err)
	}

	err = st.DoStage(stats.StageExportSQL, func() error {
		export := &exporter.SQL{
			DB: db,

			BatchSize:   sqlBatchSize,
			MaxQueryVar: sqliteMaxQueryVar,
		}
		if err := export.Report(datasetName, report); err != nil {
			return err
		}
		return export.Results(datasetName+"_mappings", results)
	})
	if err != nil {
		st.LogFatal("export sql", err)
	}
}
