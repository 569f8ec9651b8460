package queries

import (
	"embed"
	"fmt"
)

//go:embed delete/*.sql insert/*.sql schema/*.sql select/*.sql update/*.sql
var Files embed.FS

// ^^^ files are compiled into the binary, paths below are relative to this package

type DeleteQueries struct {
	ReferenceYieldsInRange string
	TradeRecordsInRange    string
}

type InsertQueries struct {
	AnalysisRun string
}

type SchemaQueries struct {
	CreateTables string
}

type SelectQueries struct {
	AnalysisRunById      string
	ReferenceYields      string
	TradeRecordsByIssuer string
}

type UpdateQueries struct {
	AnalysisRun string
}

type QueryHelperStruct struct {
	Delete DeleteQueries
	Insert InsertQueries
	Schema SchemaQueries
	Select SelectQueries
	Update UpdateQueries
}

var QueryHelper = QueryHelperStruct{
	Delete: DeleteQueries{
		ReferenceYieldsInRange: "delete/reference_yields_in_range.sql",
		TradeRecordsInRange:    "delete/trade_records_in_range.sql",
	},
	Insert: InsertQueries{
		AnalysisRun: "insert/analysis_run.sql",
	},
	Schema: SchemaQueries{
		CreateTables: "schema/create_tables.sql",
	},
	Select: SelectQueries{
		AnalysisRunById:      "select/analysis_run_by_id.sql",
		ReferenceYields:      "select/reference_yields.sql",
		TradeRecordsByIssuer: "select/trade_records_by_issuer.sql",
	},
	Update: UpdateQueries{
		AnalysisRun: "update/analysis_run.sql",
	},
}

func Get(path string) string {
	content, err := Files.ReadFile(path)
	if err != nil {
		panic(fmt.Errorf("error reading query file: %w", err))
	}

	return string(content)
}
