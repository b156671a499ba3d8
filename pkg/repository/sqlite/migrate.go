package sqlite

import (
	"context"

	"github.com/athelas-portal/athelas/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"gorm.io/gorm"
)

// indexes lists the named indexes each table must carry.
var indexes = []struct {
	table any
	name  string
}{
	{&userRow{}, "idx_users_name"},
	{&projectRow{}, "idx_projects_project_code"},
	{&timeLogRow{}, "idx_time_logs_project_id"},
	{&timeLogRow{}, "idx_time_logs_user_id"},
	{&projectUpdateRow{}, "idx_project_updates_project_id"},
	{&milestoneRow{}, "idx_project_milestones_project_id"},
	{&statusReportRow{}, "idx_status_reports_project_id"},
}

// migrate creates missing tables, adds missing columns and creates missing
// indexes. Existing columns are never altered or dropped, so databases
// written by earlier versions keep their data untouched.
func migrate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)
	m := db.Migrator()
	logger := logging.From(ctx)

	for _, table := range allTables() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(table); err != nil {
			return goerr.Wrap(err, "failed to parse table schema")
		}
		name := stmt.Schema.Table

		if !m.HasTable(table) {
			if err := m.CreateTable(table); err != nil {
				return wrap(err, "failed to create table", goerr.V("table", name))
			}
			logger.Info("created table", "table", name)
			continue
		}

		for _, field := range stmt.Schema.Fields {
			if field.DBName == "" || m.HasColumn(table, field.DBName) {
				continue
			}
			if err := m.AddColumn(table, field.DBName); err != nil {
				return wrap(err, "failed to add column", goerr.V("table", name), goerr.V("column", field.DBName))
			}
			logger.Info("added column", "table", name, "column", field.DBName)
		}
	}

	for _, idx := range indexes {
		if m.HasIndex(idx.table, idx.name) {
			continue
		}
		if err := m.CreateIndex(idx.table, idx.name); err != nil {
			return wrap(err, "failed to create index", goerr.V("index", idx.name))
		}
		logger.Info("created index", "index", idx.name)
	}

	return nil
}
