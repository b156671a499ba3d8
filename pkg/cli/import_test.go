package cli_test

import (
	"bytes"
	"testing"

	"github.com/athelas-portal/athelas/pkg/cli"
	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/athelas-portal/athelas/pkg/usecase"
	"github.com/fatih/color"
	"github.com/m-mizutani/gt"
)

func TestPrintImportResult(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	var buf bytes.Buffer
	cli.PrintImportResult(&buf, usecase.EntityProjects, &model.ImportResult{
		Processed: 5,
		Created:   2,
		Updated:   1,
		Failed:    2,
		Errors: []model.RowError{
			{Row: 2, Key: "HOS-25-0101", Message: "invalid status"},
			{Row: 4, Message: "project_name is required"},
		},
	})

	out := buf.String()
	gt.S(t, out).Contains("Imported projects: 3 rows")
	gt.S(t, out).Contains("created: 2")
	gt.S(t, out).Contains("updated: 1")
	gt.S(t, out).Contains("failed:  2")
	gt.S(t, out).Contains("row 2 (HOS-25-0101): invalid status")
	gt.S(t, out).Contains("row 4: project_name is required")
}
