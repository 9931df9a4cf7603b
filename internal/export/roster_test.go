package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type rosterRow struct {
	ID        int64
	FullName  string
	Email     string
	JobTitles string
	Salary    int64
}

func TestLoadTemplate_Default(t *testing.T) {
	tmpl, err := LoadTemplate("")
	require.NoError(t, err)
	assert.Equal(t, "Roster", tmpl.SheetName)
	assert.Equal(t, "FullName", tmpl.Columns[1].FieldName)
	assert.True(t, tmpl.AutoFilter)
}

func TestParseTemplate_Errors(t *testing.T) {
	_, err := ParseTemplate([]byte("sheet_name: x\n"))
	assert.Error(t, err, "no columns")

	_, err = ParseTemplate([]byte("columns:\n  - header: Name\n"))
	assert.Error(t, err, "missing field_name")

	_, err = ParseTemplate([]byte("columns:\n  - field_name: ID\n    colour: red\n"))
	assert.Error(t, err, "unknown keys are rejected")

	tmpl, err := ParseTemplate([]byte("columns:\n  - field_name: ID\n"))
	require.NoError(t, err)
	assert.Equal(t, "Sheet1", tmpl.SheetName)
	assert.Equal(t, "ID", tmpl.Columns[0].Header)
}

func TestLoadTemplate_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sheet_name: People\ncolumns:\n  - field_name: FullName\n    header: Who\n"), 0o644))

	tmpl, err := LoadTemplate(path)
	require.NoError(t, err)
	assert.Equal(t, "People", tmpl.SheetName)

	_, err = LoadTemplate(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestExporter_ToBytes(t *testing.T) {
	tmpl, err := ParseTemplate([]byte(`
sheet_name: Roster
title: Employees
columns:
  - field_name: ID
  - field_name: FullName
    header: Name
  - field_name: JobTitles
    header: Jobs
  - field_name: Missing
    header: Missing
  - field_name: Salary
    number_format: "0"
`))
	require.NoError(t, err)

	rows := []rosterRow{
		{ID: 1, FullName: "Ada Lovelace", JobTitles: "Engineer, Lead", Salary: 120},
		{ID: 2, FullName: "Alan Turing", Salary: 99},
	}
	data, err := NewExporter(tmpl).ToBytes(rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Roster"}, f.GetSheetList())
	cell := func(ref string) string {
		v, err := f.GetCellValue("Roster", ref)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, "Employees", cell("A1"))
	assert.Equal(t, "ID", cell("A2"))
	assert.Equal(t, "Name", cell("B2"))
	assert.Equal(t, "Ada Lovelace", cell("B3"))
	assert.Equal(t, "Engineer, Lead", cell("C3"))
	assert.Equal(t, "", cell("D3"))
	assert.Equal(t, "99", cell("E4"))
}

func TestExporter_RenderAcceptsPointersAndMaps(t *testing.T) {
	tmpl, err := ParseTemplate([]byte("columns:\n  - field_name: FullName\n"))
	require.NoError(t, err)
	exp := NewExporter(tmpl)

	f, err := exp.Render([]*rosterRow{{FullName: "Grace Hopper"}, nil})
	require.NoError(t, err)
	v, _ := f.GetCellValue("Sheet1", "A2")
	assert.Equal(t, "Grace Hopper", v)
	f.Close()

	f, err = exp.Render([]map[string]interface{}{{"FullName": "Barbara Liskov"}})
	require.NoError(t, err)
	v, _ = f.GetCellValue("Sheet1", "A2")
	assert.Equal(t, "Barbara Liskov", v)
	f.Close()

	_, err = exp.Render(rosterRow{})
	assert.Error(t, err)
}
