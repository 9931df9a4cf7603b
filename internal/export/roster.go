// Package export renders employee rosters as xlsx workbooks. The layout is
// described by a YAML template; a default template is embedded.
package export

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v2"
)

//go:embed default_roster.yaml
var defaultTemplate []byte

// Template is the YAML layout of a roster sheet.
type Template struct {
	SheetName   string         `yaml:"sheet_name"`
	Title       string         `yaml:"title"`
	TitleStyle  *StyleTemplate `yaml:"title_style"`
	HeaderStyle *StyleTemplate `yaml:"header_style"`
	AutoFilter  bool           `yaml:"auto_filter"`
	Columns     []ColumnConfig `yaml:"columns"`
}

// ColumnConfig maps a struct field (or map key) to a column.
type ColumnConfig struct {
	FieldName    string  `yaml:"field_name"`
	Header       string  `yaml:"header"`
	Width        float64 `yaml:"width"`
	NumberFormat string  `yaml:"number_format"`
}

type StyleTemplate struct {
	Font *FontTemplate `yaml:"font"`
	Fill *FillTemplate `yaml:"fill"`
}

type FontTemplate struct {
	Bold  bool   `yaml:"bold"`
	Color string `yaml:"color"` // hex, leading # optional
}

type FillTemplate struct {
	Color string `yaml:"color"`
}

// ParseTemplate decodes and validates a YAML template.
func ParseTemplate(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.UnmarshalStrict(data, &tmpl); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if len(tmpl.Columns) == 0 {
		return nil, fmt.Errorf("template declares no columns")
	}
	for i, col := range tmpl.Columns {
		if col.FieldName == "" {
			return nil, fmt.Errorf("column %d has no field_name", i+1)
		}
		if col.Header == "" {
			tmpl.Columns[i].Header = col.FieldName
		}
	}
	if tmpl.SheetName == "" {
		tmpl.SheetName = "Sheet1"
	}
	return &tmpl, nil
}

// LoadTemplate reads the template at path, or the embedded default when
// path is empty.
func LoadTemplate(path string) (*Template, error) {
	if path == "" {
		return ParseTemplate(defaultTemplate)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open yaml file: %w", err)
	}
	return ParseTemplate(data)
}

// Exporter renders slices of structs with a Template.
type Exporter struct {
	tmpl *Template
}

func NewExporter(tmpl *Template) *Exporter {
	return &Exporter{tmpl: tmpl}
}

// Render builds a workbook from rows, which must be a slice of structs, of
// pointers to structs, or of map[string]interface{}.
func (e *Exporter) Render(rows interface{}) (*excelize.File, error) {
	val := reflect.ValueOf(rows)
	if val.Kind() != reflect.Slice {
		return nil, fmt.Errorf("rows must be a slice, got %T", rows)
	}

	f := excelize.NewFile()
	sheet := e.tmpl.SheetName
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		f.Close()
		return nil, err
	}

	if err := e.render(f, sheet, val); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func (e *Exporter) render(f *excelize.File, sheet string, rows reflect.Value) error {
	cols := e.tmpl.Columns
	row := 1

	if e.tmpl.Title != "" {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetCellValue(sheet, cell, e.tmpl.Title); err != nil {
			return err
		}
		last, _ := excelize.CoordinatesToCellName(len(cols), row)
		if len(cols) > 1 {
			if err := f.MergeCell(sheet, cell, last); err != nil {
				return err
			}
		}
		if err := applyStyle(f, sheet, cell, last, e.tmpl.TitleStyle, ""); err != nil {
			return err
		}
		row++
	}

	headerRow := row
	for i, col := range cols {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		if err := f.SetCellValue(sheet, cell, col.Header); err != nil {
			return err
		}
		if col.Width > 0 {
			name, _ := excelize.ColumnNumberToName(i + 1)
			if err := f.SetColWidth(sheet, name, name, col.Width); err != nil {
				return err
			}
		}
	}
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(len(cols), row)
	if err := applyStyle(f, sheet, first, last, e.tmpl.HeaderStyle, ""); err != nil {
		return err
	}
	row++

	for i := 0; i < rows.Len(); i++ {
		item := rows.Index(i)
		for j, col := range cols {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			if err := f.SetCellValue(sheet, cell, extractValue(item, col.FieldName)); err != nil {
				return err
			}
		}
		row++
	}

	if rows.Len() > 0 {
		for j, col := range cols {
			if col.NumberFormat == "" {
				continue
			}
			top, _ := excelize.CoordinatesToCellName(j+1, headerRow+1)
			bottom, _ := excelize.CoordinatesToCellName(j+1, row-1)
			if err := applyStyle(f, sheet, top, bottom, nil, col.NumberFormat); err != nil {
				return err
			}
		}
	}

	if e.tmpl.AutoFilter {
		end, _ := excelize.CoordinatesToCellName(len(cols), max(row-1, headerRow))
		if err := f.AutoFilter(sheet, first+":"+end, nil); err != nil {
			return err
		}
	}
	return nil
}

// ToBytes renders rows and returns the xlsx payload.
func (e *Exporter) ToBytes(rows interface{}) ([]byte, error) {
	f, err := e.Render(rows)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func extractValue(item reflect.Value, fieldName string) interface{} {
	for item.Kind() == reflect.Ptr || item.Kind() == reflect.Interface {
		if item.IsNil() {
			return ""
		}
		item = item.Elem()
	}
	switch item.Kind() {
	case reflect.Struct:
		if f := item.FieldByName(fieldName); f.IsValid() && f.CanInterface() {
			return f.Interface()
		}
	case reflect.Map:
		if item.Type().Key().Kind() == reflect.String {
			if v := item.MapIndex(reflect.ValueOf(fieldName)); v.IsValid() {
				return v.Interface()
			}
		}
	}
	return ""
}

func applyStyle(f *excelize.File, sheet, from, to string, tmpl *StyleTemplate, numFmt string) error {
	if tmpl == nil && numFmt == "" {
		return nil
	}
	style := &excelize.Style{}
	if tmpl != nil && tmpl.Font != nil {
		style.Font = &excelize.Font{
			Bold:  tmpl.Font.Bold,
			Color: strings.TrimPrefix(tmpl.Font.Color, "#"),
		}
	}
	if tmpl != nil && tmpl.Fill != nil {
		style.Fill = excelize.Fill{
			Type:    "pattern",
			Color:   []string{strings.TrimPrefix(tmpl.Fill.Color, "#")},
			Pattern: 1,
		}
	}
	if numFmt != "" {
		style.CustomNumFmt = &numFmt
	}
	id, err := f.NewStyle(style)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, from, to, id)
}
