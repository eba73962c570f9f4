package tabular

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected []string
	}{
		{"Plain", "A,B,C", []string{"A", "B", "C"}},
		{"QuotedDelimiter", `A,"B,C",D`, []string{"A", "B,C", "D"}},
		{"EscapedQuote", `A,"B""C",D`, []string{"A", `B"C`, "D"}},
		{"EmptyTrailing", "A,,", []string{"A", "", ""}},
		{"Empty", "", []string{""}},
		{"UnterminatedQuote", `A,"B,C`, []string{"A", "B,C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLine(tt.line, ','); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ParseLine(%q) = %q, want %q", tt.line, got, tt.expected)
			}
		})
	}
}

func TestParse(t *testing.T) {
	text := " order_id , order_amount ,region\n" +
		"1,\"$1,200.50\", North \n" +
		"2,'$30'\n"

	rows := Parse(text)
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}

	if rows[0]["order_amount"] != "$1,200.50" {
		t.Errorf("Expected quoted amount to survive, got %q", rows[0]["order_amount"])
	}
	if rows[0]["region"] != "North" {
		t.Errorf("Expected trimmed region, got %q", rows[0]["region"])
	}
	if rows[1]["order_amount"] != "$30" {
		t.Errorf("Expected single quotes stripped, got %q", rows[1]["order_amount"])
	}
	if v, ok := rows[1]["region"]; !ok || v != "" {
		t.Errorf("Expected missing trailing field to be empty, got %q (present=%v)", v, ok)
	}
}

func TestParse_CarriageReturns(t *testing.T) {
	rows := Parse("a,b\r\n1,2\r\n")
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	if rows[0]["b"] != "2" {
		t.Errorf("Expected CR to be trimmed, got %q", rows[0]["b"])
	}
}

func TestParse_NoHeader(t *testing.T) {
	if rows := Parse(""); len(rows) != 0 {
		t.Errorf("Expected no rows for empty input, got %d", len(rows))
	}
	if rows := Parse("only,header"); len(rows) != 0 {
		t.Errorf("Expected no rows for header-only input, got %d", len(rows))
	}
}

func TestParseWithDelimiter(t *testing.T) {
	rows := ParseWithDelimiter("a;b\n\"x;y\";z", ';')
	if len(rows) != 1 || rows[0]["a"] != "x;y" || rows[0]["b"] != "z" {
		t.Errorf("Unexpected rows: %v", rows)
	}
}

func TestCleanValue(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`  "quoted"  `, "quoted"},
		{`'single'`, "single"},
		{`"`, ""},
		{`mid"dle`, `mid"dle`},
		{`""x""`, `"x"`},
	}
	for _, tt := range tests {
		if got := CleanValue(tt.in); got != tt.want {
			t.Errorf("CleanValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestReadWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drivers.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"driver_id", " driver_name ", "Trips"}); err != nil {
		t.Fatal(err)
	}
	if err := f.SetSheetRow(sheet, "A2", &[]interface{}{"D1", " Ana ", "12"}); err != nil {
		t.Fatal(err)
	}
	if err := f.SetSheetRow(sheet, "A3", &[]interface{}{"D2"}); err != nil {
		t.Fatal(err)
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	f.Close()

	rows, err := ReadWorkbook(path, "")
	if err != nil {
		t.Fatalf("ReadWorkbook failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if rows[0]["driver_name"] != "Ana" || rows[0]["Trips"] != "12" {
		t.Errorf("Unexpected first row: %v", rows[0])
	}
	if rows[1]["Trips"] != "" {
		t.Errorf("Expected short row to default to empty, got %q", rows[1]["Trips"])
	}
}

func TestReadWorkbook_Missing(t *testing.T) {
	if _, err := ReadWorkbook(filepath.Join(t.TempDir(), "nope.xlsx"), ""); err == nil {
		t.Error("Expected error for missing workbook")
	}
}
