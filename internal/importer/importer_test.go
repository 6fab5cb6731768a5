package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Label,Width,Height,Qty\nShelf,600,300,2\nDoor,400,800,1\n")
	got := DetectCSVDelimiter(data)
	if got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Label;Width;Height;Qty\nShelf;600;300;2\nDoor;400;800;1\n")
	got := DetectCSVDelimiter(data)
	if got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Label\tWidth\tHeight\tQty\nShelf\t600\t300\t2\nDoor\t400\t800\t1\n")
	got := DetectCSVDelimiter(data)
	if got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Pipe(t *testing.T) {
	data := []byte("Label|Width|Height|Qty\nShelf|600|300|2\nDoor|400|800|1\n")
	got := DetectCSVDelimiter(data)
	if got != '|' {
		t.Errorf("expected pipe delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	row := []string{"Label", "Width", "Height", "Quantity", "Rotate"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Label != 0 {
		t.Errorf("expected Label at 0, got %d", mapping.Label)
	}
	if mapping.Width != 1 {
		t.Errorf("expected Width at 1, got %d", mapping.Width)
	}
	if mapping.Height != 2 {
		t.Errorf("expected Height at 2, got %d", mapping.Height)
	}
	if mapping.Quantity != 3 {
		t.Errorf("expected Quantity at 3, got %d", mapping.Quantity)
	}
	if mapping.Rotate != 4 {
		t.Errorf("expected Rotate at 4, got %d", mapping.Rotate)
	}
}

func TestDetectColumns_CaseInsensitiveAliases(t *testing.T) {
	row := []string{"NAME", "W", "H", "QTY", "CAN_ROTATE"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Label != 0 || mapping.Width != 1 || mapping.Height != 2 ||
		mapping.Quantity != 3 || mapping.Rotate != 4 {
		t.Errorf("unexpected mapping: %+v", mapping)
	}
}

func TestDetectColumns_ShuffledOrder(t *testing.T) {
	row := []string{"Qty", "Height", "Width", "Part"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Quantity != 0 || mapping.Height != 1 || mapping.Width != 2 || mapping.Label != 3 {
		t.Errorf("unexpected mapping: %+v", mapping)
	}
	if mapping.Rotate != -1 {
		t.Errorf("expected no rotate column, got %d", mapping.Rotate)
	}
}

func TestDetectColumns_NoHeaderFallsBackToPositional(t *testing.T) {
	row := []string{"Shelf", "600", "300", "2"}
	mapping, isHeader := DetectColumns(row)

	if isHeader {
		t.Error("numeric row must not be treated as a header")
	}
	if mapping.Label != 0 || mapping.Width != 1 || mapping.Height != 2 || mapping.Quantity != 3 {
		t.Errorf("unexpected positional mapping: %+v", mapping)
	}
}

// ─── CSV Import Tests ──────────────────────────────────────

func TestImportCSV_WithHeader(t *testing.T) {
	path := writeTempFile(t, "pieces.csv",
		"Label,Width,Height,Qty,Rotate\nShelf,600,300,2,yes\nDoor,400,800,1,no\n")

	result := ImportCSV(path)

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Pieces) != 2 {
		t.Fatalf("expected 2 pieces, got %d", len(result.Pieces))
	}

	shelf := result.Pieces[0]
	if shelf.Label != "Shelf" || shelf.Size.W != 600 || shelf.Size.H != 300 || shelf.Quantity != 2 {
		t.Errorf("unexpected shelf: %+v", shelf)
	}
	if !shelf.CanRotate {
		t.Error("shelf should be rotatable")
	}
	if result.Pieces[1].CanRotate {
		t.Error("door should not be rotatable")
	}
}

func TestImportCSV_SemicolonDelimited(t *testing.T) {
	path := writeTempFile(t, "pieces.csv",
		"Label;Width;Height;Qty\nShelf;600;300;2\n")

	result := ImportCSV(path)

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Pieces) != 1 {
		t.Fatalf("expected 1 piece, got %d", len(result.Pieces))
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "semicolon") {
			found = true
		}
	}
	if !found {
		t.Error("expected a delimiter warning")
	}
}

func TestImportCSV_RowErrorsAreCollectedNotFatal(t *testing.T) {
	path := writeTempFile(t, "pieces.csv",
		"Label,Width,Height,Qty\nGood,600,300,2\nBad,abc,300,2\nAlsoBad,100,100,0\n")

	result := ImportCSV(path)

	if len(result.Pieces) != 1 {
		t.Fatalf("expected 1 good piece, got %d", len(result.Pieces))
	}
	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 row errors, got %d: %v", len(result.Errors), result.Errors)
	}
}

func TestImportCSV_MissingRequiredColumn(t *testing.T) {
	path := writeTempFile(t, "pieces.csv", "Label,Width,Qty\nShelf,600,2\n")

	result := ImportCSV(path)

	if len(result.Errors) == 0 {
		t.Fatal("expected an error about the missing Height column")
	}
	if !strings.Contains(result.Errors[0], "Height") {
		t.Errorf("unexpected error: %s", result.Errors[0])
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	path := writeTempFile(t, "empty.csv", "")

	result := ImportCSV(path)
	if len(result.Errors) == 0 {
		t.Fatal("expected an error for an empty file")
	}
}

func TestImportCSVFromReader_UnknownRotateWarns(t *testing.T) {
	data := "Label,Width,Height,Qty,Rotate\nShelf,600,300,2,sideways\n"

	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Pieces) != 1 {
		t.Fatalf("expected 1 piece, got %d", len(result.Pieces))
	}
	if !result.Pieces[0].CanRotate {
		t.Error("unknown rotate value should default to rotatable")
	}
	warned := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "sideways") {
			warned = true
		}
	}
	if !warned {
		t.Error("expected a warning for the unknown rotate value")
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func TestImportExcel_Basic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pieces.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Label", "Width", "Height", "Qty"},
		{"Shelf", 600, 300, 2},
		{"Door", 400, 800, 1},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}

	result := ImportExcel(path)

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Pieces) != 2 {
		t.Fatalf("expected 2 pieces, got %d", len(result.Pieces))
	}
	if result.Pieces[1].Label != "Door" || result.Pieces[1].Quantity != 1 {
		t.Errorf("unexpected piece: %+v", result.Pieces[1])
	}
}

func TestImportExcel_MissingFile(t *testing.T) {
	result := ImportExcel(filepath.Join(t.TempDir(), "nope.xlsx"))
	if len(result.Errors) == 0 {
		t.Fatal("expected an error for a missing file")
	}
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}
