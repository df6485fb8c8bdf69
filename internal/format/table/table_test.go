package table

import (
	"reflect"
	"testing"
)

func TestFormatPadsColumns(t *testing.T) {
	rows := [][]string{
		{"Employee", "Weight"},
		{"Thabo Nkosi", "72"},
		{"Li", "105.5"},
	}
	got := Format(rows, []Alignment{AlignLeft, AlignRight})
	want := []string{
		"Employee     Weight",
		"Thabo Nkosi      72",
		"Li            105.5",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected output:\n%q\nwant\n%q", got, want)
	}
}

func TestFormatMeasuresWideRunes(t *testing.T) {
	got := Format([][]string{{"東京", "x"}, {"ab", "y"}}, nil)
	if got[0] != "東京  x" || got[1] != "ab    y" {
		t.Fatalf("wide runes should count as two cells: %q", got)
	}
}

func TestFormatFillsShortRows(t *testing.T) {
	got := Format([][]string{{"a", "b", "c"}, {"d"}}, nil)
	if len(got) != 2 || got[1] != "d" {
		t.Fatalf("unexpected short row %q", got)
	}
}

func TestClipAndTruncate(t *testing.T) {
	rows := Clip([][]string{{"restrictions apply", "ok"}}, 8)
	if rows[0][0] != "restric…" || rows[0][1] != "ok" {
		t.Fatalf("unexpected clip %q", rows)
	}
	if Truncate("abc", 1) != "a" {
		t.Fatalf("single cell truncation keeps the first rune")
	}
	if Truncate("abc", 0) != "abc" {
		t.Fatalf("non-positive width leaves text untouched")
	}
}
