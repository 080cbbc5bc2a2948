package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCsv(t *testing.T) {
	Convey("write then read", t, func() {
		p := filepath.Join(t.TempDir(), "sub", "data.csv")
		So(CreateCsv(p, [][]string{{"a", "b", "label"}, {"1", "x", "1.5"}, {"2", "y", "0"}}), ShouldBeNil)

		headers, rows, err := ReadCsvTable(p)
		So(err, ShouldBeNil)
		So(headers, ShouldResemble, []string{"a", "b", "label"})
		So(rows, ShouldResemble, [][]any{{1, "x", 1.5}, {2, "y", 0}})

		data, err := GetCsvData(p)
		So(err, ShouldBeNil)
		So(data, ShouldHaveLength, 3)
	})

	Convey("non finite numbers stay strings", t, func() {
		p := filepath.Join(t.TempDir(), "nan.csv")
		So(CreateCsv(p, [][]string{{"a", "label"}, {"NaN", "1"}, {"nan", "0"}, {"Inf", "1"}, {"NaN", "0"}}), ShouldBeNil)
		_, rows, err := ReadCsvTable(p)
		So(err, ShouldBeNil)
		So(rows, ShouldResemble, [][]any{{"NaN", 1}, {"nan", 0}, {"Inf", 1}, {"NaN", 0}})
	})

	Convey("missing file", t, func() {
		_, _, err := ReadCsvTable(filepath.Join(t.TempDir(), "none.csv"))
		So(errors.Is(err, ErrOpenCsv), ShouldBeTrue)
		_, err = GetCsvData(filepath.Join(t.TempDir(), "none.csv"))
		So(errors.Is(err, ErrOpenCsv), ShouldBeTrue)
	})

	Convey("ragged rows", t, func() {
		p := filepath.Join(t.TempDir(), "bad.csv")
		So(os.WriteFile(p, []byte("a,b\n1,2\n3\n"), 0o644), ShouldBeNil)
		_, _, err := ReadCsvTable(p)
		So(errors.Is(err, ErrReadCsv), ShouldBeTrue)
	})
}

func TestGetInterfaceToString(t *testing.T) {
	Convey("value to string", t, func() {
		So(GetInterfaceToString(nil), ShouldEqual, "")
		So(GetInterfaceToString(1), ShouldEqual, "1")
		So(GetInterfaceToString(0.25), ShouldEqual, "0.25")
		So(GetInterfaceToString(int32(7)), ShouldEqual, "7")
		So(GetInterfaceToString("x"), ShouldEqual, "x")
		So(GetInterfaceToString(true), ShouldEqual, "true")
		So(Distinct([]string{"a", "b", "a"}), ShouldResemble, []string{"a", "b"})
	})
}
