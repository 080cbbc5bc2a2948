package storage_utils

import (
	"errors"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"rds-mecr/utils"
)

func getRows() [][]any {
	return [][]any{
		{"a1", int64(1), true},
		{"a2", int64(2), false},
		{"a1", int64(3), false},
		{"a3", int64(1), true},
	}
}

func TestEncode(t *testing.T) {
	Convey("Encode", t, func() {
		rows := getRows()
		coded, encoder, err := Encode(rows)
		So(err, ShouldBeNil)
		So(len(coded), ShouldEqual, 3)
		So(encoder.ColumnSize(), ShouldEqual, 3)

		Convey("codes are dense per column", func() {
			for j, column := range coded {
				k := encoder.Column(j).Len()
				So(len(column), ShouldEqual, len(rows))
				for _, code := range column {
					So(code, ShouldBeGreaterThanOrEqualTo, 0)
					So(code, ShouldBeLessThan, k)
				}
			}
			So(encoder.Column(0).Len(), ShouldEqual, 3)
			So(encoder.Column(1).Len(), ShouldEqual, 3)
			So(encoder.Column(2).Len(), ShouldEqual, 2)
		})

		Convey("decode(lookup(v)) == v", func() {
			for _, row := range rows {
				for j, value := range row {
					code, ok := encoder.Lookup(j, value)
					So(ok, ShouldBeTrue)
					decoded, err := encoder.Decode(j, code)
					So(err, ShouldBeNil)
					So(decoded, ShouldEqual, value)
				}
			}
		})

		Convey("same value same code", func() {
			So(coded[0][0], ShouldEqual, coded[0][2])
			So(coded[0][0], ShouldNotEqual, coded[0][1])
			So(coded[1][0], ShouldEqual, coded[1][3])
		})

		Convey("encoding is deterministic", func() {
			again, _, err := Encode(getRows())
			So(err, ShouldBeNil)
			So(again, ShouldResemble, coded)
		})

		Convey("unknown code", func() {
			_, err := encoder.Decode(0, 3)
			So(errors.Is(err, utils.ErrUnknownCode), ShouldBeTrue)
			_, err = encoder.Decode(0, -1)
			So(errors.Is(err, utils.ErrUnknownCode), ShouldBeTrue)
			_, err = encoder.Decode(7, 0)
			So(errors.Is(err, utils.ErrUnknownCode), ShouldBeTrue)
			_, ok := encoder.Lookup(0, "a9")
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Encode bad input", t, func() {
		_, _, err := Encode(nil)
		So(errors.Is(err, utils.ErrEmptyDataset), ShouldBeTrue)

		_, _, err = Encode([][]any{{}})
		So(errors.Is(err, utils.ErrEmptyDataset), ShouldBeTrue)

		_, _, err = Encode([][]any{{1, 2}, {1}})
		So(errors.Is(err, utils.ErrShapeMismatch), ShouldBeTrue)

		_, _, err = Encode([][]any{{[]int{1}}})
		So(errors.Is(err, utils.ErrParameter), ShouldBeTrue)
	})
}

func TestColumnEncoderTransform(t *testing.T) {
	Convey("Transform", t, func() {
		c, err := NewColumnEncoder([]any{"x", "y", "x"})
		So(err, ShouldBeNil)
		codes, err := c.Transform([]any{"y", "x"})
		So(err, ShouldBeNil)
		So(codes[0], ShouldNotEqual, codes[1])

		_, err = c.Transform([]any{"z"})
		So(errors.Is(err, utils.ErrUnknownCode), ShouldBeTrue)
	})
}

func TestEncodeNaN(t *testing.T) {
	Convey("NaN values share one code", t, func() {
		c, err := NewColumnEncoder([]any{math.NaN(), math.NaN()})
		So(err, ShouldBeNil)
		So(c.Len(), ShouldEqual, 1)

		coded, encoder, err := Encode([][]any{{math.NaN()}, {"a"}, {math.NaN()}})
		So(err, ShouldBeNil)
		So(encoder.Column(0).Len(), ShouldEqual, 2)
		So(coded[0][0], ShouldEqual, coded[0][2])
		So(coded[0][1], ShouldNotEqual, coded[0][0])

		code, ok := encoder.Lookup(0, math.NaN())
		So(ok, ShouldBeTrue)
		So(code, ShouldEqual, coded[0][0])
		value, err := encoder.Decode(0, code)
		So(err, ShouldBeNil)
		So(math.IsNaN(value.(float64)), ShouldBeTrue)
	})
}
