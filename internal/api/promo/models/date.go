package models

import (
	"encoding/json"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// DateKind là loại giá trị ngày lưu trong document
type DateKind uint8

const (
	DateMissing     DateKind = iota // không có / null / không đọc được
	DateISOString                   // chuỗi ISO ("2024-03-01", RFC3339, ...)
	DateEpochMillis                 // Unix milliseconds (số, BSON datetime, timestamp object)
)

// isoLayouts các định dạng chuỗi ngày chấp nhận, thử lần lượt
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// DateValue là ngày có kiểu động trong document: chuỗi ISO, epoch millis hoặc không có.
// Zero value là DateMissing.
type DateValue struct {
	Kind   DateKind
	ISO    string
	Millis int64
}

// MissingDate trả về DateValue rỗng
func MissingDate() DateValue { return DateValue{} }

// ISODate tạo DateValue từ chuỗi
func ISODate(s string) DateValue {
	s = strings.TrimSpace(s)
	if s == "" {
		return DateValue{}
	}
	return DateValue{Kind: DateISOString, ISO: s}
}

// EpochMillisDate tạo DateValue từ Unix milliseconds
func EpochMillisDate(ms int64) DateValue {
	return DateValue{Kind: DateEpochMillis, Millis: ms}
}

// Normalize trả về thời điểm UTC; false khi thiếu hoặc chuỗi không parse được
func (d DateValue) Normalize() (time.Time, bool) {
	switch d.Kind {
	case DateEpochMillis:
		return time.UnixMilli(d.Millis).UTC(), true
	case DateISOString:
		for _, layout := range isoLayouts {
			if t, err := time.Parse(layout, d.ISO); err == nil {
				return t.UTC(), true
			}
		}
	}
	return time.Time{}, false
}

// IsMissing true khi không có ngày hợp lệ
func (d DateValue) IsMissing() bool {
	_, ok := d.Normalize()
	return !ok
}

// UnmarshalBSONValue đọc ngày từ string, số, BSON datetime/timestamp
// và object dạng {seconds, nanoseconds} hoặc {_seconds, _nanoseconds}.
// Kiểu khác được coi là Missing, không trả lỗi.
func (d *DateValue) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	*d = DateValue{}

	switch t {
	case bson.TypeString:
		if s, ok := rv.StringValueOK(); ok {
			*d = ISODate(s)
		}
	case bson.TypeInt32, bson.TypeInt64, bson.TypeDouble:
		if ms, ok := rawNumber(rv); ok {
			*d = EpochMillisDate(ms)
		}
	case bson.TypeDateTime:
		if ms, ok := rv.DateTimeOK(); ok {
			*d = EpochMillisDate(ms)
		}
	case bson.TypeTimestamp:
		if sec, _, ok := rv.TimestampOK(); ok {
			*d = EpochMillisDate(int64(sec) * 1000)
		}
	case bson.TypeEmbeddedDocument:
		doc, ok := rv.DocumentOK()
		if !ok {
			return nil
		}
		if ms, ok := timestampObjectMillis(doc); ok {
			*d = EpochMillisDate(ms)
		}
	}
	return nil
}

// MarshalBSONValue ghi ISO dưới dạng string, epoch millis dưới dạng BSON datetime, Missing là null
func (d DateValue) MarshalBSONValue() (bsontype.Type, []byte, error) {
	switch d.Kind {
	case DateISOString:
		return bson.TypeString, bsoncore.AppendString(nil, d.ISO), nil
	case DateEpochMillis:
		return bson.TypeDateTime, bsoncore.AppendDateTime(nil, d.Millis), nil
	}
	return bson.TypeNull, nil, nil
}

// MarshalJSON trả về RFC3339 hoặc null
func (d DateValue) MarshalJSON() ([]byte, error) {
	t, ok := d.Normalize()
	if !ok {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}

func timestampObjectMillis(doc bson.Raw) (int64, bool) {
	for _, keys := range [][2]string{{"seconds", "nanoseconds"}, {"_seconds", "_nanoseconds"}} {
		secVal, err := doc.LookupErr(keys[0])
		if err != nil {
			continue
		}
		sec, ok := rawNumber(secVal)
		if !ok {
			continue
		}
		var nanos int64
		if nsVal, err := doc.LookupErr(keys[1]); err == nil {
			nanos, _ = rawNumber(nsVal)
		}
		return sec*1000 + nanos/int64(time.Millisecond), true
	}
	return 0, false
}

func rawNumber(rv bson.RawValue) (int64, bool) {
	if v, ok := rv.Int32OK(); ok {
		return int64(v), true
	}
	if v, ok := rv.Int64OK(); ok {
		return v, true
	}
	if v, ok := rv.DoubleOK(); ok {
		return int64(v), true
	}
	return 0, false
}
