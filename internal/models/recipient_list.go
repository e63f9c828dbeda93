package models

import (
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// RecipientList holds Telegram chat ids as strings. Chat ids are integers on
// the Bot API side and older or hand-edited settings store them as numbers,
// so decoding accepts numeric elements and renders them in decimal.
type RecipientList []string

func (l *RecipientList) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.Null, bsontype.Undefined:
		*l = nil
		return nil
	case bsontype.Array:
	default:
		return fmt.Errorf("cannot decode %s into RecipientList", t)
	}

	values, err := bson.RawValue{Type: t, Value: data}.Array().Values()
	if err != nil {
		return err
	}
	out := make(RecipientList, 0, len(values))
	for i, v := range values {
		id, err := chatIDString(v)
		if err != nil {
			return fmt.Errorf("telegramChatIds.%d: %w", i, err)
		}
		out = append(out, id)
	}
	*l = out
	return nil
}

func chatIDString(v bson.RawValue) (string, error) {
	switch v.Type {
	case bsontype.String:
		return v.StringValue(), nil
	case bsontype.Int32:
		return strconv.FormatInt(int64(v.Int32()), 10), nil
	case bsontype.Int64:
		return strconv.FormatInt(v.Int64(), 10), nil
	case bsontype.Double:
		return strconv.FormatFloat(v.Double(), 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("unsupported chat id type %s", v.Type)
	}
}

// MarshalBSONValue always writes an array of strings.
func (l RecipientList) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if l == nil {
		return bson.MarshalValue([]string{})
	}
	return bson.MarshalValue([]string(l))
}
