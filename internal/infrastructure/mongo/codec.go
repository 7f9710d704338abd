package mongo

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Los documentos vienen del front original: ids como ObjectID o string y números sin tipo fijo.
// Estos helpers los llevan a los tipos del dominio.

// idString representa un _id como texto (hex para ObjectID).
func idString(v bson.RawValue) string {
	switch v.Type {
	case bsontype.ObjectID:
		return v.ObjectID().Hex()
	case bsontype.String:
		return v.StringValue()
	case bsontype.Int32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case bsontype.Int64:
		return strconv.FormatInt(v.Int64(), 10)
	case bsontype.Double:
		return strconv.FormatFloat(v.Double(), 'f', -1, 64)
	}
	return ""
}

// idCandidates valores posibles de _id para un id en texto: el string y, si es hex válido, el ObjectID.
func idCandidates(ids ...string) bson.A {
	out := make(bson.A, 0, 2*len(ids))
	for _, id := range ids {
		out = append(out, id)
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
	}
	return out
}

// byMerchantAndIDs filtro por comercio y lista de ids.
func byMerchantAndIDs(merchantID string, ids ...string) bson.M {
	return bson.M{"merchantId": merchantID, "_id": bson.M{"$in": idCandidates(ids...)}}
}

// decimalFromRaw convierte un número BSON (o string numérico) a decimal; ausente o null es cero.
func decimalFromRaw(v bson.RawValue) (decimal.Decimal, error) {
	switch v.Type {
	case 0, bsontype.Null, bsontype.Undefined:
		return decimal.Zero, nil
	case bsontype.Int32:
		return decimal.NewFromInt32(v.Int32()), nil
	case bsontype.Int64:
		return decimal.NewFromInt(v.Int64()), nil
	case bsontype.Double:
		return decimal.NewFromFloat(v.Double()), nil
	case bsontype.Decimal128:
		return decimal.NewFromString(v.Decimal128().String())
	case bsontype.String:
		return decimal.NewFromString(v.StringValue())
	}
	return decimal.Zero, fmt.Errorf("tipo numérico no soportado: %s", v.Type)
}

// textFromRaw representa un escalar como texto (número de mesa o de pedido pueden ser numéricos).
func textFromRaw(v bson.RawValue) string {
	if v.Type == bsontype.String {
		return v.StringValue()
	}
	return idString(v)
}

// decodeViaJSON decodifica un subdocumento con los UnmarshalJSON del dominio pasando por Extended JSON
// relajado. Los ObjectID llegan como {"$oid": ...} y entity.NormalizeDishID los acepta.
func decodeViaJSON(v bson.RawValue, dst any) error {
	if v.Type == 0 || v.Type == bsontype.Null {
		return nil
	}
	ext, err := bson.MarshalExtJSON(bson.D{{Key: "v", Value: v}}, false, false)
	if err != nil {
		return fmt.Errorf("extjson: %w", err)
	}
	var wrap struct {
		V json.RawMessage `json:"v"`
	}
	if err := json.Unmarshal(ext, &wrap); err != nil {
		return err
	}
	return json.Unmarshal(wrap.V, dst)
}
