// Package codec turns a model.Value into bytes for backends that only store
// byte strings. The envelope keeps the kind tag next to the JSON payload so
// a bool never comes back as an object.
package codec

import (
	"encoding/json"
	"fmt"

	"github.com/TykTechnologies/preferences/model"
	"github.com/TykTechnologies/preferences/preferr"
)

type envelope struct {
	Kind  string          `json:"kind"`
	Value json.RawMessage `json:"value"`
}

// Encode fails with preferr.UnsupportedValue when an object payload has no
// JSON representation.
func Encode(v model.Value) ([]byte, error) {
	if !v.IsValid() {
		return nil, fmt.Errorf("%w: zero value", preferr.UnsupportedValue)
	}

	payload, err := json.Marshal(v.Payload())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", preferr.UnsupportedValue, err)
	}

	return json.Marshal(envelope{Kind: v.Kind().String(), Value: payload})
}

// Decode returns preferr.CorruptValue for anything Encode could not have
// produced. Objects come back in their JSON-decoded form: numbers become
// float64, structs become maps.
func Decode(data []byte) (model.Value, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return model.Value{}, fmt.Errorf("%w: %v", preferr.CorruptValue, err)
	}

	kind, ok := model.ParseKind(env.Kind)
	if !ok {
		return model.Value{}, fmt.Errorf("%w: unknown kind %q", preferr.CorruptValue, env.Kind)
	}

	switch kind {
	case model.KindBool:
		var b bool
		if err := json.Unmarshal(env.Value, &b); err != nil {
			return model.Value{}, fmt.Errorf("%w: %v", preferr.CorruptValue, err)
		}

		return model.BoolValue(b), nil
	case model.KindInteger:
		var i int
		if err := json.Unmarshal(env.Value, &i); err != nil {
			return model.Value{}, fmt.Errorf("%w: %v", preferr.CorruptValue, err)
		}

		return model.IntegerValue(i), nil
	default:
		var obj interface{}
		if err := json.Unmarshal(env.Value, &obj); err != nil {
			return model.Value{}, fmt.Errorf("%w: %v", preferr.CorruptValue, err)
		}

		return model.ObjectValue(obj), nil
	}
}
