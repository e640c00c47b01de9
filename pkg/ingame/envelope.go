package ingame

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/DoyleJ11/lol-livedata/internal/schema"
)

const discriminantKey = "EventName"

// The key wrapping the event list is not contracted; "Events" is what the
// client sends today and what Encode writes.
const envelopeKey = "Events"

var eventDecoders = map[EventName]func([]byte) (GameEvent, error){
	EventAce:                 decodeVariant[Ace],
	EventBaronKill:           decodeVariant[BaronKill],
	EventChampionKill:        decodeVariant[ChampionKill],
	EventDragonKill:          decodeVariant[DragonKill],
	EventFirstBlood:          decodeVariant[FirstBlood],
	EventFirstBrick:          decodeVariant[FirstBrick],
	EventGameEnd:             decodeVariant[GameEnd],
	EventGameStart:           decodeVariant[GameStart],
	EventHeraldKill:          decodeVariant[HeraldKill],
	EventInhibKilled:         decodeVariant[InhibKilled],
	EventInhibRespawned:      decodeVariant[InhibRespawned],
	EventInhibRespawningSoon: decodeVariant[InhibRespawningSoon],
	EventMinionsSpawning:     decodeVariant[MinionsSpawning],
	EventMultikill:           decodeVariant[Multikill],
	EventTurretKilled:        decodeVariant[TurretKilled],
}

func eventOptions(name EventName) []schema.Option {
	return []schema.Option{
		schema.WithConvention(schema.PascalCase),
		schema.WithDiscriminant(discriminantKey, string(name)),
	}
}

func decodeVariant[T GameEvent](raw []byte) (GameEvent, error) {
	var ev T
	if err := schema.Unmarshal(raw, &ev, eventOptions(ev.EventName())...); err != nil {
		return nil, err
	}
	return ev, nil
}

// UnwrapEnvelope returns the value of a JSON object that has exactly one key,
// whatever that key is.
func UnwrapEnvelope(data []byte) (json.RawMessage, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedEventEnvelope)
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: expected object", ErrMalformedEventEnvelope)
	}

	var (
		keys  int
		inner gjson.Result
	)
	doc.ForEach(func(_, value gjson.Result) bool {
		keys++
		inner = value
		return true
	})
	if keys != 1 {
		return nil, fmt.Errorf("%w: expected 1 key, got %d", ErrMalformedEventEnvelope, keys)
	}
	return json.RawMessage(inner.Raw), nil
}

// DecodeEvents unwraps the events section and decodes every element in order.
func DecodeEvents(data []byte) ([]GameEvent, error) {
	list, err := UnwrapEnvelope(data)
	if err != nil {
		return nil, err
	}
	arr := gjson.ParseBytes(list)
	if !arr.IsArray() {
		return nil, &MismatchError{Reason: "expected array of events"}
	}

	items := arr.Array()
	events := make([]GameEvent, 0, len(items))
	for i, item := range items {
		ev, err := DecodeEvent([]byte(item.Raw))
		if err != nil {
			return nil, schema.Within(fmt.Sprintf("[%d]", i), err)
		}
		events = append(events, ev)
	}
	return events, nil
}

// DecodeEvent selects the variant from the EventName discriminant and decodes
// the record strictly. Unknown discriminants fail.
func DecodeEvent(raw []byte) (GameEvent, error) {
	name := gjson.GetBytes(raw, discriminantKey)
	if !name.Exists() {
		return nil, &MismatchError{Path: discriminantKey, Reason: "missing field"}
	}
	if name.Type != gjson.String {
		return nil, &MismatchError{Path: discriminantKey, Reason: "expected string"}
	}
	decode, ok := eventDecoders[EventName(name.Str)]
	if !ok {
		return nil, &MismatchError{
			Path:   discriminantKey,
			Reason: fmt.Sprintf("%q", name.Str),
			Err:    ErrUnknownEvent,
		}
	}
	return decode(raw)
}

// EncodeEvent writes a single event with its discriminant first.
func EncodeEvent(e GameEvent) ([]byte, error) {
	return schema.Marshal(e, eventOptions(e.EventName())...)
}

// EncodeEvents wraps events in the {"Events": [...]} envelope.
func EncodeEvents(events []GameEvent) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"` + envelopeKey + `":[`)
	for i, e := range events {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := EncodeEvent(e)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		buf.Write(b)
	}
	buf.WriteString(`]}`)
	return buf.Bytes(), nil
}
