package services

import (
	"github.com/desertthunder/stratos/internal/models"
	"github.com/tidwall/gjson"
)

// NormalizeEvents converts raw provider event rows into event variants, in input order.
//
// Rows without an id are dropped. Pass and shot coordinates that are missing or malformed are
// left nil.
func NormalizeEvents(raw []byte) ([]models.Event, error) {
	root, err := array(raw)
	if err != nil {
		return nil, err
	}

	var events []models.Event
	root.ForEach(func(_, row gjson.Result) bool {
		if ev := normalizeEvent(row); ev != nil {
			events = append(events, ev)
		}
		return true
	})
	return events, nil
}

func normalizeEvent(row gjson.Result) models.Event {
	meta := models.Meta{
		ID:     row.Get("id").String(),
		Index:  int(row.Get("index").Int()),
		Period: int(row.Get("period").Int()),
		Minute: int(row.Get("minute").Int()),
		Second: int(row.Get("second").Int()),
		Team:   row.Get("team.name").String(),
		Player: row.Get("player.name").String(),
	}
	if meta.ID == "" {
		return nil
	}

	start := point(row.Get("location"))

	switch kind := row.Get("type.name").String(); kind {
	case "Pass":
		return models.Pass{
			Meta:    meta,
			Start:   start,
			End:     point(row.Get("pass.end_location")),
			Outcome: row.Get("pass.outcome.name").String(),
		}
	case "Shot":
		shot := models.Shot{Meta: meta, Start: start, Outcome: row.Get("shot.outcome.name").String()}
		if xg := row.Get("shot.statsbomb_xg"); xg.Type == gjson.Number {
			v := xg.Float()
			shot.XG = &v
		}
		return shot
	default:
		return models.Other{Meta: meta, Type: kind, Start: start}
	}
}
