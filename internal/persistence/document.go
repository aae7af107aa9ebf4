package persistence

import (
	"sort"

	"github.com/google/uuid"

	"boxingsim/internal/universe"
)

// toDocument flattens a Universe into its msgpack-stable document shape.
// Fighters are sorted by ID string so the roster order is stable across
// saves. The map-valued fields (hall of fame, history, body rankings) are
// encoded in map iteration order, so two saves of an unchanged universe
// decode to the same state but are not byte-identical.
func toDocument(u *universe.Universe) Document {
	doc := Document{
		Version:       currentVersion,
		Date:          u.Date,
		Tunables:      u.Tunables,
		HallOfFame:    make(map[string]universe.Induction, len(u.HallOfFame.Inducted)),
		RecentResults: u.RecentResults,
		History:       make(map[string][]universe.HistoryEntry, len(u.History)),
	}

	ids := make([]uuid.UUID, 0, len(u.Fighters))
	for id := range u.Fighters {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	for _, id := range ids {
		doc.Fighters = append(doc.Fighters, DocFighter{ID: id.String(), Data: *u.Fighters[id]})
	}

	for id, induction := range u.HallOfFame.Inducted {
		doc.HallOfFame[id.String()] = induction
	}

	for id, hist := range u.History {
		doc.History[id.String()] = hist
	}

	for _, body := range u.Bodies {
		db := DocBody{ShortName: string(body.ShortName), Rankings: make(map[string]DocDivisionRanking, len(body.Rankings))}
		for div, dr := range body.Rankings {
			ddr := DocDivisionRanking{}
			if dr.Champion != nil {
				ddr.Champion = dr.Champion.String()
			}
			for _, id := range dr.Contenders {
				ddr.Contenders = append(ddr.Contenders, id.String())
			}
			db.Rankings[div] = ddr
		}
		doc.Bodies = append(doc.Bodies, db)
	}

	return doc
}

// fromDocument rebuilds a Universe from a decoded Document: the fighter
// roster and divisions are reconstructed first (via AddFighter, so
// RosterIDs stay consistent), then sanctioning-body champions/contenders
// are restored. Ranking lists themselves (the internal skip lists) are left
// to be rebuilt by the caller via universe.RecomputeAll, since they are a
// derived cache rather than authoritative state.
func fromDocument(doc Document) (*universe.Universe, error) {
	u := universe.New(doc.Date, doc.Tunables)

	for _, df := range doc.Fighters {
		f := df.Data
		u.AddFighter(&f)
	}

	u.RecentResults = doc.RecentResults

	u.History = make(map[uuid.UUID][]universe.HistoryEntry, len(doc.History))
	for idStr, hist := range doc.History {
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, &Error{Op: "decode-history", Slot: idStr, Err: err}
		}
		u.History[id] = hist
	}

	u.HallOfFame.Inducted = make(map[uuid.UUID]universe.Induction, len(doc.HallOfFame))
	for idStr, induction := range doc.HallOfFame {
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, &Error{Op: "decode-hof", Slot: idStr, Err: err}
		}
		u.HallOfFame.Inducted[id] = induction
	}

	bodiesByName := make(map[string]*universe.SanctioningBody, len(u.Bodies))
	for _, b := range u.Bodies {
		bodiesByName[string(b.ShortName)] = b
	}
	for _, db := range doc.Bodies {
		body, ok := bodiesByName[db.ShortName]
		if !ok {
			continue
		}
		for div, ddr := range db.Rankings {
			dr, ok := body.Rankings[div]
			if !ok {
				continue
			}
			if ddr.Champion != "" {
				champ, err := uuid.Parse(ddr.Champion)
				if err != nil {
					return nil, &Error{Op: "decode-champion", Slot: ddr.Champion, Err: err}
				}
				dr.Champion = &champ
			}
			for _, idStr := range ddr.Contenders {
				id, err := uuid.Parse(idStr)
				if err != nil {
					return nil, &Error{Op: "decode-contender", Slot: idStr, Err: err}
				}
				dr.Contenders = append(dr.Contenders, id)
			}
		}
	}

	return u, nil
}
