package interaction

import (
	"errors"
	"testing"

	"GoalArena/pkg/database"
	"GoalArena/pkg/model"
)

type pair struct {
	subscriberID uint
	matchID      uint
}

// stubStore 内存版互动账本，deleted记录软删除行以便复活
type stubStore struct {
	active  map[model.InteractionType]map[pair]bool
	deleted map[model.InteractionType]map[pair]bool
	totals  map[model.InteractionType]int64
	top     map[model.InteractionType][]model.TopMatch
}

func newStubStore() *stubStore {
	s := &stubStore{
		active:  map[model.InteractionType]map[pair]bool{},
		deleted: map[model.InteractionType]map[pair]bool{},
		totals:  map[model.InteractionType]int64{},
		top:     map[model.InteractionType][]model.TopMatch{},
	}
	for _, typ := range []model.InteractionType{model.InteractionSaved, model.InteractionLoved, model.InteractionFavorite} {
		s.active[typ] = map[pair]bool{}
		s.deleted[typ] = map[pair]bool{}
	}
	return s
}

func (s *stubStore) Upsert(typ model.InteractionType, subscriberID, matchID uint) error {
	p := pair{subscriberID, matchID}
	delete(s.deleted[typ], p)
	s.active[typ][p] = true
	return nil
}

func (s *stubStore) SoftDelete(typ model.InteractionType, subscriberID, matchID uint) error {
	p := pair{subscriberID, matchID}
	if !s.active[typ][p] {
		return database.ErrNotFound
	}
	delete(s.active[typ], p)
	s.deleted[typ][p] = true
	return nil
}

func (s *stubStore) ListBySubscriber(typ model.InteractionType, subscriberID uint) ([]model.InteractionRow, error) {
	var rows []model.InteractionRow
	for p := range s.active[typ] {
		if p.subscriberID == subscriberID {
			rows = append(rows, model.InteractionRow{SubscriberID: p.subscriberID, MatchID: p.matchID})
		}
	}
	return rows, nil
}

func (s *stubStore) MatchStats(matchID uint) (*model.MatchStats, error) {
	stats := &model.MatchStats{}
	for p := range s.active[model.InteractionSaved] {
		if p.matchID == matchID {
			stats.SavedCount++
		}
	}
	for p := range s.active[model.InteractionLoved] {
		if p.matchID == matchID {
			stats.LovedCount++
		}
	}
	for p := range s.active[model.InteractionFavorite] {
		if p.matchID == matchID {
			stats.FavoriteCount++
		}
	}
	return stats, nil
}

func (s *stubStore) SubscriberStats(subscriberID uint) (*model.SubscriberStats, error) {
	stats := &model.SubscriberStats{}
	for p := range s.active[model.InteractionSaved] {
		if p.subscriberID == subscriberID {
			stats.SavedCount++
		}
	}
	for p := range s.active[model.InteractionLoved] {
		if p.subscriberID == subscriberID {
			stats.LovedCount++
		}
	}
	for p := range s.active[model.InteractionFavorite] {
		if p.subscriberID == subscriberID {
			stats.FavoriteCount++
		}
	}
	return stats, nil
}

func (s *stubStore) Totals() (map[model.InteractionType]int64, error) {
	totals := map[model.InteractionType]int64{}
	for typ, pairs := range s.active {
		totals[typ] = int64(len(pairs))
	}
	for typ, n := range s.totals {
		totals[typ] = n
	}
	return totals, nil
}

func (s *stubStore) TopByType(typ model.InteractionType, limit int) ([]model.TopMatch, error) {
	return s.top[typ], nil
}

func TestAddIdempotent(t *testing.T) {
	store := newStubStore()
	svc := NewService(store)

	if err := svc.Add(model.InteractionSaved, 1, 10); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := svc.Add(model.InteractionSaved, 1, 10); err != nil {
		t.Fatalf("repeated Add: %v", err)
	}

	rows, err := svc.List(model.InteractionSaved, 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("rows = %d, want 1 after duplicate add", len(rows))
	}
}

func TestRemoveNotFound(t *testing.T) {
	store := newStubStore()
	svc := NewService(store)

	err := svc.Remove(model.InteractionLoved, 1, 10)
	if !errors.Is(err, database.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestRemoveThenReAdd(t *testing.T) {
	store := newStubStore()
	svc := NewService(store)

	if err := svc.Add(model.InteractionFavorite, 1, 10); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := svc.Remove(model.InteractionFavorite, 1, 10); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	// 复活软删除行
	if err := svc.Add(model.InteractionFavorite, 1, 10); err != nil {
		t.Fatalf("re-Add: %v", err)
	}
	rows, _ := svc.List(model.InteractionFavorite, 1)
	if len(rows) != 1 {
		t.Errorf("rows = %d, want revived row", len(rows))
	}
}

func TestRemovedRowsLeaveStats(t *testing.T) {
	store := newStubStore()
	svc := NewService(store)

	svc.Add(model.InteractionSaved, 1, 10)
	svc.Add(model.InteractionSaved, 2, 10)
	svc.Remove(model.InteractionSaved, 2, 10)

	stats, err := svc.MatchStats(10)
	if err != nil {
		t.Fatalf("MatchStats: %v", err)
	}
	if stats.SavedCount != 1 {
		t.Errorf("saves = %d, want soft-deleted row excluded", stats.SavedCount)
	}
}

func TestTopPicksBusiestLedger(t *testing.T) {
	store := newStubStore()
	store.totals = map[model.InteractionType]int64{
		model.InteractionSaved:    3,
		model.InteractionLoved:    7,
		model.InteractionFavorite: 5,
	}
	store.top[model.InteractionLoved] = []model.TopMatch{{MatchID: 10, Total: 7}}
	svc := NewService(store)

	top, err := svc.Top()
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if top.Type != model.InteractionLoved {
		t.Errorf("type = %q, want loved", top.Type)
	}
	if len(top.Rows) != 1 {
		t.Errorf("rows = %d", len(top.Rows))
	}
}

func TestTopTieBreaksBySavedFirst(t *testing.T) {
	store := newStubStore()
	store.totals = map[model.InteractionType]int64{
		model.InteractionSaved:    5,
		model.InteractionLoved:    5,
		model.InteractionFavorite: 5,
	}
	store.top[model.InteractionSaved] = []model.TopMatch{{MatchID: 1, Total: 5}}
	svc := NewService(store)

	top, err := svc.Top()
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if top.Type != model.InteractionSaved {
		t.Errorf("type = %q, saved should win ties", top.Type)
	}
}

func TestTopAllEmpty(t *testing.T) {
	store := newStubStore()
	svc := NewService(store)

	top, err := svc.Top()
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if top.Rows == nil || len(top.Rows) != 0 {
		t.Errorf("rows = %v, want empty non-nil slice", top.Rows)
	}
	if top.Type != "" {
		t.Errorf("type = %q, want empty", top.Type)
	}
}
