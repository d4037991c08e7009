package dashboard

import (
	"sync"
	"time"

	"campushub/pkg/model"
)

// SnapshotStore holds the latest full pull of each sector. Consumers always
// replace a sector's slice wholesale; nothing is patched in place, so reads
// can hand out the slices without copying.
type SnapshotStore struct {
	mu sync.RWMutex

	reservations []*model.Reservation
	equipment    []*model.Equipment
	marketing    []*model.MarketingRequest
	cerimonial   []*model.CerimonialRequest

	refreshedAt map[model.Sector]time.Time
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{
		refreshedAt: make(map[model.Sector]time.Time),
	}
}

func (s *SnapshotStore) SetReservations(reservations []*model.Reservation, equipment []*model.Equipment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reservations = reservations
	s.equipment = equipment
	s.refreshedAt[model.SectorAudiovisual] = time.Now()
}

func (s *SnapshotStore) SetMarketing(requests []*model.MarketingRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marketing = requests
	s.refreshedAt[model.SectorMarketing] = time.Now()
}

func (s *SnapshotStore) SetCerimonial(requests []*model.CerimonialRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cerimonial = requests
	s.refreshedAt[model.SectorCerimonial] = time.Now()
}

// Snapshot is a consistent view of all sectors at one read.
type Snapshot struct {
	Reservations []*model.Reservation
	Equipment    []*model.Equipment
	Marketing    []*model.MarketingRequest
	Cerimonial   []*model.CerimonialRequest
}

func (s *SnapshotStore) Read() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Reservations: s.reservations,
		Equipment:    s.equipment,
		Marketing:    s.marketing,
		Cerimonial:   s.cerimonial,
	}
}

func (s *SnapshotStore) RefreshedAt(sector model.Sector) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.refreshedAt[sector]
	return t, ok
}
