// Package fakes provides in-memory implementations of the repository
// interfaces for unit tests.
package fakes

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/osse101/PhoenixBot_Go/internal/domain"
)

// Store is a goroutine-safe in-memory repository.Inventory, repository.Regear
// and repository.Guild
type Store struct {
	mu           sync.Mutex
	items        map[domain.ItemKey]*domain.InventoryItem
	reservations map[string]*domain.Reservation
	audit        map[string]string
	grants       map[string]bool

	// Err, when set, is returned by every operation
	Err error
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		items:        make(map[domain.ItemKey]*domain.InventoryItem),
		reservations: make(map[string]*domain.Reservation),
		audit:        make(map[string]string),
		grants:       make(map[string]bool),
	}
}

// Seed adds stock, creating the record if needed
func (s *Store) Seed(guildID, name string, slot domain.Slot, tier string, qty int) {
	_, _ = s.AddInventory(context.Background(), domain.InventoryItem{
		GuildID: guildID, Name: name, Slot: slot, TierEquivalent: tier, Quantity: qty,
	})
}

// SetQuantity overwrites stock out of band
func (s *Store) SetQuantity(key domain.ItemKey, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item, ok := s.items[key]; ok {
		item.Quantity = qty
	}
}

// Quantity returns current stock, or -1 when the record does not exist
func (s *Store) Quantity(key domain.ItemKey) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item, ok := s.items[key]; ok {
		return item.Quantity
	}
	return -1
}

// ReservationCount returns how many reservations were created
func (s *Store) ReservationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reservations)
}

func (s *Store) QueryInventory(_ context.Context, filter domain.InventoryFilter) ([]domain.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	out := []domain.InventoryItem{}
	for _, item := range s.items {
		if item.GuildID != filter.GuildID {
			continue
		}
		if filter.Slot != "" && item.Slot != filter.Slot {
			continue
		}
		if filter.Tier != "" && item.TierEquivalent != filter.Tier {
			continue
		}
		if filter.NameFilter != "" && !strings.Contains(strings.ToLower(item.Name), strings.ToLower(filter.NameFilter)) {
			continue
		}
		if filter.InStockOnly && item.Quantity <= 0 {
			continue
		}
		out = append(out, *item)
	}
	return out, nil
}

func (s *Store) AddInventory(_ context.Context, item domain.InventoryItem) (*domain.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	now := time.Now()
	key := item.Key()
	if existing, ok := s.items[key]; ok {
		existing.Quantity += item.Quantity
		if item.Notes != "" {
			existing.Notes = item.Notes
		}
		existing.UpdatedAt = now
		saved := *existing
		return &saved, nil
	}

	item.CreatedAt = now
	item.UpdatedAt = now
	stored := item
	s.items[key] = &stored
	return &item, nil
}

func (s *Store) DecrementIfSufficient(_ context.Context, key domain.ItemKey, amount int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	return s.decrementLocked(key, amount), nil
}

func (s *Store) decrementLocked(key domain.ItemKey, amount int) bool {
	item, ok := s.items[key]
	if !ok || item.Quantity < amount {
		return false
	}
	item.Quantity -= amount
	return true
}

func (s *Store) CreateReservation(_ context.Context, res *domain.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.reservations[res.ID]; ok {
		return fmt.Errorf("duplicate reservation %s", res.ID)
	}
	s.reservations[res.ID] = cloneReservation(res)
	return nil
}

func (s *Store) GetReservation(_ context.Context, regearID string) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	res, ok := s.reservations[regearID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrReservationNotFound, regearID)
	}
	return cloneReservation(res), nil
}

func (s *Store) TransitionReservation(_ context.Context, regearID string, from []domain.RegearStatus, to domain.RegearStatus, at time.Time) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	res, err := s.openLocked(regearID, from, to)
	if err != nil {
		return nil, err
	}
	applyStatus(res, to, at)
	return cloneReservation(res), nil
}

// CompleteReservation checks every item before changing anything, which is
// equivalent to the transactional rollback of the database implementation
func (s *Store) CompleteReservation(_ context.Context, regearID string, at time.Time) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	res, err := s.openLocked(regearID, domain.TransitionSources(domain.EventComplete), domain.RegearCompleted)
	if err != nil {
		return nil, err
	}

	for _, item := range res.Items {
		stock, ok := s.items[item.Key(res.GuildID)]
		if !ok || stock.Quantity < item.Quantity {
			return nil, fmt.Errorf("%w: %s", domain.ErrInsufficientStock, item.Name)
		}
	}
	for _, item := range res.Items {
		s.decrementLocked(item.Key(res.GuildID), item.Quantity)
	}

	applyStatus(res, domain.RegearCompleted, at)
	return cloneReservation(res), nil
}

func (s *Store) UpdateReservationSurfaces(_ context.Context, regearID string, surfaces domain.Surfaces) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	res, ok := s.reservations[regearID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrReservationNotFound, regearID)
	}
	res.Surfaces = cloneSurfaces(surfaces)
	return nil
}

func (s *Store) openLocked(regearID string, from []domain.RegearStatus, to domain.RegearStatus) (*domain.Reservation, error) {
	res, ok := s.reservations[regearID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrReservationNotFound, regearID)
	}
	for _, status := range from {
		if res.Status == status {
			return res, nil
		}
	}
	return nil, fmt.Errorf("%w: reservation is %s, cannot move to %s", domain.ErrInvalidTransition, res.Status, to)
}

func applyStatus(res *domain.Reservation, to domain.RegearStatus, at time.Time) {
	res.Status = to
	switch to {
	case domain.RegearCompleted:
		res.CompletedAt = &at
	case domain.RegearCancelled:
		res.CancelledAt = &at
	}
}

func (s *Store) GetAuditChannel(_ context.Context, guildID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return "", s.Err
	}
	return s.audit[guildID], nil
}

func (s *Store) SetAuditChannel(_ context.Context, guildID, channelID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.audit[guildID] = channelID
	return nil
}

func (s *Store) HasPermission(_ context.Context, guildID, subjectID, action string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	return s.grants[grantKey(guildID, subjectID, action)], nil
}

func (s *Store) GrantPermission(_ context.Context, guildID, subjectID, action string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.grants[grantKey(guildID, subjectID, action)] = true
	return nil
}

func (s *Store) RevokePermission(_ context.Context, guildID, subjectID, action string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	delete(s.grants, grantKey(guildID, subjectID, action))
	return nil
}

func grantKey(guildID, subjectID, action string) string {
	return guildID + "/" + subjectID + "/" + action
}

func cloneReservation(res *domain.Reservation) *domain.Reservation {
	out := *res
	out.Items = append([]domain.ReservationItem(nil), res.Items...)
	out.Surfaces = cloneSurfaces(res.Surfaces)
	if res.CompletedAt != nil {
		t := *res.CompletedAt
		out.CompletedAt = &t
	}
	if res.CancelledAt != nil {
		t := *res.CancelledAt
		out.CancelledAt = &t
	}
	return &out
}

func cloneSurfaces(s domain.Surfaces) domain.Surfaces {
	var out domain.Surfaces
	for _, kind := range []domain.SurfaceKind{domain.SurfaceIssuer, domain.SurfaceRecipient, domain.SurfaceAudit} {
		if ref := s.Get(kind); ref != nil {
			r := *ref
			out.Set(kind, &r)
		}
	}
	return out
}
