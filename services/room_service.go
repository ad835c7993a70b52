package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"

	"gorm.io/gorm"

	"hotel-frontend/models"
)

const selectedRoomKey = "selectedRoom"

var ErrRoomNotFound = errors.New("room not found")

// RoomSource is where the catalog comes from.
type RoomSource interface {
	FetchRooms(ctx context.Context) ([]models.Room, error)
}

// UpstreamRoomSource reads the catalog from the backend.
type UpstreamRoomSource struct {
	API *APIClient
}

func NewUpstreamRoomSource(api *APIClient) *UpstreamRoomSource {
	return &UpstreamRoomSource{API: api}
}

// FetchRooms tries GET /rooms first and falls back to GET /api/rooms when the
// backend does not know the short path.
func (s *UpstreamRoomSource) FetchRooms(ctx context.Context) ([]models.Room, error) {
	raw, err := s.API.Get(ctx, "/rooms")
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		raw, err = s.API.Get(ctx, "/api/rooms")
	}
	if err != nil {
		return nil, fmt.Errorf("fetch rooms: %w", err)
	}
	return decodeRooms(raw)
}

// decodeRooms accepts a bare array or a {"data": [...]} envelope.
func decodeRooms(raw json.RawMessage) ([]models.Room, error) {
	var rooms []models.Room
	if err := json.Unmarshal(raw, &rooms); err == nil {
		return rooms, nil
	}
	var envelope struct {
		Data []models.Room `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode rooms: %w", err)
	}
	return envelope.Data, nil
}

// RoomService is the room catalog: the current list and whether it has been
// loaded yet. The list is only ever replaced as a whole.
type RoomService struct {
	DB     *gorm.DB
	Source RoomSource

	mu     sync.RWMutex
	rooms  []models.Room
	loaded bool
}

func NewRoomService(db *gorm.DB, source RoomSource) *RoomService {
	return &RoomService{DB: db, Source: source}
}

// Warm restores the last persisted snapshot, if there is one.
func (s *RoomService) Warm() error {
	var rooms []models.Room
	if err := s.DB.Order("position ASC").Find(&rooms).Error; err != nil {
		return fmt.Errorf("read room snapshot: %w", err)
	}
	if len(rooms) == 0 {
		return nil
	}
	s.mu.Lock()
	s.rooms = rooms
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// Load fetches the catalog from the source and replaces the current one. On
// failure the previous list is kept, but the catalog still counts as loaded.
func (s *RoomService) Load(ctx context.Context) error {
	rooms, err := s.Source.FetchRooms(ctx)
	if err != nil {
		log.Printf("ROOM FETCH ERROR: %v", err)
		s.mu.Lock()
		s.loaded = true
		s.mu.Unlock()
		return err
	}
	return s.Replace(rooms)
}

// Replace swaps in a new catalog and persists it as the snapshot.
func (s *RoomService) Replace(rooms []models.Room) error {
	seen := make(map[models.FlexID]bool, len(rooms))
	next := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		if seen[room.ID] {
			log.Printf("rooms: dropping duplicate room id %q", room.ID)
			continue
		}
		seen[room.ID] = true
		room.Position = len(next)
		next = append(next, room)
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Room{}).Error; err != nil {
			return err
		}
		if len(next) == 0 {
			return nil
		}
		return tx.CreateInBatches(next, 100).Error
	})
	if err != nil {
		return fmt.Errorf("persist room snapshot: %w", err)
	}

	s.mu.Lock()
	s.rooms = next
	s.loaded = true
	s.mu.Unlock()
	return nil
}

func (s *RoomService) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Rooms returns a copy of the catalog.
func (s *RoomService) Rooms() []models.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Room, len(s.rooms))
	copy(out, s.rooms)
	return out
}

// Filter applies the criteria to the current catalog. loaded is false until
// the first load attempt has finished.
func (s *RoomService) Filter(criteria FilterCriteria) (rooms []models.Room, loaded bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return FilterRooms(s.rooms, criteria), s.loaded
}

func (s *RoomService) GetByID(id string) (models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, room := range s.rooms {
		if string(room.ID) == id {
			return room, nil
		}
	}
	return models.Room{}, ErrRoomNotFound
}

// Select remembers the room a session is looking at.
func (s *RoomService) Select(store KeyValueStore, id string) (models.Room, error) {
	room, err := s.GetByID(id)
	if err != nil {
		return models.Room{}, err
	}
	if err := SetJSON(store, selectedRoomKey, room); err != nil {
		return models.Room{}, err
	}
	return room, nil
}

// Selected returns the room the session selected last, or nil.
func (s *RoomService) Selected(store KeyValueStore) (*models.Room, error) {
	var room models.Room
	ok, err := GetJSON(store, selectedRoomKey, &room)
	if err != nil || !ok {
		return nil, err
	}
	return &room, nil
}
