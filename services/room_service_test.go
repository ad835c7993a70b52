package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hotel-frontend/models"
	"hotel-frontend/services/mocks"
)

func TestRoomService_Load(t *testing.T) {
	source := new(mocks.MockRoomSource)
	source.On("FetchRooms", mock.Anything).Return(testCatalog(), nil).Once()
	svc := NewRoomService(newTestDB(t), source)

	rooms, loaded := svc.Filter(FilterCriteria{})
	assert.False(t, loaded)
	assert.Empty(t, rooms)

	require.NoError(t, svc.Load(context.Background()))
	rooms, loaded = svc.Filter(FilterCriteria{Search: "suite", Price: PriceLuxury})
	assert.True(t, loaded)
	assert.Equal(t, []string{"5", "6"}, roomIDs(rooms))

	source.AssertExpectations(t)
}

func TestRoomService_LoadFailureKeepsCatalog(t *testing.T) {
	source := new(mocks.MockRoomSource)
	source.On("FetchRooms", mock.Anything).Return(testCatalog()[:2], nil).Once()
	source.On("FetchRooms", mock.Anything).Return(nil, errors.New("connection refused")).Once()
	svc := NewRoomService(newTestDB(t), source)

	require.NoError(t, svc.Load(context.Background()))
	assert.Error(t, svc.Load(context.Background()))

	assert.True(t, svc.Loaded())
	assert.Len(t, svc.Rooms(), 2)
	source.AssertExpectations(t)
}

func TestRoomService_FirstLoadFailureIsLoadedAndEmpty(t *testing.T) {
	source := new(mocks.MockRoomSource)
	source.On("FetchRooms", mock.Anything).Return(nil, errors.New("boom"))
	svc := NewRoomService(newTestDB(t), source)

	assert.Error(t, svc.Load(context.Background()))
	rooms, loaded := svc.Filter(FilterCriteria{})
	assert.True(t, loaded)
	assert.Empty(t, rooms)
}

func TestRoomService_SnapshotSurvivesRestart(t *testing.T) {
	db := newTestDB(t)
	catalog := testCatalog()
	// reversed upstream order must be kept as-is
	reversed := make([]models.Room, 0, len(catalog))
	for i := len(catalog) - 1; i >= 0; i-- {
		reversed = append(reversed, catalog[i])
	}
	reversed = append(reversed, catalog[0]) // duplicate id is dropped

	first := NewRoomService(db, new(mocks.MockRoomSource))
	require.NoError(t, first.Replace(reversed))
	assert.Len(t, first.Rooms(), 6)

	second := NewRoomService(db, new(mocks.MockRoomSource))
	require.NoError(t, second.Warm())
	assert.True(t, second.Loaded())
	assert.Equal(t, []string{"6", "5", "4", "3", "2", "1"}, roomIDs(second.Rooms()))

	require.NoError(t, first.Replace(catalog[:1]))
	third := NewRoomService(db, new(mocks.MockRoomSource))
	require.NoError(t, third.Warm())
	assert.Equal(t, []string{"1"}, roomIDs(third.Rooms()))
}

func TestRoomService_SelectRoom(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db, new(mocks.MockRoomSource))
	require.NoError(t, svc.Replace(testCatalog()))
	store := NewStorageService(db).Session("s1")

	selected, err := svc.Selected(store)
	require.NoError(t, err)
	assert.Nil(t, selected)

	room, err := svc.Select(store, "3")
	require.NoError(t, err)
	assert.Equal(t, "Standard Double", room.Name)

	selected, err = svc.Selected(store)
	require.NoError(t, err)
	require.NotNil(t, selected)
	assert.Equal(t, models.FlexID("3"), selected.ID)

	_, err = svc.Select(store, "99")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestUpstreamRoomSource_FallsBackOn404(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path == "/rooms" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"data":[{"id":1,"name":"Deluxe Single","type":"single","price":150,"amenities":["wifi"],"available":true}]}`))
	}))
	defer srv.Close()

	rooms, err := NewUpstreamRoomSource(NewAPIClient(srv.URL, 0)).FetchRooms(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"/rooms", "/api/rooms"}, paths)
	require.Len(t, rooms, 1)
	assert.Equal(t, models.FlexID("1"), rooms[0].ID)
	assert.Equal(t, []string{"wifi"}, []string(rooms[0].Amenities))
}

func TestUpstreamRoomSource_NoFallbackOnServerError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewUpstreamRoomSource(NewAPIClient(srv.URL, 0)).FetchRooms(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, 1, calls)
}
