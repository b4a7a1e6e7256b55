package game

import (
	"sort"
	"sync"
)

// RoomManager, tüm aktif odaları oda koduna göre tutar.
type RoomManager struct {
	rooms map[string]*room
	mu    sync.RWMutex
}

// NewRoomManager, boş bir RoomManager oluşturur.
func NewRoomManager() *RoomManager {
	return &RoomManager{
		rooms: make(map[string]*room),
	}
}

// insert, gen ile kullanılmayan bir kod üretir, odaya atar ve kaydeder.
func (rm *RoomManager) insert(gen func() string, r *room) string {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	code := gen()
	for {
		if _, taken := rm.rooms[code]; !taken {
			break
		}
		code = gen()
	}
	r.code = code
	rm.rooms[code] = r
	return code
}

func (rm *RoomManager) get(code string) (*room, bool) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	r, ok := rm.rooms[code]
	return r, ok
}

// delete, odayı yöneticiden siler.
func (rm *RoomManager) delete(code string) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	delete(rm.rooms, code)
}

// all, odaları oluşturulma sırasına göre döndürür.
func (rm *RoomManager) all() []*room {
	rm.mu.RLock()
	list := make([]*room, 0, len(rm.rooms))
	for _, r := range rm.rooms {
		list = append(list, r)
	}
	rm.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		if list[i].createdAt.Equal(list[j].createdAt) {
			return list[i].code < list[j].code
		}
		return list[i].createdAt.Before(list[j].createdAt)
	})
	return list
}

func (rm *RoomManager) Count() int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return len(rm.rooms)
}
