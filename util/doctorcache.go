package util

import (
	"container/list"
	"sync"

	"gorm.io/gorm"
)

// LRU cache for doctorID -> full name
type doctorEntry struct {
	doctorID uint
	name     string
}

type doctorLRU struct {
	mu       sync.Mutex
	ll       *list.List
	cache    map[uint]*list.Element
	capacity int
}

var doctorCache *doctorLRU

// InitDoctorNameCache initializes the LRU cache with given capacity.
// If capacity <= 0, a default of 1000 is used.
func InitDoctorNameCache(capacity int) {
	if capacity <= 0 {
		capacity = 1000
	}
	doctorCache = &doctorLRU{
		ll:       list.New(),
		cache:    make(map[uint]*list.Element),
		capacity: capacity,
	}
}

// DoctorNameCacheGet returns the name and true if present in cache.
func DoctorNameCacheGet(doctorID uint) (string, bool) {
	if doctorCache == nil {
		return "", false
	}
	doctorCache.mu.Lock()
	defer doctorCache.mu.Unlock()
	if ele, ok := doctorCache.cache[doctorID]; ok {
		doctorCache.ll.MoveToFront(ele)
		return ele.Value.(doctorEntry).name, true
	}
	return "", false
}

// DoctorNameCacheSet stores the name for doctorID, evicting the least recently used entry when full.
func DoctorNameCacheSet(doctorID uint, name string) {
	if doctorCache == nil {
		return
	}
	doctorCache.mu.Lock()
	defer doctorCache.mu.Unlock()
	if ele, ok := doctorCache.cache[doctorID]; ok {
		doctorCache.ll.MoveToFront(ele)
		ele.Value = doctorEntry{doctorID: doctorID, name: name}
		return
	}
	doctorCache.cache[doctorID] = doctorCache.ll.PushFront(doctorEntry{doctorID: doctorID, name: name})
	if doctorCache.ll.Len() > doctorCache.capacity {
		tail := doctorCache.ll.Back()
		delete(doctorCache.cache, tail.Value.(doctorEntry).doctorID)
		doctorCache.ll.Remove(tail)
	}
}

// DoctorNameCacheDelete drops doctorID from the cache, e.g. after a profile update.
func DoctorNameCacheDelete(doctorID uint) {
	if doctorCache == nil {
		return
	}
	doctorCache.mu.Lock()
	defer doctorCache.mu.Unlock()
	if ele, ok := doctorCache.cache[doctorID]; ok {
		doctorCache.ll.Remove(ele)
		delete(doctorCache.cache, doctorID)
	}
}

// GetDoctorName returns the doctor's full name using the cache, falling back to DB.
func GetDoctorName(db *gorm.DB, doctorID uint) string {
	if doctorID == 0 {
		return ""
	}
	if name, ok := DoctorNameCacheGet(doctorID); ok {
		return name
	}
	if db == nil {
		return ""
	}
	var d struct{ FullName string }
	if err := db.Table("doctors").Select("full_name").Where("id = ? AND deleted_at IS NULL", doctorID).Take(&d).Error; err == nil {
		if d.FullName != "" {
			DoctorNameCacheSet(doctorID, d.FullName)
		}
		return d.FullName
	}
	return ""
}
