package models

import (
	"encoding/json"
	"sync"

	"github.com/bradfitz/slice"
)

// DefaultSignalLogLimit is how many readings a signal log retains by default
const DefaultSignalLogLimit = 16

// SignalLog is a bounded log of RSSI readings (dBm) for one session
type SignalLog struct {
	data  []int
	limit int
	mutex sync.RWMutex
}

// NewSignalLog will return newly init struct (limit <= 0 uses the default)
func NewSignalLog(limit int) *SignalLog {
	if limit <= 0 {
		limit = DefaultSignalLogLimit
	}
	return &SignalLog{data: []int{}, limit: limit, mutex: sync.RWMutex{}}
}

// Add appends a reading, evicting the oldest once past the limit
func (sl *SignalLog) Add(rssi int) {
	sl.mutex.Lock()
	sl.data = append(sl.data, rssi)
	if len(sl.data) > sl.limit {
		sl.data = sl.data[len(sl.data)-sl.limit:]
	}
	sl.mutex.Unlock()
}

// Last returns the most recent reading, and false if there is none yet
func (sl *SignalLog) Last() (int, bool) {
	sl.mutex.RLock()
	defer sl.mutex.RUnlock()
	if len(sl.data) == 0 {
		return 0, false
	}
	return sl.data[len(sl.data)-1], true
}

// Median returns the middle reading of the retained window, for smoothing jittery signal meters
func (sl *SignalLog) Median() (int, bool) {
	all := sl.GetAll()
	if len(all) == 0 {
		return 0, false
	}
	slice.Sort(all, func(i, j int) bool {
		return all[i] < all[j]
	})
	return all[len(all)/2], true
}

// GetAll returns a copy of all retained readings, oldest first
func (sl *SignalLog) GetAll() []int {
	sl.mutex.RLock()
	defer sl.mutex.RUnlock()
	ret := make([]int, len(sl.data))
	copy(ret, sl.data)
	return ret
}

// String returns json string of data
func (sl *SignalLog) String() string {
	b, _ := json.Marshal(sl.GetAll())
	return string(b)
}
