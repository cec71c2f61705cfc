package inmemdb

import (
	"encoding/json"
	"sync"

	"github.com/lyceumacademy/lyceum/core/course"
)

type (
	DB struct {
		course *courseTable
	}

	// courseTable stores JSON-encoded documents, the way a JSONB column would.
	courseTable struct {
		table map[string][]byte
		mutex sync.RWMutex
	}
)

func Open() *DB {
	return &DB{
		course: &courseTable{table: make(map[string][]byte)},
	}
}

func encode(crs course.RawCourse) ([]byte, error) {
	return json.Marshal(crs)
}

func decode(data []byte) (course.RawCourse, error) {
	var crs course.RawCourse
	err := json.Unmarshal(data, &crs)
	return crs, err
}
