package store

import "sync"

var sharedStore *Store

var sharedStorePublication sync.Once

// Publish installs a fully loaded store as the process-wide shared
// instance. Only the first publication takes effect; Publish reports
// whether s became the shared store. Readers calling Shared never
// observe a partially built store, since Load has completed before the
// store is handed to Publish.
//
// Using the shared instance is optional—passing a store explicitly to
// consumers keeps load lifecycles easier to test.
func Publish(s *Store) bool {
	published := false
	sharedStorePublication.Do(func() {
		sharedStore = s
		published = true
		tracer().Infof("metadata store published for shared use")
	})
	return published
}

// Shared returns the process-wide shared store, or nil if none has been
// published yet.
func Shared() *Store {
	return sharedStore
}
