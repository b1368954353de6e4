package metrics

import (
	"sync/atomic"
)

type Metrics struct {
	ratingsSavedTotal    int64
	ratingsDeletedTotal  int64
	catalogRequestsTotal int64
	activeStreamClients  int64
}

var global = &Metrics{}

func IncrementRatingsSaved() {
	atomic.AddInt64(&global.ratingsSavedTotal, 1)
}

func IncrementRatingsDeleted() {
	atomic.AddInt64(&global.ratingsDeletedTotal, 1)
}

func IncrementCatalogRequests() {
	atomic.AddInt64(&global.catalogRequestsTotal, 1)
}

func SetActiveStreamClients(count int64) {
	atomic.StoreInt64(&global.activeStreamClients, count)
}

func GetRatingsSaved() int64 {
	return atomic.LoadInt64(&global.ratingsSavedTotal)
}

func GetRatingsDeleted() int64 {
	return atomic.LoadInt64(&global.ratingsDeletedTotal)
}

func GetCatalogRequests() int64 {
	return atomic.LoadInt64(&global.catalogRequestsTotal)
}

func GetActiveStreamClients() int64 {
	return atomic.LoadInt64(&global.activeStreamClients)
}

func Reset() {
	atomic.StoreInt64(&global.ratingsSavedTotal, 0)
	atomic.StoreInt64(&global.ratingsDeletedTotal, 0)
	atomic.StoreInt64(&global.catalogRequestsTotal, 0)
	atomic.StoreInt64(&global.activeStreamClients, 0)
}
