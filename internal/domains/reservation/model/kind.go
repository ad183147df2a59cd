package model

// Failure kinds reported by the booking path.
const (
	KindInvalidDateRange   = "INVALID_DATE_RANGE"
	KindCapacityExceeded   = "CAPACITY_EXCEEDED"
	KindRoomNotFound       = "ROOM_NOT_FOUND"
	KindRoomNotAvailable   = "ROOM_NOT_AVAILABLE"
	KindStorageUnavailable = "STORAGE_UNAVAILABLE"
)
