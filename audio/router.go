package audio

// Tier is the processing path a file is routed to based on its size.
type Tier string

const (
	TierRejected     Tier = "rejected"
	TierSynchronous  Tier = "synchronous"
	TierAsynchronous Tier = "asynchronous"
)

// Default size ceilings for the speech backend.
const (
	DefaultSyncCeilingBytes  = 10 * 1024 * 1024   // 10 MiB for synchronous requests
	DefaultAsyncCeilingBytes = 1000 * 1024 * 1024 // 1 GiB for asynchronous requests
)

// DefaultFallbackSampleRate is the sample rate used by the analyzer's last
// decode attempt.
const DefaultFallbackSampleRate = 22050

// Limits holds the size ceilings for the sync/async processing tiers.
// Both ceilings are inclusive upper bounds.
type Limits struct {
	SyncCeilingBytes  int64
	AsyncCeilingBytes int64
}

// DefaultLimits returns the speech backend's documented size limits.
func DefaultLimits() Limits {
	return Limits{
		SyncCeilingBytes:  DefaultSyncCeilingBytes,
		AsyncCeilingBytes: DefaultAsyncCeilingBytes,
	}
}

// Route maps a file size to its processing tier. A file exactly at a ceiling
// lands in the lower tier.
func (l Limits) Route(sizeBytes int64) Tier {
	switch {
	case sizeBytes <= l.SyncCeilingBytes:
		return TierSynchronous
	case sizeBytes <= l.AsyncCeilingBytes:
		return TierAsynchronous
	default:
		return TierRejected
	}
}
