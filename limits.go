package mzf

// Limits bounds the input DecodeReader accepts. Zero fields take the
// values of DefaultLimits.
type Limits struct {
	MaxStored       uint64 // input length as read, before decompression
	MaxUncompressed uint64 // container length after decompression
}

func defaultLimits() Limits {
	return Limits{
		MaxStored:       1 << 20,                  // 1 MiB
		MaxUncompressed: HeaderSize + MaxBodySize, // largest well-formed container
	}
}

// DefaultLimits returns the limits used when none are configured.
func DefaultLimits() Limits {
	return defaultLimits()
}

func (l Limits) withDefaults() Limits {
	d := defaultLimits()
	if l.MaxStored == 0 {
		l.MaxStored = d.MaxStored
	}
	if l.MaxUncompressed == 0 {
		l.MaxUncompressed = d.MaxUncompressed
	}
	return l
}
