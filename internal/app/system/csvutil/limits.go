// internal/app/system/csvutil/limits.go
package csvutil

// Size limits for table bodies accepted from clients.
const (
	MaxFrameSize = 5 << 20 // 5 MB
	MaxRows      = 20000
)
