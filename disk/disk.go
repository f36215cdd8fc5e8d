package disk

// Status classifies how much headroom a volume has left.
type Status string

const (
	StatusGood     Status = "good"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
)

// Fixed classification thresholds, in percent used.
const (
	WarningThreshold  = 80.0
	CriticalThreshold = 90.0
)

// UsageInfo holds capacity information for one filesystem.
type UsageInfo struct {
	Path        string  `json:"path"`
	TotalBytes  int64   `json:"total"`
	UsedBytes   int64   `json:"used"`
	FreeBytes   int64   `json:"free"`
	UsedPercent float64 `json:"usage_percent"`
}

// Health pairs a status classification with an advisory message.
type Health struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
}

// Classify maps a usage percentage onto the fixed 80/90 thresholds.
func Classify(usedPercent float64) Health {
	switch {
	case usedPercent >= CriticalThreshold:
		return Health{Status: StatusCritical, Message: "Disk space critically low. Free up space immediately."}
	case usedPercent >= WarningThreshold:
		return Health{Status: StatusWarning, Message: "Disk space is running low. Consider cleaning up files."}
	default:
		return Health{Status: StatusGood, Message: "Disk space is healthy."}
	}
}
