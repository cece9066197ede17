package dirmerklehash

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// ParseHumanSize parses human-readable size strings (e.g., "1M", "512k", "2G")
func ParseHumanSize(sizeStr string) (int64, error) {
	if sizeStr == "" {
		return 0, fmt.Errorf("empty size string")
	}

	sizeStr = strings.ToUpper(strings.TrimSpace(sizeStr))

	// Split into numeric part and suffix
	var numPart string
	var suffix string
	for i, char := range sizeStr {
		if char >= '0' && char <= '9' || char == '.' {
			numPart += string(char)
		} else {
			suffix = sizeStr[i:]
			break
		}
	}

	if numPart == "" {
		return 0, fmt.Errorf("no numeric part in size string: %s", sizeStr)
	}

	num, err := strconv.ParseFloat(numPart, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric part in size string %s: %w", sizeStr, err)
	}

	var multiplier int64
	switch suffix {
	case "", "B":
		multiplier = 1
	case "K", "KB":
		multiplier = 1024
	case "M", "MB":
		multiplier = 1024 * 1024
	case "G", "GB":
		multiplier = 1024 * 1024 * 1024
	default:
		return 0, fmt.Errorf("unknown size suffix %q in size string: %s", suffix, sizeStr)
	}

	return int64(num * float64(multiplier)), nil
}

// getSystemIOVMax returns the system's IOV_MAX limit using sysconf(_SC_IOV_MAX)
// Falls back to conservative default if sysconf fails
func getSystemIOVMax() (int, error) {
	// _SC_IOV_MAX constant for sysconf() - platform specific
	const SC_IOV_MAX = 60       // Linux value, may vary on other platforms
	const fallbackIOVMax = 1024 // Conservative default per golang/go#58623

	// Call sysconf directly using unix.Syscall (syscall 99 on Linux)
	r1, _, errno := unix.Syscall(99, uintptr(SC_IOV_MAX), 0, 0)
	if errno != 0 {
		return fallbackIOVMax, nil
	}

	iovMax := int(r1)

	// Sanity check: between 1 and 1M
	if iovMax <= 0 || iovMax > 1<<20 {
		return fallbackIOVMax, nil
	}

	return iovMax, nil
}
