// Package rates estimates persistent disk performance from disk type and size.
//
// The figures are per-GB multipliers taken from the Compute Engine performance
// tables. They are estimates, not measured values.
package rates

// DiskType is a persistent disk type. Types outside the performance table
// parse to DiskTypeOther, whose rates are all zero.
type DiskType int

const (
	DiskTypeOther DiskType = iota
	DiskTypeStandard
	DiskTypeBalanced
	DiskTypeSSD
)

var diskTypeNames = map[string]DiskType{
	"pd-standard": DiskTypeStandard,
	"pd-balanced": DiskTypeBalanced,
	"pd-ssd":      DiskTypeSSD,
}

// ParseDiskType maps a disk type short name (e.g. "pd-ssd") to a DiskType.
func ParseDiskType(name string) DiskType {
	if t, ok := diskTypeNames[name]; ok {
		return t
	}
	return DiskTypeOther
}

func (t DiskType) String() string {
	switch t {
	case DiskTypeStandard:
		return "pd-standard"
	case DiskTypeBalanced:
		return "pd-balanced"
	case DiskTypeSSD:
		return "pd-ssd"
	default:
		return "other"
	}
}

// Operation selects the read or write IOPS rate.
type Operation int

const (
	Read Operation = iota
	Write
)

func (o Operation) String() string {
	if o == Write {
		return "write"
	}
	return "read"
}

type perGB struct {
	readIOPS   float64
	writeIOPS  float64
	throughput float64 // MB/s
}

var table = map[DiskType]perGB{
	DiskTypeStandard: {readIOPS: 0.75, writeIOPS: 1.5, throughput: 0.12},
	DiskTypeBalanced: {readIOPS: 6.0, writeIOPS: 6.0, throughput: 0.28},
	DiskTypeSSD:      {readIOPS: 30.0, writeIOPS: 30.0, throughput: 0.48},
}

// IOPSRate returns the IOPS per GB for a disk type and operation.
func IOPSRate(t DiskType, op Operation) float64 {
	r, ok := table[t]
	if !ok {
		return 0
	}
	if op == Write {
		return r.writeIOPS
	}
	return r.readIOPS
}

// ThroughputRate returns the throughput in MB/s per GB for a disk type.
// Reads and writes share the same rate.
func ThroughputRate(t DiskType) float64 {
	return table[t].throughput
}

// IOPS estimates the IOPS of a disk of sizeGB.
func IOPS(t DiskType, sizeGB float64, op Operation) float64 {
	return sizeGB * IOPSRate(t, op)
}

// Throughput estimates the throughput in MB/s of a disk of sizeGB.
func Throughput(t DiskType, sizeGB float64) float64 {
	return sizeGB * ThroughputRate(t)
}
