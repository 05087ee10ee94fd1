package inventory

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"cloud.google.com/go/compute/apiv1/computepb"
	"github.com/samber/lo"
)

const (
	EncryptionGoogleManaged    = "Google managed"
	EncryptionCustomerManaged  = "Customer managed"
	EncryptionCustomerSupplied = "Customer supplied"
)

// ShortName returns the last path segment of a resource URL, or url itself
// when it has no '/'.
func ShortName(url string) string {
	return url[strings.LastIndex(url, "/")+1:]
}

// ShortNames applies ShortName to every element of urls.
func ShortNames(urls []string) []string {
	return lo.Map(urls, func(u string, _ int) string { return ShortName(u) })
}

// Labels converts a label map into entries sorted by key.
func Labels(m map[string]string) []Label {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return lo.Map(keys, func(k string, _ int) Label { return Label{Key: k, Value: m[k]} })
}

// EncryptionKind classifies who manages a disk's encryption key.
func EncryptionKind(key *computepb.CustomerEncryptionKey) string {
	switch {
	case key == nil:
		return EncryptionGoogleManaged
	case key.KmsKeyName != nil || key.KmsKeyServiceAccount != nil:
		return EncryptionCustomerManaged
	default:
		return EncryptionCustomerSupplied
	}
}

// SourceImageDisplay is the image name a disk was created from, or "".
func SourceImageDisplay(disk *computepb.Disk) string {
	if disk.GetSourceImage() == "" {
		return ""
	}
	return ShortName(disk.GetSourceImage())
}

// InUsedBy lists the instances a disk is attached to.
func InUsedBy(disk *computepb.Disk) []string {
	return ShortNames(disk.GetUsers())
}

// SnapshotScheduleNames lists every resource policy attached to a disk, whether
// or not the policy could be resolved.
func SnapshotScheduleNames(disk *computepb.Disk) []string {
	return ShortNames(disk.GetResourcePolicies())
}

// SizeDisplay renders a size in GB with at least one decimal place.
func SizeDisplay(sizeGB float64) string {
	s := strconv.FormatFloat(sizeGB, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return fmt.Sprintf("%s GB", s)
}
