package fingerprint

import (
	"strings"

	"github.com/jaypipes/ghw"
)

// diskMediaClass classifies the host's primary storage as "SSD/NVMe",
// "HDD", or Unknown from the block-device topology. The first
// non-rotational device wins and short-circuits the scan.
func diskMediaClass() string {
	info, err := ghw.Block()
	if err != nil || info == nil {
		return Unknown
	}
	return classifyDisks(info.Disks)
}

// diskLike is the subset of ghw's disk type the classifier needs,
// extracted so tests can feed synthetic topologies.
type diskLike interface {
	driveType() string
	controller() string
}

type ghwDisk struct{ d *ghw.Disk }

func (g ghwDisk) driveType() string  { return g.d.DriveType.String() }
func (g ghwDisk) controller() string { return g.d.StorageController.String() }

func classifyDisks(disks []*ghw.Disk) string {
	wrapped := make([]diskLike, len(disks))
	for i, d := range disks {
		wrapped[i] = ghwDisk{d}
	}
	return classify(wrapped)
}

// controllerPriority fixes the scan order: NVMe, virtio, SCSI/SATA, IDE.
var controllerPriority = []string{"nvme", "virtio", "scsi", "ide"}

func classify(disks []diskLike) string {
	ordered := make([]diskLike, 0, len(disks))
	for _, want := range controllerPriority {
		for _, d := range disks {
			if strings.EqualFold(strings.TrimSpace(d.controller()), want) {
				ordered = append(ordered, d)
			}
		}
	}
	// Devices on controllers outside the priority list scan last.
	for _, d := range disks {
		known := false
		for _, want := range controllerPriority {
			if strings.EqualFold(strings.TrimSpace(d.controller()), want) {
				known = true
				break
			}
		}
		if !known {
			ordered = append(ordered, d)
		}
	}

	sawRotational := false
	for _, d := range ordered {
		ctrl := strings.TrimSpace(d.controller())
		dt := strings.TrimSpace(d.driveType())
		if strings.EqualFold(ctrl, "nvme") || strings.EqualFold(dt, "ssd") {
			return "SSD/NVMe"
		}
		if strings.EqualFold(dt, "hdd") {
			sawRotational = true
		}
	}
	if sawRotational {
		return "HDD"
	}
	return Unknown
}
