package hidraw

import (
	"runtime"
	"unsafe"

	"github.com/hidrawctl/hidrawctl/hidreport/hiddesc"
	"golang.org/x/sys/unix"
)

// ioctl request encoding per the kernel _IOC layout. The direction and size
// field widths differ on the mips/ppc/sparc families.
var (
	iocWrite    uintptr = 1
	iocRead     uintptr = 2
	iocSizeBits uint    = 14
)

func init() {
	switch runtime.GOARCH {
	case "mips", "mipsle", "mips64", "mips64le", "ppc", "ppc64", "ppc64le", "sparc64":
		iocWrite = 4
		iocSizeBits = 13
	}
}

const (
	iocNrShift   = 0
	iocTypeShift = 8
	iocSizeShift = 16
)

func ioc(dir, typ, nr, size uintptr) uintptr {
	return dir<<(iocSizeShift+iocSizeBits) | typ<<iocTypeShift | nr<<iocNrShift | size<<iocSizeShift
}

// hidraw ioctl requests from linux/hidraw.h, ioctl type 'H'.
func reqDescSize() uintptr      { return ioc(iocRead, 'H', 0x01, 4) }
func reqDesc() uintptr          { return ioc(iocRead, 'H', 0x02, unsafe.Sizeof(reportDescriptor{})) }
func reqInfo() uintptr          { return ioc(iocRead, 'H', 0x03, unsafe.Sizeof(DevInfo{})) }
func reqName(n uintptr) uintptr { return ioc(iocRead, 'H', 0x04, n) }
func reqPhys(n uintptr) uintptr { return ioc(iocRead, 'H', 0x05, n) }
func reqSetFeature(n uintptr) uintptr {
	return ioc(iocRead|iocWrite, 'H', 0x06, n)
}
func reqGetFeature(n uintptr) uintptr {
	return ioc(iocRead|iocWrite, 'H', 0x07, n)
}

func (d *Device) ioctl(op string, req uintptr, arg unsafe.Pointer) (int, error) {
	n, _, errno := unix.Syscall(unix.SYS_IOCTL, d.f.Fd(), req, uintptr(arg))
	runtime.KeepAlive(d.f)
	if errno != 0 {
		return 0, &hiddesc.IOError{Op: op, Err: errno}
	}
	return int(n), nil
}
