// Package hidraw opens Linux hidraw character devices and exchanges report
// descriptors and reports with them over ioctl.
package hidraw

import (
	"bytes"
	"fmt"
	"os"
	"unsafe"

	"github.com/hidrawctl/hidrawctl/hidreport/hiddesc"
	"golang.org/x/sys/unix"
)

const (
	// HID_MAX_DESCRIPTOR_SIZE from the kernel uapi.
	maxDescriptorSize = 4096
	maxStringSize     = 256
)

// reportDescriptor mirrors struct hidraw_report_descriptor.
type reportDescriptor struct {
	size  uint32
	value [maxDescriptorSize]byte
}

// DevInfo mirrors struct hidraw_devinfo.
type DevInfo struct {
	Bus     uint32
	Vendor  int16
	Product int16
}

func (i DevInfo) String() string {
	return fmt.Sprintf("bus 0x%04x vendor 0x%04x product 0x%04x",
		i.Bus, uint16(i.Vendor), uint16(i.Product))
}

// Device is an open hidraw character device.
type Device struct {
	f *os.File
}

// Open opens the hidraw device at path for reading and writing.
func Open(path string) (*Device, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, &hiddesc.IOError{Op: fmt.Sprintf("open %s", path), Err: err}
	}
	return &Device{f: os.NewFile(uintptr(fd), path)}, nil
}

func (d *Device) Close() error {
	return d.f.Close()
}

// ReportDescriptor fetches the raw HID report descriptor: one call for the
// size, one for the bytes.
func (d *Device) ReportDescriptor() ([]byte, error) {
	var size int32
	if _, err := d.ioctl("get report descriptor size", reqDescSize(), unsafe.Pointer(&size)); err != nil {
		return nil, err
	}
	if size < 0 || size > maxDescriptorSize {
		size = maxDescriptorSize
	}
	rd := reportDescriptor{size: uint32(size)}
	if _, err := d.ioctl("get report descriptor", reqDesc(), unsafe.Pointer(&rd)); err != nil {
		return nil, err
	}
	return rd.value[:size], nil
}

// Name returns the device name, truncated at the first NUL.
func (d *Device) Name() (string, error) {
	return d.rawString("get device name", reqName(maxStringSize))
}

// Phys returns the physical address string of the device.
func (d *Device) Phys() (string, error) {
	return d.rawString("get physical address", reqPhys(maxStringSize))
}

func (d *Device) rawString(op string, req uintptr) (string, error) {
	var buf [maxStringSize]byte
	n, err := d.ioctl(op, req, unsafe.Pointer(&buf[0]))
	if err != nil {
		return "", err
	}
	if n < 0 || n > len(buf) {
		n = len(buf)
	}
	s := buf[:n]
	if i := bytes.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	return string(s), nil
}

// Info returns the bus/vendor/product triple.
func (d *Device) Info() (DevInfo, error) {
	var info DevInfo
	if _, err := d.ioctl("get device info", reqInfo(), unsafe.Pointer(&info)); err != nil {
		return DevInfo{}, err
	}
	return info, nil
}

// GetFeatureReport reads a feature report. buf's first byte must hold the
// Report ID; the OS fills the remainder. A short read is a failure.
func (d *Device) GetFeatureReport(buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, fmt.Errorf("get feature report: empty buffer: %w", hiddesc.ErrInvalidArgument)
	}
	n, err := d.ioctl("get feature report", reqGetFeature(uintptr(len(buf))), unsafe.Pointer(&buf[0]))
	if err != nil {
		return 0, err
	}
	if n < len(buf) {
		return n, fmt.Errorf("get feature report: read %d of %d bytes: %w", n, len(buf), hiddesc.ErrShortTransfer)
	}
	return n, nil
}

// SendFeatureReport writes a feature report. buf's first byte must hold the
// Report ID.
func (d *Device) SendFeatureReport(buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, fmt.Errorf("send feature report: empty buffer: %w", hiddesc.ErrInvalidArgument)
	}
	n, err := d.ioctl("send feature report", reqSetFeature(uintptr(len(buf))), unsafe.Pointer(&buf[0]))
	if err != nil {
		return 0, err
	}
	if n < len(buf) {
		return n, fmt.Errorf("send feature report: wrote %d of %d bytes: %w", n, len(buf), hiddesc.ErrShortTransfer)
	}
	return n, nil
}

// Read reads one input report from the data channel.
func (d *Device) Read(buf []byte) (int, error) {
	n, err := d.f.Read(buf)
	if err != nil {
		return n, &hiddesc.IOError{Op: "read input report", Err: err}
	}
	return n, nil
}

// Write sends one output report on the data channel.
func (d *Device) Write(buf []byte) (int, error) {
	n, err := d.f.Write(buf)
	if err != nil {
		return n, &hiddesc.IOError{Op: "write output report", Err: err}
	}
	if n < len(buf) {
		return n, fmt.Errorf("write output report: wrote %d of %d bytes: %w", n, len(buf), hiddesc.ErrShortTransfer)
	}
	return n, nil
}
