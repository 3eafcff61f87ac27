package mapper

import (
	"errors"

	"github.com/ezrec/vm16/translate"
)

var f = translate.From

var (
	ErrAddressUnmapped = errors.New(f("address out of bounds"))
	ErrRegionRange     = errors.New(f("region start after end"))
	ErrRegionSize      = errors.New(f("device too small for region"))
	ErrRegionUnknown   = errors.New(f("region unknown"))
	ErrRegionDuplicate = errors.New(f("region duplicated"))
)

// ErrAddress reports an address that no mapped region (or device) can serve.
type ErrAddress uint16

func (ea ErrAddress) Error() string {
	return f("address 0x%04x out of bounds", uint16(ea))
}

func (ea ErrAddress) Is(err error) bool {
	return err == ErrAddressUnmapped
}

// ErrRegion attaches the region name to a mapping error.
type ErrRegion struct {
	Name string
	Err  error
}

func (err *ErrRegion) Error() string {
	return f("region %v: %v", err.Name, err.Err)
}

func (err *ErrRegion) Unwrap() error {
	return err.Err
}
