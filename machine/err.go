package machine

import (
	"github.com/pkg/errors"

	"github.com/ezrec/vm16/translate"
)

var f = translate.From

var (
	ErrLayoutDevice = errors.New(f("layout device unknown"))
	ErrLayoutRegion = errors.New(f("layout region unnamed"))
	ErrLayoutStack  = errors.New(f("layout stack region invalid"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
