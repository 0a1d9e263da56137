package util

import (
	"errors"
	"fmt"
)

func PanicToError(e any) (err error) {
	switch v := e.(type) {
	case error:
		err = v
	case string:
		err = errors.New(v)
	case fmt.Stringer:
		err = errors.New(v.String())
	default:
		err = fmt.Errorf("panic: %v", v)
	}
	return
}
