// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package runner

import (
	"errors"
	"io"
	"os"
)

func interruptible(*os.File) (io.Reader, func(), error) {
	return nil, nil, errors.ErrUnsupported
}
