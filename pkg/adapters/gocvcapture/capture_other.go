//go:build !gocv

package gocvcapture

import "github.com/clamsproject/mmif-utils-videodocuments/pkg/ports"

const available = false

func open(path string) (ports.VideoCapture, error) {
	return nil, ErrBackendUnavailable
}
