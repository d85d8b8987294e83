// SPDX-License-Identifier: MIT

package device

import "errors"

var (
	// ErrDispatch reports a failed dispatch or transfer. Fatal to an enumeration run.
	ErrDispatch = errors.New("device: dispatch failed")

	// ErrDeviceClosed indicates use of a device after Close.
	ErrDeviceClosed = errors.New("device: device is closed")

	// ErrNoDevice indicates a device index that discovery did not report.
	ErrNoDevice = errors.New("device: no such device")

	// ErrBadKernel indicates a kernel spec that cannot be built.
	ErrBadKernel = errors.New("device: invalid kernel spec")
)
