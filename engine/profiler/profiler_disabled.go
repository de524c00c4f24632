//go:build !profile

package profiler

import "errors"

// ErrDisabled is returned by Dump in builds without the profile tag.
var ErrDisabled = errors.New("profiler: built without -tags profile")

func Init(int) {}

func Start(string) func() { return func() {} }

func Dump() (string, error) { return "", ErrDisabled }
