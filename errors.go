package main

import (
	"errors"
	"fmt"
)

var ErrDeviceUnavailable = errors.New("graphics device unavailable")

type ShaderStage int

const (
	VertexStage ShaderStage = iota
	FragmentStage
	LinkStage
)

func (s ShaderStage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	case LinkStage:
		return "link"
	default:
		return fmt.Sprintf("ShaderStage(%d)", int(s))
	}
}

// CompileError carries the driver diagnostic of a failed shader stage.
type CompileError struct {
	Program string
	Stage   ShaderStage
	Log     string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s: %s shader compilation failed: %s", e.Program, e.Stage, e.Log)
}

type MissingUniformError struct {
	Program string
	Uniform string
}

func (e *MissingUniformError) Error() string {
	return fmt.Sprintf("%s: uniform %s was never set", e.Program, e.Uniform)
}

type DeviceUnavailableError struct {
	Op string
}

func (e *DeviceUnavailableError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, ErrDeviceUnavailable)
}

func (e *DeviceUnavailableError) Is(target error) bool {
	return target == ErrDeviceUnavailable
}

func checkDevice(dev Device, op string) error {
	if dev == nil || dev.Lost() {
		return &DeviceUnavailableError{Op: op}
	}
	return nil
}
